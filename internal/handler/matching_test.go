package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/civicworks/volunteerhub/internal/config"
	"github.com/civicworks/volunteerhub/internal/handler"
	"github.com/civicworks/volunteerhub/internal/mocks"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func matchingRouter(svc *service.MatchingService) *chi.Mux {
	h := handler.NewMatchingHandler(svc)
	r := chi.NewRouter()
	r.Post("/match-requests/{id}/approve", h.ApproveMatchRequest)
	r.Post("/match-requests/{id}/reject", h.RejectMatchRequest)
	r.Post("/match-requests/expire", h.ExpireOldRequests)
	return r
}

func TestExpireOldRequestsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("reads the cutoff from the days query parameter", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		requestRepo.EXPECT().
			ExpireOlderThan(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cutoff time.Time) (int64, error) {
				expected := time.Now().AddDate(0, 0, -45)
				assert.WithinDuration(t, expected, cutoff, time.Minute)
				return 3, nil
			})

		svc := service.NewMatchingService(nil, requestRepo, nil, nil, nil, nil, config.Load())
		router := matchingRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/match-requests/expire?days=45", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"expired_count":3`)
	})

	t.Run("rejects a malformed days value", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)

		svc := service.NewMatchingService(nil, requestRepo, nil, nil, nil, nil, config.Load())
		router := matchingRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/match-requests/expire?days=soon", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("body days_old wins over the query parameter", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		requestRepo.EXPECT().
			ExpireOlderThan(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cutoff time.Time) (int64, error) {
				expected := time.Now().AddDate(0, 0, -10)
				assert.WithinDuration(t, expected, cutoff, time.Minute)
				return 0, nil
			})

		svc := service.NewMatchingService(nil, requestRepo, nil, nil, nil, nil, config.Load())
		router := matchingRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/match-requests/expire?days=45", strings.NewReader(`{"days_old":10}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRejectMatchRequestHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requestID := uuid.New()
	userID := uuid.New()
	oppID := uuid.New()
	eventID := uuid.New()

	t.Run("forwards the rejection reason from the request body", func(t *testing.T) {
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)
		notifRepo := mocks.NewMockNotificationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		matchReq := &model.MatchRequest{ID: requestID, UserID: userID, OpportunityID: oppID, Status: model.MatchStatusPending}

		requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(matchReq, nil)
		requestRepo.EXPECT().Update(gomock.Any(), matchReq).Return(nil)
		oppRepo.EXPECT().FindByID(gomock.Any(), oppID).
			Return(&model.Opportunity{ID: oppID, EventID: eventID, Title: "Setup Crew"}, nil)
		eventRepo.EXPECT().FindByID(gomock.Any(), eventID).
			Return(&model.Event{ID: eventID, Title: "Charity Run"}, nil)

		userRepo.EXPECT().FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID, Email: "vol@example.com"}, nil)
		notifRepo.EXPECT().FindPreferences(gomock.Any(), userID).
			Return([]*model.NotificationPreference{
				{Channel: model.ChannelEmail, Enabled: false},
			}, nil)
		notifRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n *model.Notification) error {
				assert.Contains(t, n.Body, "Reason: Role was filled")
				return nil
			})
		notifRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		notifier := service.NewNotificationService(notifRepo, userRepo, nil, nil, nil)
		svc := service.NewMatchingService(oppRepo, requestRepo, nil, nil, eventRepo, notifier, config.Load())
		router := matchingRouter(svc)

		req := httptest.NewRequest(http.MethodPost,
			"/match-requests/"+requestID.String()+"/reject",
			strings.NewReader(`{"reason":"Role was filled"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"rejected"`)
	})

	t.Run("maps a non-pending request to a bad request", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		requestRepo.EXPECT().FindByID(gomock.Any(), requestID).
			Return(&model.MatchRequest{ID: requestID, Status: model.MatchStatusApproved}, nil)

		svc := service.NewMatchingService(nil, requestRepo, nil, nil, nil, nil, config.Load())
		router := matchingRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/match-requests/"+requestID.String()+"/reject", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestApproveMatchRequestHandlerStatusCodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requestID := uuid.New()
	oppID := uuid.New()

	t.Run("non-pending request yields a bad request", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		requestRepo.EXPECT().FindByID(gomock.Any(), requestID).
			Return(&model.MatchRequest{ID: requestID, Status: model.MatchStatusExpired}, nil)

		svc := service.NewMatchingService(nil, requestRepo, nil, nil, nil, nil, config.Load())
		router := matchingRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/match-requests/"+requestID.String()+"/approve", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("a full opportunity still yields a conflict", func(t *testing.T) {
		maxSlots := 1
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		matchRepo := mocks.NewMockMatchRepositoryIface(ctrl)

		requestRepo.EXPECT().FindByID(gomock.Any(), requestID).
			Return(&model.MatchRequest{ID: requestID, OpportunityID: oppID, Status: model.MatchStatusPending}, nil)
		oppRepo.EXPECT().FindByID(gomock.Any(), oppID).
			Return(&model.Opportunity{ID: oppID, MaxSlots: &maxSlots}, nil)
		matchRepo.EXPECT().CountApprovedByOpportunity(gomock.Any(), oppID).Return(int64(1), nil)

		svc := service.NewMatchingService(oppRepo, requestRepo, matchRepo, nil, nil, nil, config.Load())
		router := matchingRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/match-requests/"+requestID.String()+"/approve", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
