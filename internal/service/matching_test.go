package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/civicworks/volunteerhub/internal/config"
	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/mocks"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newMatchingService(
	oppRepo *mocks.MockOpportunityRepositoryIface,
	requestRepo *mocks.MockMatchRequestRepositoryIface,
	matchRepo *mocks.MockMatchRepositoryIface,
	profileRepo *mocks.MockProfileRepositoryIface,
	eventRepo *mocks.MockEventRepositoryIface,
) *service.MatchingService {
	cfg := config.Load()
	return service.NewMatchingService(oppRepo, requestRepo, matchRepo, profileRepo, eventRepo, nil, cfg)
}

func TestCreateMatchRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	oppID := uuid.New()
	opp := &model.Opportunity{
		ID:             oppID,
		EventID:        uuid.New(),
		Title:          "Kitchen Helper",
		RequiredSkills: model.StringList{"cooking"},
	}

	t.Run("attaches score when a profile exists", func(t *testing.T) {
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		oppRepo.EXPECT().FindByID(gomock.Any(), oppID).Return(opp, nil)
		requestRepo.EXPECT().
			FindActiveByUserAndOpportunity(gomock.Any(), userID, oppID).
			Return(nil, domain.ErrMatchRequestNotFound)
		profileRepo.EXPECT().
			FindByUserID(gomock.Any(), userID).
			Return(&model.Profile{
				UserID: userID,
				Skills: model.StringList{"cooking"},
				Availability: []model.AvailabilityWindow{
					{Weekday: 5, StartMinute: 540, EndMinute: 720},
				},
			}, nil)
		requestRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		svc := newMatchingService(oppRepo, requestRepo, nil, profileRepo, nil)

		req, err := svc.CreateMatchRequest(context.Background(), userID, oppID)
		assert.NoError(t, err)
		assert.Equal(t, model.MatchStatusPending, req.Status)
		assert.NotNil(t, req.Score)
		assert.InDelta(t, 0.81, *req.Score, 1e-9)
	})

	t.Run("created without a score when no profile exists", func(t *testing.T) {
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

		oppRepo.EXPECT().FindByID(gomock.Any(), oppID).Return(opp, nil)
		requestRepo.EXPECT().
			FindActiveByUserAndOpportunity(gomock.Any(), userID, oppID).
			Return(nil, domain.ErrMatchRequestNotFound)
		profileRepo.EXPECT().
			FindByUserID(gomock.Any(), userID).
			Return(nil, domain.ErrProfileNotFound)
		requestRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		svc := newMatchingService(oppRepo, requestRepo, nil, profileRepo, nil)

		req, err := svc.CreateMatchRequest(context.Background(), userID, oppID)
		assert.NoError(t, err)
		assert.Nil(t, req.Score)
	})

	t.Run("rejects a duplicate active request", func(t *testing.T) {
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)

		oppRepo.EXPECT().FindByID(gomock.Any(), oppID).Return(opp, nil)
		requestRepo.EXPECT().
			FindActiveByUserAndOpportunity(gomock.Any(), userID, oppID).
			Return(&model.MatchRequest{Status: model.MatchStatusPending}, nil)

		svc := newMatchingService(oppRepo, requestRepo, nil, nil, nil)

		_, err := svc.CreateMatchRequest(context.Background(), userID, oppID)
		assert.ErrorIs(t, err, domain.ErrDuplicateMatchRequest)
	})

	t.Run("fails for an unknown opportunity", func(t *testing.T) {
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)

		oppRepo.EXPECT().FindByID(gomock.Any(), oppID).Return(nil, domain.ErrOpportunityNotFound)

		svc := newMatchingService(oppRepo, nil, nil, nil, nil)

		_, err := svc.CreateMatchRequest(context.Background(), userID, oppID)
		assert.ErrorIs(t, err, domain.ErrOpportunityNotFound)
	})
}

func TestApproveMatchRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requestID := uuid.New()
	userID := uuid.New()
	oppID := uuid.New()
	maxSlots := 2
	score := 0.75

	t.Run("approves and creates the match", func(t *testing.T) {
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		matchRepo := mocks.NewMockMatchRepositoryIface(ctrl)

		req := &model.MatchRequest{
			ID:            requestID,
			UserID:        userID,
			OpportunityID: oppID,
			Status:        model.MatchStatusPending,
			Score:         &score,
			RequestedAt:   time.Now(),
		}

		gomock.InOrder(
			requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(req, nil),
			oppRepo.EXPECT().FindByID(gomock.Any(), oppID).
				Return(&model.Opportunity{ID: oppID, Title: "Kitchen Helper", MaxSlots: &maxSlots}, nil),
			matchRepo.EXPECT().CountApprovedByOpportunity(gomock.Any(), oppID).Return(int64(1), nil),
			requestRepo.EXPECT().
				ApproveWithMatch(gomock.Any(), req, gomock.Any()).
				DoAndReturn(func(_ context.Context, req *model.MatchRequest, match *model.Match) error {
					assert.Equal(t, model.MatchStatusApproved, req.Status)
					assert.Equal(t, req.UserID, match.UserID)
					assert.Equal(t, req.OpportunityID, match.OpportunityID)
					return nil
				}),
		)

		svc := newMatchingService(oppRepo, requestRepo, matchRepo, nil, nil)

		match, err := svc.ApproveMatchRequest(context.Background(), requestID)
		assert.NoError(t, err)
		assert.Equal(t, model.MatchStatusApproved, match.Status)
		assert.Equal(t, model.MatchStatusApproved, req.Status)
		assert.Equal(t, &score, match.Score)
	})

	t.Run("writes nothing outside the combined update when the match insert fails", func(t *testing.T) {
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		matchRepo := mocks.NewMockMatchRepositoryIface(ctrl)

		req := &model.MatchRequest{
			ID: requestID, UserID: userID, OpportunityID: oppID,
			Status: model.MatchStatusPending,
		}

		requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(req, nil)
		oppRepo.EXPECT().FindByID(gomock.Any(), oppID).
			Return(&model.Opportunity{ID: oppID, Title: "Kitchen Helper"}, nil)
		requestRepo.EXPECT().
			ApproveWithMatch(gomock.Any(), req, gomock.Any()).
			Return(errors.New("insert failed"))

		svc := newMatchingService(oppRepo, requestRepo, matchRepo, nil, nil)

		// No separate Update or Create may run; the approval and the
		// match insert stand or fall together.
		_, err := svc.ApproveMatchRequest(context.Background(), requestID)
		assert.Error(t, err)
	})

	t.Run("refuses when the opportunity is full", func(t *testing.T) {
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		matchRepo := mocks.NewMockMatchRepositoryIface(ctrl)

		requestRepo.EXPECT().FindByID(gomock.Any(), requestID).
			Return(&model.MatchRequest{
				ID: requestID, UserID: userID, OpportunityID: oppID,
				Status: model.MatchStatusPending,
			}, nil)
		oppRepo.EXPECT().FindByID(gomock.Any(), oppID).
			Return(&model.Opportunity{ID: oppID, MaxSlots: &maxSlots}, nil)
		matchRepo.EXPECT().CountApprovedByOpportunity(gomock.Any(), oppID).Return(int64(2), nil)

		svc := newMatchingService(oppRepo, requestRepo, matchRepo, nil, nil)

		_, err := svc.ApproveMatchRequest(context.Background(), requestID)
		assert.ErrorIs(t, err, domain.ErrOpportunityAtCapacity)
	})

	t.Run("refuses non-pending requests", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)

		requestRepo.EXPECT().FindByID(gomock.Any(), requestID).
			Return(&model.MatchRequest{ID: requestID, Status: model.MatchStatusRejected}, nil)

		svc := newMatchingService(nil, requestRepo, nil, nil, nil)

		_, err := svc.ApproveMatchRequest(context.Background(), requestID)
		assert.ErrorIs(t, err, domain.ErrMatchRequestNotPending)
	})
}

func TestRejectMatchRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requestID := uuid.New()
	oppID := uuid.New()

	t.Run("rejects a pending request", func(t *testing.T) {
		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)

		req := &model.MatchRequest{ID: requestID, OpportunityID: oppID, Status: model.MatchStatusPending}

		requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(req, nil)
		requestRepo.EXPECT().Update(gomock.Any(), req).Return(nil)
		oppRepo.EXPECT().FindByID(gomock.Any(), oppID).Return(&model.Opportunity{ID: oppID}, nil)

		svc := newMatchingService(oppRepo, requestRepo, nil, nil, nil)

		result, err := svc.RejectMatchRequest(context.Background(), requestID, "")
		assert.NoError(t, err)
		assert.Equal(t, model.MatchStatusRejected, result.Status)
	})

	t.Run("forwards the reason to the volunteer's notification", func(t *testing.T) {
		userID := uuid.New()
		eventID := uuid.New()

		oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)
		notifRepo := mocks.NewMockNotificationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		req := &model.MatchRequest{ID: requestID, UserID: userID, OpportunityID: oppID, Status: model.MatchStatusPending}

		requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(req, nil)
		requestRepo.EXPECT().Update(gomock.Any(), req).Return(nil)
		oppRepo.EXPECT().FindByID(gomock.Any(), oppID).
			Return(&model.Opportunity{ID: oppID, EventID: eventID, Title: "Kitchen Helper"}, nil)
		eventRepo.EXPECT().FindByID(gomock.Any(), eventID).
			Return(&model.Event{ID: eventID, Title: "Food Drive"}, nil)

		userRepo.EXPECT().FindByID(gomock.Any(), userID).
			Return(&model.User{ID: userID, Email: "vol@example.com"}, nil)
		// Email disabled so delivery stays in-app and needs no mailer.
		notifRepo.EXPECT().FindPreferences(gomock.Any(), userID).
			Return([]*model.NotificationPreference{
				{Channel: model.ChannelEmail, Enabled: false},
			}, nil)
		notifRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n *model.Notification) error {
				assert.Contains(t, n.Body, "Reason: Shift already covered")
				return nil
			})
		notifRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		notifier := service.NewNotificationService(notifRepo, userRepo, nil, nil, nil)
		svc := service.NewMatchingService(oppRepo, requestRepo, nil, nil, eventRepo, notifier, config.Load())

		result, err := svc.RejectMatchRequest(context.Background(), requestID, "Shift already covered")
		assert.NoError(t, err)
		assert.Equal(t, model.MatchStatusRejected, result.Status)
	})

	t.Run("refuses an already resolved request", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)

		requestRepo.EXPECT().FindByID(gomock.Any(), requestID).
			Return(&model.MatchRequest{ID: requestID, Status: model.MatchStatusApproved}, nil)

		svc := newMatchingService(nil, requestRepo, nil, nil, nil)

		_, err := svc.RejectMatchRequest(context.Background(), requestID, "")
		assert.ErrorIs(t, err, domain.ErrMatchRequestNotPending)
	})
}

func TestCancelMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	matchID := uuid.New()
	userID := uuid.New()
	oppID := uuid.New()

	t.Run("deletes the match and rejects the originating request", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		matchRepo := mocks.NewMockMatchRepositoryIface(ctrl)

		req := &model.MatchRequest{UserID: userID, OpportunityID: oppID, Status: model.MatchStatusApproved}

		gomock.InOrder(
			matchRepo.EXPECT().FindByID(gomock.Any(), matchID).
				Return(&model.Match{ID: matchID, UserID: userID, OpportunityID: oppID}, nil),
			requestRepo.EXPECT().
				FindActiveByUserAndOpportunity(gomock.Any(), userID, oppID).
				Return(req, nil),
			matchRepo.EXPECT().
				DeleteWithRequestReject(gomock.Any(), matchID, req).
				DoAndReturn(func(_ context.Context, _ uuid.UUID, req *model.MatchRequest) error {
					assert.Equal(t, model.MatchStatusRejected, req.Status)
					return nil
				}),
		)

		svc := newMatchingService(nil, requestRepo, matchRepo, nil, nil)

		err := svc.CancelMatch(context.Background(), matchID)
		assert.NoError(t, err)
		assert.Equal(t, model.MatchStatusRejected, req.Status)
	})

	t.Run("succeeds when no active request remains", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		matchRepo := mocks.NewMockMatchRepositoryIface(ctrl)

		matchRepo.EXPECT().FindByID(gomock.Any(), matchID).
			Return(&model.Match{ID: matchID, UserID: userID, OpportunityID: oppID}, nil)
		requestRepo.EXPECT().
			FindActiveByUserAndOpportunity(gomock.Any(), userID, oppID).
			Return(nil, domain.ErrMatchRequestNotFound)
		matchRepo.EXPECT().DeleteWithRequestReject(gomock.Any(), matchID, nil).Return(nil)

		svc := newMatchingService(nil, requestRepo, matchRepo, nil, nil)

		err := svc.CancelMatch(context.Background(), matchID)
		assert.NoError(t, err)
	})

	t.Run("propagates a failed combined write", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
		matchRepo := mocks.NewMockMatchRepositoryIface(ctrl)

		req := &model.MatchRequest{UserID: userID, OpportunityID: oppID, Status: model.MatchStatusApproved}

		matchRepo.EXPECT().FindByID(gomock.Any(), matchID).
			Return(&model.Match{ID: matchID, UserID: userID, OpportunityID: oppID}, nil)
		requestRepo.EXPECT().
			FindActiveByUserAndOpportunity(gomock.Any(), userID, oppID).
			Return(req, nil)
		matchRepo.EXPECT().
			DeleteWithRequestReject(gomock.Any(), matchID, req).
			Return(errors.New("delete failed"))

		svc := newMatchingService(nil, requestRepo, matchRepo, nil, nil)

		err := svc.CancelMatch(context.Background(), matchID)
		assert.Error(t, err)
	})
}

func TestFindMatchingVolunteers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	oppID := uuid.New()
	opp := &model.Opportunity{ID: oppID, Title: "Park Cleanup", RequiredSkills: model.StringList{"gardening"}}

	strongID := uuid.New()
	weakID := uuid.New()
	takenID := uuid.New()

	profiles := []*model.Profile{
		{
			UserID: strongID,
			Skills: model.StringList{"gardening"},
			Tags:   model.StringList{"outdoors"},
			Availability: []model.AvailabilityWindow{
				{Weekday: 6, StartMinute: 480, EndMinute: 720},
			},
		},
		{UserID: weakID},
		{UserID: takenID, Skills: model.StringList{"gardening"}},
	}

	oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
	requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
	profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

	oppRepo.EXPECT().FindByID(gomock.Any(), oppID).Return(opp, nil)
	profileRepo.EXPECT().FindAll(gomock.Any()).Return(profiles, nil)
	requestRepo.EXPECT().
		FindActiveByUserAndOpportunity(gomock.Any(), strongID, oppID).
		Return(nil, domain.ErrMatchRequestNotFound)
	requestRepo.EXPECT().
		FindActiveByUserAndOpportunity(gomock.Any(), weakID, oppID).
		Return(nil, domain.ErrMatchRequestNotFound)
	requestRepo.EXPECT().
		FindActiveByUserAndOpportunity(gomock.Any(), takenID, oppID).
		Return(&model.MatchRequest{Status: model.MatchStatusApproved}, nil)

	svc := newMatchingService(oppRepo, requestRepo, nil, profileRepo, nil)

	results, err := svc.FindMatchingVolunteers(context.Background(), oppID, 0.5)
	assert.NoError(t, err)

	// The weak profile scores 0.3*0.3 + 0.5*0.2 + 0.7*0.1 = 0.26 and is
	// dropped; the taken user is skipped outright.
	assert.Len(t, results, 1)
	assert.Equal(t, strongID, results[0].Profile.UserID)
	assert.Greater(t, results[0].Score.Total, 0.5)
}

func TestFindMatchingOpportunities(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	gardenID := uuid.New()
	medicID := uuid.New()
	takenID := uuid.New()

	profile := &model.Profile{
		UserID: userID,
		Skills: model.StringList{"gardening"},
		Availability: []model.AvailabilityWindow{
			{Weekday: 6, StartMinute: 480, EndMinute: 720},
		},
	}

	opps := []*model.Opportunity{
		{ID: gardenID, Title: "Community Garden", RequiredSkills: model.StringList{"gardening"}},
		{ID: medicID, Title: "Medic Station", RequiredSkills: model.StringList{"first aid"}},
		{ID: takenID, Title: "Garden Lead", RequiredSkills: model.StringList{"gardening"}},
	}

	oppRepo := mocks.NewMockOpportunityRepositoryIface(ctrl)
	requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)
	profileRepo := mocks.NewMockProfileRepositoryIface(ctrl)

	profileRepo.EXPECT().FindByUserID(gomock.Any(), userID).Return(profile, nil)
	oppRepo.EXPECT().FindAll(gomock.Any()).Return(opps, nil)
	requestRepo.EXPECT().FindActiveByUser(gomock.Any(), userID).
		Return([]*model.MatchRequest{{OpportunityID: takenID, Status: model.MatchStatusPending}}, nil)

	svc := newMatchingService(oppRepo, requestRepo, nil, profileRepo, nil)

	results, err := svc.FindMatchingOpportunities(context.Background(), userID, 0.5)
	assert.NoError(t, err)

	// Medic Station misses the skill requirement; the taken opportunity
	// is excluded even though it would score well.
	assert.Len(t, results, 1)
	assert.Equal(t, gardenID, results[0].Opportunity.ID)
}

func TestExpireOldRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("uses the configured default window", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)

		requestRepo.EXPECT().
			ExpireOlderThan(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cutoff time.Time) (int64, error) {
				expected := time.Now().AddDate(0, 0, -30)
				assert.WithinDuration(t, expected, cutoff, time.Minute)
				return int64(3), nil
			})

		svc := newMatchingService(nil, requestRepo, nil, nil, nil)

		count, err := svc.ExpireOldRequests(context.Background(), 0)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("honors an explicit window", func(t *testing.T) {
		requestRepo := mocks.NewMockMatchRequestRepositoryIface(ctrl)

		requestRepo.EXPECT().
			ExpireOlderThan(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cutoff time.Time) (int64, error) {
				expected := time.Now().AddDate(0, 0, -7)
				assert.WithinDuration(t, expected, cutoff, time.Minute)
				return int64(1), nil
			})

		svc := newMatchingService(nil, requestRepo, nil, nil, nil)

		count, err := svc.ExpireOldRequests(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestMinScoreOrDefault(t *testing.T) {
	svc := newMatchingService(nil, nil, nil, nil, nil)

	assert.Equal(t, 0.5, svc.MinScoreOrDefault(nil))

	custom := 0.8
	assert.Equal(t, 0.8, svc.MinScoreOrDefault(&custom))
}
