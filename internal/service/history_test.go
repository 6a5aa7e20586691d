package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/mocks"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCreateHistoryEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	eventID := uuid.New()
	yesterday := time.Now().AddDate(0, 0, -1)

	validInput := service.CreateHistoryEntryInput{
		UserID:  userID,
		EventID: eventID,
		Role:    "Server",
		Hours:   4.5,
		Date:    yesterday,
	}

	t.Run("logs hours for a completed event", func(t *testing.T) {
		historyRepo := mocks.NewMockHistoryRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(&model.User{ID: userID}, nil)
		historyRepo.EXPECT().
			ExistsForUserEventDate(gomock.Any(), userID, eventID, yesterday).
			Return(false, nil)
		historyRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		svc := service.NewHistoryService(historyRepo, userRepo)

		entry, err := svc.CreateEntry(context.Background(), validInput)
		assert.NoError(t, err)
		assert.Equal(t, 4.5, entry.Hours)
		assert.Equal(t, "Server", entry.Role)
	})

	t.Run("rejects a second entry for the same day", func(t *testing.T) {
		historyRepo := mocks.NewMockHistoryRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		userRepo.EXPECT().FindByID(gomock.Any(), userID).Return(&model.User{ID: userID}, nil)
		historyRepo.EXPECT().
			ExistsForUserEventDate(gomock.Any(), userID, eventID, yesterday).
			Return(true, nil)

		svc := service.NewHistoryService(historyRepo, userRepo)

		_, err := svc.CreateEntry(context.Background(), validInput)
		assert.ErrorIs(t, err, domain.ErrDuplicateHistoryEntry)
	})

	t.Run("rejects a future date", func(t *testing.T) {
		svc := service.NewHistoryService(nil, nil)

		input := validInput
		input.Date = time.Now().Add(48 * time.Hour)

		_, err := svc.CreateEntry(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects more than a day of hours", func(t *testing.T) {
		svc := service.NewHistoryService(nil, nil)

		input := validInput
		input.Hours = 25

		_, err := svc.CreateEntry(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestVolunteerStatistics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	eventA := uuid.New()
	eventB := uuid.New()

	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("aggregates over all entries", func(t *testing.T) {
		historyRepo := mocks.NewMockHistoryRepositoryIface(ctrl)

		historyRepo.EXPECT().FindByUser(gomock.Any(), userID).Return([]*model.VolunteerHistoryEntry{
			{UserID: userID, EventID: eventA, Role: "Server", Hours: 4, Date: mar},
			{UserID: userID, EventID: eventA, Role: "Server", Hours: 2, Date: jan},
			{UserID: userID, EventID: eventB, Role: "Driver", Hours: 6, Date: mar},
		}, nil)

		svc := service.NewHistoryService(historyRepo, nil)

		stats, err := svc.Statistics(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, 12.0, stats.TotalHours)
		assert.Equal(t, 2, stats.TotalEvents)
		assert.Equal(t, 2, stats.UniqueRoles)
		assert.Equal(t, jan, *stats.FirstVolunteerDate)
		assert.Equal(t, mar, *stats.LastVolunteerDate)
		assert.Equal(t, 6.0, stats.AverageHoursPerEvent)
		assert.Equal(t, "Server", stats.MostCommonRole)
	})

	t.Run("empty history yields zero statistics", func(t *testing.T) {
		historyRepo := mocks.NewMockHistoryRepositoryIface(ctrl)

		historyRepo.EXPECT().FindByUser(gomock.Any(), userID).
			Return([]*model.VolunteerHistoryEntry{}, nil)

		svc := service.NewHistoryService(historyRepo, nil)

		stats, err := svc.Statistics(context.Background(), userID)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, stats.TotalHours)
		assert.Nil(t, stats.FirstVolunteerDate)
		assert.Empty(t, stats.MostCommonRole)
	})
}

func TestMonthlyHours(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	historyRepo := mocks.NewMockHistoryRepositoryIface(ctrl)
	historyRepo.EXPECT().FindByUser(gomock.Any(), userID).Return([]*model.VolunteerHistoryEntry{
		{UserID: userID, Hours: 3, Date: time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)},
		{UserID: userID, Hours: 2, Date: time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)},
		{UserID: userID, Hours: 5, Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	svc := service.NewHistoryService(historyRepo, nil)

	monthly, err := svc.MonthlyHours(context.Background(), userID, 2026)
	assert.NoError(t, err)
	assert.Len(t, monthly, 12)
	assert.Equal(t, 5.0, monthly[2])
	assert.Equal(t, 0.0, monthly[7])
}

func TestHoursInPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("sums hours inside the window", func(t *testing.T) {
		historyRepo := mocks.NewMockHistoryRepositoryIface(ctrl)

		historyRepo.EXPECT().
			FindByUserInPeriod(gomock.Any(), userID, from, to).
			Return([]*model.VolunteerHistoryEntry{
				{Hours: 3}, {Hours: 4.5},
			}, nil)

		svc := service.NewHistoryService(historyRepo, nil)

		total, err := svc.HoursInPeriod(context.Background(), userID, from, to)
		assert.NoError(t, err)
		assert.Equal(t, 7.5, total)
	})

	t.Run("rejects an inverted period", func(t *testing.T) {
		svc := service.NewHistoryService(nil, nil)

		_, err := svc.HoursInPeriod(context.Background(), userID, to, from)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestTopVolunteersByHours(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	busyID := uuid.New()
	casualID := uuid.New()

	historyRepo := mocks.NewMockHistoryRepositoryIface(ctrl)
	historyRepo.EXPECT().FindAll(gomock.Any()).Return([]*model.VolunteerHistoryEntry{
		{UserID: casualID, EventID: uuid.New(), Hours: 2},
		{UserID: busyID, EventID: uuid.New(), Hours: 5},
		{UserID: busyID, EventID: uuid.New(), Hours: 4},
	}, nil)

	svc := service.NewHistoryService(historyRepo, nil)

	rankings, err := svc.TopVolunteersByHours(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, rankings, 2)
	assert.Equal(t, busyID, rankings[0].UserID)
	assert.Equal(t, 9.0, rankings[0].Hours)
	assert.Equal(t, casualID, rankings[1].UserID)
}

func TestRoles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	historyRepo := mocks.NewMockHistoryRepositoryIface(ctrl)
	historyRepo.EXPECT().FindByUser(gomock.Any(), userID).Return([]*model.VolunteerHistoryEntry{
		{Role: "Server"},
		{Role: "Driver"},
		{Role: "Server"},
	}, nil)

	svc := service.NewHistoryService(historyRepo, nil)

	roles, err := svc.Roles(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Driver", "Server"}, roles)
}

func TestRecentHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now()
	entries := []*model.VolunteerHistoryEntry{
		{ID: uuid.New(), Role: "Server", Date: now.AddDate(0, 0, -3)},
		{ID: uuid.New(), Role: "Driver", Date: now.AddDate(0, 0, -45)},
		{ID: uuid.New(), Role: "Greeter", Date: now.AddDate(0, 0, -10)},
	}

	t.Run("defaults to a thirty day window", func(t *testing.T) {
		repo := mocks.NewMockHistoryRepositoryIface(ctrl)
		repo.EXPECT().FindAll(gomock.Any()).Return(entries, nil)

		svc := service.NewHistoryService(repo, nil)

		recent, err := svc.RecentHistory(context.Background(), 0)
		assert.NoError(t, err)
		assert.Len(t, recent, 2)
	})

	t.Run("honors an explicit window", func(t *testing.T) {
		repo := mocks.NewMockHistoryRepositoryIface(ctrl)
		repo.EXPECT().FindAll(gomock.Any()).Return(entries, nil)

		svc := service.NewHistoryService(repo, nil)

		recent, err := svc.RecentHistory(context.Background(), 7)
		assert.NoError(t, err)
		assert.Len(t, recent, 1)
		assert.Equal(t, "Server", recent[0].Role)
	})
}
