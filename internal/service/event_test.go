package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/mocks"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/repository"
	"github.com/civicworks/volunteerhub/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCreateEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	starts := time.Now().Add(72 * time.Hour)
	ends := starts.Add(4 * time.Hour)

	validInput := service.CreateEventInput{
		Title:       "Park Cleanup",
		Description: "Clearing litter from the riverside park.",
		Location: service.LocationInput{
			Name: "Riverside Park",
			City: "Springfield",
		},
		StartsAt:       starts,
		EndsAt:         &ends,
		RequiredSkills: []string{"gardening"},
	}

	t.Run("creates a draft event", func(t *testing.T) {
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)
		eventRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		svc := service.NewEventService(eventRepo, nil, nil)

		event, err := svc.CreateEvent(context.Background(), validInput)
		assert.NoError(t, err)
		assert.Equal(t, model.EventStatusDraft, event.Status)
		assert.Equal(t, "Riverside Park", event.LocationName)
		assert.Equal(t, "Springfield", event.LocationCity)
	})

	t.Run("rejects a missing location", func(t *testing.T) {
		svc := service.NewEventService(nil, nil, nil)

		input := validInput
		input.Location = service.LocationInput{}

		_, err := svc.CreateEvent(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects a start time in the past", func(t *testing.T) {
		svc := service.NewEventService(nil, nil, nil)

		input := validInput
		input.StartsAt = time.Now().Add(-time.Hour)
		input.EndsAt = nil

		_, err := svc.CreateEvent(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects an end before the start", func(t *testing.T) {
		svc := service.NewEventService(nil, nil, nil)

		input := validInput
		badEnd := starts.Add(-time.Hour)
		input.EndsAt = &badEnd

		_, err := svc.CreateEvent(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects an event without required skills", func(t *testing.T) {
		svc := service.NewEventService(nil, nil, nil)

		input := validInput
		input.RequiredSkills = nil

		_, err := svc.CreateEvent(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestPublishEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventID := uuid.New()

	t.Run("publishes a draft", func(t *testing.T) {
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)

		event := &model.Event{ID: eventID, Status: model.EventStatusDraft}
		eventRepo.EXPECT().FindByID(gomock.Any(), eventID).Return(event, nil)
		eventRepo.EXPECT().Update(gomock.Any(), event).Return(nil)

		svc := service.NewEventService(eventRepo, nil, nil)

		result, err := svc.PublishEvent(context.Background(), eventID)
		assert.NoError(t, err)
		assert.Equal(t, model.EventStatusPublished, result.Status)
	})

	t.Run("refuses to publish twice", func(t *testing.T) {
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)

		eventRepo.EXPECT().FindByID(gomock.Any(), eventID).
			Return(&model.Event{ID: eventID, Status: model.EventStatusPublished}, nil)

		svc := service.NewEventService(eventRepo, nil, nil)

		_, err := svc.PublishEvent(context.Background(), eventID)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})
}

func TestCancelEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventID := uuid.New()

	t.Run("cancels a published event", func(t *testing.T) {
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)

		event := &model.Event{ID: eventID, Status: model.EventStatusPublished}
		eventRepo.EXPECT().FindByID(gomock.Any(), eventID).Return(event, nil)
		eventRepo.EXPECT().Update(gomock.Any(), event).Return(nil)

		svc := service.NewEventService(eventRepo, nil, nil)

		result, err := svc.CancelEvent(context.Background(), eventID)
		assert.NoError(t, err)
		assert.Equal(t, model.EventStatusCancelled, result.Status)
	})

	t.Run("refuses to cancel twice", func(t *testing.T) {
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)

		eventRepo.EXPECT().FindByID(gomock.Any(), eventID).
			Return(&model.Event{ID: eventID, Status: model.EventStatusCancelled}, nil)

		svc := service.NewEventService(eventRepo, nil, nil)

		_, err := svc.CancelEvent(context.Background(), eventID)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})
}

func TestUpdateEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventID := uuid.New()
	starts := time.Now().Add(48 * time.Hour)

	t.Run("applies partial updates", func(t *testing.T) {
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)

		event := &model.Event{
			ID:       eventID,
			Title:    "Park Cleanup",
			StartsAt: starts,
			Status:   model.EventStatusDraft,
		}
		eventRepo.EXPECT().FindByID(gomock.Any(), eventID).Return(event, nil)
		eventRepo.EXPECT().Update(gomock.Any(), event).Return(nil)

		svc := service.NewEventService(eventRepo, nil, nil)

		newTitle := "Riverside Cleanup"
		capacity := 40
		result, err := svc.UpdateEvent(context.Background(), eventID, service.UpdateEventInput{
			Title:    &newTitle,
			Capacity: &capacity,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Riverside Cleanup", result.Title)
		assert.Equal(t, 40, *result.Capacity)
	})

	t.Run("rejects an end moved before the start", func(t *testing.T) {
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)

		eventRepo.EXPECT().FindByID(gomock.Any(), eventID).
			Return(&model.Event{ID: eventID, StartsAt: starts}, nil)

		svc := service.NewEventService(eventRepo, nil, nil)

		badEnd := starts.Add(-time.Hour)
		_, err := svc.UpdateEvent(context.Background(), eventID, service.UpdateEventInput{
			EndsAt: &badEnd,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestListUpcomingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	eventRepo := mocks.NewMockEventRepositoryIface(ctrl)
	eventRepo.EXPECT().
		FindAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter repository.EventFilter) ([]*model.Event, error) {
			assert.Equal(t, model.EventStatusPublished, filter.Status)
			assert.NotNil(t, filter.StartsFrom)
			return []*model.Event{{Title: "Park Cleanup"}}, nil
		})

	svc := service.NewEventService(eventRepo, nil, nil)

	events, err := svc.ListUpcomingEvents(context.Background())
	assert.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestSearchEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cleanup := &model.Event{
		Title:          "Park Cleanup",
		Status:         model.EventStatusPublished,
		RequiredSkills: model.StringList{"Gardening", "lifting"},
		LocationCity:   "Springfield",
		LocationState:  "IL",
	}
	kitchen := &model.Event{
		Title:          "Soup Kitchen",
		Status:         model.EventStatusPublished,
		RequiredSkills: model.StringList{"cooking"},
		LocationCity:   "Springfield",
		LocationState:  "MO",
	}

	t.Run("matches on any requested skill, case-insensitive", func(t *testing.T) {
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)
		eventRepo.EXPECT().
			FindAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter repository.EventFilter) ([]*model.Event, error) {
				assert.Equal(t, model.EventStatusPublished, filter.Status)
				return []*model.Event{cleanup, kitchen}, nil
			})

		svc := service.NewEventService(eventRepo, nil, nil)

		events, err := svc.SearchEvents(context.Background(), service.SearchEventsInput{
			Skills: []string{"GARDENING", "plumbing"},
		})
		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, "Park Cleanup", events[0].Title)
	})

	t.Run("filters by state", func(t *testing.T) {
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)
		eventRepo.EXPECT().
			FindAll(gomock.Any(), gomock.Any()).
			Return([]*model.Event{cleanup, kitchen}, nil)

		svc := service.NewEventService(eventRepo, nil, nil)

		events, err := svc.SearchEvents(context.Background(), service.SearchEventsInput{State: "mo"})
		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, "Soup Kitchen", events[0].Title)
	})

	t.Run("passes city and status through to the repository", func(t *testing.T) {
		eventRepo := mocks.NewMockEventRepositoryIface(ctrl)
		eventRepo.EXPECT().
			FindAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter repository.EventFilter) ([]*model.Event, error) {
				assert.Equal(t, model.EventStatusDraft, filter.Status)
				assert.Equal(t, "Springfield", filter.City)
				return nil, nil
			})

		svc := service.NewEventService(eventRepo, nil, nil)

		events, err := svc.SearchEvents(context.Background(), service.SearchEventsInput{
			City:   "Springfield",
			Status: model.EventStatusDraft,
		})
		assert.NoError(t, err)
		assert.Empty(t, events)
	})
}
