// internal/service/event.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type EventService struct {
	repo     repository.EventRepositoryIface
	oppRepo  repository.OpportunityRepositoryIface
	notifier *NotificationService
	validate *validator.Validate
}

func NewEventService(
	repo repository.EventRepositoryIface,
	oppRepo repository.OpportunityRepositoryIface,
	notifier *NotificationService,
) *EventService {
	return &EventService{
		repo:     repo,
		oppRepo:  oppRepo,
		notifier: notifier,
		validate: validator.New(),
	}
}

type LocationInput struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

type CreateEventInput struct {
	Title          string        `json:"title" validate:"required,max=100"`
	Description    string        `json:"description" validate:"required,max=500"`
	Location       LocationInput `json:"location"`
	StartsAt       time.Time     `json:"starts_at" validate:"required"`
	EndsAt         *time.Time    `json:"ends_at"`
	Capacity       *int          `json:"capacity" validate:"omitempty,gt=0"`
	RequiredSkills []string      `json:"required_skills" validate:"required,min=1"`
}

func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*model.Event, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	if input.Location.Name == "" {
		return nil, fmt.Errorf("%w: event location is required", domain.ErrInvalidInput)
	}
	if !input.StartsAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: event start time must be in the future", domain.ErrInvalidInput)
	}
	if input.EndsAt != nil && !input.EndsAt.After(input.StartsAt) {
		return nil, fmt.Errorf("%w: event end time must be after start time", domain.ErrInvalidInput)
	}

	event := &model.Event{
		Title:              input.Title,
		Description:        input.Description,
		StartsAt:           input.StartsAt,
		EndsAt:             input.EndsAt,
		Capacity:           input.Capacity,
		Status:             model.EventStatusDraft,
		RequiredSkills:     model.StringList(input.RequiredSkills),
		LocationName:       input.Location.Name,
		LocationAddress:    input.Location.Address,
		LocationCity:       input.Location.City,
		LocationState:      input.Location.State,
		LocationPostalCode: input.Location.PostalCode,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	slog.Info("created event", "event_id", event.ID, "title", event.Title)
	return event, nil
}

type UpdateEventInput struct {
	Title          *string        `json:"title" validate:"omitempty,max=100"`
	Description    *string        `json:"description" validate:"omitempty,max=500"`
	Location       *LocationInput `json:"location"`
	StartsAt       *time.Time     `json:"starts_at"`
	EndsAt         *time.Time     `json:"ends_at"`
	Capacity       *int           `json:"capacity" validate:"omitempty,gt=0"`
	RequiredSkills []string       `json:"required_skills" validate:"omitempty,min=1"`
}

func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*model.Event, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
		}
		event.Title = title
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if desc == "" {
			return nil, fmt.Errorf("%w: description must not be empty", domain.ErrInvalidInput)
		}
		event.Description = desc
	}
	if input.Location != nil {
		event.LocationName = input.Location.Name
		event.LocationAddress = input.Location.Address
		event.LocationCity = input.Location.City
		event.LocationState = input.Location.State
		event.LocationPostalCode = input.Location.PostalCode
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		event.EndsAt = input.EndsAt
	}
	if event.EndsAt != nil && !event.EndsAt.After(event.StartsAt) {
		return nil, fmt.Errorf("%w: event end time must be after start time", domain.ErrInvalidInput)
	}
	if input.Capacity != nil {
		event.Capacity = input.Capacity
	}
	if input.RequiredSkills != nil {
		event.RequiredSkills = model.StringList(input.RequiredSkills)
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context, filter repository.EventFilter) ([]*model.Event, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *EventService) ListEventsPaginated(ctx context.Context, filter repository.EventFilter, offset, limit int) ([]*model.Event, int64, error) {
	return s.repo.FindAllPaginated(ctx, filter, offset, limit)
}

// ListUpcomingEvents returns published events that have not started yet.
func (s *EventService) ListUpcomingEvents(ctx context.Context) ([]*model.Event, error) {
	now := time.Now()
	return s.repo.FindAll(ctx, repository.EventFilter{
		Status:     model.EventStatusPublished,
		StartsFrom: &now,
	})
}

type SearchEventsInput struct {
	Skills []string          `json:"skills"`
	City   string            `json:"city"`
	State  string            `json:"state"`
	Status model.EventStatus `json:"status"`
}

// SearchEvents finds events by skill and location predicates. Unset
// fields do not constrain; status defaults to published. An event
// matches the skill predicate when any requested skill appears in its
// required set (case-insensitive).
func (s *EventService) SearchEvents(ctx context.Context, input SearchEventsInput) ([]*model.Event, error) {
	status := input.Status
	if status == "" {
		status = model.EventStatusPublished
	}

	events, err := s.repo.FindAll(ctx, repository.EventFilter{
		Status: status,
		City:   input.City,
	})
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(input.Skills))
	for _, skill := range input.Skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill != "" {
			wanted[skill] = struct{}{}
		}
	}

	matched := events[:0]
	for _, event := range events {
		if input.State != "" && !strings.EqualFold(event.LocationState, input.State) {
			continue
		}
		if len(wanted) > 0 {
			found := false
			for _, skill := range event.RequiredSkills {
				if _, ok := wanted[strings.ToLower(skill)]; ok {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		matched = append(matched, event)
	}
	return matched, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// PublishEvent makes a draft event visible to volunteers.
func (s *EventService) PublishEvent(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != model.EventStatusDraft {
		return nil, domain.ErrInvalidStateTransition
	}

	event.Status = model.EventStatusPublished
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	slog.Info("published event", "event_id", id)
	return event, nil
}

// CancelEvent cancels a draft or published event and notifies every
// volunteer matched to one of its opportunities. Notification failures
// are logged but do not undo the cancellation.
func (s *EventService) CancelEvent(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status == model.EventStatusCancelled {
		return nil, domain.ErrInvalidStateTransition
	}

	event.Status = model.EventStatusCancelled
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	slog.Info("cancelled event", "event_id", id)

	if s.notifier != nil {
		opps, err := s.oppRepo.FindByEvent(ctx, id)
		if err != nil {
			slog.Error("failed to load opportunities for cancellation notices", "event_id", id, "error", err)
			return event, nil
		}
		for _, opp := range opps {
			if err := s.notifier.NotifyOpportunityVolunteers(ctx, opp.ID, event); err != nil {
				slog.Error("failed to notify volunteers of cancellation", "opportunity_id", opp.ID, "error", err)
			}
		}
	}

	return event, nil
}
