// internal/repository/event.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventFilter narrows event listings. Zero values mean "no constraint".
type EventFilter struct {
	Status     model.EventStatus
	StartsFrom *time.Time
	StartsTo   *time.Time
	City       string
}

type EventRepositoryIface interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, filter EventFilter) ([]*model.Event, error)
	FindAllPaginated(ctx context.Context, filter EventFilter, offset, limit int) ([]*model.Event, int64, error)
}

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	result := r.db.WithContext(ctx).Create(event)
	if result.Error != nil {
		return fmt.Errorf("failed to create event: %w", result.Error)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var event model.Event
	result := r.db.WithContext(ctx).First(&event, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", result.Error)
	}
	return &event, nil
}

func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	result := r.db.WithContext(ctx).Save(event)
	if result.Error != nil {
		return fmt.Errorf("failed to update event: %w", result.Error)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Event{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	return nil
}

func (r *EventRepository) applyFilter(q *gorm.DB, filter EventFilter) *gorm.DB {
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.StartsFrom != nil {
		q = q.Where("starts_at >= ?", *filter.StartsFrom)
	}
	if filter.StartsTo != nil {
		q = q.Where("starts_at <= ?", *filter.StartsTo)
	}
	if filter.City != "" {
		q = q.Where("location_city ILIKE ?", filter.City)
	}
	return q
}

func (r *EventRepository) FindAll(ctx context.Context, filter EventFilter) ([]*model.Event, error) {
	var events []*model.Event
	q := r.applyFilter(r.db.WithContext(ctx), filter)
	result := q.Order("starts_at asc").Find(&events)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find events: %w", result.Error)
	}
	return events, nil
}

// FindAllPaginated returns a filtered, paginated list of events.
func (r *EventRepository) FindAllPaginated(ctx context.Context, filter EventFilter, offset, limit int) ([]*model.Event, int64, error) {
	var events []*model.Event
	var count int64

	q := r.applyFilter(r.db.WithContext(ctx).Model(&model.Event{}), filter)
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	q = r.applyFilter(r.db.WithContext(ctx), filter)
	result := q.Order("starts_at asc").Offset(offset).Limit(limit).Find(&events)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to find paginated events: %w", result.Error)
	}

	return events, count, nil
}
