// internal/repository/history.go
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

type HistoryRepositoryIface interface {
	Create(ctx context.Context, entry *model.VolunteerHistoryEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VolunteerHistoryEntry, error)
	Update(ctx context.Context, entry *model.VolunteerHistoryEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.VolunteerHistoryEntry, error)
	FindByUserInPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*model.VolunteerHistoryEntry, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.VolunteerHistoryEntry, error)
	FindAll(ctx context.Context) ([]*model.VolunteerHistoryEntry, error)
	ExistsForUserEventDate(ctx context.Context, userID, eventID uuid.UUID, date time.Time) (bool, error)
}

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, entry *model.VolunteerHistoryEntry) error {
	result := r.db.WithContext(ctx).Create(entry)
	if result.Error != nil {
		return fmt.Errorf("failed to create history entry: %w", result.Error)
	}
	return nil
}

func (r *HistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.VolunteerHistoryEntry, error) {
	var entry model.VolunteerHistoryEntry
	result := r.db.WithContext(ctx).First(&entry, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrHistoryEntryNotFound
		}
		return nil, fmt.Errorf("failed to find history entry: %w", result.Error)
	}
	return &entry, nil
}

func (r *HistoryRepository) Update(ctx context.Context, entry *model.VolunteerHistoryEntry) error {
	result := r.db.WithContext(ctx).Save(entry)
	if result.Error != nil {
		return fmt.Errorf("failed to update history entry: %w", result.Error)
	}
	return nil
}

func (r *HistoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.VolunteerHistoryEntry{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete history entry: %w", result.Error)
	}
	return nil
}

func (r *HistoryRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.VolunteerHistoryEntry, error) {
	var entries []*model.VolunteerHistoryEntry
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date desc").Find(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find history entries: %w", result.Error)
	}
	return entries, nil
}

func (r *HistoryRepository) FindByUserInPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*model.VolunteerHistoryEntry, error) {
	var entries []*model.VolunteerHistoryEntry
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date desc").
		Find(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find history entries: %w", result.Error)
	}
	return entries, nil
}

func (r *HistoryRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.VolunteerHistoryEntry, error) {
	var entries []*model.VolunteerHistoryEntry
	result := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("date desc").Find(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find history entries: %w", result.Error)
	}
	return entries, nil
}

func (r *HistoryRepository) FindAll(ctx context.Context) ([]*model.VolunteerHistoryEntry, error) {
	var entries []*model.VolunteerHistoryEntry
	result := r.db.WithContext(ctx).Order("date desc").Find(&entries)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find all history entries: %w", result.Error)
	}
	return entries, nil
}

// ExistsForUserEventDate reports whether the user already logged hours
// for the event on the given calendar date.
func (r *HistoryRepository) ExistsForUserEventDate(ctx context.Context, userID, eventID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	day := date.Truncate(24 * time.Hour)
	result := r.db.WithContext(ctx).
		Model(&model.VolunteerHistoryEntry{}).
		Where("user_id = ? AND event_id = ? AND date >= ? AND date < ?", userID, eventID, day, day.Add(24*time.Hour)).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check history entry: %w", result.Error)
	}
	return count > 0, nil
}
