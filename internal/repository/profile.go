// internal/repository/profile.go
package repository

import (
	"context"
	"fmt"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepositoryIface interface {
	Create(ctx context.Context, profile *model.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
	Delete(ctx context.Context, userID uuid.UUID) error
	FindAll(ctx context.Context) ([]*model.Profile, error)
	ReplaceAvailability(ctx context.Context, userID uuid.UUID, windows []model.AvailabilityWindow) error
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	result := r.db.WithContext(ctx).Create(profile)
	if result.Error != nil {
		return fmt.Errorf("failed to create profile: %w", result.Error)
	}
	return nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	result := r.db.WithContext(ctx).Preload("Availability").First(&profile, "user_id = ?", userID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", result.Error)
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	result := r.db.WithContext(ctx).Omit("Availability").Save(profile)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.AvailabilityWindow{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	result := r.db.WithContext(ctx).Delete(&model.Profile{}, "user_id = ?", userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", result.Error)
	}
	return nil
}

// FindAll returns all profiles with availability preloaded. The matching
// engine walks this set when scoring candidates.
func (r *ProfileRepository) FindAll(ctx context.Context) ([]*model.Profile, error) {
	var profiles []*model.Profile
	result := r.db.WithContext(ctx).Preload("Availability").Find(&profiles)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find all profiles: %w", result.Error)
	}
	return profiles, nil
}

// ReplaceAvailability swaps a user's availability windows in one shot.
func (r *ProfileRepository) ReplaceAvailability(ctx context.Context, userID uuid.UUID, windows []model.AvailabilityWindow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AvailabilityWindow{}, "user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to clear availability: %w", err)
		}
		for i := range windows {
			windows[i].UserID = userID
		}
		if len(windows) > 0 {
			if err := tx.Create(&windows).Error; err != nil {
				return fmt.Errorf("failed to save availability: %w", err)
			}
		}
		return nil
	})
}
