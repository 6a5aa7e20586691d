// internal/repository/match.go
package repository

import (
	"context"
	"fmt"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MatchRepositoryIface interface {
	Create(ctx context.Context, match *model.Match) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Match, error)
	Update(ctx context.Context, match *model.Match) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteWithRequestReject(ctx context.Context, id uuid.UUID, req *model.MatchRequest) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Match, error)
	FindByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]*model.Match, error)
	CountApprovedByOpportunity(ctx context.Context, opportunityID uuid.UUID) (int64, error)
}

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, match *model.Match) error {
	result := r.db.WithContext(ctx).Create(match)
	if result.Error != nil {
		return fmt.Errorf("failed to create match: %w", result.Error)
	}
	return nil
}

func (r *MatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Match, error) {
	var match model.Match
	result := r.db.WithContext(ctx).First(&match, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to find match: %w", result.Error)
	}
	return &match, nil
}

func (r *MatchRepository) Update(ctx context.Context, match *model.Match) error {
	result := r.db.WithContext(ctx).Save(match)
	if result.Error != nil {
		return fmt.Errorf("failed to update match: %w", result.Error)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Match{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete match: %w", result.Error)
	}
	return nil
}

// DeleteWithRequestReject removes a match and, when req is non-nil,
// saves the rejected request in the same transaction so a cancelled
// match never leaves its request approved.
func (r *MatchRepository) DeleteWithRequestReject(ctx context.Context, id uuid.UUID, req *model.MatchRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Match{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete match: %w", err)
		}
		if req != nil {
			if err := tx.Save(req).Error; err != nil {
				return fmt.Errorf("failed to update match request: %w", err)
			}
		}
		return nil
	})
}

func (r *MatchRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Match, error) {
	var matches []*model.Match
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&matches)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find matches: %w", result.Error)
	}
	return matches, nil
}

func (r *MatchRepository) FindByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]*model.Match, error) {
	var matches []*model.Match
	result := r.db.WithContext(ctx).Where("opportunity_id = ?", opportunityID).Order("created_at desc").Find(&matches)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find matches: %w", result.Error)
	}
	return matches, nil
}

// CountApprovedByOpportunity counts confirmed assignments. Capacity
// checks compare this against the opportunity's max slots.
func (r *MatchRepository) CountApprovedByOpportunity(ctx context.Context, opportunityID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.Match{}).
		Where("opportunity_id = ? AND status = ?", opportunityID, model.MatchStatusApproved).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count matches: %w", result.Error)
	}
	return count, nil
}
