// internal/repository/match_request.go
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

type MatchRequestRepositoryIface interface {
	Create(ctx context.Context, req *model.MatchRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MatchRequest, error)
	Update(ctx context.Context, req *model.MatchRequest) error
	ApproveWithMatch(ctx context.Context, req *model.MatchRequest, match *model.Match) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.MatchRequest, error)
	FindByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]*model.MatchRequest, error)
	FindActiveByUserAndOpportunity(ctx context.Context, userID, opportunityID uuid.UUID) (*model.MatchRequest, error)
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*model.MatchRequest, error)
	ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type MatchRequestRepository struct {
	db *gorm.DB
}

func NewMatchRequestRepository(db *gorm.DB) *MatchRequestRepository {
	return &MatchRequestRepository{db: db}
}

func (r *MatchRequestRepository) Create(ctx context.Context, req *model.MatchRequest) error {
	result := r.db.WithContext(ctx).Create(req)
	if result.Error != nil {
		return fmt.Errorf("failed to create match request: %w", result.Error)
	}
	return nil
}

func (r *MatchRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MatchRequest, error) {
	var req model.MatchRequest
	result := r.db.WithContext(ctx).First(&req, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrMatchRequestNotFound
		}
		return nil, fmt.Errorf("failed to find match request: %w", result.Error)
	}
	return &req, nil
}

func (r *MatchRequestRepository) Update(ctx context.Context, req *model.MatchRequest) error {
	result := r.db.WithContext(ctx).Save(req)
	if result.Error != nil {
		return fmt.Errorf("failed to update match request: %w", result.Error)
	}
	return nil
}

// ApproveWithMatch persists the approved request and its match in one
// transaction so a failed match insert cannot leave the request
// approved on its own.
func (r *MatchRequestRepository) ApproveWithMatch(ctx context.Context, req *model.MatchRequest, match *model.Match) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(req).Error; err != nil {
			return fmt.Errorf("failed to update match request: %w", err)
		}
		if err := tx.Create(match).Error; err != nil {
			return fmt.Errorf("failed to create match: %w", err)
		}
		return nil
	})
}

func (r *MatchRequestRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.MatchRequest, error) {
	var reqs []*model.MatchRequest
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("requested_at desc").Find(&reqs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find match requests: %w", result.Error)
	}
	return reqs, nil
}

func (r *MatchRequestRepository) FindByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]*model.MatchRequest, error) {
	var reqs []*model.MatchRequest
	result := r.db.WithContext(ctx).Where("opportunity_id = ?", opportunityID).Order("requested_at desc").Find(&reqs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find match requests: %w", result.Error)
	}
	return reqs, nil
}

// FindActiveByUserAndOpportunity returns the pending or approved request
// for the pair, if one exists.
func (r *MatchRequestRepository) FindActiveByUserAndOpportunity(ctx context.Context, userID, opportunityID uuid.UUID) (*model.MatchRequest, error) {
	var req model.MatchRequest
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND opportunity_id = ? AND status IN ?", userID, opportunityID,
			[]model.MatchStatus{model.MatchStatusPending, model.MatchStatusApproved}).
		First(&req)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrMatchRequestNotFound
		}
		return nil, fmt.Errorf("failed to find active match request: %w", result.Error)
	}
	return &req, nil
}

func (r *MatchRequestRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*model.MatchRequest, error) {
	var reqs []*model.MatchRequest
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID,
			[]model.MatchStatus{model.MatchStatusPending, model.MatchStatusApproved}).
		Find(&reqs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find active match requests: %w", result.Error)
	}
	return reqs, nil
}

// ExpireOlderThan marks pending requests older than the cutoff as expired
// and returns how many rows were touched.
func (r *MatchRequestRepository) ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.MatchRequest{}).
		Where("status = ? AND requested_at < ?", model.MatchStatusPending, cutoff).
		Updates(map[string]interface{}{"status": model.MatchStatusExpired, "updated_at": time.Now()})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire match requests: %w", result.Error)
	}
	return result.RowsAffected, nil
}
