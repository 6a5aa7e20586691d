// internal/repository/opportunity.go
package repository

import (
	"context"
	"fmt"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OpportunityRepositoryIface interface {
	Create(ctx context.Context, opp *model.Opportunity) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Opportunity, error)
	Update(ctx context.Context, opp *model.Opportunity) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.Opportunity, error)
	FindAll(ctx context.Context) ([]*model.Opportunity, error)
}

type OpportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) Create(ctx context.Context, opp *model.Opportunity) error {
	result := r.db.WithContext(ctx).Create(opp)
	if result.Error != nil {
		return fmt.Errorf("failed to create opportunity: %w", result.Error)
	}
	return nil
}

func (r *OpportunityRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Opportunity, error) {
	var opp model.Opportunity
	result := r.db.WithContext(ctx).First(&opp, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to find opportunity: %w", result.Error)
	}
	return &opp, nil
}

func (r *OpportunityRepository) Update(ctx context.Context, opp *model.Opportunity) error {
	result := r.db.WithContext(ctx).Save(opp)
	if result.Error != nil {
		return fmt.Errorf("failed to update opportunity: %w", result.Error)
	}
	return nil
}

func (r *OpportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Opportunity{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete opportunity: %w", result.Error)
	}
	return nil
}

func (r *OpportunityRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.Opportunity, error) {
	var opps []*model.Opportunity
	result := r.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&opps)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find opportunities: %w", result.Error)
	}
	return opps, nil
}

func (r *OpportunityRepository) FindAll(ctx context.Context) ([]*model.Opportunity, error) {
	var opps []*model.Opportunity
	result := r.db.WithContext(ctx).Find(&opps)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find all opportunities: %w", result.Error)
	}
	return opps, nil
}
