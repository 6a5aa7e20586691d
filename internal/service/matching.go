// internal/service/matching.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/civicworks/volunteerhub/internal/config"
	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MatchingService owns opportunities, match requests, confirmed matches,
// and the scoring that connects volunteers to them.
type MatchingService struct {
	oppRepo     repository.OpportunityRepositoryIface
	requestRepo repository.MatchRequestRepositoryIface
	matchRepo   repository.MatchRepositoryIface
	profileRepo repository.ProfileRepositoryIface
	eventRepo   repository.EventRepositoryIface
	notifier    *NotificationService
	config      *config.Config
	validate    *validator.Validate
}

func NewMatchingService(
	oppRepo repository.OpportunityRepositoryIface,
	requestRepo repository.MatchRequestRepositoryIface,
	matchRepo repository.MatchRepositoryIface,
	profileRepo repository.ProfileRepositoryIface,
	eventRepo repository.EventRepositoryIface,
	notifier *NotificationService,
	config *config.Config,
) *MatchingService {
	return &MatchingService{
		oppRepo:     oppRepo,
		requestRepo: requestRepo,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		eventRepo:   eventRepo,
		notifier:    notifier,
		config:      config,
		validate:    validator.New(),
	}
}

// notifyOutcome tells the volunteer their request was resolved. Failures
// are logged only; the decision already happened.
func (s *MatchingService) notifyOutcome(ctx context.Context, req *model.MatchRequest, opp *model.Opportunity, approved bool, reason string) {
	if s.notifier == nil {
		return
	}

	eventTitle := ""
	if event, err := s.eventRepo.FindByID(ctx, opp.EventID); err == nil {
		eventTitle = event.Title
	}

	var err error
	if approved {
		_, err = s.notifier.SendMatchRequestApproved(ctx, req.UserID, eventTitle, opp.Title)
	} else {
		_, err = s.notifier.SendMatchRequestRejected(ctx, req.UserID, eventTitle, opp.Title, reason)
	}
	if err != nil {
		slog.Error("failed to notify match request outcome", "request_id", req.ID, "error", err)
	}
}

type CreateOpportunityInput struct {
	EventID        uuid.UUID `json:"event_id" validate:"required"`
	Title          string    `json:"title" validate:"required,max=100"`
	Description    string    `json:"description" validate:"max=500"`
	RequiredSkills []string  `json:"required_skills"`
	MinHours       *float64  `json:"min_hours" validate:"omitempty,gt=0"`
	MaxSlots       *int      `json:"max_slots" validate:"omitempty,gt=0"`
}

func (s *MatchingService) CreateOpportunity(ctx context.Context, input CreateOpportunityInput) (*model.Opportunity, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if _, err := s.eventRepo.FindByID(ctx, input.EventID); err != nil {
		return nil, err
	}

	opp := &model.Opportunity{
		EventID:        input.EventID,
		Title:          input.Title,
		Description:    input.Description,
		RequiredSkills: model.StringList(input.RequiredSkills),
		MinHours:       input.MinHours,
		MaxSlots:       input.MaxSlots,
	}
	if err := s.oppRepo.Create(ctx, opp); err != nil {
		return nil, err
	}

	slog.Info("created opportunity", "opportunity_id", opp.ID, "event_id", opp.EventID, "title", opp.Title)
	return opp, nil
}

type UpdateOpportunityInput struct {
	Title          *string  `json:"title" validate:"omitempty,max=100"`
	Description    *string  `json:"description" validate:"omitempty,max=500"`
	RequiredSkills []string `json:"required_skills"`
	MinHours       *float64 `json:"min_hours" validate:"omitempty,gt=0"`
	MaxSlots       *int     `json:"max_slots" validate:"omitempty,gt=0"`
}

func (s *MatchingService) UpdateOpportunity(ctx context.Context, id uuid.UUID, input UpdateOpportunityInput) (*model.Opportunity, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	opp, err := s.oppRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
		}
		opp.Title = title
	}
	if input.Description != nil {
		opp.Description = strings.TrimSpace(*input.Description)
	}
	if input.RequiredSkills != nil {
		opp.RequiredSkills = model.StringList(input.RequiredSkills)
	}
	if input.MinHours != nil {
		opp.MinHours = input.MinHours
	}
	if input.MaxSlots != nil {
		opp.MaxSlots = input.MaxSlots
	}

	if err := s.oppRepo.Update(ctx, opp); err != nil {
		return nil, err
	}
	return opp, nil
}

func (s *MatchingService) GetOpportunity(ctx context.Context, id uuid.UUID) (*model.Opportunity, error) {
	return s.oppRepo.FindByID(ctx, id)
}

func (s *MatchingService) ListOpportunities(ctx context.Context) ([]*model.Opportunity, error) {
	return s.oppRepo.FindAll(ctx)
}

func (s *MatchingService) ListOpportunitiesByEvent(ctx context.Context, eventID uuid.UUID) ([]*model.Opportunity, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.oppRepo.FindByEvent(ctx, eventID)
}

func (s *MatchingService) DeleteOpportunity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.oppRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.oppRepo.Delete(ctx, id)
}

// CreateMatchRequest records a volunteer's application. A user may hold
// at most one active request per opportunity.
func (s *MatchingService) CreateMatchRequest(ctx context.Context, userID, opportunityID uuid.UUID) (*model.MatchRequest, error) {
	opp, err := s.oppRepo.FindByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}

	existing, err := s.requestRepo.FindActiveByUserAndOpportunity(ctx, userID, opportunityID)
	if err != nil && !errors.Is(err, domain.ErrMatchRequestNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateMatchRequest
	}

	req := &model.MatchRequest{
		UserID:        userID,
		OpportunityID: opportunityID,
		Status:        model.MatchStatusPending,
		RequestedAt:   time.Now(),
	}

	// Attach the fit score when the volunteer has a profile to score.
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err == nil {
		score := CalculateMatchScore(profile, opp)
		req.Score = &score.Total
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	slog.Info("created match request", "request_id", req.ID, "user_id", userID, "opportunity_id", opportunityID)
	return req, nil
}

func (s *MatchingService) GetMatchRequest(ctx context.Context, id uuid.UUID) (*model.MatchRequest, error) {
	return s.requestRepo.FindByID(ctx, id)
}

func (s *MatchingService) ListMatchRequestsByUser(ctx context.Context, userID uuid.UUID) ([]*model.MatchRequest, error) {
	return s.requestRepo.FindByUser(ctx, userID)
}

func (s *MatchingService) ListMatchRequestsByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]*model.MatchRequest, error) {
	if _, err := s.oppRepo.FindByID(ctx, opportunityID); err != nil {
		return nil, err
	}
	return s.requestRepo.FindByOpportunity(ctx, opportunityID)
}

// ApproveMatchRequest flips a pending request to approved and creates the
// confirmed match, refusing when the opportunity is already full. Both
// writes happen inside one transaction.
func (s *MatchingService) ApproveMatchRequest(ctx context.Context, requestID uuid.UUID) (*model.Match, error) {
	req, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != model.MatchStatusPending {
		return nil, domain.ErrMatchRequestNotPending
	}

	opp, err := s.oppRepo.FindByID(ctx, req.OpportunityID)
	if err != nil {
		return nil, err
	}

	if opp.MaxSlots != nil {
		approved, err := s.matchRepo.CountApprovedByOpportunity(ctx, req.OpportunityID)
		if err != nil {
			return nil, err
		}
		if approved >= int64(*opp.MaxSlots) {
			return nil, domain.ErrOpportunityAtCapacity
		}
	}

	req.Status = model.MatchStatusApproved
	match := &model.Match{
		UserID:        req.UserID,
		OpportunityID: req.OpportunityID,
		Status:        model.MatchStatusApproved,
		Score:         req.Score,
	}
	if err := s.requestRepo.ApproveWithMatch(ctx, req, match); err != nil {
		return nil, err
	}

	slog.Info("approved match request", "request_id", requestID, "match_id", match.ID)
	s.notifyOutcome(ctx, req, opp, true, "")
	return match, nil
}

// RejectMatchRequest declines a pending request. The optional reason is
// passed along to the volunteer's rejection notification.
func (s *MatchingService) RejectMatchRequest(ctx context.Context, requestID uuid.UUID, reason string) (*model.MatchRequest, error) {
	req, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != model.MatchStatusPending {
		return nil, domain.ErrMatchRequestNotPending
	}

	req.Status = model.MatchStatusRejected
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	slog.Info("rejected match request", "request_id", requestID)
	if opp, err := s.oppRepo.FindByID(ctx, req.OpportunityID); err == nil {
		s.notifyOutcome(ctx, req, opp, false, reason)
	}
	return req, nil
}

func (s *MatchingService) ListMatchesByUser(ctx context.Context, userID uuid.UUID) ([]*model.Match, error) {
	return s.matchRepo.FindByUser(ctx, userID)
}

func (s *MatchingService) ListMatchesByOpportunity(ctx context.Context, opportunityID uuid.UUID) ([]*model.Match, error) {
	if _, err := s.oppRepo.FindByID(ctx, opportunityID); err != nil {
		return nil, err
	}
	return s.matchRepo.FindByOpportunity(ctx, opportunityID)
}

// CancelMatch removes a confirmed match and pushes its originating
// approved request back to rejected so the pair can be re-matched later.
func (s *MatchingService) CancelMatch(ctx context.Context, matchID uuid.UUID) error {
	match, err := s.matchRepo.FindByID(ctx, matchID)
	if err != nil {
		return err
	}

	req, err := s.requestRepo.FindActiveByUserAndOpportunity(ctx, match.UserID, match.OpportunityID)
	if err != nil && !errors.Is(err, domain.ErrMatchRequestNotFound) {
		return err
	}
	if req != nil && req.Status == model.MatchStatusApproved {
		req.Status = model.MatchStatusRejected
	} else {
		req = nil
	}

	if err := s.matchRepo.DeleteWithRequestReject(ctx, matchID, req); err != nil {
		return err
	}

	slog.Info("cancelled match", "match_id", matchID)
	return nil
}

// VolunteerMatch pairs a candidate profile with its score for an
// opportunity.
type VolunteerMatch struct {
	Profile *model.Profile `json:"profile"`
	Score   MatchScore     `json:"score"`
}

// OpportunityMatch pairs a candidate opportunity with its score for a
// volunteer.
type OpportunityMatch struct {
	Opportunity *model.Opportunity `json:"opportunity"`
	Score       MatchScore         `json:"score"`
}

// FindMatchingVolunteers ranks profiles against an opportunity. Users
// who already hold an active request for it are skipped, and results
// below minScore are dropped.
func (s *MatchingService) FindMatchingVolunteers(ctx context.Context, opportunityID uuid.UUID, minScore float64) ([]VolunteerMatch, error) {
	opp, err := s.oppRepo.FindByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var results []VolunteerMatch
	for _, profile := range profiles {
		existing, err := s.requestRepo.FindActiveByUserAndOpportunity(ctx, profile.UserID, opportunityID)
		if err != nil && !errors.Is(err, domain.ErrMatchRequestNotFound) {
			return nil, err
		}
		if existing != nil {
			continue
		}

		score := CalculateMatchScore(profile, opp)
		if score.Total >= minScore {
			results = append(results, VolunteerMatch{Profile: profile, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score.Total > results[j].Score.Total
	})
	return results, nil
}

// FindMatchingOpportunities ranks all opportunities for a volunteer,
// skipping those they already hold an active request for.
func (s *MatchingService) FindMatchingOpportunities(ctx context.Context, userID uuid.UUID, minScore float64) ([]OpportunityMatch, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	opps, err := s.oppRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.requestRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	taken := make(map[uuid.UUID]struct{}, len(active))
	for _, req := range active {
		taken[req.OpportunityID] = struct{}{}
	}

	var results []OpportunityMatch
	for _, opp := range opps {
		if _, ok := taken[opp.ID]; ok {
			continue
		}

		score := CalculateMatchScore(profile, opp)
		if score.Total >= minScore {
			results = append(results, OpportunityMatch{Opportunity: opp, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score.Total > results[j].Score.Total
	})
	return results, nil
}

// MinScoreOrDefault falls back to the configured threshold when the
// caller did not supply one.
func (s *MatchingService) MinScoreOrDefault(minScore *float64) float64 {
	if minScore != nil {
		return *minScore
	}
	return s.config.Matching.MinScore
}

// ExpireOldRequests sweeps pending requests older than the configured
// window and returns how many were expired.
func (s *MatchingService) ExpireOldRequests(ctx context.Context, daysOld int) (int64, error) {
	if daysOld <= 0 {
		daysOld = s.config.Matching.RequestExpiryDays
	}
	cutoff := time.Now().AddDate(0, 0, -daysOld)

	count, err := s.requestRepo.ExpireOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	slog.Info("expired old match requests", "count", count, "cutoff", cutoff)
	return count, nil
}
