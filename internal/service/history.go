// internal/service/history.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	maxRoleLen  = 100
	maxNotesLen = 1000
	maxHours    = 24.0
)

// HistoryService tracks completed volunteer work and the aggregate
// statistics built over it.
type HistoryService struct {
	repo     repository.HistoryRepositoryIface
	userRepo repository.UserRepositoryIface
	validate *validator.Validate
}

func NewHistoryService(repo repository.HistoryRepositoryIface, userRepo repository.UserRepositoryIface) *HistoryService {
	return &HistoryService{
		repo:     repo,
		userRepo: userRepo,
		validate: validator.New(),
	}
}

type CreateHistoryEntryInput struct {
	UserID  uuid.UUID `json:"user_id" validate:"required"`
	EventID uuid.UUID `json:"event_id" validate:"required"`
	Role    string    `json:"role" validate:"required,max=100"`
	Hours   float64   `json:"hours" validate:"required,gt=0,lte=24"`
	Date    time.Time `json:"date" validate:"required"`
	Notes   string    `json:"notes" validate:"max=1000"`
}

// CreateEntry logs hours for a user and event. At most one entry is
// allowed per user, event, and calendar date.
func (s *HistoryService) CreateEntry(ctx context.Context, input CreateHistoryEntryInput) (*model.VolunteerHistoryEntry, error) {
	input.Role = strings.TrimSpace(input.Role)
	input.Notes = strings.TrimSpace(input.Notes)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	if input.Date.After(time.Now()) {
		return nil, fmt.Errorf("%w: date cannot be in the future", domain.ErrInvalidInput)
	}

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsForUserEventDate(ctx, input.UserID, input.EventID, input.Date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateHistoryEntry
	}

	entry := &model.VolunteerHistoryEntry{
		UserID:  input.UserID,
		EventID: input.EventID,
		Role:    input.Role,
		Hours:   input.Hours,
		Date:    input.Date,
		Notes:   input.Notes,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	slog.Info("created history entry", "entry_id", entry.ID, "user_id", entry.UserID, "hours", entry.Hours)
	return entry, nil
}

type UpdateHistoryEntryInput struct {
	Role  *string    `json:"role"`
	Hours *float64   `json:"hours"`
	Date  *time.Time `json:"date"`
	Notes *string    `json:"notes"`
}

func (s *HistoryService) UpdateEntry(ctx context.Context, id uuid.UUID, input UpdateHistoryEntryInput) (*model.VolunteerHistoryEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		role := strings.TrimSpace(*input.Role)
		if role == "" {
			return nil, fmt.Errorf("%w: role cannot be empty", domain.ErrInvalidInput)
		}
		if len(role) > maxRoleLen {
			return nil, fmt.Errorf("%w: role must be %d characters or less", domain.ErrInvalidInput, maxRoleLen)
		}
		entry.Role = role
	}
	if input.Hours != nil {
		if *input.Hours <= 0 {
			return nil, fmt.Errorf("%w: hours must be greater than 0", domain.ErrInvalidInput)
		}
		if *input.Hours > maxHours {
			return nil, fmt.Errorf("%w: hours cannot exceed %g for a single entry", domain.ErrInvalidInput, maxHours)
		}
		entry.Hours = *input.Hours
	}
	if input.Date != nil {
		if input.Date.After(time.Now()) {
			return nil, fmt.Errorf("%w: date cannot be in the future", domain.ErrInvalidInput)
		}
		entry.Date = *input.Date
	}
	if input.Notes != nil {
		notes := strings.TrimSpace(*input.Notes)
		if len(notes) > maxNotesLen {
			return nil, fmt.Errorf("%w: notes must be %d characters or less", domain.ErrInvalidInput, maxNotesLen)
		}
		entry.Notes = notes
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *HistoryService) GetEntry(ctx context.Context, id uuid.UUID) (*model.VolunteerHistoryEntry, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *HistoryService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *HistoryService) UserHistory(ctx context.Context, userID uuid.UUID) ([]*model.VolunteerHistoryEntry, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *HistoryService) EventHistory(ctx context.Context, eventID uuid.UUID) ([]*model.VolunteerHistoryEntry, error) {
	return s.repo.FindByEvent(ctx, eventID)
}

// RecentHistory returns entries from the trailing window of days.
func (s *HistoryService) RecentHistory(ctx context.Context, days int) ([]*model.VolunteerHistoryEntry, error) {
	if days <= 0 {
		days = 30
	}
	now := time.Now()
	from := now.AddDate(0, 0, -days)

	entries := []*model.VolunteerHistoryEntry{}
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range all {
		if !entry.Date.Before(from) && !entry.Date.After(now) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (s *HistoryService) TotalHours(ctx context.Context, userID uuid.UUID) (float64, error) {
	entries, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, entry := range entries {
		total += entry.Hours
	}
	return total, nil
}

func (s *HistoryService) HoursInPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) (float64, error) {
	if !from.Before(to) {
		return 0, fmt.Errorf("%w: start date must be before end date", domain.ErrInvalidInput)
	}

	entries, err := s.repo.FindByUserInPeriod(ctx, userID, from, to)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, entry := range entries {
		total += entry.Hours
	}
	return total, nil
}

// EventCount counts the distinct events a user has worked.
func (s *HistoryService) EventCount(ctx context.Context, userID uuid.UUID) (int, error) {
	entries, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	events := make(map[uuid.UUID]struct{})
	for _, entry := range entries {
		events[entry.EventID] = struct{}{}
	}
	return len(events), nil
}

// Roles returns the distinct roles a user has filled, sorted.
func (s *HistoryService) Roles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	entries, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	roles := []string{}
	for _, entry := range entries {
		if _, ok := seen[entry.Role]; !ok {
			seen[entry.Role] = struct{}{}
			roles = append(roles, entry.Role)
		}
	}
	sort.Strings(roles)
	return roles, nil
}

// VolunteerStatistics is the aggregate view of one user's service.
type VolunteerStatistics struct {
	TotalHours           float64    `json:"total_hours"`
	TotalEvents          int        `json:"total_events"`
	UniqueRoles          int        `json:"unique_roles"`
	FirstVolunteerDate   *time.Time `json:"first_volunteer_date"`
	LastVolunteerDate    *time.Time `json:"last_volunteer_date"`
	AverageHoursPerEvent float64    `json:"average_hours_per_event"`
	MostCommonRole       string     `json:"most_common_role,omitempty"`
}

func (s *HistoryService) Statistics(ctx context.Context, userID uuid.UUID) (*VolunteerStatistics, error) {
	entries, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return &VolunteerStatistics{}, nil
	}

	stats := &VolunteerStatistics{}
	events := make(map[uuid.UUID]struct{})
	roleCounts := make(map[string]int)
	first, last := entries[0].Date, entries[0].Date

	for _, entry := range entries {
		stats.TotalHours += entry.Hours
		events[entry.EventID] = struct{}{}
		roleCounts[entry.Role]++
		if entry.Date.Before(first) {
			first = entry.Date
		}
		if entry.Date.After(last) {
			last = entry.Date
		}
	}

	stats.TotalEvents = len(events)
	stats.UniqueRoles = len(roleCounts)
	stats.FirstVolunteerDate = &first
	stats.LastVolunteerDate = &last
	stats.AverageHoursPerEvent = stats.TotalHours / float64(len(events))

	best := 0
	for role, count := range roleCounts {
		if count > best || (count == best && role < stats.MostCommonRole) {
			best = count
			stats.MostCommonRole = role
		}
	}

	return stats, nil
}

// MonthlyHours buckets a year's hours by month, 1 through 12.
func (s *HistoryService) MonthlyHours(ctx context.Context, userID uuid.UUID, year int) (map[int]float64, error) {
	entries, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	monthly := make(map[int]float64, 12)
	for month := 1; month <= 12; month++ {
		monthly[month] = 0
	}
	for _, entry := range entries {
		if entry.Date.Year() == year {
			monthly[int(entry.Date.Month())] += entry.Hours
		}
	}
	return monthly, nil
}

// VolunteerRanking is one row of a leaderboard.
type VolunteerRanking struct {
	UserID uuid.UUID `json:"user_id"`
	Hours  float64   `json:"hours,omitempty"`
	Events int       `json:"events,omitempty"`
}

// TopVolunteersByHours ranks users by total logged hours.
func (s *HistoryService) TopVolunteersByHours(ctx context.Context, limit int) ([]VolunteerRanking, error) {
	if limit <= 0 {
		limit = 10
	}

	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]float64)
	for _, entry := range entries {
		totals[entry.UserID] += entry.Hours
	}

	rankings := make([]VolunteerRanking, 0, len(totals))
	for userID, hours := range totals {
		rankings = append(rankings, VolunteerRanking{UserID: userID, Hours: hours})
	}
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Hours != rankings[j].Hours {
			return rankings[i].Hours > rankings[j].Hours
		}
		return rankings[i].UserID.String() < rankings[j].UserID.String()
	})

	if len(rankings) > limit {
		rankings = rankings[:limit]
	}
	return rankings, nil
}

// TopVolunteersByEvents ranks users by distinct events worked.
func (s *HistoryService) TopVolunteersByEvents(ctx context.Context, limit int) ([]VolunteerRanking, error) {
	if limit <= 0 {
		limit = 10
	}

	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	events := make(map[uuid.UUID]map[uuid.UUID]struct{})
	for _, entry := range entries {
		if events[entry.UserID] == nil {
			events[entry.UserID] = make(map[uuid.UUID]struct{})
		}
		events[entry.UserID][entry.EventID] = struct{}{}
	}

	rankings := make([]VolunteerRanking, 0, len(events))
	for userID, set := range events {
		rankings = append(rankings, VolunteerRanking{UserID: userID, Events: len(set)})
	}
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Events != rankings[j].Events {
			return rankings[i].Events > rankings[j].Events
		}
		return rankings[i].UserID.String() < rankings[j].UserID.String()
	})

	if len(rankings) > limit {
		rankings = rankings[:limit]
	}
	return rankings, nil
}
