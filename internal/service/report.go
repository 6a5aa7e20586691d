// internal/service/report.go
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/civicworks/volunteerhub/internal/repository"
)

// utf8BOM keeps Excel happy when it opens the exports.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ReportService renders CSV exports of platform data.
type ReportService struct {
	historyRepo repository.HistoryRepositoryIface
	eventRepo   repository.EventRepositoryIface
	matchRepo   repository.MatchRepositoryIface
	oppRepo     repository.OpportunityRepositoryIface
	history     *HistoryService
}

func NewReportService(
	historyRepo repository.HistoryRepositoryIface,
	eventRepo repository.EventRepositoryIface,
	matchRepo repository.MatchRepositoryIface,
	oppRepo repository.OpportunityRepositoryIface,
	history *HistoryService,
) *ReportService {
	return &ReportService{
		historyRepo: historyRepo,
		eventRepo:   eventRepo,
		matchRepo:   matchRepo,
		oppRepo:     oppRepo,
		history:     history,
	}
}

// VolunteerHistoryCSV exports history entries from the trailing window
// of days.
func (s *ReportService) VolunteerHistoryCSV(ctx context.Context, days int) ([]byte, error) {
	entries, err := s.history.RecentHistory(ctx, days)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Entry ID", "User ID", "Event ID", "Role", "Hours", "Date", "Notes"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, entry := range entries {
		record := []string{
			entry.ID.String(),
			entry.UserID.String(),
			entry.EventID.String(),
			entry.Role,
			strconv.FormatFloat(entry.Hours, 'f', -1, 64),
			entry.Date.Format("2006-01-02"),
			entry.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	slog.Info("generated volunteer history csv", "entries", len(entries))
	return buf.Bytes(), nil
}

// EventsCSV exports every event.
func (s *ReportService) EventsCSV(ctx context.Context) ([]byte, error) {
	events, err := s.eventRepo.FindAll(ctx, repository.EventFilter{})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	header := []string{
		"Event ID", "Title", "Description", "Status", "Location", "City",
		"State", "Required Skills", "Start Date", "End Date", "Capacity",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, event := range events {
		endsAt := ""
		if event.EndsAt != nil {
			endsAt = event.EndsAt.Format("2006-01-02 15:04")
		}
		capacity := ""
		if event.Capacity != nil {
			capacity = strconv.Itoa(*event.Capacity)
		}
		record := []string{
			event.ID.String(),
			event.Title,
			event.Description,
			string(event.Status),
			event.LocationName,
			event.LocationCity,
			event.LocationState,
			strings.Join(event.RequiredSkills, ", "),
			event.StartsAt.Format("2006-01-02 15:04"),
			endsAt,
			capacity,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	slog.Info("generated events csv", "events", len(events))
	return buf.Bytes(), nil
}

// MatchesCSV exports confirmed matches together with their opportunity
// titles.
func (s *ReportService) MatchesCSV(ctx context.Context) ([]byte, error) {
	opps, err := s.oppRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Match ID", "User ID", "Opportunity ID", "Opportunity Title", "Status", "Score", "Created At"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	total := 0
	for _, opp := range opps {
		matches, err := s.matchRepo.FindByOpportunity(ctx, opp.ID)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			score := ""
			if match.Score != nil {
				score = strconv.FormatFloat(*match.Score, 'f', 4, 64)
			}
			record := []string{
				match.ID.String(),
				match.UserID.String(),
				match.OpportunityID.String(),
				opp.Title,
				string(match.Status),
				score,
				match.CreatedAt.Format("2006-01-02 15:04"),
			}
			if err := w.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write csv record: %w", err)
			}
			total++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	slog.Info("generated matches csv", "matches", total)
	return buf.Bytes(), nil
}
