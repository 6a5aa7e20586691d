// internal/model/match.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusApproved MatchStatus = "approved"
	MatchStatusRejected MatchStatus = "rejected"
	MatchStatusExpired  MatchStatus = "expired"
)

// Active reports whether the status still reserves the opportunity for
// the user. Pending and approved requests block further applications.
func (s MatchStatus) Active() bool {
	return s == MatchStatusPending || s == MatchStatusApproved
}

// MatchRequest is a volunteer's application for an opportunity. Requests
// only move forward: pending to approved, rejected, or expired.
type MatchRequest struct {
	ID            uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;index:idx_match_requests_user_id" json:"user_id"`
	OpportunityID uuid.UUID   `gorm:"type:uuid;not null;index:idx_match_requests_opportunity_id" json:"opportunity_id"`
	Status        MatchStatus `gorm:"type:text;not null;default:'pending';index:idx_match_requests_status" json:"status"`
	Score         *float64    `json:"score,omitempty"`
	RequestedAt   time.Time   `gorm:"not null" json:"requested_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Match is a confirmed assignment of a user to an opportunity, created
// when a request is approved. At most one match may exist per user and
// opportunity pair.
type Match struct {
	ID            uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_matches_user_opportunity" json:"user_id"`
	OpportunityID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_matches_user_opportunity;index:idx_matches_opportunity_id" json:"opportunity_id"`
	Status        MatchStatus `gorm:"type:text;not null" json:"status"`
	Score         *float64    `json:"score,omitempty"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
