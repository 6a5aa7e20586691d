// internal/model/opportunity.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Opportunity is a specific volunteer role within an event.
type Opportunity struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EventID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_opportunities_event_id" json:"event_id"`
	Title          string     `gorm:"type:text;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description,omitempty"`
	RequiredSkills StringList `gorm:"type:jsonb;not null;default:'[]'" json:"required_skills"`
	MinHours       *float64   `json:"min_hours,omitempty"`
	MaxSlots       *int       `json:"max_slots,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
