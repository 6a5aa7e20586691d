// internal/model/event.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is a scheduled volunteering occasion. Location fields are
// denormalized onto the row.
type Event struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title          string      `gorm:"type:text;not null" json:"title"`
	Description    string      `gorm:"type:text;not null" json:"description"`
	StartsAt       time.Time   `gorm:"not null;index:idx_events_starts_at" json:"starts_at"`
	EndsAt         *time.Time  `json:"ends_at,omitempty"`
	Capacity       *int        `json:"capacity,omitempty"`
	Status         EventStatus `gorm:"type:text;not null;default:'draft';index:idx_events_status" json:"status"`
	RequiredSkills StringList  `gorm:"type:jsonb;not null;default:'[]'" json:"required_skills"`

	LocationName       string `gorm:"type:text" json:"location_name,omitempty"`
	LocationAddress    string `gorm:"type:text" json:"location_address,omitempty"`
	LocationCity       string `gorm:"type:text" json:"location_city,omitempty"`
	LocationState      string `gorm:"type:text" json:"location_state,omitempty"`
	LocationPostalCode string `gorm:"type:text" json:"location_postal_code,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
