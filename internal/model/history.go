// internal/model/history.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// VolunteerHistoryEntry records completed participation: who worked which
// event, in what role, and for how many hours.
type VolunteerHistoryEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_volunteer_history_user_id" json:"user_id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index:idx_volunteer_history_event_id" json:"event_id"`
	Role      string    `gorm:"type:text;not null" json:"role"`
	Hours     float64   `gorm:"not null" json:"hours"`
	Date      time.Time `gorm:"not null;index:idx_volunteer_history_date" json:"date"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
