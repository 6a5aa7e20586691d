// internal/model/profile.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the volunteer-facing attributes of a user: skills,
// free-form preference tags, and weekly availability windows.
type Profile struct {
	UserID       uuid.UUID            `gorm:"type:uuid;primary_key" json:"user_id"`
	DisplayName  string               `gorm:"type:text;not null" json:"display_name"`
	Phone        string               `gorm:"type:text" json:"phone,omitempty"`
	Skills       StringList           `gorm:"type:jsonb;not null;default:'[]'" json:"skills"`
	Tags         StringList           `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Availability []AvailabilityWindow `gorm:"foreignKey:UserID;references:UserID" json:"availability"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// AvailabilityWindow is a recurring weekly slot. Times are stored as
// minutes since midnight so overlap arithmetic stays exact.
type AvailabilityWindow struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_availability_user_weekday" json:"user_id"`
	Weekday     int       `gorm:"not null;index:idx_availability_user_weekday" json:"weekday"` // 0=Mon ... 6=Sun
	StartMinute int       `gorm:"not null" json:"start_minute"`
	EndMinute   int       `gorm:"not null" json:"end_minute"`
}

// Overlaps reports whether two windows intersect on the same weekday.
func (w AvailabilityWindow) Overlaps(other AvailabilityWindow) bool {
	if w.Weekday != other.Weekday {
		return false
	}
	return w.StartMinute < other.EndMinute && other.StartMinute < w.EndMinute
}
