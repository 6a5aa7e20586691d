// internal/model/notification.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
	ChannelPush  NotificationChannel = "push"
	ChannelInApp NotificationChannel = "in_app"
)

// Channels lists every supported delivery channel.
func Channels() []NotificationChannel {
	return []NotificationChannel{ChannelEmail, ChannelSMS, ChannelPush, ChannelInApp}
}

// ValidChannel reports whether c names a supported channel.
func ValidChannel(c NotificationChannel) bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelPush, ChannelInApp:
		return true
	}
	return false
}

type NotificationStatus string

const (
	NotificationQueued NotificationStatus = "queued"
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

type Notification struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RecipientID uuid.UUID           `gorm:"type:uuid;not null;index:idx_notifications_recipient_id" json:"recipient_id"`
	Subject     string              `gorm:"type:text;not null" json:"subject"`
	Body        string              `gorm:"type:text;not null" json:"body"`
	Channel     NotificationChannel `gorm:"type:text;not null" json:"channel"`
	Status      NotificationStatus  `gorm:"type:text;not null;default:'queued';index:idx_notifications_status" json:"status"`
	ReadAt      *time.Time          `json:"read_at,omitempty"`
	QueuedAt    *time.Time          `gorm:"index:idx_notifications_queued_at" json:"queued_at,omitempty"`
	SentAt      *time.Time          `json:"sent_at,omitempty"`
	Error       string              `gorm:"type:text" json:"error,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NotificationPreference records per-channel opt-in for a user. Absent
// rows fall back to the platform defaults.
type NotificationPreference struct {
	UserID  uuid.UUID           `gorm:"type:uuid;primary_key" json:"user_id"`
	Channel NotificationChannel `gorm:"type:text;primary_key" json:"channel"`
	Enabled bool                `gorm:"not null" json:"enabled"`
}
