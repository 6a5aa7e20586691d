// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound               = errors.New("not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("insufficient permissions")

	// User-related errors
	ErrUserNotFound = errors.New("user not found")

	// Profile-related errors
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrAvailabilityOverlap  = errors.New("availability window overlaps with existing window")

	// Event-related errors
	ErrEventNotFound = errors.New("event not found")

	// Matching-related errors
	ErrOpportunityNotFound    = errors.New("opportunity not found")
	ErrMatchRequestNotFound   = errors.New("match request not found")
	ErrMatchNotFound          = errors.New("match not found")
	ErrDuplicateMatchRequest  = errors.New("user already has an active request for this opportunity")
	ErrOpportunityAtCapacity  = errors.New("opportunity is at maximum capacity")
	ErrMatchRequestNotPending = errors.New("match request is not pending")

	// Notification-related errors
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoEnabledChannel     = errors.New("no enabled notification channels for user")
	ErrInvalidChannel       = errors.New("invalid notification channel")

	// History-related errors
	ErrHistoryEntryNotFound  = errors.New("history entry not found")
	ErrDuplicateHistoryEntry = errors.New("history entry already exists for this user, event, and date")
)
