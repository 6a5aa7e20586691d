// internal/service/notification.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/email"
	"github.com/civicworks/volunteerhub/internal/email/mailer"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/civicworks/volunteerhub/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NotificationType labels what triggered a notification and drives
// channel selection for the urgent ones.
type NotificationType string

const (
	NotifyEventAssignment       NotificationType = "event_assignment"
	NotifyEventUpdate           NotificationType = "event_update"
	NotifyEventReminder         NotificationType = "event_reminder"
	NotifyEventCancellation     NotificationType = "event_cancellation"
	NotifyMatchRequestApproved  NotificationType = "match_request_approved"
	NotifyMatchRequestRejected  NotificationType = "match_request_rejected"
	NotifyNewOpportunity        NotificationType = "new_opportunity"
	NotifyProfileUpdateReminder NotificationType = "profile_update_reminder"
)

// Default channel opt-ins for users who never set preferences. SMS is
// off by default since we have no verified numbers at signup.
var defaultChannelPrefs = map[model.NotificationChannel]bool{
	model.ChannelEmail: true,
	model.ChannelSMS:   false,
	model.ChannelPush:  true,
	model.ChannelInApp: true,
}

type NotificationService struct {
	repo         repository.NotificationRepositoryIface
	userRepo     repository.UserRepositoryIface
	profileRepo  repository.ProfileRepositoryIface
	matchRepo    repository.MatchRepositoryIface
	emailService *email.Service
	validate     *validator.Validate
}

func NewNotificationService(
	repo repository.NotificationRepositoryIface,
	userRepo repository.UserRepositoryIface,
	profileRepo repository.ProfileRepositoryIface,
	matchRepo repository.MatchRepositoryIface,
	emailService *email.Service,
) *NotificationService {
	return &NotificationService{
		repo:         repo,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		matchRepo:    matchRepo,
		emailService: emailService,
		validate:     validator.New(),
	}
}

type SendNotificationInput struct {
	RecipientID uuid.UUID                  `json:"recipient_id" validate:"required"`
	Subject     string                     `json:"subject" validate:"required,max=200"`
	Body        string                     `json:"body" validate:"required,max=2000"`
	Type        NotificationType           `json:"type" validate:"required"`
	Channel     *model.NotificationChannel `json:"channel"`
}

// Send queues and delivers a notification. When no channel is given the
// recipient's preferences pick one; a disabled channel falls back to
// in-app, and a recipient with nothing enabled is an error.
func (s *NotificationService) Send(ctx context.Context, input SendNotificationInput) (*model.Notification, error) {
	input.Subject = strings.TrimSpace(input.Subject)
	input.Body = strings.TrimSpace(input.Body)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	user, err := s.userRepo.FindByID(ctx, input.RecipientID)
	if err != nil {
		return nil, err
	}

	prefs, err := s.channelPrefs(ctx, input.RecipientID)
	if err != nil {
		return nil, err
	}

	var channel model.NotificationChannel
	if input.Channel != nil {
		if !model.ValidChannel(*input.Channel) {
			return nil, domain.ErrInvalidChannel
		}
		channel = *input.Channel
	} else {
		channel = preferredChannel(prefs, input.Type)
	}

	if !prefs[channel] {
		slog.Warn("notification channel disabled for user", "user_id", input.RecipientID, "channel", channel)
		if !prefs[model.ChannelInApp] {
			return nil, domain.ErrNoEnabledChannel
		}
		channel = model.ChannelInApp
	}

	now := time.Now()
	notification := &model.Notification{
		RecipientID: input.RecipientID,
		Subject:     input.Subject,
		Body:        input.Body,
		Channel:     channel,
		Status:      model.NotificationQueued,
		QueuedAt:    &now,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	s.deliver(ctx, notification, user)

	if err := s.repo.Update(ctx, notification); err != nil {
		return nil, err
	}

	slog.Info("sent notification", "notification_id", notification.ID,
		"type", input.Type, "channel", channel, "status", notification.Status)
	return notification, nil
}

// deliver pushes the notification out over its channel and records the
// outcome on the row. In-app rows are "delivered" the moment they exist;
// SMS and push have no providers wired yet and are treated the same.
func (s *NotificationService) deliver(ctx context.Context, n *model.Notification, user *model.User) {
	switch n.Channel {
	case model.ChannelEmail:
		name := user.Email
		if profile, err := s.profileRepo.FindByUserID(ctx, user.ID); err == nil {
			name = profile.DisplayName
		}
		if err := mailer.SendNotificationEmail(s.emailService, user.Email, name, n.Subject, n.Body); err != nil {
			n.Status = model.NotificationFailed
			n.Error = err.Error()
			slog.Error("failed to deliver notification email", "notification_id", n.ID, "error", err)
			return
		}
	case model.ChannelSMS, model.ChannelPush, model.ChannelInApp:
		// No external delivery.
	}

	now := time.Now()
	n.Status = model.NotificationSent
	n.SentAt = &now
	n.Error = ""
}

func (s *NotificationService) GetNotification(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	return s.repo.FindByID(ctx, id)
}

// ListByUser returns a user's notifications, optionally filtered by
// status and truncated to limit.
func (s *NotificationService) ListByUser(ctx context.Context, userID uuid.UUID, status model.NotificationStatus, limit int) ([]*model.Notification, error) {
	ns, err := s.repo.FindByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	if status != "" {
		filtered := ns[:0]
		for _, n := range ns {
			if n.Status == status {
				filtered = append(filtered, n)
			}
		}
		ns = filtered
	}
	if limit > 0 && len(ns) > limit {
		ns = ns[:limit]
	}
	return ns, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, time.Now())
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *NotificationService) ListPending(ctx context.Context) ([]*model.Notification, error) {
	return s.repo.FindByStatus(ctx, model.NotificationQueued)
}

// RetryFailed re-queues and re-delivers every failed notification,
// returning how many were retried.
func (s *NotificationService) RetryFailed(ctx context.Context) (int, error) {
	failed, err := s.repo.FindByStatus(ctx, model.NotificationFailed)
	if err != nil {
		return 0, err
	}

	retried := 0
	for _, n := range failed {
		user, err := s.userRepo.FindByID(ctx, n.RecipientID)
		if err != nil {
			slog.Error("skipping retry, recipient lookup failed", "notification_id", n.ID, "error", err)
			continue
		}

		n.Status = model.NotificationQueued
		n.Error = ""
		s.deliver(ctx, n, user)

		if err := s.repo.Update(ctx, n); err != nil {
			return retried, err
		}
		retried++
	}

	slog.Info("retried failed notifications", "count", retried)
	return retried, nil
}

// Preferences returns the user's per-channel opt-ins merged over the
// defaults.
func (s *NotificationService) Preferences(ctx context.Context, userID uuid.UUID) (map[model.NotificationChannel]bool, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.channelPrefs(ctx, userID)
}

// SetPreferences stores per-channel opt-ins. Channels not named keep
// their previous (or default) setting.
func (s *NotificationService) SetPreferences(ctx context.Context, userID uuid.UUID, prefs map[model.NotificationChannel]bool) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	for channel := range prefs {
		if !model.ValidChannel(channel) {
			return domain.ErrInvalidChannel
		}
	}
	for channel, enabled := range prefs {
		pref := &model.NotificationPreference{
			UserID:  userID,
			Channel: channel,
			Enabled: enabled,
		}
		if err := s.repo.UpsertPreference(ctx, pref); err != nil {
			return err
		}
	}
	slog.Info("updated notification preferences", "user_id", userID)
	return nil
}

func (s *NotificationService) channelPrefs(ctx context.Context, userID uuid.UUID) (map[model.NotificationChannel]bool, error) {
	prefs := make(map[model.NotificationChannel]bool, len(defaultChannelPrefs))
	for channel, enabled := range defaultChannelPrefs {
		prefs[channel] = enabled
	}

	stored, err := s.repo.FindPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, pref := range stored {
		prefs[pref.Channel] = pref.Enabled
	}
	return prefs, nil
}

// preferredChannel picks a channel from the enabled set. Cancellations
// and updates prefer the immediate channels.
func preferredChannel(prefs map[model.NotificationChannel]bool, t NotificationType) model.NotificationChannel {
	if t == NotifyEventCancellation || t == NotifyEventUpdate {
		if prefs[model.ChannelSMS] {
			return model.ChannelSMS
		}
		if prefs[model.ChannelPush] {
			return model.ChannelPush
		}
	}

	for _, channel := range []model.NotificationChannel{
		model.ChannelEmail, model.ChannelInApp, model.ChannelPush, model.ChannelSMS,
	} {
		if prefs[channel] {
			return channel
		}
	}
	return model.ChannelInApp
}

// SendEventAssignment tells a volunteer they were assigned to an event.
func (s *NotificationService) SendEventAssignment(ctx context.Context, recipientID uuid.UUID, eventTitle string, eventDate time.Time, eventLocation string) (*model.Notification, error) {
	body := fmt.Sprintf(
		"You have been assigned to the '%s' event.\n\nDate: %s\nLocation: %s\n\nPlease confirm your attendance and prepare accordingly.",
		eventTitle, eventDate.Format("January 2, 2006 at 3:04 PM"), eventLocation)
	return s.Send(ctx, SendNotificationInput{
		RecipientID: recipientID,
		Subject:     fmt.Sprintf("Event Assignment: %s", eventTitle),
		Body:        body,
		Type:        NotifyEventAssignment,
	})
}

// SendEventReminder nudges a volunteer ahead of an event.
func (s *NotificationService) SendEventReminder(ctx context.Context, recipientID uuid.UUID, eventTitle string, eventDate time.Time, eventLocation string, hoursBefore int) (*model.Notification, error) {
	timeDesc := fmt.Sprintf("%d hour(s)", hoursBefore)
	if hoursBefore >= 24 {
		timeDesc = fmt.Sprintf("%d day(s)", hoursBefore/24)
	}
	body := fmt.Sprintf(
		"Reminder: You have a volunteer event in %s.\n\nEvent: %s\nDate: %s\nLocation: %s\n\nPlease arrive on time and bring any necessary items.",
		timeDesc, eventTitle, eventDate.Format("January 2, 2006 at 3:04 PM"), eventLocation)
	return s.Send(ctx, SendNotificationInput{
		RecipientID: recipientID,
		Subject:     fmt.Sprintf("Reminder: %s", eventTitle),
		Body:        body,
		Type:        NotifyEventReminder,
	})
}

// SendEventUpdate tells a volunteer something about their event changed.
func (s *NotificationService) SendEventUpdate(ctx context.Context, recipientID uuid.UUID, eventTitle, updateDetails string) (*model.Notification, error) {
	body := fmt.Sprintf(
		"There has been an update to the '%s' event:\n\n%s\n\nPlease review the changes and adjust your plans accordingly.",
		eventTitle, updateDetails)
	return s.Send(ctx, SendNotificationInput{
		RecipientID: recipientID,
		Subject:     fmt.Sprintf("Event Update: %s", eventTitle),
		Body:        body,
		Type:        NotifyEventUpdate,
	})
}

// SendEventCancellation tells a volunteer their event was called off.
func (s *NotificationService) SendEventCancellation(ctx context.Context, recipientID uuid.UUID, eventTitle, reason string) (*model.Notification, error) {
	body := fmt.Sprintf("Unfortunately, the '%s' event has been cancelled.", eventTitle)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nWe apologize for any inconvenience. Please check for other available volunteer opportunities."
	return s.Send(ctx, SendNotificationInput{
		RecipientID: recipientID,
		Subject:     fmt.Sprintf("Event Cancelled: %s", eventTitle),
		Body:        body,
		Type:        NotifyEventCancellation,
	})
}

// SendMatchRequestApproved congratulates a volunteer on an approval.
func (s *NotificationService) SendMatchRequestApproved(ctx context.Context, recipientID uuid.UUID, eventTitle, opportunityTitle string) (*model.Notification, error) {
	body := fmt.Sprintf(
		"Great news! Your application has been approved.\n\nEvent: %s\nRole: %s\n\nYou will receive further details about the event soon.",
		eventTitle, opportunityTitle)
	return s.Send(ctx, SendNotificationInput{
		RecipientID: recipientID,
		Subject:     "Volunteer Application Approved",
		Body:        body,
		Type:        NotifyMatchRequestApproved,
	})
}

// SendMatchRequestRejected lets a volunteer down gently.
func (s *NotificationService) SendMatchRequestRejected(ctx context.Context, recipientID uuid.UUID, eventTitle, opportunityTitle, reason string) (*model.Notification, error) {
	body := fmt.Sprintf(
		"Thank you for your interest in volunteering.\n\nEvent: %s\nRole: %s\n\nUnfortunately, we are unable to accept your application at this time.",
		eventTitle, opportunityTitle)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nPlease check for other available volunteer opportunities."
	return s.Send(ctx, SendNotificationInput{
		RecipientID: recipientID,
		Subject:     "Volunteer Application Update",
		Body:        body,
		Type:        NotifyMatchRequestRejected,
	})
}

// SendNewOpportunity advertises an opportunity matching a volunteer's
// skills.
func (s *NotificationService) SendNewOpportunity(ctx context.Context, recipientID uuid.UUID, eventTitle, opportunityTitle string, matchingSkills []string) (*model.Notification, error) {
	body := fmt.Sprintf(
		"A new volunteer opportunity matches your skills!\n\nEvent: %s\nRole: %s\nMatching Skills: %s\n\nApply now to secure your spot!",
		eventTitle, opportunityTitle, strings.Join(matchingSkills, ", "))
	return s.Send(ctx, SendNotificationInput{
		RecipientID: recipientID,
		Subject:     "New Volunteer Opportunity",
		Body:        body,
		Type:        NotifyNewOpportunity,
	})
}

// NotifyOpportunityVolunteers sends a cancellation notice to every
// volunteer matched to the opportunity. Individual failures are logged
// and skipped.
func (s *NotificationService) NotifyOpportunityVolunteers(ctx context.Context, opportunityID uuid.UUID, event *model.Event) error {
	matches, err := s.matchRepo.FindByOpportunity(ctx, opportunityID)
	if err != nil {
		return err
	}

	for _, match := range matches {
		if match.Status != model.MatchStatusApproved {
			continue
		}
		if _, err := s.SendEventCancellation(ctx, match.UserID, event.Title, ""); err != nil {
			if errors.Is(err, domain.ErrNoEnabledChannel) {
				slog.Warn("volunteer has no enabled channels", "user_id", match.UserID)
				continue
			}
			slog.Error("failed to notify matched volunteer", "user_id", match.UserID, "error", err)
		}
	}
	return nil
}
