// internal/repository/notification.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/civicworks/volunteerhub/internal/domain"
	"github.com/civicworks/volunteerhub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepositoryIface interface {
	Create(ctx context.Context, n *model.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	Update(ctx context.Context, n *model.Notification) error
	FindByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*model.Notification, error)
	FindByStatus(ctx context.Context, status model.NotificationStatus) ([]*model.Notification, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error

	FindPreferences(ctx context.Context, userID uuid.UUID) ([]*model.NotificationPreference, error)
	UpsertPreference(ctx context.Context, pref *model.NotificationPreference) error
}

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	result := r.db.WithContext(ctx).Create(n)
	if result.Error != nil {
		return fmt.Errorf("failed to create notification: %w", result.Error)
	}
	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	result := r.db.WithContext(ctx).First(&n, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", result.Error)
	}
	return &n, nil
}

func (r *NotificationRepository) Update(ctx context.Context, n *model.Notification) error {
	result := r.db.WithContext(ctx).Save(n)
	if result.Error != nil {
		return fmt.Errorf("failed to update notification: %w", result.Error)
	}
	return nil
}

func (r *NotificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*model.Notification, error) {
	var ns []*model.Notification
	result := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID).Order("queued_at desc").Find(&ns)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find notifications: %w", result.Error)
	}
	return ns, nil
}

func (r *NotificationRepository) FindByStatus(ctx context.Context, status model.NotificationStatus) ([]*model.Notification, error) {
	var ns []*model.Notification
	result := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at asc").Find(&ns)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find notifications: %w", result.Error)
	}
	return ns, nil
}

// CountUnread counts in-app notifications the recipient has not read.
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND channel = ? AND read_at IS NULL", recipientID, model.ChannelInApp).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", result.Error)
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		Update("read_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) FindPreferences(ctx context.Context, userID uuid.UUID) ([]*model.NotificationPreference, error) {
	var prefs []*model.NotificationPreference
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&prefs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find notification preferences: %w", result.Error)
	}
	return prefs, nil
}

func (r *NotificationRepository) UpsertPreference(ctx context.Context, pref *model.NotificationPreference) error {
	result := r.db.WithContext(ctx).Save(pref)
	if result.Error != nil {
		return fmt.Errorf("failed to save notification preference: %w", result.Error)
	}
	return nil
}
