package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormNotificationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormNotificationRepository creates a new GORM-based NotificationRepository implementation
func NewGormNotificationRepository(db *gorm.DB, logger logger.Logger) (notifications.NotificationRepository, error) {
	return &gormNotificationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormNotificationRepository) Create(ctx context.Context, notification *notifications.Notification) error {
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.NotificationModel{}
	model.FromDomain(notification)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	r.logger.Info("Created notification with id ", notification.ID)
	return nil
}

func (r *gormNotificationRepository) GetByID(ctx context.Context, notificationID string) (*notifications.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).Where("id = ?", notificationID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notification with ID %s not found", notificationID)
		}
		return nil, fmt.Errorf("failed to fetch notification: %w", err)
	}
	return model.ToDomain(), nil
}

type gormUserNotificationRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserNotificationRepository creates a new GORM-based UserNotificationRepository implementation
func NewGormUserNotificationRepository(db *gorm.DB, logger logger.Logger) (notifications.UserNotificationRepository, error) {
	return &gormUserNotificationRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserNotificationRepository) Create(ctx context.Context, userNotification *notifications.UserNotification) error {
	if err := userNotification.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserNotificationModel{}
	model.FromDomain(userNotification)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user notification: %w", err)
	}

	return nil
}

func (r *gormUserNotificationRepository) List(ctx context.Context, query *notifications.InboxQuery) ([]*notifications.UserNotification, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.UserNotificationModel
	// Skipped and failed deliveries never reach the inbox.
	dbQuery := r.db.WithContext(ctx).
		Model(&models.UserNotificationModel{}).
		Where("user_id = ? AND channel = ? AND status = ?", query.UserID, notifications.ChannelInApp, notifications.StatusSent)

	if query.UnreadOnly {
		dbQuery = dbQuery.Where("read = ?", false)
	}

	dbQuery = dbQuery.Order("date_time_created desc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user notifications: %w", err)
	}

	domainList := make([]*notifications.UserNotification, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormUserNotificationRepository) GetByID(ctx context.Context, userNotificationID string) (*notifications.UserNotification, error) {
	var model models.UserNotificationModel
	if err := r.db.WithContext(ctx).Where("id = ?", userNotificationID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user notification with ID %s not found", userNotificationID)
		}
		return nil, fmt.Errorf("failed to fetch user notification: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormUserNotificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserNotificationModel{}).
		Where("user_id = ? AND channel = ? AND status = ? AND read = ?", userID, notifications.ChannelInApp, notifications.StatusSent, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *gormUserNotificationRepository) MarkRead(ctx context.Context, userNotificationID string, readAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.UserNotificationModel{}).
		Where("id = ? AND read = ?", userNotificationID, false).
		Updates(map[string]interface{}{"read": true, "read_at": readAt}).Error
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (r *gormUserNotificationRepository) MarkAllRead(ctx context.Context, userID string, readAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.UserNotificationModel{}).
		Where("user_id = ? AND channel = ? AND status = ? AND read = ?", userID, notifications.ChannelInApp, notifications.StatusSent, false).
		Updates(map[string]interface{}{"read": true, "read_at": readAt}).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	r.logger.Info("Marked all notifications read for user ", userID)
	return nil
}

func (r *gormUserNotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("read = ? AND date_time_created < ?", true, cutoff).
		Delete(&models.UserNotificationModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete read notifications: %w", result.Error)
	}
	return result.RowsAffected, nil
}
