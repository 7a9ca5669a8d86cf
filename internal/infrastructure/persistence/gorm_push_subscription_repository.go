package persistence

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/domain/pwa"
	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormPushSubscriptionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPushSubscriptionRepository creates a new GORM-based PushSubscriptionRepository implementation
func NewGormPushSubscriptionRepository(db *gorm.DB, logger logger.Logger) (pwa.PushSubscriptionRepository, error) {
	return &gormPushSubscriptionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPushSubscriptionRepository) Upsert(ctx context.Context, subscription *pwa.PushSubscription) error {
	if err := subscription.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PushSubscriptionModel{}
	model.FromDomain(subscription)

	// A browser re-subscribing on the same endpoint refreshes its keys.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth", "device_name", "date_time_created"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to store push subscription: %w", err)
	}

	r.logger.Info("Stored push subscription for user ", subscription.UserID)
	return nil
}

func (r *gormPushSubscriptionRepository) ListByUser(ctx context.Context, userID string) ([]*pwa.PushSubscription, error) {
	var modelList []*models.PushSubscriptionModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch push subscriptions: %w", err)
	}

	domainList := make([]*pwa.PushSubscription, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormPushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	if err := r.db.WithContext(ctx).Where("endpoint = ?", endpoint).Delete(&models.PushSubscriptionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete push subscription: %w", err)
	}

	r.logger.Info("Deleted push subscription for endpoint ", endpoint)
	return nil
}

func (r *gormPushSubscriptionRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("date_time_created < ?", cutoff).
		Delete(&models.PushSubscriptionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune push subscriptions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
