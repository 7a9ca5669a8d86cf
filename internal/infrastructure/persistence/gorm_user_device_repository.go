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

type gormUserDeviceRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserDeviceRepository creates a new GORM-based UserDeviceRepository implementation
func NewGormUserDeviceRepository(db *gorm.DB, logger logger.Logger) (pwa.UserDeviceRepository, error) {
	return &gormUserDeviceRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserDeviceRepository) Upsert(ctx context.Context, device *pwa.UserDevice) error {
	if err := device.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserDeviceModel{}
	model.FromDomain(device)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "fcm_token"}},
		DoUpdates: clause.AssignmentColumns([]string{"device_type", "device_name", "last_active_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to store user device: %w", err)
	}

	r.logger.Info("Stored device registration for user ", device.UserID)
	return nil
}

func (r *gormUserDeviceRepository) ListByUser(ctx context.Context, userID string) ([]*pwa.UserDevice, error) {
	var modelList []*models.UserDeviceModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user devices: %w", err)
	}

	domainList := make([]*pwa.UserDevice, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormUserDeviceRepository) DeleteByToken(ctx context.Context, fcmToken string) error {
	if err := r.db.WithContext(ctx).
		Where("fcm_token = ?", fcmToken).
		Delete(&models.UserDeviceModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete user device: %w", err)
	}

	r.logger.Info("Deleted device registration for token ", fcmToken)
	return nil
}

func (r *gormUserDeviceRepository) DeleteInactiveSince(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("last_active_at < ?", cutoff).
		Delete(&models.UserDeviceModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune inactive devices: %w", result.Error)
	}
	return result.RowsAffected, nil
}
