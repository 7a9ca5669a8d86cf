package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medguard_service/internal/domain/pwa"
	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormOfflineDataRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormOfflineDataRepository creates a new GORM-based OfflineDataRepository implementation
func NewGormOfflineDataRepository(db *gorm.DB, logger logger.Logger) (pwa.OfflineDataRepository, error) {
	return &gormOfflineDataRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormOfflineDataRepository) GetLatest(ctx context.Context, userID, resource, resourceID string) (*pwa.OfflineData, error) {
	var model models.OfflineDataModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND resource = ? AND resource_id = ?", userID, resource, resourceID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch offline data: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormOfflineDataRepository) Upsert(ctx context.Context, data *pwa.OfflineData) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.OfflineDataModel{}
	model.FromDomain(data)

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "resource"}, {Name: "resource_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "client_timestamp", "synced_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to store offline data: %w", err)
	}

	return nil
}

func (r *gormOfflineDataRepository) DeleteSyncedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("synced_at < ?", cutoff).
		Delete(&models.OfflineDataModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune offline data: %w", result.Error)
	}
	return result.RowsAffected, nil
}
