package persistence

import (
	"context"
	"errors"
	"fmt"

	"medguard_service/internal/domain/pwa"
	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPWASettingsRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPWASettingsRepository creates a new GORM-based PWASettingsRepository implementation
func NewGormPWASettingsRepository(db *gorm.DB, logger logger.Logger) (pwa.PWASettingsRepository, error) {
	return &gormPWASettingsRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPWASettingsRepository) Get(ctx context.Context, userID string) (*pwa.PWASettings, error) {
	var model models.PWASettingsModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pwa.DefaultSettings(userID), nil
		}
		return nil, fmt.Errorf("failed to fetch PWA settings: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPWASettingsRepository) Upsert(ctx context.Context, settings *pwa.PWASettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PWASettingsModel{}
	model.FromDomain(settings)

	// UserID is the primary key, so Save performs an insert-or-update.
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to store PWA settings: %w", err)
	}

	r.logger.Info("Stored PWA settings for user ", settings.UserID)
	return nil
}
