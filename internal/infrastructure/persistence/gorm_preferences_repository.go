package persistence

import (
	"context"
	"errors"
	"fmt"

	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPreferencesRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPreferencesRepository creates a new GORM-based PreferencesRepository implementation
func NewGormPreferencesRepository(db *gorm.DB, logger logger.Logger) (notifications.PreferencesRepository, error) {
	return &gormPreferencesRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPreferencesRepository) Get(ctx context.Context, userID string) (*notifications.UserNotificationPreferences, error) {
	var model models.UserNotificationPreferencesModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("preferences for user %s not found", userID)
		}
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPreferencesRepository) Upsert(ctx context.Context, prefs *notifications.UserNotificationPreferences) error {
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserNotificationPreferencesModel{}
	model.FromDomain(prefs)

	// Save on the primary key acts as insert-or-update.
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to store preferences: %w", err)
	}

	r.logger.Info("Stored notification preferences for user ", prefs.UserID)
	return nil
}
