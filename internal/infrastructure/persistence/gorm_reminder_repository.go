package persistence

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/domain/medications"
	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormReminderRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormReminderRepository creates a new GORM-based ReminderRepository implementation
func NewGormReminderRepository(db *gorm.DB, logger logger.Logger) (medications.ReminderRepository, error) {
	return &gormReminderRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormReminderRepository) Create(ctx context.Context, reminder *medications.MedicationReminder) error {
	if err := reminder.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MedicationReminderModel{}
	model.FromDomain(reminder)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}

	return nil
}

func (r *gormReminderRepository) ListDue(ctx context.Context, cutoff time.Time, limit int) ([]*medications.MedicationReminder, error) {
	var modelList []*models.MedicationReminderModel

	dbQuery := r.db.WithContext(ctx).
		Where("sent = ? AND send_at <= ?", false, cutoff).
		Order("send_at asc")
	if limit > 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch due reminders: %w", err)
	}

	domainList := make([]*medications.MedicationReminder, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormReminderRepository) ExistsForSlot(ctx context.Context, scheduleID string, sendAt time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MedicationReminderModel{}).
		Where("schedule_id = ? AND send_at = ?", scheduleID, sendAt).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check reminder slot: %w", err)
	}
	return count > 0, nil
}

func (r *gormReminderRepository) MarkSent(ctx context.Context, reminderID string, sentAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&models.MedicationReminderModel{}).
		Where("id = ?", reminderID).
		Updates(map[string]interface{}{"sent": true, "sent_at": sentAt}).Error
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}

	r.logger.Info("Marked reminder sent with id ", reminderID)
	return nil
}

func (r *gormReminderRepository) DeleteBySchedule(ctx context.Context, scheduleID string) error {
	if err := r.db.WithContext(ctx).Where("schedule_id = ?", scheduleID).Delete(&models.MedicationReminderModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete reminders for schedule: %w", err)
	}
	return nil
}
