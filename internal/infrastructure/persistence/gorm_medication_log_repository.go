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

type gormMedicationLogRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMedicationLogRepository creates a new GORM-based MedicationLogRepository implementation
func NewGormMedicationLogRepository(db *gorm.DB, logger logger.Logger) (medications.MedicationLogRepository, error) {
	return &gormMedicationLogRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormMedicationLogRepository) Create(ctx context.Context, log *medications.MedicationLog) error {
	if err := log.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MedicationLogModel{}
	model.FromDomain(log)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create medication log: %w", err)
	}

	r.logger.Info("Recorded dose log with id ", log.ID)
	return nil
}

func (r *gormMedicationLogRepository) List(ctx context.Context, query *medications.LogQuery) ([]*medications.MedicationLog, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.MedicationLogModel
	dbQuery := r.db.WithContext(ctx).Model(&models.MedicationLogModel{})

	if query.ScheduleID != "" {
		dbQuery = dbQuery.Where("schedule_id = ?", query.ScheduleID)
	}
	if query.PatientID != "" {
		dbQuery = dbQuery.Where("patient_id = ?", query.PatientID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if !query.PeriodStart.IsZero() {
		dbQuery = dbQuery.Where("scheduled_at >= ?", query.PeriodStart)
	}
	if !query.PeriodEnd.IsZero() {
		dbQuery = dbQuery.Where("scheduled_at < ?", query.PeriodEnd)
	}

	dbQuery = dbQuery.Order("scheduled_at desc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch medication logs: %w", err)
	}

	domainList := make([]*medications.MedicationLog, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormMedicationLogRepository) CountByStatus(ctx context.Context, patientID string, periodStart, periodEnd time.Time) (map[string]int, error) {
	type statusCount struct {
		Status string
		Count  int
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.MedicationLogModel{}).
		Select("status, count(*) as count").
		Where("patient_id = ? AND scheduled_at >= ? AND scheduled_at < ?", patientID, periodStart, periodEnd).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate medication logs: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
