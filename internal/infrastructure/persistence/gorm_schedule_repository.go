package persistence

import (
	"context"
	"errors"
	"fmt"

	"medguard_service/internal/domain/medications"
	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormScheduleRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormScheduleRepository creates a new GORM-based ScheduleRepository implementation
func NewGormScheduleRepository(db *gorm.DB, logger logger.Logger) (medications.ScheduleRepository, error) {
	return &gormScheduleRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormScheduleRepository) Create(ctx context.Context, schedule *medications.MedicationSchedule) error {
	if err := schedule.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MedicationScheduleModel{}
	model.FromDomain(schedule)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create medication schedule: %w", err)
	}

	r.logger.Info("Created medication schedule with id ", schedule.ID)
	return nil
}

func (r *gormScheduleRepository) List(ctx context.Context, query *medications.ScheduleQuery) ([]*medications.MedicationSchedule, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.MedicationScheduleModel
	dbQuery := r.db.WithContext(ctx).Model(&models.MedicationScheduleModel{})

	if query.PatientID != "" {
		dbQuery = dbQuery.Where("patient_id = ?", query.PatientID)
	}
	if query.MedicationName != "" {
		dbQuery = dbQuery.Where("medication_name LIKE ?", "%"+query.MedicationName+"%")
	}
	if query.ActiveOnly {
		dbQuery = dbQuery.Where("active = ?", true)
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch medication schedules: %w", err)
	}

	domainList := make([]*medications.MedicationSchedule, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormScheduleRepository) GetByID(ctx context.Context, scheduleID string) (*medications.MedicationSchedule, error) {
	var model models.MedicationScheduleModel
	if err := r.db.WithContext(ctx).Where("id = ?", scheduleID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("medication schedule with ID %s not found", scheduleID)
		}
		return nil, fmt.Errorf("failed to fetch medication schedule: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormScheduleRepository) UpdateByID(ctx context.Context, schedule *medications.MedicationSchedule) error {
	if err := schedule.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MedicationScheduleModel{}
	model.FromDomain(schedule)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update medication schedule: %w", err)
	}

	r.logger.Info("Updated medication schedule with id ", schedule.ID)
	return nil
}

func (r *gormScheduleRepository) DeleteByID(ctx context.Context, scheduleID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", scheduleID).Delete(&models.MedicationScheduleModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete medication schedule: %w", err)
	}

	r.logger.Info("Deleted medication schedule with id ", scheduleID)
	return nil
}

func (r *gormScheduleRepository) ListActivePatients(ctx context.Context) ([]string, error) {
	var patientIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.MedicationScheduleModel{}).
		Where("active = ?", true).
		Distinct("patient_id").
		Pluck("patient_id", &patientIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active patients: %w", err)
	}
	return patientIDs, nil
}
