package persistence

import (
	"context"
	"errors"
	"fmt"

	"medguard_service/internal/domain/prescriptions"
	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPatientRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPatientRepository creates a new GORM-based PatientRepository implementation
func NewGormPatientRepository(db *gorm.DB, logger logger.Logger) (prescriptions.PatientRepository, error) {
	return &gormPatientRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPatientRepository) Create(ctx context.Context, patient *prescriptions.PrescriptionPatient) error {
	if err := patient.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PrescriptionPatientModel{}
	model.FromDomain(patient)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	r.logger.Info("Registered patient with id ", patient.ID)
	return nil
}

func (r *gormPatientRepository) GetByID(ctx context.Context, patientID string) (*prescriptions.PrescriptionPatient, error) {
	var model models.PrescriptionPatientModel
	if err := r.db.WithContext(ctx).Where("id = ?", patientID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("patient with ID %s not found", patientID)
		}
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPatientRepository) GetByEmail(ctx context.Context, email string) (*prescriptions.PrescriptionPatient, error) {
	var model models.PrescriptionPatientModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("patient with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	return model.ToDomain(), nil
}
