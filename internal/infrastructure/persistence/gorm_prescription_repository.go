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

type gormPrescriptionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPrescriptionRepository creates a new GORM-based PrescriptionRepository implementation
func NewGormPrescriptionRepository(db *gorm.DB, logger logger.Logger) (prescriptions.PrescriptionRepository, error) {
	return &gormPrescriptionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPrescriptionRepository) Create(ctx context.Context, prescription *prescriptions.Prescription) error {
	if err := prescription.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PrescriptionModel{}
	model.FromDomain(prescription)

	// Header and line items are stored in one transaction via the association.
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}

	r.logger.Info("Created prescription with id ", prescription.ID)
	return nil
}

func (r *gormPrescriptionRepository) List(ctx context.Context, query *prescriptions.PrescriptionQuery) ([]*prescriptions.Prescription, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.PrescriptionModel
	dbQuery := r.db.WithContext(ctx).Model(&models.PrescriptionModel{}).Preload("Medications")

	if query.PatientID != "" {
		dbQuery = dbQuery.Where("patient_id = ?", query.PatientID)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}

	dbQuery = dbQuery.Order("date_time_created desc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch prescriptions: %w", err)
	}

	domainList := make([]*prescriptions.Prescription, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormPrescriptionRepository) GetByID(ctx context.Context, prescriptionID string) (*prescriptions.Prescription, error) {
	var model models.PrescriptionModel
	err := r.db.WithContext(ctx).Preload("Medications").Where("id = ?", prescriptionID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("prescription with ID %s not found", prescriptionID)
		}
		return nil, fmt.Errorf("failed to fetch prescription: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormPrescriptionRepository) UpdateByID(ctx context.Context, prescription *prescriptions.Prescription) error {
	if err := prescription.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PrescriptionModel{}
	model.FromDomain(prescription)

	// Line items are immutable after submission; only the header is updated.
	if err := r.db.WithContext(ctx).Omit("Medications").Save(model).Error; err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
	}

	r.logger.Info("Updated prescription with id ", prescription.ID)
	return nil
}
