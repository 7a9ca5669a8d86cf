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

type gormEmergencyContactRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormEmergencyContactRepository creates a new GORM-based EmergencyContactRepository implementation
func NewGormEmergencyContactRepository(db *gorm.DB, logger logger.Logger) (prescriptions.EmergencyContactRepository, error) {
	return &gormEmergencyContactRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormEmergencyContactRepository) Create(ctx context.Context, contact *prescriptions.EmergencyContact) error {
	if err := contact.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.EmergencyContactModel{}
	model.FromDomain(contact)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if contact.Priority == 1 {
			if err := demotePrimary(tx, contact.PatientID, contact.ID); err != nil {
				return err
			}
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create emergency contact: %w", err)
	}

	r.logger.Info("Created emergency contact with id ", contact.ID)
	return nil
}

func (r *gormEmergencyContactRepository) ListByPatient(ctx context.Context, patientID string) ([]*prescriptions.EmergencyContact, error) {
	var modelList []*models.EmergencyContactModel
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("priority asc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch emergency contacts: %w", err)
	}

	domainList := make([]*prescriptions.EmergencyContact, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormEmergencyContactRepository) GetByID(ctx context.Context, contactID string) (*prescriptions.EmergencyContact, error) {
	var model models.EmergencyContactModel
	if err := r.db.WithContext(ctx).Where("id = ?", contactID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("emergency contact with ID %s not found", contactID)
		}
		return nil, fmt.Errorf("failed to fetch emergency contact: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormEmergencyContactRepository) UpdateByID(ctx context.Context, contact *prescriptions.EmergencyContact) error {
	if err := contact.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.EmergencyContactModel{}
	model.FromDomain(contact)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if contact.Priority == 1 {
			if err := demotePrimary(tx, contact.PatientID, contact.ID); err != nil {
				return err
			}
		}
		return tx.Save(model).Error
	})
	if err != nil {
		return fmt.Errorf("failed to update emergency contact: %w", err)
	}

	r.logger.Info("Updated emergency contact with id ", contact.ID)
	return nil
}

func (r *gormEmergencyContactRepository) DeleteByID(ctx context.Context, contactID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", contactID).Delete(&models.EmergencyContactModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete emergency contact: %w", err)
	}

	r.logger.Info("Deleted emergency contact with id ", contactID)
	return nil
}

// demotePrimary moves the patient's current primary contact to priority 2 so
// at most one primary exists.
func demotePrimary(tx *gorm.DB, patientID, exceptID string) error {
	return tx.Model(&models.EmergencyContactModel{}).
		Where("patient_id = ? AND priority = 1 AND id <> ?", patientID, exceptID).
		Update("priority", 2).Error
}
