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

type gormAdherenceReportRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAdherenceReportRepository creates a new GORM-based AdherenceReportRepository implementation
func NewGormAdherenceReportRepository(db *gorm.DB, logger logger.Logger) (medications.AdherenceReportRepository, error) {
	return &gormAdherenceReportRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAdherenceReportRepository) Upsert(ctx context.Context, report *medications.AdherenceReport) error {
	if err := report.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AdherenceReportModel{}
	model.FromDomain(report)

	// Regenerating a report for the same (patient, period) replaces the row.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ? AND period_start = ? AND period_end = ?",
			report.PatientID, report.PeriodStart, report.PeriodEnd).
			Delete(&models.AdherenceReportModel{}).Error; err != nil {
			return err
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store adherence report: %w", err)
	}

	r.logger.Info("Stored adherence report with id ", report.ID)
	return nil
}

func (r *gormAdherenceReportRepository) List(ctx context.Context, query *medications.ReportQuery) ([]*medications.AdherenceReport, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.AdherenceReportModel
	dbQuery := r.db.WithContext(ctx).Model(&models.AdherenceReportModel{})

	if query.PatientID != "" {
		dbQuery = dbQuery.Where("patient_id = ?", query.PatientID)
	}
	if !query.PeriodStart.IsZero() {
		dbQuery = dbQuery.Where("period_start >= ?", query.PeriodStart)
	}
	if !query.PeriodEnd.IsZero() {
		dbQuery = dbQuery.Where("period_end <= ?", query.PeriodEnd)
	}

	dbQuery = dbQuery.Order("period_start desc")

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch adherence reports: %w", err)
	}

	domainList := make([]*medications.AdherenceReport, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormAdherenceReportRepository) GetByID(ctx context.Context, reportID string) (*medications.AdherenceReport, error) {
	var model models.AdherenceReportModel
	if err := r.db.WithContext(ctx).Where("id = ?", reportID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("adherence report with ID %s not found", reportID)
		}
		return nil, fmt.Errorf("failed to fetch adherence report: %w", err)
	}
	return model.ToDomain(), nil
}
