package medications

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// AdherenceStatus buckets an adherence rate into a coarse grade.
type AdherenceStatus string

// Adherence status constants, from best to worst.
const (
	AdherenceExcellent AdherenceStatus = "excellent"
	AdherenceGood      AdherenceStatus = "good"
	AdherenceFair      AdherenceStatus = "fair"
	AdherencePoor      AdherenceStatus = "poor"
	AdherenceCritical  AdherenceStatus = "critical"
)

// Bucket thresholds, in percent.
const (
	thresholdExcellent = 90
	thresholdGood      = 80
	thresholdFair      = 60
	thresholdPoor      = 40
)

// CalculateAdherenceRate returns the percentage of scheduled doses that were
// taken, clamped to [0,100]. A period with no scheduled doses has rate 0.
func CalculateAdherenceRate(taken, scheduled int) float64 {
	if scheduled <= 0 {
		return 0
	}

	rate := float64(taken) / float64(scheduled) * 100
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// AdherenceStatusFor maps a rate to its status bucket. The mapping is a
// deterministic step function of the rate.
func AdherenceStatusFor(rate float64) AdherenceStatus {
	switch {
	case rate >= thresholdExcellent:
		return AdherenceExcellent
	case rate >= thresholdGood:
		return AdherenceGood
	case rate >= thresholdFair:
		return AdherenceFair
	case rate >= thresholdPoor:
		return AdherencePoor
	default:
		return AdherenceCritical
	}
}

// AdherenceReport entity. One row per (patient, period); regenerating a report
// for the same period replaces the previous row.
type AdherenceReport struct {
	ID              string    `validate:"required,uuid4"`
	PatientID       string    `validate:"required,uuid4"`
	PeriodStart     time.Time `validate:"required"`
	PeriodEnd       time.Time `validate:"required"`
	ScheduledDoses  int       `validate:"min=0"`
	TakenDoses      int       `validate:"min=0"`
	MissedDoses     int       `validate:"min=0"`
	SkippedDoses    int       `validate:"min=0"`
	AdherenceRate   float64   `validate:"min=0,max=100"`
	Status          AdherenceStatus `validate:"required,oneof=excellent good fair poor critical"`
	DateTimeCreated time.Time
}

// Validate for validating AdherenceReport struct
func (r *AdherenceReport) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	if !r.PeriodEnd.After(r.PeriodStart) {
		return fmt.Errorf("period end %v must be after period start %v", r.PeriodEnd, r.PeriodStart)
	}

	if r.TakenDoses > r.ScheduledDoses {
		return fmt.Errorf("taken doses %d exceed scheduled doses %d", r.TakenDoses, r.ScheduledDoses)
	}

	return nil
}

// ReportQuery filters adherence reports by patient and period.
type ReportQuery struct {
	PatientID   string `validate:"omitempty,uuid4"`
	PeriodStart time.Time
	PeriodEnd   time.Time
	Limit       int `validate:"min=0,max=500"`
	Offset      int `validate:"min=0"`
}

// NewReportQuery creates a ReportQuery with default paging.
func NewReportQuery() *ReportQuery {
	return &ReportQuery{Limit: 100}
}

// Validate for validating ReportQuery struct
func (q *ReportQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid query parameters: %w", err)
	}

	return nil
}
