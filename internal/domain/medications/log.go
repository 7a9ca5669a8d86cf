package medications

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Dose log status constants
const (
	DoseStatusTaken   = "taken"
	DoseStatusMissed  = "missed"
	DoseStatusSkipped = "skipped"
)

// MedicationLog entity. One row per scheduled dose outcome.
type MedicationLog struct {
	ID          string    `validate:"required,uuid4"`
	ScheduleID  string    `validate:"required,uuid4"`
	PatientID   string    `validate:"required,uuid4"`
	ScheduledAt time.Time `validate:"required"`
	RecordedAt  time.Time `validate:"required"`
	Status      string    `validate:"required,oneof=taken missed skipped"`
	Notes       string    `validate:"max=1000"`
}

// Validate for validating MedicationLog struct
func (l *MedicationLog) Validate() error {
	validate := validator.New()

	err := validate.Struct(l)
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

	return nil
}

// LogQuery filters dose logs by schedule, patient and period.
type LogQuery struct {
	ScheduleID  string `validate:"omitempty,uuid4"`
	PatientID   string `validate:"omitempty,uuid4"`
	Status      string `validate:"omitempty,oneof=taken missed skipped"`
	PeriodStart time.Time
	PeriodEnd   time.Time
	Limit       int `validate:"min=0,max=1000"`
	Offset      int `validate:"min=0"`
}

// NewLogQuery creates a LogQuery with default paging.
func NewLogQuery() *LogQuery {
	return &LogQuery{Limit: 200}
}

// Validate for validating LogQuery struct
func (q *LogQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid query parameters: %w", err)
	}

	return nil
}
