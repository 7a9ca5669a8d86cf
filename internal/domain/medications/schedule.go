package medications

import (
	"errors"
	"fmt"
	"time"

	"medguard_service/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// MedicationSchedule entity. A schedule describes one medication a patient takes
// on a recurring basis, with the wall-clock times a dose is due.
type MedicationSchedule struct {
	ID             string     `validate:"required,uuid4"`
	PatientID      string     `validate:"required,uuid4"`
	MedicationName string     `validate:"required,min=1,max=255"`
	Dosage         string     `validate:"required,min=1,max=50"`
	DoseUnit       string     `validate:"required,min=1,max=20"`
	Frequency      string     `validate:"required,min=1,max=50"`
	TimesOfDay     []string   `validate:"required,min=1,dive,clock"`
	StartDate      time.Time  `validate:"required"`
	EndDate        *time.Time `validate:"omitempty"`
	Active         bool
	Timezone       string `validate:"required"`
	DateTimeCreated time.Time
}

// Validate for validating MedicationSchedule struct
func (s *MedicationSchedule) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("clock", validators.ClockValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(s)
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

	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return fmt.Errorf("end date %v precedes start date %v", s.EndDate, s.StartDate)
	}

	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", s.Timezone, err)
	}

	return nil
}

// ScheduleQuery filters and pages schedule listings.
type ScheduleQuery struct {
	PatientID      string `validate:"omitempty,uuid4"`
	MedicationName string
	ActiveOnly     bool
	Limit          int    `validate:"min=0,max=500"`
	Offset         int    `validate:"min=0"`
	SortBy         string `validate:"omitempty,oneof=medication_name start_date date_time_created"`
	SortOrder      string `validate:"omitempty,oneof=asc desc"`
}

// NewScheduleQuery creates a ScheduleQuery with default paging.
func NewScheduleQuery() *ScheduleQuery {
	return &ScheduleQuery{
		Limit:     100,
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating ScheduleQuery struct
func (q *ScheduleQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid query parameters: %w", err)
	}

	return nil
}
