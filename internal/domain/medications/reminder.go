package medications

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// MedicationReminder entity. A reminder is one concrete dose instant expanded
// from a schedule's TimesOfDay, waiting to be dispatched. Empty Channels means
// the dispatcher derives the set from the patient's preferences at send time.
type MedicationReminder struct {
	ID         string    `validate:"required,uuid4"`
	ScheduleID string    `validate:"required,uuid4"`
	PatientID  string    `validate:"required,uuid4"`
	SendAt     time.Time `validate:"required"`
	Channels   []string  `validate:"omitempty,dive,required"`
	Sent       bool
	SentAt     *time.Time
}

// Validate for validating MedicationReminder struct
func (r *MedicationReminder) Validate() error {
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

	return nil
}
