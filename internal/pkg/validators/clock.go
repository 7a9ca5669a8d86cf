package validators

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ClockValidation validates a wall-clock value in 24h "HH:MM" form.
// Used for schedule dose times and quiet-hour boundaries.
func ClockValidation(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}
