package prescriptions

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// PrescriptionPatient entity. A registered patient of the platform.
type PrescriptionPatient struct {
	ID              string    `validate:"required,uuid4"`
	FirstName       string    `validate:"required,min=1,max=100"`
	LastName        string    `validate:"required,min=1,max=100"`
	Email           string    `validate:"required,email"`
	PhoneNumber     string    `validate:"omitempty,e164"`
	DateOfBirth     time.Time `validate:"required"`
	MedicalAidNumber string   `validate:"omitempty,max=50"`
	DateTimeCreated time.Time
}

// Validate for validating PrescriptionPatient struct
func (p *PrescriptionPatient) Validate() error {
	validate := validator.New()

	err := validate.Struct(p)
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

	if p.DateOfBirth.After(time.Now()) {
		return fmt.Errorf("date of birth %v lies in the future", p.DateOfBirth)
	}

	return nil
}

// PrescriptionDoctor is the prescribing doctor, embedded in the prescription.
type PrescriptionDoctor struct {
	Name           string `validate:"required,min=1,max=150"`
	PracticeNumber string `validate:"required,min=1,max=50"`
	ContactNumber  string `validate:"omitempty,max=30"`
}

// Prescription entity. The header of a submitted script; its line items are
// PrescriptionMedication rows.
type Prescription struct {
	ID              string             `validate:"required,uuid4"`
	PatientID       string             `validate:"required,uuid4"`
	Doctor          PrescriptionDoctor `validate:"required"`
	Status          string             `validate:"required,oneof=submitted under_review approved dispensed renewal_requested transferred rejected"`
	SourcePharmacy  string             `validate:"omitempty,max=150"`
	TargetPharmacy  string             `validate:"omitempty,max=150"`
	Notes           string             `validate:"max=2000"`
	Medications     []*PrescriptionMedication
	DateTimeCreated time.Time
	DateTimeUpdated time.Time
}

// Validate for validating Prescription struct
func (p *Prescription) Validate() error {
	validate := validator.New()

	err := validate.Struct(p)
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

	if len(p.Medications) == 0 {
		return fmt.Errorf("prescription must contain at least one medication")
	}
	for _, medication := range p.Medications {
		if err := medication.Validate(); err != nil {
			return fmt.Errorf("medication %q: %w", medication.Name, err)
		}
	}

	return nil
}

// PrescriptionMedication entity. One line item of a prescription.
type PrescriptionMedication struct {
	ID             string `validate:"required,uuid4"`
	PrescriptionID string `validate:"required,uuid4"`
	Name           string `validate:"required,min=1,max=255"`
	Dosage         string `validate:"required,min=1,max=50"`
	Quantity       int    `validate:"required,min=1"`
	Repeats        int    `validate:"min=0,max=12"`
	Instructions   string `validate:"max=500"`
}

// Validate for validating PrescriptionMedication struct
func (m *PrescriptionMedication) Validate() error {
	validate := validator.New()

	err := validate.Struct(m)
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

// EmergencyContact entity. Priority 1 is the primary contact; a patient has at
// most one primary at a time.
type EmergencyContact struct {
	ID              string `validate:"required,uuid4"`
	PatientID       string `validate:"required,uuid4"`
	Name            string `validate:"required,min=1,max=150"`
	Relationship    string `validate:"required,min=1,max=50"`
	PhoneNumber     string `validate:"required,max=30"`
	Email           string `validate:"omitempty,email"`
	Priority        int    `validate:"required,min=1,max=10"`
	DateTimeCreated time.Time
}

// Validate for validating EmergencyContact struct
func (c *EmergencyContact) Validate() error {
	validate := validator.New()

	err := validate.Struct(c)
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

// PrescriptionQuery filters prescription listings.
type PrescriptionQuery struct {
	PatientID string `validate:"omitempty,uuid4"`
	Status    string `validate:"omitempty,oneof=submitted under_review approved dispensed renewal_requested transferred rejected"`
	Limit     int    `validate:"min=0,max=500"`
	Offset    int    `validate:"min=0"`
}

// NewPrescriptionQuery creates a PrescriptionQuery with default paging.
func NewPrescriptionQuery() *PrescriptionQuery {
	return &PrescriptionQuery{Limit: 100}
}

// Validate for validating PrescriptionQuery struct
func (q *PrescriptionQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid query parameters: %w", err)
	}

	return nil
}
