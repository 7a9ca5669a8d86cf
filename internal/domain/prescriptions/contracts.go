package prescriptions

import (
	"context"
)

// PatientService defines methods for patient registration and lookup.
type PatientService interface {
	// Register creates a patient. The email address must be unique.
	Register(ctx context.Context, patient *PrescriptionPatient) (*PrescriptionPatient, error)

	// GetByID retrieves a patient by its unique ID.
	GetByID(ctx context.Context, patientID string) (*PrescriptionPatient, error)
}

// PrescriptionService defines methods for the prescription lifecycle.
type PrescriptionService interface {
	// Submit stores a new prescription with its medications in status
	// submitted, and notifies the patient.
	Submit(ctx context.Context, prescription *Prescription) (*Prescription, error)

	// List retrieves prescriptions considering a query filter when set.
	List(ctx context.Context, query *PrescriptionQuery) ([]*Prescription, error)

	// GetByID retrieves a prescription with its medications.
	GetByID(ctx context.Context, prescriptionID string) (*Prescription, error)

	// UpdateStatus applies a lifecycle transition.
	UpdateStatus(ctx context.Context, prescriptionID, status string) (*Prescription, error)

	// RequestRenewal moves an approved or dispensed prescription into
	// renewal_requested and notifies the patient.
	RequestRenewal(ctx context.Context, prescriptionID string) (*Prescription, error)

	// RequestTransfer moves the prescription to another pharmacy and notifies
	// the patient.
	RequestTransfer(ctx context.Context, prescriptionID, sourcePharmacy, targetPharmacy string) (*Prescription, error)
}

// EmergencyContactService defines methods for a patient's emergency contacts.
type EmergencyContactService interface {
	// Create stores a contact. Creating a Priority 1 contact demotes the
	// previous primary to Priority 2.
	Create(ctx context.Context, contact *EmergencyContact) (*EmergencyContact, error)

	// ListByPatient returns a patient's contacts ordered by priority.
	ListByPatient(ctx context.Context, patientID string) ([]*EmergencyContact, error)

	// UpdateByID replaces a contact, applying the same primary demotion rule.
	UpdateByID(ctx context.Context, contact *EmergencyContact) error

	// DeleteByID removes a contact.
	DeleteByID(ctx context.Context, contactID string) error
}

// PatientRepository defines the interface for PrescriptionPatient persistence.
type PatientRepository interface {
	Create(ctx context.Context, patient *PrescriptionPatient) error
	GetByID(ctx context.Context, patientID string) (*PrescriptionPatient, error)
	GetByEmail(ctx context.Context, email string) (*PrescriptionPatient, error)
}

// PrescriptionRepository defines the interface for Prescription persistence.
// Implementations store the header and its medication rows atomically.
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *Prescription) error
	List(ctx context.Context, query *PrescriptionQuery) ([]*Prescription, error)
	GetByID(ctx context.Context, prescriptionID string) (*Prescription, error)
	UpdateByID(ctx context.Context, prescription *Prescription) error
}

// EmergencyContactRepository defines the interface for EmergencyContact persistence.
type EmergencyContactRepository interface {
	Create(ctx context.Context, contact *EmergencyContact) error
	ListByPatient(ctx context.Context, patientID string) ([]*EmergencyContact, error)
	GetByID(ctx context.Context, contactID string) (*EmergencyContact, error)
	UpdateByID(ctx context.Context, contact *EmergencyContact) error
	DeleteByID(ctx context.Context, contactID string) error
}
