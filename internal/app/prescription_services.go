package app

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/domain/prescriptions"
	"medguard_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// patientService implements the PatientService interface
type patientService struct {
	patientRepo prescriptions.PatientRepository
	logger      logger.Logger
}

// NewPatientService creates a new instance of PatientService
func NewPatientService(
	patientRepo prescriptions.PatientRepository,
	logger logger.Logger,
) (prescriptions.PatientService, error) {
	return &patientService{
		patientRepo: patientRepo,
		logger:      logger,
	}, nil
}

// Register creates a patient. The email address must be unique.
func (s *patientService) Register(ctx context.Context, patient *prescriptions.PrescriptionPatient) (*prescriptions.PrescriptionPatient, error) {
	if existing, err := s.patientRepo.GetByEmail(ctx, patient.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("a patient with email %s already exists", patient.Email)
	}

	if patient.ID == "" {
		patient.ID = uuid.NewString()
	}
	patient.DateTimeCreated = time.Now()

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}

	s.logger.Info("Registered patient with id ", patient.ID)
	return patient, nil
}

func (s *patientService) GetByID(ctx context.Context, patientID string) (*prescriptions.PrescriptionPatient, error) {
	return s.patientRepo.GetByID(ctx, patientID)
}

// prescriptionService implements the PrescriptionService interface
type prescriptionService struct {
	prescriptionRepo prescriptions.PrescriptionRepository
	patientRepo      prescriptions.PatientRepository
	dispatcher       notifications.DispatchService
	logger           logger.Logger
}

// NewPrescriptionService creates a new instance of PrescriptionService
func NewPrescriptionService(
	prescriptionRepo prescriptions.PrescriptionRepository,
	patientRepo prescriptions.PatientRepository,
	dispatcher notifications.DispatchService,
	logger logger.Logger,
) (prescriptions.PrescriptionService, error) {
	return &prescriptionService{
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		dispatcher:       dispatcher,
		logger:           logger,
	}, nil
}

// Submit stores a new prescription with its medications in status submitted,
// and notifies the patient.
func (s *prescriptionService) Submit(ctx context.Context, prescription *prescriptions.Prescription) (*prescriptions.Prescription, error) {
	if _, err := s.patientRepo.GetByID(ctx, prescription.PatientID); err != nil {
		return nil, fmt.Errorf("failed to resolve patient: %w", err)
	}

	if prescription.ID == "" {
		prescription.ID = uuid.NewString()
	}
	prescription.Status = prescriptions.StatusSubmitted
	prescription.DateTimeCreated = time.Now()
	prescription.DateTimeUpdated = prescription.DateTimeCreated

	for _, medication := range prescription.Medications {
		if medication.ID == "" {
			medication.ID = uuid.NewString()
		}
		medication.PrescriptionID = prescription.ID
	}

	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to submit prescription: %w", err)
	}

	s.notify(ctx, prescription.PatientID, "Prescription received",
		fmt.Sprintf("Your prescription from %s with %d medication(s) was received and is awaiting review.",
			prescription.Doctor.Name, len(prescription.Medications)))

	s.logger.Info("Submitted prescription with id ", prescription.ID)
	return prescription, nil
}

func (s *prescriptionService) List(ctx context.Context, query *prescriptions.PrescriptionQuery) ([]*prescriptions.Prescription, error) {
	return s.prescriptionRepo.List(ctx, query)
}

func (s *prescriptionService) GetByID(ctx context.Context, prescriptionID string) (*prescriptions.Prescription, error) {
	return s.prescriptionRepo.GetByID(ctx, prescriptionID)
}

// UpdateStatus applies a lifecycle transition.
func (s *prescriptionService) UpdateStatus(ctx context.Context, prescriptionID, status string) (*prescriptions.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetByID(ctx, prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prescription: %w", err)
	}

	if err := prescription.Transition(status); err != nil {
		return nil, err
	}
	prescription.DateTimeUpdated = time.Now()

	if err := s.prescriptionRepo.UpdateByID(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to update prescription: %w", err)
	}

	s.notify(ctx, prescription.PatientID, "Prescription status updated",
		fmt.Sprintf("Your prescription is now %s.", status))

	s.logger.Info("Prescription ", prescriptionID, " moved to status ", status)
	return prescription, nil
}

// RequestRenewal moves an approved or dispensed prescription into
// renewal_requested and notifies the patient.
func (s *prescriptionService) RequestRenewal(ctx context.Context, prescriptionID string) (*prescriptions.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetByID(ctx, prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prescription: %w", err)
	}

	if err := prescription.Transition(prescriptions.StatusRenewalRequested); err != nil {
		return nil, err
	}
	prescription.DateTimeUpdated = time.Now()

	if err := s.prescriptionRepo.UpdateByID(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to update prescription: %w", err)
	}

	s.notify(ctx, prescription.PatientID, "Renewal requested",
		"Your prescription renewal request was received and is awaiting your doctor's approval.")

	s.logger.Info("Renewal requested for prescription ", prescriptionID)
	return prescription, nil
}

// RequestTransfer moves the prescription to another pharmacy and notifies the
// patient.
func (s *prescriptionService) RequestTransfer(ctx context.Context, prescriptionID, sourcePharmacy, targetPharmacy string) (*prescriptions.Prescription, error) {
	if targetPharmacy == "" {
		return nil, fmt.Errorf("target pharmacy is required")
	}

	prescription, err := s.prescriptionRepo.GetByID(ctx, prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prescription: %w", err)
	}

	if err := prescription.Transition(prescriptions.StatusTransferred); err != nil {
		return nil, err
	}
	prescription.SourcePharmacy = sourcePharmacy
	prescription.TargetPharmacy = targetPharmacy
	prescription.DateTimeUpdated = time.Now()

	if err := s.prescriptionRepo.UpdateByID(ctx, prescription); err != nil {
		return nil, fmt.Errorf("failed to update prescription: %w", err)
	}

	s.notify(ctx, prescription.PatientID, "Prescription transferred",
		fmt.Sprintf("Your prescription was transferred to %s.", targetPharmacy))

	s.logger.Info("Prescription ", prescriptionID, " transferred to ", targetPharmacy)
	return prescription, nil
}

// notify sends a system notification; a delivery problem never fails the
// prescription operation that triggered it.
func (s *prescriptionService) notify(ctx context.Context, patientID, title, body string) {
	if s.dispatcher == nil {
		return
	}

	_, err := s.dispatcher.Dispatch(ctx, &notifications.DispatchRequest{
		UserID: patientID,
		Notification: &notifications.Notification{
			ID:               uuid.NewString(),
			Title:            title,
			Body:             body,
			NotificationType: notifications.TypeSystem,
			Priority:         notifications.PriorityNormal,
			DateTimeCreated:  time.Now(),
		},
	})
	if err != nil {
		s.logger.Error("Failed to notify patient ", patientID, ": ", err)
	}
}

// emergencyContactService implements the EmergencyContactService interface
type emergencyContactService struct {
	contactRepo prescriptions.EmergencyContactRepository
	logger      logger.Logger
}

// NewEmergencyContactService creates a new instance of EmergencyContactService
func NewEmergencyContactService(
	contactRepo prescriptions.EmergencyContactRepository,
	logger logger.Logger,
) (prescriptions.EmergencyContactService, error) {
	return &emergencyContactService{
		contactRepo: contactRepo,
		logger:      logger,
	}, nil
}

// Create stores a contact. The repository demotes the previous primary when a
// new Priority 1 contact arrives.
func (s *emergencyContactService) Create(ctx context.Context, contact *prescriptions.EmergencyContact) (*prescriptions.EmergencyContact, error) {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	contact.DateTimeCreated = time.Now()

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create emergency contact: %w", err)
	}

	s.logger.Info("Created emergency contact with id ", contact.ID)
	return contact, nil
}

func (s *emergencyContactService) ListByPatient(ctx context.Context, patientID string) ([]*prescriptions.EmergencyContact, error) {
	return s.contactRepo.ListByPatient(ctx, patientID)
}

func (s *emergencyContactService) UpdateByID(ctx context.Context, contact *prescriptions.EmergencyContact) error {
	if err := s.contactRepo.UpdateByID(ctx, contact); err != nil {
		return fmt.Errorf("failed to update emergency contact: %w", err)
	}

	s.logger.Info("Updated emergency contact with id ", contact.ID)
	return nil
}

func (s *emergencyContactService) DeleteByID(ctx context.Context, contactID string) error {
	if err := s.contactRepo.DeleteByID(ctx, contactID); err != nil {
		return fmt.Errorf("failed to delete emergency contact: %w", err)
	}

	s.logger.Info("Deleted emergency contact with id ", contactID)
	return nil
}
