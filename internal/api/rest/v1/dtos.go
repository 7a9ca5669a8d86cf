package v1

import (
	"errors"
	"fmt"
	"time"

	"medguard_service/internal/domain/medications"
	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/domain/prescriptions"
	"medguard_service/internal/domain/pwa"
	"medguard_service/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the JSON body returned on any handler error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse is the JSON body returned for operations without a resource body.
type InfoResponse struct {
	Message string `json:"message"`
}

func validateStruct(s interface{}) error {
	validate := validator.New()

	if err := validate.RegisterValidation("channel", validators.ChannelValidation); err != nil {
		return fmt.Errorf("failed to register channel validation: %w", err)
	}
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

	return nil
}

// CreateScheduleRequest is the body for creating or replacing a medication schedule.
type CreateScheduleRequest struct {
	PatientID      string     `json:"patient_id" validate:"required,uuid4"`
	MedicationName string     `json:"medication_name" validate:"required,min=1,max=255"`
	Dosage         string     `json:"dosage" validate:"required,min=1,max=50"`
	DoseUnit       string     `json:"dose_unit" validate:"required,min=1,max=20"`
	Frequency      string     `json:"frequency" validate:"required,min=1,max=50"`
	TimesOfDay     []string   `json:"times_of_day" validate:"required,min=1,dive,clock"`
	StartDate      time.Time  `json:"start_date" validate:"required"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Timezone       string     `json:"timezone" validate:"required"`
}

// Validate for validating CreateScheduleRequest struct
func (r *CreateScheduleRequest) Validate() error {
	return validateStruct(r)
}

// ToDomain maps the request into a MedicationSchedule entity.
func (r *CreateScheduleRequest) ToDomain() *medications.MedicationSchedule {
	return &medications.MedicationSchedule{
		PatientID:      r.PatientID,
		MedicationName: r.MedicationName,
		Dosage:         r.Dosage,
		DoseUnit:       r.DoseUnit,
		Frequency:      r.Frequency,
		TimesOfDay:     r.TimesOfDay,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Active:         true,
		Timezone:       r.Timezone,
	}
}

// ScheduleResponse is the JSON shape of a medication schedule.
type ScheduleResponse struct {
	ID              string     `json:"id"`
	PatientID       string     `json:"patient_id"`
	MedicationName  string     `json:"medication_name"`
	Dosage          string     `json:"dosage"`
	DoseUnit        string     `json:"dose_unit"`
	Frequency       string     `json:"frequency"`
	TimesOfDay      []string   `json:"times_of_day"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Active          bool       `json:"active"`
	Timezone        string     `json:"timezone"`
	DateTimeCreated time.Time  `json:"date_time_created"`
}

func newScheduleResponse(schedule *medications.MedicationSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:              schedule.ID,
		PatientID:       schedule.PatientID,
		MedicationName:  schedule.MedicationName,
		Dosage:          schedule.Dosage,
		DoseUnit:        schedule.DoseUnit,
		Frequency:       schedule.Frequency,
		TimesOfDay:      schedule.TimesOfDay,
		StartDate:       schedule.StartDate,
		EndDate:         schedule.EndDate,
		Active:          schedule.Active,
		Timezone:        schedule.Timezone,
		DateTimeCreated: schedule.DateTimeCreated,
	}
}

// RecordDoseRequest is the body for recording one dose outcome.
type RecordDoseRequest struct {
	ScheduleID  string    `json:"schedule_id" validate:"required,uuid4"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Status      string    `json:"status" validate:"required,oneof=taken missed skipped"`
	Notes       string    `json:"notes" validate:"max=1000"`
}

// Validate for validating RecordDoseRequest struct
func (r *RecordDoseRequest) Validate() error {
	return validateStruct(r)
}

// DoseLogResponse is the JSON shape of a dose log row.
type DoseLogResponse struct {
	ID          string    `json:"id"`
	ScheduleID  string    `json:"schedule_id"`
	PatientID   string    `json:"patient_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	RecordedAt  time.Time `json:"recorded_at"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
}

func newDoseLogResponse(log *medications.MedicationLog) DoseLogResponse {
	return DoseLogResponse{
		ID:          log.ID,
		ScheduleID:  log.ScheduleID,
		PatientID:   log.PatientID,
		ScheduledAt: log.ScheduledAt,
		RecordedAt:  log.RecordedAt,
		Status:      log.Status,
		Notes:       log.Notes,
	}
}

// GenerateReportRequest is the body for generating an adherence report.
type GenerateReportRequest struct {
	PatientID   string    `json:"patient_id" validate:"required,uuid4"`
	PeriodStart time.Time `json:"period_start" validate:"required"`
	PeriodEnd   time.Time `json:"period_end" validate:"required"`
}

// Validate for validating GenerateReportRequest struct
func (r *GenerateReportRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if !r.PeriodEnd.After(r.PeriodStart) {
		return fmt.Errorf("period end %v must be after period start %v", r.PeriodEnd, r.PeriodStart)
	}
	return nil
}

// AdherenceReportResponse is the JSON shape of an adherence report.
type AdherenceReportResponse struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	PeriodStart     time.Time `json:"period_start"`
	PeriodEnd       time.Time `json:"period_end"`
	ScheduledDoses  int       `json:"scheduled_doses"`
	TakenDoses      int       `json:"taken_doses"`
	MissedDoses     int       `json:"missed_doses"`
	SkippedDoses    int       `json:"skipped_doses"`
	AdherenceRate   float64   `json:"adherence_rate"`
	Status          string    `json:"status"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

func newAdherenceReportResponse(report *medications.AdherenceReport) AdherenceReportResponse {
	return AdherenceReportResponse{
		ID:              report.ID,
		PatientID:       report.PatientID,
		PeriodStart:     report.PeriodStart,
		PeriodEnd:       report.PeriodEnd,
		ScheduledDoses:  report.ScheduledDoses,
		TakenDoses:      report.TakenDoses,
		MissedDoses:     report.MissedDoses,
		SkippedDoses:    report.SkippedDoses,
		AdherenceRate:   report.AdherenceRate,
		Status:          string(report.Status),
		DateTimeCreated: report.DateTimeCreated,
	}
}

// DispatchNotificationRequest is the body for dispatching one notification.
type DispatchNotificationRequest struct {
	UserID           string            `json:"user_id" validate:"required,uuid4"`
	Title            string            `json:"title" validate:"required,min=1,max=255"`
	Body             string            `json:"body" validate:"required,min=1,max=4000"`
	NotificationType string            `json:"notification_type" validate:"required,oneof=reminder refill appointment system emergency"`
	Priority         string            `json:"priority" validate:"required,oneof=low normal high urgent"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	Channels         []string          `json:"channels,omitempty" validate:"omitempty,dive,channel"`
}

// Validate for validating DispatchNotificationRequest struct
func (r *DispatchNotificationRequest) Validate() error {
	return validateStruct(r)
}

// DispatchResponse reports the per-channel outcome of a dispatch.
type DispatchResponse struct {
	UserID   string            `json:"user_id"`
	Outcomes map[string]string `json:"outcomes"`
}

// InboxItemResponse is the JSON shape of one in-app inbox row.
type InboxItemResponse struct {
	ID              string     `json:"id"`
	NotificationID  string     `json:"notification_id"`
	Channel         string     `json:"channel"`
	Status          string     `json:"status"`
	Read            bool       `json:"read"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
	DateTimeCreated time.Time  `json:"date_time_created"`
}

func newInboxItemResponse(row *notifications.UserNotification) InboxItemResponse {
	return InboxItemResponse{
		ID:              row.ID,
		NotificationID:  row.NotificationID,
		Channel:         row.Channel,
		Status:          row.Status,
		Read:            row.Read,
		ReadAt:          row.ReadAt,
		DateTimeCreated: row.DateTimeCreated,
	}
}

// UnreadCountResponse carries a user's unread in-app notification count.
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// UpdatePreferencesRequest is the body for replacing a user's channel preferences.
type UpdatePreferencesRequest struct {
	EmailEnabled    bool   `json:"email_enabled"`
	PushEnabled     bool   `json:"push_enabled"`
	SMSEnabled      bool   `json:"sms_enabled"`
	InAppEnabled    bool   `json:"inapp_enabled"`
	EmailAddress    string `json:"email_address" validate:"omitempty,email"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,e164"`
	QuietHoursStart string `json:"quiet_hours_start" validate:"omitempty,clock"`
	QuietHoursEnd   string `json:"quiet_hours_end" validate:"omitempty,clock"`
	Timezone        string `json:"timezone" validate:"omitempty,timezone"`
}

// Validate for validating UpdatePreferencesRequest struct
func (r *UpdatePreferencesRequest) Validate() error {
	return validateStruct(r)
}

// PreferencesResponse is the JSON shape of a user's channel preferences.
type PreferencesResponse struct {
	UserID          string `json:"user_id"`
	EmailEnabled    bool   `json:"email_enabled"`
	PushEnabled     bool   `json:"push_enabled"`
	SMSEnabled      bool   `json:"sms_enabled"`
	InAppEnabled    bool   `json:"inapp_enabled"`
	EmailAddress    string `json:"email_address,omitempty"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	QuietHoursStart string `json:"quiet_hours_start,omitempty"`
	QuietHoursEnd   string `json:"quiet_hours_end,omitempty"`
	Timezone        string `json:"timezone,omitempty"`
}

func newPreferencesResponse(prefs *notifications.UserNotificationPreferences) PreferencesResponse {
	return PreferencesResponse{
		UserID:          prefs.UserID,
		EmailEnabled:    prefs.EmailEnabled,
		PushEnabled:     prefs.PushEnabled,
		SMSEnabled:      prefs.SMSEnabled,
		InAppEnabled:    prefs.InAppEnabled,
		EmailAddress:    prefs.EmailAddress,
		PhoneNumber:     prefs.PhoneNumber,
		QuietHoursStart: prefs.QuietHoursStart,
		QuietHoursEnd:   prefs.QuietHoursEnd,
		Timezone:        prefs.Timezone,
	}
}

// RegisterPatientRequest is the body for registering a patient.
type RegisterPatientRequest struct {
	FirstName        string    `json:"first_name" validate:"required,min=1,max=100"`
	LastName         string    `json:"last_name" validate:"required,min=1,max=100"`
	Email            string    `json:"email" validate:"required,email"`
	PhoneNumber      string    `json:"phone_number" validate:"omitempty,e164"`
	DateOfBirth      time.Time `json:"date_of_birth" validate:"required"`
	MedicalAidNumber string    `json:"medical_aid_number" validate:"omitempty,max=50"`
}

// Validate for validating RegisterPatientRequest struct
func (r *RegisterPatientRequest) Validate() error {
	return validateStruct(r)
}

// PatientResponse is the JSON shape of a registered patient.
type PatientResponse struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	DateOfBirth      time.Time `json:"date_of_birth"`
	MedicalAidNumber string    `json:"medical_aid_number,omitempty"`
	DateTimeCreated  time.Time `json:"date_time_created"`
}

func newPatientResponse(patient *prescriptions.PrescriptionPatient) PatientResponse {
	return PatientResponse{
		ID:               patient.ID,
		FirstName:        patient.FirstName,
		LastName:         patient.LastName,
		Email:            patient.Email,
		PhoneNumber:      patient.PhoneNumber,
		DateOfBirth:      patient.DateOfBirth,
		MedicalAidNumber: patient.MedicalAidNumber,
		DateTimeCreated:  patient.DateTimeCreated,
	}
}

// SubmitMedicationRequest is one line item of a prescription submission.
type SubmitMedicationRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=255"`
	Dosage       string `json:"dosage" validate:"required,min=1,max=50"`
	Quantity     int    `json:"quantity" validate:"required,min=1"`
	Repeats      int    `json:"repeats" validate:"min=0,max=12"`
	Instructions string `json:"instructions" validate:"max=500"`
}

// SubmitPrescriptionRequest is the body for submitting a prescription.
type SubmitPrescriptionRequest struct {
	PatientID            string                    `json:"patient_id" validate:"required,uuid4"`
	DoctorName           string                    `json:"doctor_name" validate:"required,min=1,max=150"`
	DoctorPracticeNumber string                    `json:"doctor_practice_number" validate:"required,min=1,max=50"`
	DoctorContactNumber  string                    `json:"doctor_contact_number" validate:"omitempty,max=30"`
	SourcePharmacy       string                    `json:"source_pharmacy" validate:"omitempty,max=150"`
	Notes                string                    `json:"notes" validate:"max=2000"`
	Medications          []SubmitMedicationRequest `json:"medications" validate:"required,min=1,dive"`
}

// Validate for validating SubmitPrescriptionRequest struct
func (r *SubmitPrescriptionRequest) Validate() error {
	return validateStruct(r)
}

// ToDomain maps the request into a Prescription entity.
func (r *SubmitPrescriptionRequest) ToDomain() *prescriptions.Prescription {
	prescription := &prescriptions.Prescription{
		PatientID: r.PatientID,
		Doctor: prescriptions.PrescriptionDoctor{
			Name:           r.DoctorName,
			PracticeNumber: r.DoctorPracticeNumber,
			ContactNumber:  r.DoctorContactNumber,
		},
		SourcePharmacy: r.SourcePharmacy,
		Notes:          r.Notes,
	}
	for _, medication := range r.Medications {
		prescription.Medications = append(prescription.Medications, &prescriptions.PrescriptionMedication{
			Name:         medication.Name,
			Dosage:       medication.Dosage,
			Quantity:     medication.Quantity,
			Repeats:      medication.Repeats,
			Instructions: medication.Instructions,
		})
	}
	return prescription
}

// UpdatePrescriptionStatusRequest is the body for a lifecycle transition.
type UpdatePrescriptionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=submitted under_review approved dispensed renewal_requested transferred rejected"`
}

// Validate for validating UpdatePrescriptionStatusRequest struct
func (r *UpdatePrescriptionStatusRequest) Validate() error {
	return validateStruct(r)
}

// TransferPrescriptionRequest is the body for moving a script to another pharmacy.
type TransferPrescriptionRequest struct {
	SourcePharmacy string `json:"source_pharmacy" validate:"omitempty,max=150"`
	TargetPharmacy string `json:"target_pharmacy" validate:"required,min=1,max=150"`
}

// Validate for validating TransferPrescriptionRequest struct
func (r *TransferPrescriptionRequest) Validate() error {
	return validateStruct(r)
}

// PrescriptionMedicationResponse is the JSON shape of one prescription line item.
type PrescriptionMedicationResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Quantity     int    `json:"quantity"`
	Repeats      int    `json:"repeats"`
	Instructions string `json:"instructions,omitempty"`
}

// PrescriptionResponse is the JSON shape of a prescription with its medications.
type PrescriptionResponse struct {
	ID                   string                           `json:"id"`
	PatientID            string                           `json:"patient_id"`
	DoctorName           string                           `json:"doctor_name"`
	DoctorPracticeNumber string                           `json:"doctor_practice_number"`
	DoctorContactNumber  string                           `json:"doctor_contact_number,omitempty"`
	Status               string                           `json:"status"`
	SourcePharmacy       string                           `json:"source_pharmacy,omitempty"`
	TargetPharmacy       string                           `json:"target_pharmacy,omitempty"`
	Notes                string                           `json:"notes,omitempty"`
	Medications          []PrescriptionMedicationResponse `json:"medications"`
	DateTimeCreated      time.Time                        `json:"date_time_created"`
	DateTimeUpdated      time.Time                        `json:"date_time_updated"`
}

func newPrescriptionResponse(prescription *prescriptions.Prescription) PrescriptionResponse {
	response := PrescriptionResponse{
		ID:                   prescription.ID,
		PatientID:            prescription.PatientID,
		DoctorName:           prescription.Doctor.Name,
		DoctorPracticeNumber: prescription.Doctor.PracticeNumber,
		DoctorContactNumber:  prescription.Doctor.ContactNumber,
		Status:               prescription.Status,
		SourcePharmacy:       prescription.SourcePharmacy,
		TargetPharmacy:       prescription.TargetPharmacy,
		Notes:                prescription.Notes,
		Medications:          []PrescriptionMedicationResponse{},
		DateTimeCreated:      prescription.DateTimeCreated,
		DateTimeUpdated:      prescription.DateTimeUpdated,
	}
	for _, medication := range prescription.Medications {
		response.Medications = append(response.Medications, PrescriptionMedicationResponse{
			ID:           medication.ID,
			Name:         medication.Name,
			Dosage:       medication.Dosage,
			Quantity:     medication.Quantity,
			Repeats:      medication.Repeats,
			Instructions: medication.Instructions,
		})
	}
	return response
}

// EmergencyContactRequest is the body for creating or replacing an emergency contact.
type EmergencyContactRequest struct {
	PatientID    string `json:"patient_id" validate:"required,uuid4"`
	Name         string `json:"name" validate:"required,min=1,max=150"`
	Relationship string `json:"relationship" validate:"required,min=1,max=50"`
	PhoneNumber  string `json:"phone_number" validate:"required,max=30"`
	Email        string `json:"email" validate:"omitempty,email"`
	Priority     int    `json:"priority" validate:"required,min=1,max=10"`
}

// Validate for validating EmergencyContactRequest struct
func (r *EmergencyContactRequest) Validate() error {
	return validateStruct(r)
}

// EmergencyContactResponse is the JSON shape of an emergency contact.
type EmergencyContactResponse struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	Name            string    `json:"name"`
	Relationship    string    `json:"relationship"`
	PhoneNumber     string    `json:"phone_number"`
	Email           string    `json:"email,omitempty"`
	Priority        int       `json:"priority"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

func newEmergencyContactResponse(contact *prescriptions.EmergencyContact) EmergencyContactResponse {
	return EmergencyContactResponse{
		ID:              contact.ID,
		PatientID:       contact.PatientID,
		Name:            contact.Name,
		Relationship:    contact.Relationship,
		PhoneNumber:     contact.PhoneNumber,
		Email:           contact.Email,
		Priority:        contact.Priority,
		DateTimeCreated: contact.DateTimeCreated,
	}
}

// SubscribeRequest is the body for registering a browser push subscription.
type SubscribeRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid4"`
	Endpoint   string `json:"endpoint" validate:"required,url"`
	P256dh     string `json:"p256dh" validate:"required"`
	Auth       string `json:"auth" validate:"required"`
	DeviceName string `json:"device_name" validate:"max=100"`
}

// Validate for validating SubscribeRequest struct
func (r *SubscribeRequest) Validate() error {
	return validateStruct(r)
}

// RegisterDeviceRequest is the body for registering a native FCM device.
type RegisterDeviceRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid4"`
	FCMToken   string `json:"fcm_token" validate:"required"`
	DeviceType string `json:"device_type" validate:"required,oneof=android ios web"`
}

// Validate for validating RegisterDeviceRequest struct
func (r *RegisterDeviceRequest) Validate() error {
	return validateStruct(r)
}

// SubscriptionResponse is the JSON shape of a stored push subscription.
type SubscriptionResponse struct {
	ID              string    `json:"id"`
	Endpoint        string    `json:"endpoint"`
	DeviceName      string    `json:"device_name,omitempty"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

func newSubscriptionResponse(subscription *pwa.PushSubscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:              subscription.ID,
		Endpoint:        subscription.Endpoint,
		DeviceName:      subscription.DeviceName,
		DateTimeCreated: subscription.DateTimeCreated,
	}
}

// DeviceResponse is the JSON shape of a registered native device.
type DeviceResponse struct {
	ID           string    `json:"id"`
	DeviceType   string    `json:"device_type"`
	LastActiveAt time.Time `json:"last_active_at"`
}

func newDeviceResponse(device *pwa.UserDevice) DeviceResponse {
	return DeviceResponse{
		ID:           device.ID,
		DeviceType:   device.DeviceType,
		LastActiveAt: device.LastActiveAt,
	}
}

// SyncItemRequest is one offline change in a sync batch.
type SyncItemRequest struct {
	Resource        string    `json:"resource" validate:"required,min=1,max=50"`
	ResourceID      string    `json:"resource_id" validate:"required,min=1,max=64"`
	Payload         string    `json:"payload" validate:"required"`
	ClientTimestamp time.Time `json:"client_timestamp" validate:"required"`
}

// SyncRequest is the body for applying a batch of offline changes.
type SyncRequest struct {
	UserID string            `json:"user_id" validate:"required,uuid4"`
	Items  []SyncItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Validate for validating SyncRequest struct
func (r *SyncRequest) Validate() error {
	return validateStruct(r)
}

// SyncItemResponse reports what happened to one synced change.
type SyncItemResponse struct {
	ResourceID string `json:"resource_id"`
	Applied    bool   `json:"applied"`
	Reason     string `json:"reason,omitempty"`
}

// UpdateSettingsRequest is the body for replacing a user's PWA settings.
type UpdateSettingsRequest struct {
	OfflineEnabled bool   `json:"offline_enabled"`
	SyncIntervalS  int    `json:"sync_interval_s" validate:"min=30,max=86400"`
	ThemeColor     string `json:"theme_color" validate:"omitempty,hexcolor"`
}

// Validate for validating UpdateSettingsRequest struct
func (r *UpdateSettingsRequest) Validate() error {
	return validateStruct(r)
}

// SettingsResponse is the JSON shape of a user's PWA settings.
type SettingsResponse struct {
	UserID         string `json:"user_id"`
	OfflineEnabled bool   `json:"offline_enabled"`
	SyncIntervalS  int    `json:"sync_interval_s"`
	ThemeColor     string `json:"theme_color"`
}

func newSettingsResponse(settings *pwa.PWASettings) SettingsResponse {
	return SettingsResponse{
		UserID:         settings.UserID,
		OfflineEnabled: settings.OfflineEnabled,
		SyncIntervalS:  settings.SyncIntervalS,
		ThemeColor:     settings.ThemeColor,
	}
}
