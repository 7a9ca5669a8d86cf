//go:build unit
// +build unit

package v1

import (
	"context"
	"time"

	"medguard_service/internal/domain/medications"
	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/domain/prescriptions"
	"medguard_service/internal/domain/pwa"

	"github.com/stretchr/testify/mock"
)

// MockScheduleService is a mock implementation of ScheduleService
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) Create(ctx context.Context, schedule *medications.MedicationSchedule) (*medications.MedicationSchedule, error) {
	args := m.Called(ctx, schedule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medications.MedicationSchedule), args.Error(1)
}

func (m *MockScheduleService) List(ctx context.Context, query *medications.ScheduleQuery) ([]*medications.MedicationSchedule, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*medications.MedicationSchedule), args.Error(1)
}

func (m *MockScheduleService) GetByID(ctx context.Context, scheduleID string) (*medications.MedicationSchedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medications.MedicationSchedule), args.Error(1)
}

func (m *MockScheduleService) UpdateByID(ctx context.Context, schedule *medications.MedicationSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleService) DeleteByID(ctx context.Context, scheduleID string) error {
	args := m.Called(ctx, scheduleID)
	return args.Error(0)
}

// MockDoseLogService is a mock implementation of DoseLogService
type MockDoseLogService struct {
	mock.Mock
}

func (m *MockDoseLogService) Record(ctx context.Context, log *medications.MedicationLog) (*medications.MedicationLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medications.MedicationLog), args.Error(1)
}

func (m *MockDoseLogService) List(ctx context.Context, query *medications.LogQuery) ([]*medications.MedicationLog, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*medications.MedicationLog), args.Error(1)
}

// MockAdherenceService is a mock implementation of AdherenceService
type MockAdherenceService struct {
	mock.Mock
}

func (m *MockAdherenceService) GenerateReport(ctx context.Context, patientID string, periodStart, periodEnd time.Time) (*medications.AdherenceReport, error) {
	args := m.Called(ctx, patientID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medications.AdherenceReport), args.Error(1)
}

func (m *MockAdherenceService) ListReports(ctx context.Context, query *medications.ReportQuery) ([]*medications.AdherenceReport, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*medications.AdherenceReport), args.Error(1)
}

// MockDispatchService is a mock implementation of DispatchService
type MockDispatchService struct {
	mock.Mock
}

func (m *MockDispatchService) Dispatch(ctx context.Context, request *notifications.DispatchRequest) (*notifications.DispatchResult, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.DispatchResult), args.Error(1)
}

// MockInboxService is a mock implementation of InboxService
type MockInboxService struct {
	mock.Mock
}

func (m *MockInboxService) List(ctx context.Context, query *notifications.InboxQuery) ([]*notifications.UserNotification, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notifications.UserNotification), args.Error(1)
}

func (m *MockInboxService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInboxService) MarkRead(ctx context.Context, userID, userNotificationID string) error {
	args := m.Called(ctx, userID, userNotificationID)
	return args.Error(0)
}

func (m *MockInboxService) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockPreferencesService is a mock implementation of PreferencesService
type MockPreferencesService struct {
	mock.Mock
}

func (m *MockPreferencesService) Get(ctx context.Context, userID string) (*notifications.UserNotificationPreferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.UserNotificationPreferences), args.Error(1)
}

func (m *MockPreferencesService) Update(ctx context.Context, prefs *notifications.UserNotificationPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

// MockPatientService is a mock implementation of PatientService
type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) Register(ctx context.Context, patient *prescriptions.PrescriptionPatient) (*prescriptions.PrescriptionPatient, error) {
	args := m.Called(ctx, patient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescriptions.PrescriptionPatient), args.Error(1)
}

func (m *MockPatientService) GetByID(ctx context.Context, patientID string) (*prescriptions.PrescriptionPatient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescriptions.PrescriptionPatient), args.Error(1)
}

// MockPrescriptionService is a mock implementation of PrescriptionService
type MockPrescriptionService struct {
	mock.Mock
}

func (m *MockPrescriptionService) Submit(ctx context.Context, prescription *prescriptions.Prescription) (*prescriptions.Prescription, error) {
	args := m.Called(ctx, prescription)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescriptions.Prescription), args.Error(1)
}

func (m *MockPrescriptionService) List(ctx context.Context, query *prescriptions.PrescriptionQuery) ([]*prescriptions.Prescription, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*prescriptions.Prescription), args.Error(1)
}

func (m *MockPrescriptionService) GetByID(ctx context.Context, prescriptionID string) (*prescriptions.Prescription, error) {
	args := m.Called(ctx, prescriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescriptions.Prescription), args.Error(1)
}

func (m *MockPrescriptionService) UpdateStatus(ctx context.Context, prescriptionID, status string) (*prescriptions.Prescription, error) {
	args := m.Called(ctx, prescriptionID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescriptions.Prescription), args.Error(1)
}

func (m *MockPrescriptionService) RequestRenewal(ctx context.Context, prescriptionID string) (*prescriptions.Prescription, error) {
	args := m.Called(ctx, prescriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescriptions.Prescription), args.Error(1)
}

func (m *MockPrescriptionService) RequestTransfer(ctx context.Context, prescriptionID, sourcePharmacy, targetPharmacy string) (*prescriptions.Prescription, error) {
	args := m.Called(ctx, prescriptionID, sourcePharmacy, targetPharmacy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescriptions.Prescription), args.Error(1)
}

// MockEmergencyContactService is a mock implementation of EmergencyContactService
type MockEmergencyContactService struct {
	mock.Mock
}

func (m *MockEmergencyContactService) Create(ctx context.Context, contact *prescriptions.EmergencyContact) (*prescriptions.EmergencyContact, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescriptions.EmergencyContact), args.Error(1)
}

func (m *MockEmergencyContactService) ListByPatient(ctx context.Context, patientID string) ([]*prescriptions.EmergencyContact, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*prescriptions.EmergencyContact), args.Error(1)
}

func (m *MockEmergencyContactService) UpdateByID(ctx context.Context, contact *prescriptions.EmergencyContact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockEmergencyContactService) DeleteByID(ctx context.Context, contactID string) error {
	args := m.Called(ctx, contactID)
	return args.Error(0)
}

// MockSubscriptionService is a mock implementation of SubscriptionService
type MockSubscriptionService struct {
	mock.Mock
}

func (m *MockSubscriptionService) Subscribe(ctx context.Context, subscription *pwa.PushSubscription) (*pwa.PushSubscription, error) {
	args := m.Called(ctx, subscription)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pwa.PushSubscription), args.Error(1)
}

func (m *MockSubscriptionService) Unsubscribe(ctx context.Context, endpoint string) error {
	args := m.Called(ctx, endpoint)
	return args.Error(0)
}

func (m *MockSubscriptionService) RegisterDevice(ctx context.Context, device *pwa.UserDevice) (*pwa.UserDevice, error) {
	args := m.Called(ctx, device)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pwa.UserDevice), args.Error(1)
}

func (m *MockSubscriptionService) ListForUser(ctx context.Context, userID string) ([]*pwa.PushSubscription, []*pwa.UserDevice, error) {
	args := m.Called(ctx, userID)
	var subscriptions []*pwa.PushSubscription
	var devices []*pwa.UserDevice
	if args.Get(0) != nil {
		subscriptions = args.Get(0).([]*pwa.PushSubscription)
	}
	if args.Get(1) != nil {
		devices = args.Get(1).([]*pwa.UserDevice)
	}
	return subscriptions, devices, args.Error(2)
}

// MockSyncService is a mock implementation of SyncService
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) Sync(ctx context.Context, userID string, items []*pwa.OfflineData) ([]*pwa.SyncItemResult, error) {
	args := m.Called(ctx, userID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pwa.SyncItemResult), args.Error(1)
}

// MockSettingsService is a mock implementation of SettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, userID string) (*pwa.PWASettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pwa.PWASettings), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, settings *pwa.PWASettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
