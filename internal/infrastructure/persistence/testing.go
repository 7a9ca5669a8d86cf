//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"medguard_service/internal/domain/medications"
	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/domain/prescriptions"
	"medguard_service/internal/domain/pwa"
	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/pkg/config"
	pkgTesting "medguard_service/internal/pkg/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds the test database and repositories
type TestContext struct {
	DB                   *gorm.DB
	ScheduleRepo         medications.ScheduleRepository
	MedicationLogRepo    medications.MedicationLogRepository
	AdherenceReportRepo  medications.AdherenceReportRepository
	ReminderRepo         medications.ReminderRepository
	NotificationRepo     notifications.NotificationRepository
	UserNotificationRepo notifications.UserNotificationRepository
	PreferencesRepo      notifications.PreferencesRepository
	PatientRepo          prescriptions.PatientRepository
	PrescriptionRepo     prescriptions.PrescriptionRepository
	EmergencyContactRepo prescriptions.EmergencyContactRepository
	PushSubscriptionRepo pwa.PushSubscriptionRepository
	UserDeviceRepo       pwa.UserDeviceRepository
	PWASettingsRepo      pwa.PWASettingsRepository
	OfflineDataRepo      pwa.OfflineDataRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	// Create connection
	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	// Register cleanup
	t.Cleanup(func() {
		CloseDB(db)
		cleanupFunc()
	})

	// Migrate schema
	err = db.AutoMigrate(
		&models.MedicationScheduleModel{},
		&models.MedicationLogModel{},
		&models.AdherenceReportModel{},
		&models.MedicationReminderModel{},
		&models.NotificationModel{},
		&models.UserNotificationModel{},
		&models.UserNotificationPreferencesModel{},
		&models.PrescriptionPatientModel{},
		&models.PrescriptionModel{},
		&models.PrescriptionMedicationModel{},
		&models.EmergencyContactModel{},
		&models.PushSubscriptionModel{},
		&models.UserDeviceModel{},
		&models.PWASettingsModel{},
		&models.OfflineDataModel{},
	)
	require.NoError(t, err, "Failed to migrate schema")

	// Create repositories
	logger := pkgTesting.SetupTestLogger(t)

	scheduleRepo, err := NewGormScheduleRepository(db, logger)
	require.NoError(t, err, "Failed to create schedule repository")

	medicationLogRepo, err := NewGormMedicationLogRepository(db, logger)
	require.NoError(t, err, "Failed to create medication log repository")

	adherenceReportRepo, err := NewGormAdherenceReportRepository(db, logger)
	require.NoError(t, err, "Failed to create adherence report repository")

	reminderRepo, err := NewGormReminderRepository(db, logger)
	require.NoError(t, err, "Failed to create reminder repository")

	notificationRepo, err := NewGormNotificationRepository(db, logger)
	require.NoError(t, err, "Failed to create notification repository")

	userNotificationRepo, err := NewGormUserNotificationRepository(db, logger)
	require.NoError(t, err, "Failed to create user notification repository")

	preferencesRepo, err := NewGormPreferencesRepository(db, logger)
	require.NoError(t, err, "Failed to create preferences repository")

	patientRepo, err := NewGormPatientRepository(db, logger)
	require.NoError(t, err, "Failed to create patient repository")

	prescriptionRepo, err := NewGormPrescriptionRepository(db, logger)
	require.NoError(t, err, "Failed to create prescription repository")

	emergencyContactRepo, err := NewGormEmergencyContactRepository(db, logger)
	require.NoError(t, err, "Failed to create emergency contact repository")

	pushSubscriptionRepo, err := NewGormPushSubscriptionRepository(db, logger)
	require.NoError(t, err, "Failed to create push subscription repository")

	userDeviceRepo, err := NewGormUserDeviceRepository(db, logger)
	require.NoError(t, err, "Failed to create user device repository")

	pwaSettingsRepo, err := NewGormPWASettingsRepository(db, logger)
	require.NoError(t, err, "Failed to create PWA settings repository")

	offlineDataRepo, err := NewGormOfflineDataRepository(db, logger)
	require.NoError(t, err, "Failed to create offline data repository")

	return &TestContext{
		DB:                   db,
		ScheduleRepo:         scheduleRepo,
		MedicationLogRepo:    medicationLogRepo,
		AdherenceReportRepo:  adherenceReportRepo,
		ReminderRepo:         reminderRepo,
		NotificationRepo:     notificationRepo,
		UserNotificationRepo: userNotificationRepo,
		PreferencesRepo:      preferencesRepo,
		PatientRepo:          patientRepo,
		PrescriptionRepo:     prescriptionRepo,
		EmergencyContactRepo: emergencyContactRepo,
		PushSubscriptionRepo: pushSubscriptionRepo,
		UserDeviceRepo:       userDeviceRepo,
		PWASettingsRepo:      pwaSettingsRepo,
		OfflineDataRepo:      offlineDataRepo,
	}
}

// CreateTestSchedule creates a schedule with default values
func CreateTestSchedule(t *testing.T, patientID string) *medications.MedicationSchedule {
	t.Helper()

	return &medications.MedicationSchedule{
		ID:              uuid.NewString(),
		PatientID:       patientID,
		MedicationName:  "Metformin",
		Dosage:          "500",
		DoseUnit:        "mg",
		Frequency:       "twice daily",
		TimesOfDay:      []string{"08:00", "20:00"},
		StartDate:       time.Now().AddDate(0, 0, -7),
		Timezone:        "Africa/Johannesburg",
		Active:          true,
		DateTimeCreated: time.Now(),
	}
}

// CreateTestLog creates a dose log entry for the given schedule
func CreateTestLog(t *testing.T, schedule *medications.MedicationSchedule, status string) *medications.MedicationLog {
	t.Helper()

	return &medications.MedicationLog{
		ID:          uuid.NewString(),
		ScheduleID:  schedule.ID,
		PatientID:   schedule.PatientID,
		Status:      status,
		ScheduledAt: time.Now().Add(-time.Hour),
		RecordedAt:  time.Now(),
	}
}

// CreateTestPatient creates a patient with a unique email
func CreateTestPatient(t *testing.T) *prescriptions.PrescriptionPatient {
	t.Helper()

	id := uuid.NewString()
	return &prescriptions.PrescriptionPatient{
		ID:              id,
		FirstName:       "Thandi",
		LastName:        "Mokoena",
		Email:           "patient-" + id[:8] + "@example.com",
		PhoneNumber:     "+27825550101",
		DateOfBirth:     time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		DateTimeCreated: time.Now(),
	}
}

// CreateTestPrescription creates a prescription for the given patient
func CreateTestPrescription(t *testing.T, patient *prescriptions.PrescriptionPatient) *prescriptions.Prescription {
	t.Helper()

	prescriptionID := uuid.NewString()
	return &prescriptions.Prescription{
		ID:        prescriptionID,
		PatientID: patient.ID,
		Doctor: prescriptions.PrescriptionDoctor{
			Name:           "Dr. N. Dlamini",
			PracticeNumber: "PR0012345",
			ContactNumber:  "+27 11 555 0100",
		},
		Status: prescriptions.StatusSubmitted,
		Medications: []*prescriptions.PrescriptionMedication{
			{
				ID:             uuid.NewString(),
				PrescriptionID: prescriptionID,
				Name:           "Amoxicillin 500mg",
				Dosage:         "1 capsule",
				Quantity:       21,
				Instructions:   "three times daily",
			},
		},
		DateTimeCreated: time.Now(),
	}
}
