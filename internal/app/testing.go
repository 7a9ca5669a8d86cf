//go:build integration
// +build integration

package app

import (
	"testing"

	"medguard_service/internal/domain/medications"
	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/domain/prescriptions"
	"medguard_service/internal/domain/pwa"
	"medguard_service/internal/infrastructure/persistence"
	"medguard_service/internal/infrastructure/ratelimit"
	"medguard_service/internal/pkg/config"
	pkgTesting "medguard_service/internal/pkg/testing"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	// Medication services
	ScheduleService  medications.ScheduleService
	DoseLogService   medications.DoseLogService
	AdherenceService medications.AdherenceService
	ReminderService  medications.ReminderService

	// Notification services
	DispatchService    notifications.DispatchService
	InboxService       notifications.InboxService
	PreferencesService notifications.PreferencesService

	// Prescription services
	PatientService          prescriptions.PatientService
	PrescriptionService     prescriptions.PrescriptionService
	EmergencyContactService prescriptions.EmergencyContactService

	// PWA services
	SubscriptionService pwa.SubscriptionService
	SyncService         pwa.SyncService
	SettingsService     pwa.SettingsService

	// Background jobs
	Jobs *Jobs

	// Infrastructure
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration
// tests. Delivery runs without external senders, so only the in-app channel
// actually sends; the pipeline semantics stay the same.
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := pkgTesting.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	rateLimiter, err := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), config.RateLimitSettings{
		HourlyMax: 100,
		DailyMax:  1000,
	}, logger)
	require.NoError(t, err, "Failed to create rate limiter")

	dispatchService, err := NewDispatchService(
		dbContext.NotificationRepo,
		dbContext.UserNotificationRepo,
		dbContext.PreferencesRepo,
		rateLimiter,
		nil,
		logger,
	)
	require.NoError(t, err, "Failed to create dispatch service")

	inboxService, err := NewInboxService(dbContext.UserNotificationRepo, logger)
	require.NoError(t, err, "Failed to create inbox service")

	preferencesService, err := NewPreferencesService(dbContext.PreferencesRepo, logger)
	require.NoError(t, err, "Failed to create preferences service")

	scheduleService, err := NewScheduleService(dbContext.ScheduleRepo, dbContext.ReminderRepo, logger)
	require.NoError(t, err, "Failed to create schedule service")

	doseLogService, err := NewDoseLogService(dbContext.MedicationLogRepo, dbContext.ScheduleRepo, logger)
	require.NoError(t, err, "Failed to create dose log service")

	adherenceService, err := NewAdherenceService(dbContext.MedicationLogRepo, dbContext.AdherenceReportRepo, logger)
	require.NoError(t, err, "Failed to create adherence service")

	reminderService, err := NewReminderService(dbContext.ScheduleRepo, dbContext.ReminderRepo, dispatchService, logger)
	require.NoError(t, err, "Failed to create reminder service")

	patientService, err := NewPatientService(dbContext.PatientRepo, logger)
	require.NoError(t, err, "Failed to create patient service")

	prescriptionService, err := NewPrescriptionService(dbContext.PrescriptionRepo, dbContext.PatientRepo, dispatchService, logger)
	require.NoError(t, err, "Failed to create prescription service")

	emergencyContactService, err := NewEmergencyContactService(dbContext.EmergencyContactRepo, logger)
	require.NoError(t, err, "Failed to create emergency contact service")

	subscriptionService, err := NewSubscriptionService(dbContext.PushSubscriptionRepo, dbContext.UserDeviceRepo, logger)
	require.NoError(t, err, "Failed to create subscription service")

	syncService, err := NewSyncService(dbContext.OfflineDataRepo, logger)
	require.NoError(t, err, "Failed to create sync service")

	settingsService, err := NewSettingsService(dbContext.PWASettingsRepo, logger)
	require.NoError(t, err, "Failed to create settings service")

	jobs, err := NewJobs(
		reminderService,
		adherenceService,
		dbContext.ScheduleRepo,
		dbContext.UserNotificationRepo,
		dbContext.OfflineDataRepo,
		dbContext.UserDeviceRepo,
		dbContext.PushSubscriptionRepo,
		config.RetentionSettings{
			ReadNotificationDays: 30,
			SyncedOfflineDays:    14,
			InactiveDeviceDays:   90,
		},
		"UTC",
		logger,
	)
	require.NoError(t, err, "Failed to create jobs")

	return &TestServices{
		ScheduleService:         scheduleService,
		DoseLogService:          doseLogService,
		AdherenceService:        adherenceService,
		ReminderService:         reminderService,
		DispatchService:         dispatchService,
		InboxService:            inboxService,
		PreferencesService:      preferencesService,
		PatientService:          patientService,
		PrescriptionService:     prescriptionService,
		EmergencyContactService: emergencyContactService,
		SubscriptionService:     subscriptionService,
		SyncService:             syncService,
		SettingsService:         settingsService,
		Jobs:                    jobs,
		DBContext:               dbContext,
	}
}
