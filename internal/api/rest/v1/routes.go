package v1

import (
	"medguard_service/internal/domain/medications"
	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/domain/prescriptions"
	"medguard_service/internal/domain/pwa"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	scheduleService medications.ScheduleService,
	doseLogService medications.DoseLogService,
	adherenceService medications.AdherenceService,
	dispatchService notifications.DispatchService,
	inboxService notifications.InboxService,
	preferencesService notifications.PreferencesService,
	patientService prescriptions.PatientService,
	prescriptionService prescriptions.PrescriptionService,
	emergencyContactService prescriptions.EmergencyContactService,
	subscriptionService pwa.SubscriptionService,
	syncService pwa.SyncService,
	settingsService pwa.SettingsService) {

	v1 := r.Group(BasePath) // lookup in version file

	// Medication Routes
	medicationHandler := NewMedicationHandler(scheduleService, doseLogService, adherenceService)
	v1.POST("/medications/schedules", medicationHandler.CreateSchedule)
	v1.GET("/medications/schedules", medicationHandler.ListSchedules)
	v1.GET("/medications/schedules/:id", medicationHandler.GetScheduleByID)
	v1.PUT("/medications/schedules/:id", medicationHandler.UpdateScheduleByID)
	v1.DELETE("/medications/schedules/:id", medicationHandler.DeleteScheduleByID)
	v1.POST("/medications/logs", medicationHandler.RecordDose)
	v1.GET("/medications/logs", medicationHandler.ListDoseLogs)
	v1.POST("/medications/adherence/reports", medicationHandler.GenerateAdherenceReport)
	v1.GET("/medications/adherence/reports", medicationHandler.ListAdherenceReports)

	// Notification Routes
	notificationHandler := NewNotificationHandler(dispatchService, inboxService, preferencesService)
	v1.POST("/notifications/dispatch", notificationHandler.Dispatch)
	v1.GET("/users/:userId/notifications", notificationHandler.ListInbox)
	v1.GET("/users/:userId/notifications/unread-count", notificationHandler.UnreadCount)
	v1.POST("/users/:userId/notifications/:id/read", notificationHandler.MarkRead)
	v1.POST("/users/:userId/notifications/read-all", notificationHandler.MarkAllRead)
	v1.GET("/users/:userId/preferences", notificationHandler.GetPreferences)
	v1.PUT("/users/:userId/preferences", notificationHandler.UpdatePreferences)

	// Prescription Routes
	prescriptionHandler := NewPrescriptionHandler(patientService, prescriptionService, emergencyContactService)
	v1.POST("/patients", prescriptionHandler.RegisterPatient)
	v1.GET("/patients/:id", prescriptionHandler.GetPatientByID)
	v1.GET("/patients/:id/emergency-contacts", prescriptionHandler.ListEmergencyContacts)
	v1.POST("/prescriptions", prescriptionHandler.SubmitPrescription)
	v1.GET("/prescriptions", prescriptionHandler.ListPrescriptions)
	v1.GET("/prescriptions/:id", prescriptionHandler.GetPrescriptionByID)
	v1.PUT("/prescriptions/:id/status", prescriptionHandler.UpdatePrescriptionStatus)
	v1.POST("/prescriptions/:id/renewal", prescriptionHandler.RequestRenewal)
	v1.POST("/prescriptions/:id/transfer", prescriptionHandler.RequestTransfer)
	v1.POST("/emergency-contacts", prescriptionHandler.CreateEmergencyContact)
	v1.PUT("/emergency-contacts/:id", prescriptionHandler.UpdateEmergencyContactByID)
	v1.DELETE("/emergency-contacts/:id", prescriptionHandler.DeleteEmergencyContactByID)

	// PWA Routes
	pwaHandler := NewPWAHandler(subscriptionService, syncService, settingsService)
	v1.POST("/pwa/subscriptions", pwaHandler.Subscribe)
	v1.DELETE("/pwa/subscriptions", pwaHandler.Unsubscribe)
	v1.POST("/pwa/devices", pwaHandler.RegisterDevice)
	v1.GET("/users/:userId/pwa/subscriptions", pwaHandler.ListSubscriptions)
	v1.POST("/pwa/sync", pwaHandler.Sync)
	v1.GET("/users/:userId/pwa/settings", pwaHandler.GetSettings)
	v1.PUT("/users/:userId/pwa/settings", pwaHandler.UpdateSettings)
	v1.GET("/pwa/manifest", pwaHandler.Manifest)
}
