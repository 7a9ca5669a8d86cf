// cmd/medguard-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "medguard_service/internal/api/rest/v1"
	"medguard_service/internal/app"
	"medguard_service/internal/domain/medications"
	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/domain/prescriptions"
	"medguard_service/internal/domain/pwa"
	"medguard_service/internal/infrastructure/persistence"
	"medguard_service/internal/infrastructure/persistence/models"
	"medguard_service/internal/infrastructure/ratelimit"
	"medguard_service/internal/infrastructure/senders"
	"medguard_service/internal/pkg/config"
	"medguard_service/internal/pkg/logger"

	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/medguard.yaml"
	}

	appConfig, err := config.InitializeAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&appConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(appConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(appConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services *appServices
}

type appRepositories struct {
	schedule         medications.ScheduleRepository
	medicationLog    medications.MedicationLogRepository
	adherenceReport  medications.AdherenceReportRepository
	reminder         medications.ReminderRepository
	notification     notifications.NotificationRepository
	userNotification notifications.UserNotificationRepository
	preferences      notifications.PreferencesRepository
	patient          prescriptions.PatientRepository
	prescription     prescriptions.PrescriptionRepository
	emergencyContact prescriptions.EmergencyContactRepository
	pushSubscription pwa.PushSubscriptionRepository
	userDevice       pwa.UserDeviceRepository
	pwaSettings      pwa.PWASettingsRepository
	offlineData      pwa.OfflineDataRepository
}

type appServices struct {
	schedule         medications.ScheduleService
	doseLog          medications.DoseLogService
	adherence        medications.AdherenceService
	dispatch         notifications.DispatchService
	inbox            notifications.InboxService
	preferences      notifications.PreferencesService
	patient          prescriptions.PatientService
	prescription     prescriptions.PrescriptionService
	emergencyContact prescriptions.EmergencyContactService
	subscription     pwa.SubscriptionService
	sync             pwa.SyncService
	settings         pwa.SettingsService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.AppConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(
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
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	repos, err := initializeRepositories(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	// Initialize channel senders and rate limiting
	channelSenders, err := initializeChannelSenders(cfg, repos, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize channel senders: %w", err)
	}

	rateLimiter, err := initializeRateLimiter(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	// Initialize services
	services, err := initializeApplicationServices(repos, channelSenders, rateLimiter, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		services: services,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.AppConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.schedule,
		deps.services.doseLog,
		deps.services.adherence,
		deps.services.dispatch,
		deps.services.inbox,
		deps.services.preferences,
		deps.services.patient,
		deps.services.prescription,
		deps.services.emergencyContact,
		deps.services.subscription,
		deps.services.sync,
		deps.services.settings,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal %v, initiating graceful shutdown", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// initializeRepositories sets up all GORM-backed repositories
func initializeRepositories(db *gorm.DB, log logger.Logger) (*appRepositories, error) {
	scheduleRepo, err := persistence.NewGormScheduleRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule repository: %w", err)
	}

	medicationLogRepo, err := persistence.NewGormMedicationLogRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create medication log repository: %w", err)
	}

	adherenceReportRepo, err := persistence.NewGormAdherenceReportRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create adherence report repository: %w", err)
	}

	reminderRepo, err := persistence.NewGormReminderRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder repository: %w", err)
	}

	notificationRepo, err := persistence.NewGormNotificationRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification repository: %w", err)
	}

	userNotificationRepo, err := persistence.NewGormUserNotificationRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user notification repository: %w", err)
	}

	preferencesRepo, err := persistence.NewGormPreferencesRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create preferences repository: %w", err)
	}

	patientRepo, err := persistence.NewGormPatientRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient repository: %w", err)
	}

	prescriptionRepo, err := persistence.NewGormPrescriptionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create prescription repository: %w", err)
	}

	emergencyContactRepo, err := persistence.NewGormEmergencyContactRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create emergency contact repository: %w", err)
	}

	pushSubscriptionRepo, err := persistence.NewGormPushSubscriptionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create push subscription repository: %w", err)
	}

	userDeviceRepo, err := persistence.NewGormUserDeviceRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user device repository: %w", err)
	}

	pwaSettingsRepo, err := persistence.NewGormPWASettingsRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create pwa settings repository: %w", err)
	}

	offlineDataRepo, err := persistence.NewGormOfflineDataRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create offline data repository: %w", err)
	}

	return &appRepositories{
		schedule:         scheduleRepo,
		medicationLog:    medicationLogRepo,
		adherenceReport:  adherenceReportRepo,
		reminder:         reminderRepo,
		notification:     notificationRepo,
		userNotification: userNotificationRepo,
		preferences:      preferencesRepo,
		patient:          patientRepo,
		prescription:     prescriptionRepo,
		emergencyContact: emergencyContactRepo,
		pushSubscription: pushSubscriptionRepo,
		userDevice:       userDeviceRepo,
		pwaSettings:      pwaSettingsRepo,
		offlineData:      offlineDataRepo,
	}, nil
}

// initializeChannelSenders sets up delivery backends for the configured channels.
// The in-app channel is handled by the dispatcher itself; email and push are
// only registered when their settings validate.
func initializeChannelSenders(cfg *config.AppConfig, repos *appRepositories, log logger.Logger) ([]notifications.ChannelSender, error) {
	channelSenders := []notifications.ChannelSender{senders.NewSMSSender(log)}

	if err := cfg.SMTP.Validate(); err == nil {
		emailSender, err := senders.NewEmailSender(cfg.SMTP, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create email sender: %w", err)
		}
		channelSenders = append(channelSenders, emailSender)
	} else {
		log.Warn("SMTP settings incomplete, email channel disabled")
	}

	if err := cfg.WebPush.Validate(); err == nil {
		pushSender, err := senders.NewPushSender(cfg.WebPush, cfg.FCM, repos.pushSubscription, repos.userDevice, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create push sender: %w", err)
		}
		channelSenders = append(channelSenders, pushSender)
	} else {
		log.Warn("Web push settings incomplete, push channel disabled")
	}

	return channelSenders, nil
}

// initializeRateLimiter picks a Redis-backed counter store when Redis is
// configured and falls back to the in-process store otherwise.
func initializeRateLimiter(cfg *config.AppConfig, log logger.Logger) (notifications.RateLimiter, error) {
	store := ratelimit.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisStore, err := ratelimit.NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis counter store: %w", err)
		}
		store = redisStore
		log.Info("Rate limiting backed by Redis at ", cfg.Redis.Addr)
	}

	return ratelimit.NewLimiter(store, cfg.RateLimit, log)
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	repos *appRepositories,
	channelSenders []notifications.ChannelSender,
	rateLimiter notifications.RateLimiter,
	log logger.Logger,
) (*appServices, error) {
	dispatchService, err := app.NewDispatchService(
		repos.notification, repos.userNotification, repos.preferences,
		rateLimiter, channelSenders, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatch service: %w", err)
	}

	scheduleService, err := app.NewScheduleService(repos.schedule, repos.reminder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule service: %w", err)
	}

	doseLogService, err := app.NewDoseLogService(repos.medicationLog, repos.schedule, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create dose log service: %w", err)
	}

	adherenceService, err := app.NewAdherenceService(repos.medicationLog, repos.adherenceReport, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create adherence service: %w", err)
	}

	inboxService, err := app.NewInboxService(repos.userNotification, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create inbox service: %w", err)
	}

	preferencesService, err := app.NewPreferencesService(repos.preferences, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create preferences service: %w", err)
	}

	patientService, err := app.NewPatientService(repos.patient, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient service: %w", err)
	}

	prescriptionService, err := app.NewPrescriptionService(repos.prescription, repos.patient, dispatchService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create prescription service: %w", err)
	}

	emergencyContactService, err := app.NewEmergencyContactService(repos.emergencyContact, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create emergency contact service: %w", err)
	}

	subscriptionService, err := app.NewSubscriptionService(repos.pushSubscription, repos.userDevice, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription service: %w", err)
	}

	syncService, err := app.NewSyncService(repos.offlineData, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync service: %w", err)
	}

	settingsService, err := app.NewSettingsService(repos.pwaSettings, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		schedule:         scheduleService,
		doseLog:          doseLogService,
		adherence:        adherenceService,
		dispatch:         dispatchService,
		inbox:            inboxService,
		preferences:      preferencesService,
		patient:          patientService,
		prescription:     prescriptionService,
		emergencyContact: emergencyContactService,
		subscription:     subscriptionService,
		sync:             syncService,
		settings:         settingsService,
	}, nil
}
