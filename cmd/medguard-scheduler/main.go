// cmd/medguard-scheduler/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medguard_service/internal/app"
	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/infrastructure/persistence"
	"medguard_service/internal/infrastructure/ratelimit"
	"medguard_service/internal/infrastructure/scheduler"
	"medguard_service/internal/infrastructure/senders"
	"medguard_service/internal/pkg/config"
	"medguard_service/internal/pkg/logger"
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

	jobs, err := initializeJobs(appConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize jobs: %w", err)
	}

	return runSchedulerUntilSignal(appConfig, jobs, log)
}

// initializeJobs wires the repositories and services the background jobs need
func initializeJobs(cfg *config.AppConfig, log logger.Logger) (*app.Jobs, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

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

	pushSubscriptionRepo, err := persistence.NewGormPushSubscriptionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create push subscription repository: %w", err)
	}

	userDeviceRepo, err := persistence.NewGormUserDeviceRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user device repository: %w", err)
	}

	offlineDataRepo, err := persistence.NewGormOfflineDataRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create offline data repository: %w", err)
	}

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
		pushSender, err := senders.NewPushSender(cfg.WebPush, cfg.FCM, pushSubscriptionRepo, userDeviceRepo, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create push sender: %w", err)
		}
		channelSenders = append(channelSenders, pushSender)
	} else {
		log.Warn("Web push settings incomplete, push channel disabled")
	}

	store := ratelimit.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisStore, err := ratelimit.NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis counter store: %w", err)
		}
		store = redisStore
	}

	rateLimiter, err := ratelimit.NewLimiter(store, cfg.RateLimit, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	dispatchService, err := app.NewDispatchService(
		notificationRepo, userNotificationRepo, preferencesRepo,
		rateLimiter, channelSenders, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatch service: %w", err)
	}

	reminderService, err := app.NewReminderService(scheduleRepo, reminderRepo, dispatchService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder service: %w", err)
	}

	adherenceService, err := app.NewAdherenceService(medicationLogRepo, adherenceReportRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create adherence service: %w", err)
	}

	return app.NewJobs(
		reminderService,
		adherenceService,
		scheduleRepo,
		userNotificationRepo,
		offlineDataRepo,
		userDeviceRepo,
		pushSubscriptionRepo,
		cfg.Retention,
		cfg.Scheduler.Timezone,
		log,
	)
}

// runSchedulerUntilSignal starts the cron scheduler and blocks until an
// interrupt arrives, then drains in-flight jobs.
func runSchedulerUntilSignal(cfg *config.AppConfig, jobs *app.Jobs, log logger.Logger) error {
	sched, err := scheduler.NewScheduler(cfg.Scheduler, log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if err := jobs.Register(sched, cfg.Scheduler); err != nil {
		return fmt.Errorf("failed to register jobs: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Received signal %v, stopping scheduler", sig)

	cancel()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	if err := sched.Stop(stopCtx); err != nil {
		return err
	}

	log.Info("Scheduler stopped gracefully")
	return nil
}
