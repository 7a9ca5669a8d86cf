package commands

import (
	"fmt"
	"os"

	"medguard_service/internal/app"
	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/infrastructure/persistence"
	"medguard_service/internal/infrastructure/ratelimit"
	"medguard_service/internal/infrastructure/senders"
	"medguard_service/internal/pkg/config"
	"medguard_service/internal/pkg/logger"

	"gorm.io/gorm"
)

// In commands/common.go
func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

func loadAppConfig() (*config.AppConfig, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/medguard.yaml"
	}

	appConfig, err := config.InitializeAppConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	return appConfig, nil
}

func openDatabase(cfg *config.AppConfig) (*gorm.DB, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	return db, nil
}

// buildDispatchService wires the notification dispatcher the way the server
// binaries do, with channels enabled according to the configuration.
func buildDispatchService(cfg *config.AppConfig, db *gorm.DB, loggerInstance logger.Logger) (notifications.DispatchService, error) {
	notificationRepo, err := persistence.NewGormNotificationRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification repository: %w", err)
	}

	userNotificationRepo, err := persistence.NewGormUserNotificationRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user notification repository: %w", err)
	}

	preferencesRepo, err := persistence.NewGormPreferencesRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create preferences repository: %w", err)
	}

	pushSubscriptionRepo, err := persistence.NewGormPushSubscriptionRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create push subscription repository: %w", err)
	}

	userDeviceRepo, err := persistence.NewGormUserDeviceRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user device repository: %w", err)
	}

	channelSenders := []notifications.ChannelSender{senders.NewSMSSender(loggerInstance)}

	if err := cfg.SMTP.Validate(); err == nil {
		emailSender, err := senders.NewEmailSender(cfg.SMTP, loggerInstance)
		if err != nil {
			return nil, fmt.Errorf("failed to create email sender: %w", err)
		}
		channelSenders = append(channelSenders, emailSender)
	}

	if err := cfg.WebPush.Validate(); err == nil {
		pushSender, err := senders.NewPushSender(cfg.WebPush, cfg.FCM, pushSubscriptionRepo, userDeviceRepo, loggerInstance)
		if err != nil {
			return nil, fmt.Errorf("failed to create push sender: %w", err)
		}
		channelSenders = append(channelSenders, pushSender)
	}

	store := ratelimit.NewMemoryStore()
	if cfg.Redis.Addr != "" {
		redisStore, err := ratelimit.NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis counter store: %w", err)
		}
		store = redisStore
	}

	rateLimiter, err := ratelimit.NewLimiter(store, cfg.RateLimit, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	return app.NewDispatchService(
		notificationRepo, userNotificationRepo, preferencesRepo,
		rateLimiter, channelSenders, loggerInstance,
	)
}
