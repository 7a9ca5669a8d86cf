package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// SMTPSettings holds the outbound mail server settings for the email channel
type SMTPSettings struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from" validate:"required,email"`
}

// Validate checks that all fields in SMTPSettings are valid
func (s *SMTPSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for SMTPSettings: %w", err)
	}

	return nil
}

// WebPushSettings holds the VAPID key pair used to sign browser push messages
type WebPushSettings struct {
	VAPIDPublicKey  string `mapstructure:"vapid_public_key" validate:"required"`
	VAPIDPrivateKey string `mapstructure:"vapid_private_key" validate:"required"`
	Subscriber      string `mapstructure:"subscriber" validate:"required,email"`
}

// Validate checks that all fields in WebPushSettings are valid
func (s *WebPushSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for WebPushSettings: %w", err)
	}

	return nil
}

// FCMSettings holds the server key for device push via Firebase Cloud Messaging
type FCMSettings struct {
	APIKey string `mapstructure:"api_key" validate:"required"`
}

// Validate checks that all fields in FCMSettings are valid
func (s *FCMSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for FCMSettings: %w", err)
	}

	return nil
}

// RedisSettings holds connection settings for the rate-limit counter store
type RedisSettings struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

// Validate checks that all fields in RedisSettings are valid
func (s *RedisSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for RedisSettings: %w", err)
	}

	return nil
}

// RateLimitSettings caps how many notifications a user may receive per channel
type RateLimitSettings struct {
	HourlyMax int `mapstructure:"hourly_max" validate:"required,min=1"`
	DailyMax  int `mapstructure:"daily_max" validate:"required,min=1"`
}

// Validate checks that all fields in RateLimitSettings are valid
func (s *RateLimitSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for RateLimitSettings: %w", err)
	}

	if s.DailyMax < s.HourlyMax {
		return fmt.Errorf("daily max must not be lower than hourly max")
	}

	return nil
}

// SchedulerSettings controls the background job runner
type SchedulerSettings struct {
	Enabled       bool   `mapstructure:"enabled"`
	Workers       int    `mapstructure:"workers" validate:"min=0,max=64"`
	Timezone      string `mapstructure:"timezone"`
	ReminderSpec  string `mapstructure:"reminder_spec"`
	ReportSpec    string `mapstructure:"report_spec"`
	CleanupSpec   string `mapstructure:"cleanup_spec"`
	JobTimeoutSec int    `mapstructure:"job_timeout_sec" validate:"min=0"`
	RetryMax      int    `mapstructure:"retry_max" validate:"min=0,max=10"`
}

// Validate checks that all fields in SchedulerSettings are valid
func (s *SchedulerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for SchedulerSettings: %w", err)
	}

	return nil
}

// RetentionSettings controls how long the cleanup job keeps soft state around
type RetentionSettings struct {
	ReadNotificationDays int `mapstructure:"read_notification_days" validate:"required,min=1"`
	SyncedOfflineDays    int `mapstructure:"synced_offline_days" validate:"required,min=1"`
	InactiveDeviceDays   int `mapstructure:"inactive_device_days" validate:"required,min=1"`
}

// Validate checks that all fields in RetentionSettings are valid
func (s *RetentionSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for RetentionSettings: %w", err)
	}

	return nil
}

// AppConfig aggregates every configuration section of the service
type AppConfig struct {
	Port      string            `mapstructure:"port" validate:"required"`
	Logger    LoggerSettings    `mapstructure:"logger"`
	Database  DatabaseSettings  `mapstructure:"database"`
	SMTP      SMTPSettings      `mapstructure:"smtp"`
	WebPush   WebPushSettings   `mapstructure:"webpush"`
	FCM       FCMSettings       `mapstructure:"fcm"`
	Redis     RedisSettings     `mapstructure:"redis"`
	RateLimit RateLimitSettings `mapstructure:"rate_limit"`
	Scheduler SchedulerSettings `mapstructure:"scheduler"`
	Retention RetentionSettings `mapstructure:"retention"`
}

// Validate checks every configuration section
func (c *AppConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.RateLimit.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.Retention.Validate(); err != nil {
		return err
	}
	return nil
}

// InitializeAppConfig reads the YAML configuration file at configPath into an
// AppConfig and validates the sections every binary depends on. Channel-specific
// sections (smtp, webpush, fcm) are validated lazily by the senders that use them
// so a deployment may leave unused channels unconfigured.
func InitializeAppConfig(configPath string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(configPath)

	v.SetDefault("port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("rate_limit.hourly_max", 10)
	v.SetDefault("rate_limit.daily_max", 50)
	v.SetDefault("scheduler.workers", 4)
	v.SetDefault("scheduler.reminder_spec", "* * * * *")
	v.SetDefault("scheduler.report_spec", "30 0 * * *")
	v.SetDefault("scheduler.cleanup_spec", "0 2 * * *")
	v.SetDefault("scheduler.job_timeout_sec", 120)
	v.SetDefault("scheduler.retry_max", 3)
	v.SetDefault("retention.read_notification_days", 30)
	v.SetDefault("retention.synced_offline_days", 14)
	v.SetDefault("retention.inactive_device_days", 90)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
