package pwa

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Device type constants
const (
	DeviceAndroid = "android"
	DeviceIOS     = "ios"
	DeviceWeb     = "web"
)

// PushSubscription entity. A browser web-push subscription with its
// client-generated encryption keys.
type PushSubscription struct {
	ID              string `validate:"required,uuid4"`
	UserID          string `validate:"required,uuid4"`
	Endpoint        string `validate:"required,url"`
	P256dh          string `validate:"required"`
	Auth            string `validate:"required"`
	DeviceName      string `validate:"max=100"`
	DateTimeCreated time.Time
}

// Validate for validating PushSubscription struct
func (s *PushSubscription) Validate() error {
	validate := validator.New()

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

// UserDevice entity. A native device registered for FCM push.
type UserDevice struct {
	ID           string    `validate:"required,uuid4"`
	UserID       string    `validate:"required,uuid4"`
	FCMToken     string    `validate:"required"`
	DeviceType   string    `validate:"required,oneof=android ios web"`
	LastActiveAt time.Time `validate:"required"`
	DateTimeCreated time.Time
}

// Validate for validating UserDevice struct
func (d *UserDevice) Validate() error {
	validate := validator.New()

	err := validate.Struct(d)
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

// PWASettings entity. Per-user progressive-web-app preferences.
type PWASettings struct {
	UserID          string `validate:"required,uuid4"`
	OfflineEnabled  bool
	SyncIntervalS   int    `validate:"min=30,max=86400"`
	ThemeColor      string `validate:"omitempty,hexcolor"`
	DateTimeUpdated time.Time
}

// DefaultSettings returns the settings a user starts with.
func DefaultSettings(userID string) *PWASettings {
	return &PWASettings{
		UserID:         userID,
		OfflineEnabled: true,
		SyncIntervalS:  300,
		ThemeColor:     "#2563eb",
	}
}

// Validate for validating PWASettings struct
func (s *PWASettings) Validate() error {
	validate := validator.New()

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

// OfflineData entity. One client-side change queued while offline, keyed by the
// resource it touches. Last write wins per (user, resource, resource id) by
// client timestamp.
type OfflineData struct {
	ID              string    `validate:"required,uuid4"`
	UserID          string    `validate:"required,uuid4"`
	Resource        string    `validate:"required,min=1,max=50"`
	ResourceID      string    `validate:"required,min=1,max=64"`
	Payload         string    `validate:"required"`
	ClientTimestamp time.Time `validate:"required"`
	SyncedAt        *time.Time
}

// Validate for validating OfflineData struct
func (d *OfflineData) Validate() error {
	validate := validator.New()

	err := validate.Struct(d)
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

// SyncItemResult reports what happened to one synced change.
type SyncItemResult struct {
	ResourceID string
	Applied    bool
	Reason     string
}
