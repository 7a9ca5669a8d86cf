package notifications

import (
	"errors"
	"fmt"
	"time"

	"medguard_service/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// Notification channel constants
const (
	ChannelEmail = "email"
	ChannelPush  = "push"
	ChannelSMS   = "sms"
	ChannelInApp = "inapp"
)

// AllChannels lists every channel the dispatcher knows about, in dispatch order.
var AllChannels = []string{ChannelInApp, ChannelEmail, ChannelPush, ChannelSMS}

// Notification type constants
const (
	TypeReminder    = "reminder"
	TypeRefill      = "refill"
	TypeAppointment = "appointment"
	TypeSystem      = "system"
	TypeEmergency   = "emergency"
)

// Priority constants
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Delivery status constants for UserNotification rows.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Notification entity. The channel-independent content of a message; per-user,
// per-channel delivery state lives in UserNotification.
type Notification struct {
	ID               string            `validate:"required,uuid4"`
	Title            string            `validate:"required,min=1,max=255"`
	Body             string            `validate:"required,min=1,max=4000"`
	NotificationType string            `validate:"required,oneof=reminder refill appointment system emergency"`
	Priority         string            `validate:"required,oneof=low normal high urgent"`
	Metadata         map[string]string `validate:"omitempty"`
	DateTimeCreated  time.Time
}

// Validate for validating Notification struct
func (n *Notification) Validate() error {
	validate := validator.New()

	err := validate.Struct(n)
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

// UserNotification entity. One row per (user, channel) delivery attempt, also
// serving as the user's in-app inbox when Channel is inapp.
type UserNotification struct {
	ID              string `validate:"required,uuid4"`
	NotificationID  string `validate:"required,uuid4"`
	UserID          string `validate:"required,uuid4"`
	Channel         string `validate:"required,channel"`
	Status          string `validate:"required,oneof=pending sent failed skipped"`
	Detail          string `validate:"max=500"`
	Read            bool
	ReadAt          *time.Time
	DateTimeCreated time.Time
}

// Validate for validating UserNotification struct
func (u *UserNotification) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("channel", validators.ChannelValidation); err != nil {
		return fmt.Errorf("failed to register channel validation: %w", err)
	}

	err := validate.Struct(u)
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

// InboxQuery pages a user's in-app notifications.
type InboxQuery struct {
	UserID     string `validate:"required,uuid4"`
	UnreadOnly bool
	Limit      int `validate:"min=0,max=500"`
	Offset     int `validate:"min=0"`
}

// NewInboxQuery creates an InboxQuery with default paging.
func NewInboxQuery(userID string) *InboxQuery {
	return &InboxQuery{UserID: userID, Limit: 50}
}

// Validate for validating InboxQuery struct
func (q *InboxQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid query parameters: %w", err)
	}

	return nil
}
