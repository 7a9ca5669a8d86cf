package notifications

import (
	"errors"
	"fmt"
	"time"

	"medguard_service/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// UserNotificationPreferences entity. One row per user controlling which
// channels may reach them and when.
type UserNotificationPreferences struct {
	UserID          string `validate:"required,uuid4"`
	EmailEnabled    bool
	PushEnabled     bool
	SMSEnabled      bool
	InAppEnabled    bool
	QuietHoursStart string `validate:"omitempty,clock"`
	QuietHoursEnd   string `validate:"omitempty,clock"`
	Timezone        string `validate:"omitempty,timezone"`
	EmailAddress    string `validate:"omitempty,email"`
	PhoneNumber     string `validate:"omitempty,e164"`
	DateTimeUpdated time.Time
}

// DefaultPreferences returns the opt-in state a user starts with: in-app only,
// until they provide contact details and enable further channels.
func DefaultPreferences(userID string) *UserNotificationPreferences {
	return &UserNotificationPreferences{
		UserID:       userID,
		InAppEnabled: true,
	}
}

// Validate for validating UserNotificationPreferences struct
func (p *UserNotificationPreferences) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("clock", validators.ClockValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(p)
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

	// Quiet hours are configured as a pair or not at all.
	if (p.QuietHoursStart == "") != (p.QuietHoursEnd == "") {
		return fmt.Errorf("quiet hours start and end must both be set or both be empty")
	}

	if p.EmailEnabled && p.EmailAddress == "" {
		return fmt.Errorf("email channel enabled without an email address")
	}
	if p.SMSEnabled && p.PhoneNumber == "" {
		return fmt.Errorf("sms channel enabled without a phone number")
	}

	return nil
}

// ChannelEnabled reports whether the given channel is switched on.
func (p *UserNotificationPreferences) ChannelEnabled(channel string) bool {
	switch channel {
	case ChannelEmail:
		return p.EmailEnabled
	case ChannelPush:
		return p.PushEnabled
	case ChannelSMS:
		return p.SMSEnabled
	case ChannelInApp:
		return p.InAppEnabled
	default:
		return false
	}
}

// EnabledChannels intersects the requested channels with the user's enabled ones.
func (p *UserNotificationPreferences) EnabledChannels(requested []string) []string {
	var enabled []string
	for _, channel := range requested {
		if p.ChannelEnabled(channel) {
			enabled = append(enabled, channel)
		}
	}
	return enabled
}

// InQuietHours reports whether the instant falls inside the user's quiet
// window. Quiet hours are wall-clock times in the user's Timezone; when no
// timezone is set the server's local zone is assumed. A window that crosses
// midnight (e.g. 21:00 to 07:00) wraps.
func (p *UserNotificationPreferences) InQuietHours(at time.Time) bool {
	if p.QuietHoursStart == "" || p.QuietHoursEnd == "" {
		return false
	}

	if p.Timezone != "" {
		if location, err := time.LoadLocation(p.Timezone); err == nil {
			at = at.In(location)
		}
	}

	start, err := time.Parse("15:04", p.QuietHoursStart)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", p.QuietHoursEnd)
	if err != nil {
		return false
	}

	minute := at.Hour()*60 + at.Minute()
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()

	if startMin == endMin {
		return false
	}
	if startMin < endMin {
		return minute >= startMin && minute < endMin
	}
	// Window wraps past midnight.
	return minute >= startMin || minute < endMin
}
