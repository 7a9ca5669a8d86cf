package notifications

import (
	"context"
	"time"
)

// DispatchRequest asks the dispatcher to deliver one notification to one user
// over a set of channels. An empty Channels slice means every channel the user
// has enabled.
type DispatchRequest struct {
	UserID       string
	Notification *Notification
	Channels     []string
}

// DispatchResult reports the per-channel outcome of a dispatch.
type DispatchResult struct {
	UserID   string
	Outcomes map[string]string // channel -> delivery status
}

// DispatchService is the central notification dispatcher. For each requested
// channel it applies preference filtering, quiet hours, rate limiting, and then
// delegates to the channel's sender, persisting one UserNotification row per
// attempt.
type DispatchService interface {
	Dispatch(ctx context.Context, request *DispatchRequest) (*DispatchResult, error)
}

// InboxService manages a user's in-app notification feed.
type InboxService interface {
	// List retrieves a user's in-app notifications, newest first.
	List(ctx context.Context, query *InboxQuery) ([]*UserNotification, error)

	// UnreadCount returns the number of unread in-app notifications.
	UnreadCount(ctx context.Context, userID string) (int64, error)

	// MarkRead marks one notification read. Re-marking is a no-op.
	MarkRead(ctx context.Context, userID, userNotificationID string) error

	// MarkAllRead marks every unread in-app notification read.
	MarkAllRead(ctx context.Context, userID string) error
}

// PreferencesService manages per-user channel preferences.
type PreferencesService interface {
	// Get returns the user's preferences, creating defaults on first read.
	Get(ctx context.Context, userID string) (*UserNotificationPreferences, error)

	// Update replaces the user's preferences.
	Update(ctx context.Context, prefs *UserNotificationPreferences) error
}

// ChannelSender delivers a notification to one user over one channel.
// Implementations wrap a transport (SMTP, web push, FCM) and report failure
// through the returned error.
type ChannelSender interface {
	// Channel returns the channel name this sender serves.
	Channel() string

	// Send delivers the notification. Preferences carry the user's contact
	// details for the channel.
	Send(ctx context.Context, prefs *UserNotificationPreferences, notification *Notification) error
}

// RateLimiter bounds how many notifications a user may receive per channel.
type RateLimiter interface {
	// Allow consumes one delivery slot for (user, channel) and reports whether
	// the hourly and daily budgets still permit it.
	Allow(ctx context.Context, userID, channel string) (bool, error)
}

// NotificationRepository defines the interface for Notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByID(ctx context.Context, notificationID string) (*Notification, error)
}

// UserNotificationRepository defines the interface for UserNotification persistence.
type UserNotificationRepository interface {
	Create(ctx context.Context, userNotification *UserNotification) error
	List(ctx context.Context, query *InboxQuery) ([]*UserNotification, error)
	GetByID(ctx context.Context, userNotificationID string) (*UserNotification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userNotificationID string, readAt time.Time) error
	MarkAllRead(ctx context.Context, userID string, readAt time.Time) error
	// DeleteReadBefore removes read rows older than the cutoff (cleanup job).
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PreferencesRepository defines the interface for preference persistence.
type PreferencesRepository interface {
	Get(ctx context.Context, userID string) (*UserNotificationPreferences, error)
	Upsert(ctx context.Context, prefs *UserNotificationPreferences) error
}
