package pwa

import (
	"context"
	"time"
)

// SubscriptionService manages web-push subscriptions and FCM devices.
type SubscriptionService interface {
	// Subscribe upserts a browser push subscription keyed by endpoint.
	Subscribe(ctx context.Context, subscription *PushSubscription) (*PushSubscription, error)

	// Unsubscribe removes a subscription by endpoint.
	Unsubscribe(ctx context.Context, endpoint string) error

	// RegisterDevice upserts a native device token, bumping LastActiveAt.
	RegisterDevice(ctx context.Context, device *UserDevice) (*UserDevice, error)

	// ListForUser returns the user's push subscriptions and devices.
	ListForUser(ctx context.Context, userID string) ([]*PushSubscription, []*UserDevice, error)
}

// SyncService applies batches of offline client changes.
type SyncService interface {
	// Sync applies the batch with last-write-wins per (user, resource,
	// resource id). Stale items are acknowledged but not applied.
	Sync(ctx context.Context, userID string, items []*OfflineData) ([]*SyncItemResult, error)
}

// SettingsService manages per-user PWA settings.
type SettingsService interface {
	// Get returns the user's settings, creating defaults on first read.
	Get(ctx context.Context, userID string) (*PWASettings, error)

	// Update replaces the user's settings.
	Update(ctx context.Context, settings *PWASettings) error
}

// PushSubscriptionRepository defines the interface for PushSubscription persistence.
type PushSubscriptionRepository interface {
	Upsert(ctx context.Context, subscription *PushSubscription) error
	ListByUser(ctx context.Context, userID string) ([]*PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
	// DeleteCreatedBefore prunes subscriptions older than the cutoff that have
	// never been refreshed (cleanup job).
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserDeviceRepository defines the interface for UserDevice persistence.
type UserDeviceRepository interface {
	Upsert(ctx context.Context, device *UserDevice) error
	ListByUser(ctx context.Context, userID string) ([]*UserDevice, error)
	DeleteByToken(ctx context.Context, fcmToken string) error
	DeleteInactiveSince(ctx context.Context, cutoff time.Time) (int64, error)
}

// PWASettingsRepository defines the interface for PWASettings persistence.
type PWASettingsRepository interface {
	Get(ctx context.Context, userID string) (*PWASettings, error)
	Upsert(ctx context.Context, settings *PWASettings) error
}

// OfflineDataRepository defines the interface for OfflineData persistence.
type OfflineDataRepository interface {
	// GetLatest returns the newest stored change for the key, or nil.
	GetLatest(ctx context.Context, userID, resource, resourceID string) (*OfflineData, error)
	Upsert(ctx context.Context, data *OfflineData) error
	DeleteSyncedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
