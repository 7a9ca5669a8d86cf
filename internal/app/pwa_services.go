package app

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/domain/pwa"
	"medguard_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// subscriptionService implements the SubscriptionService interface
type subscriptionService struct {
	subscriptionRepo pwa.PushSubscriptionRepository
	deviceRepo       pwa.UserDeviceRepository
	logger           logger.Logger
}

// NewSubscriptionService creates a new instance of SubscriptionService
func NewSubscriptionService(
	subscriptionRepo pwa.PushSubscriptionRepository,
	deviceRepo pwa.UserDeviceRepository,
	logger logger.Logger,
) (pwa.SubscriptionService, error) {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		deviceRepo:       deviceRepo,
		logger:           logger,
	}, nil
}

// Subscribe upserts a browser push subscription keyed by endpoint.
func (s *subscriptionService) Subscribe(ctx context.Context, subscription *pwa.PushSubscription) (*pwa.PushSubscription, error) {
	if subscription.ID == "" {
		subscription.ID = uuid.NewString()
	}
	subscription.DateTimeCreated = time.Now()

	if err := s.subscriptionRepo.Upsert(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	s.logger.Info("Stored push subscription for user ", subscription.UserID)
	return subscription, nil
}

// Unsubscribe removes a subscription by endpoint.
func (s *subscriptionService) Unsubscribe(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	return s.subscriptionRepo.DeleteByEndpoint(ctx, endpoint)
}

// RegisterDevice upserts a native device token, bumping LastActiveAt.
func (s *subscriptionService) RegisterDevice(ctx context.Context, device *pwa.UserDevice) (*pwa.UserDevice, error) {
	if device.ID == "" {
		device.ID = uuid.NewString()
	}
	device.LastActiveAt = time.Now()
	if device.DateTimeCreated.IsZero() {
		device.DateTimeCreated = device.LastActiveAt
	}

	if err := s.deviceRepo.Upsert(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to register device: %w", err)
	}

	s.logger.Info("Registered device for user ", device.UserID)
	return device, nil
}

// ListForUser returns the user's push subscriptions and devices.
func (s *subscriptionService) ListForUser(ctx context.Context, userID string) ([]*pwa.PushSubscription, []*pwa.UserDevice, error) {
	subscriptions, err := s.subscriptionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	devices, err := s.deviceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list devices: %w", err)
	}

	return subscriptions, devices, nil
}

// syncService implements the SyncService interface with last-write-wins
// conflict resolution per (user, resource, resource id).
type syncService struct {
	offlineRepo pwa.OfflineDataRepository
	logger      logger.Logger
}

// NewSyncService creates a new instance of SyncService
func NewSyncService(
	offlineRepo pwa.OfflineDataRepository,
	logger logger.Logger,
) (pwa.SyncService, error) {
	return &syncService{
		offlineRepo: offlineRepo,
		logger:      logger,
	}, nil
}

// Sync applies the batch. An item older than the stored change for its key is
// acknowledged but not applied.
func (s *syncService) Sync(ctx context.Context, userID string, items []*pwa.OfflineData) ([]*pwa.SyncItemResult, error) {
	results := make([]*pwa.SyncItemResult, 0, len(items))
	now := time.Now()

	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.UserID = userID

		latest, err := s.offlineRepo.GetLatest(ctx, userID, item.Resource, item.ResourceID)
		if err != nil {
			return results, fmt.Errorf("failed to look up stored change: %w", err)
		}

		if latest != nil && !item.ClientTimestamp.After(latest.ClientTimestamp) {
			results = append(results, &pwa.SyncItemResult{
				ResourceID: item.ResourceID,
				Applied:    false,
				Reason:     "stale: a newer change is already stored",
			})
			continue
		}

		item.SyncedAt = &now
		if err := s.offlineRepo.Upsert(ctx, item); err != nil {
			return results, fmt.Errorf("failed to apply change for %s/%s: %w", item.Resource, item.ResourceID, err)
		}

		results = append(results, &pwa.SyncItemResult{
			ResourceID: item.ResourceID,
			Applied:    true,
		})
	}

	s.logger.Info("Synced ", len(items), " offline item(s) for user ", userID)
	return results, nil
}

// settingsService implements the SettingsService interface
type settingsService struct {
	settingsRepo pwa.PWASettingsRepository
	logger       logger.Logger
}

// NewSettingsService creates a new instance of SettingsService
func NewSettingsService(
	settingsRepo pwa.PWASettingsRepository,
	logger logger.Logger,
) (pwa.SettingsService, error) {
	return &settingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}, nil
}

// Get returns the user's settings; the repository falls back to defaults for
// a user without a stored row.
func (s *settingsService) Get(ctx context.Context, userID string) (*pwa.PWASettings, error) {
	return s.settingsRepo.Get(ctx, userID)
}

// Update replaces the user's settings.
func (s *settingsService) Update(ctx context.Context, settings *pwa.PWASettings) error {
	settings.DateTimeUpdated = time.Now()

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return fmt.Errorf("failed to update PWA settings: %w", err)
	}

	s.logger.Info("Updated PWA settings for user ", settings.UserID)
	return nil
}
