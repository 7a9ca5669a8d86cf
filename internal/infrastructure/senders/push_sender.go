package senders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/domain/pwa"
	"medguard_service/internal/pkg/config"
	"medguard_service/internal/pkg/logger"

	webpush "github.com/SherClockHolmes/webpush-go"
	fcm "github.com/appleboy/go-fcm"
)

// pushPayload is the JSON body handed to the service worker.
type pushPayload struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Type     string            `json:"type"`
	Priority string            `json:"priority"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// fcmClient is the subset of the FCM client the sender uses.
type fcmClient interface {
	Send(msg *fcm.Message) (*fcm.Response, error)
}

// pushSender fans a notification out to every push endpoint the user has:
// browser subscriptions via web push and native devices via FCM. Delivery
// succeeds when at least one endpoint accepted the message.
type pushSender struct {
	webPushSettings  config.WebPushSettings
	subscriptionRepo pwa.PushSubscriptionRepository
	deviceRepo       pwa.UserDeviceRepository
	fcm              fcmClient
	logger           logger.Logger
}

// NewPushSender creates a ChannelSender for the push channel. FCM is optional;
// with an empty API key only web-push endpoints are served.
func NewPushSender(
	webPushSettings config.WebPushSettings,
	fcmSettings config.FCMSettings,
	subscriptionRepo pwa.PushSubscriptionRepository,
	deviceRepo pwa.UserDeviceRepository,
	logger logger.Logger,
) (notifications.ChannelSender, error) {
	if err := webPushSettings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid web push settings: %w", err)
	}

	var client fcmClient
	if fcmSettings.APIKey != "" {
		c, err := fcm.NewClient(fcmSettings.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create FCM client: %w", err)
		}
		client = c
	}

	return &pushSender{
		webPushSettings:  webPushSettings,
		subscriptionRepo: subscriptionRepo,
		deviceRepo:       deviceRepo,
		fcm:              client,
		logger:           logger,
	}, nil
}

func (s *pushSender) Channel() string {
	return notifications.ChannelPush
}

func (s *pushSender) Send(ctx context.Context, prefs *notifications.UserNotificationPreferences, notification *notifications.Notification) error {
	payload, err := json.Marshal(pushPayload{
		Title:    notification.Title,
		Body:     notification.Body,
		Type:     notification.NotificationType,
		Priority: notification.Priority,
		Metadata: notification.Metadata,
	})
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	delivered := 0
	attempted := 0

	subscriptions, err := s.subscriptionRepo.ListByUser(ctx, prefs.UserID)
	if err != nil {
		return fmt.Errorf("failed to list push subscriptions: %w", err)
	}
	for _, subscription := range subscriptions {
		attempted++
		if err := s.sendWebPush(ctx, subscription, payload); err != nil {
			s.logger.Warn("Web push delivery failed for user ", prefs.UserID, ": ", err)
			continue
		}
		delivered++
	}

	if s.fcm != nil {
		devices, err := s.deviceRepo.ListByUser(ctx, prefs.UserID)
		if err != nil {
			return fmt.Errorf("failed to list user devices: %w", err)
		}
		for _, device := range devices {
			attempted++
			if err := s.sendFCM(device, notification); err != nil {
				s.logger.Warn("FCM delivery failed for user ", prefs.UserID, ": ", err)
				continue
			}
			delivered++
		}
	}

	if attempted == 0 {
		return fmt.Errorf("user %s has no push endpoints registered", prefs.UserID)
	}
	if delivered == 0 {
		return fmt.Errorf("push delivery failed on all %d endpoints for user %s", attempted, prefs.UserID)
	}

	s.logger.Info("Sent push notification ", notification.ID, " to ", delivered, " endpoint(s) for user ", prefs.UserID)
	return nil
}

func (s *pushSender) sendWebPush(ctx context.Context, subscription *pwa.PushSubscription, payload []byte) error {
	target := &webpush.Subscription{
		Endpoint: subscription.Endpoint,
		Keys: webpush.Keys{
			P256dh: subscription.P256dh,
			Auth:   subscription.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, &webpush.Options{
		Subscriber:      s.webPushSettings.Subscriber,
		VAPIDPublicKey:  s.webPushSettings.VAPIDPublicKey,
		VAPIDPrivateKey: s.webPushSettings.VAPIDPrivateKey,
		TTL:             3600,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The push service reports a vanished subscription with 404 or 410;
	// drop the row so we stop retrying it.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		if err := s.subscriptionRepo.DeleteByEndpoint(ctx, subscription.Endpoint); err != nil {
			s.logger.Warn("Failed to prune expired subscription: ", err)
		}
		return fmt.Errorf("subscription expired (status %d)", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}

	return nil
}

func (s *pushSender) sendFCM(device *pwa.UserDevice, notification *notifications.Notification) error {
	message := &fcm.Message{
		To: device.FCMToken,
		Notification: &fcm.Notification{
			Title: notification.Title,
			Body:  notification.Body,
		},
	}

	resp, err := s.fcm.Send(message)
	if err != nil {
		return err
	}
	if resp.Failure > 0 {
		return fmt.Errorf("FCM rejected delivery to device %s", device.ID)
	}

	return nil
}
