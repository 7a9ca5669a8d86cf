package senders

import (
	"context"
	"fmt"

	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/pkg/logger"
	"medguard_service/internal/pkg/phi"
)

// smsSender logs the message instead of handing it to a gateway. Plugging a
// provider in means replacing the Send body; the dispatch pipeline and the
// delivery bookkeeping stay the same.
type smsSender struct {
	logger logger.Logger
}

// NewSMSSender creates a ChannelSender for the sms channel
func NewSMSSender(logger logger.Logger) notifications.ChannelSender {
	return &smsSender{logger: logger}
}

func (s *smsSender) Channel() string {
	return notifications.ChannelSMS
}

func (s *smsSender) Send(ctx context.Context, prefs *notifications.UserNotificationPreferences, notification *notifications.Notification) error {
	if prefs.PhoneNumber == "" {
		return fmt.Errorf("user %s has no phone number configured", prefs.UserID)
	}

	// Log lines must never leak the recipient's number.
	s.logger.Info("SMS notification ", notification.ID, " for user ", prefs.UserID, ": ", phi.Scrub(notification.Title))
	return nil
}
