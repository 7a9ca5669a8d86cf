package senders

import (
	"context"
	"fmt"

	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/pkg/config"
	"medguard_service/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

// emailSender delivers notifications over SMTP.
type emailSender struct {
	settings config.SMTPSettings
	logger   logger.Logger
}

// NewEmailSender creates a ChannelSender for the email channel
func NewEmailSender(settings config.SMTPSettings, logger logger.Logger) (notifications.ChannelSender, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SMTP settings: %w", err)
	}

	return &emailSender{
		settings: settings,
		logger:   logger,
	}, nil
}

func (s *emailSender) Channel() string {
	return notifications.ChannelEmail
}

func (s *emailSender) Send(ctx context.Context, prefs *notifications.UserNotificationPreferences, notification *notifications.Notification) error {
	if prefs.EmailAddress == "" {
		return fmt.Errorf("user %s has no email address configured", prefs.UserID)
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.settings.From)
	message.SetHeader("To", prefs.EmailAddress)
	message.SetHeader("Subject", notification.Title)
	message.SetBody("text/plain", notification.Body)

	dialer := gomail.NewDialer(s.settings.Host, s.settings.Port, s.settings.Username, s.settings.Password)

	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send email to user %s: %w", prefs.UserID, err)
	}

	s.logger.Info("Sent email notification ", notification.ID, " to user ", prefs.UserID)
	return nil
}
