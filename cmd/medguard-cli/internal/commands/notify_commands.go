package commands

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NotifyCommandHandler encapsulates logic for dispatching notifications via CLI.
type NotifyCommandHandler struct {
	dispatchService notifications.DispatchService
	logger          logger.Logger
}

// NewNotifyCommandHandler initializes and returns a NotifyCommandHandler instance with
// configured logger and notification dispatcher.
func NewNotifyCommandHandler() (*NotifyCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	appConfig, err := loadAppConfig()
	if err != nil {
		return nil, err
	}

	db, err := openDatabase(appConfig)
	if err != nil {
		return nil, err
	}

	dispatchService, err := buildDispatchService(appConfig, db, loggerInstance)
	if err != nil {
		return nil, err
	}

	return &NotifyCommandHandler{
		dispatchService: dispatchService,
		logger:          loggerInstance,
	}, nil
}

// SendNotificationCmd dispatches a notification to a user over the requested channels
func (commandHandler *NotifyCommandHandler) SendNotificationCmd(cmd *cobra.Command, _ []string) {
	userID, err := cmd.Flags().GetString("user-id")
	if err != nil {
		commandHandler.logger.Error("invalid user-id flag ", err)
		return
	}

	title, err := cmd.Flags().GetString("title")
	if err != nil {
		commandHandler.logger.Error("invalid title flag ", err)
		return
	}

	body, err := cmd.Flags().GetString("body")
	if err != nil {
		commandHandler.logger.Error("invalid body flag ", err)
		return
	}

	notificationType, err := cmd.Flags().GetString("type")
	if err != nil {
		commandHandler.logger.Error("invalid type flag ", err)
		return
	}

	priority, err := cmd.Flags().GetString("priority")
	if err != nil {
		commandHandler.logger.Error("invalid priority flag ", err)
		return
	}

	channels, err := cmd.Flags().GetStringSlice("channels")
	if err != nil {
		commandHandler.logger.Error("invalid channels flag ", err)
		return
	}

	notification := &notifications.Notification{
		ID:               uuid.New().String(),
		Title:            title,
		Body:             body,
		NotificationType: notificationType,
		Priority:         priority,
		DateTimeCreated:  time.Now().UTC(),
	}

	if err := notification.Validate(); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	result, err := commandHandler.dispatchService.Dispatch(context.Background(), &notifications.DispatchRequest{
		UserID:       userID,
		Notification: notification,
		Channels:     channels,
	})
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	for channel, outcome := range result.Outcomes {
		commandHandler.logger.Info("Channel ", channel, ": ", outcome)
	}
}

// InitNotifyCommands initializes notification commands
func InitNotifyCommands(rootCmd *cobra.Command) error {
	handler, err := NewNotifyCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create notify command handler %w", err)
	}

	var sendNotificationCmd = &cobra.Command{
		Use:   "send-notification",
		Short: "Dispatch a notification to a user",
		Run:   handler.SendNotificationCmd,
	}
	sendNotificationCmd.Flags().StringP("user-id", "", "", "Recipient user id")
	sendNotificationCmd.Flags().StringP("title", "", "", "Notification title")
	sendNotificationCmd.Flags().StringP("body", "", "", "Notification body")
	sendNotificationCmd.Flags().StringP("type", "", "system", "Notification type (reminder, refill, appointment, system, emergency)")
	sendNotificationCmd.Flags().StringP("priority", "", "normal", "Priority (low, normal, high, urgent)")
	sendNotificationCmd.Flags().StringSliceP("channels", "", []string{"inapp"}, "Delivery channels (email, push, sms, inapp)")
	rootCmd.AddCommand(sendNotificationCmd)

	return nil
}
