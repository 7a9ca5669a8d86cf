package app

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/pkg/logger"
	"medguard_service/internal/pkg/phi"

	"github.com/google/uuid"
)

// dispatchService implements the DispatchService interface. For each requested
// channel the pipeline is: preference filter, quiet hours, rate limit, sender.
// Every attempt leaves one UserNotification row carrying its outcome.
type dispatchService struct {
	notificationRepo     notifications.NotificationRepository
	userNotificationRepo notifications.UserNotificationRepository
	preferencesRepo      notifications.PreferencesRepository
	rateLimiter          notifications.RateLimiter
	senders              map[string]notifications.ChannelSender
	logger               logger.Logger
}

// NewDispatchService creates a new instance of DispatchService. The senders
// slice carries one ChannelSender per external channel; the inapp channel is
// served by the inbox itself and needs none.
func NewDispatchService(
	notificationRepo notifications.NotificationRepository,
	userNotificationRepo notifications.UserNotificationRepository,
	preferencesRepo notifications.PreferencesRepository,
	rateLimiter notifications.RateLimiter,
	senders []notifications.ChannelSender,
	logger logger.Logger,
) (notifications.DispatchService, error) {
	senderMap := make(map[string]notifications.ChannelSender, len(senders))
	for _, sender := range senders {
		senderMap[sender.Channel()] = sender
	}

	return &dispatchService{
		notificationRepo:     notificationRepo,
		userNotificationRepo: userNotificationRepo,
		preferencesRepo:      preferencesRepo,
		rateLimiter:          rateLimiter,
		senders:              senderMap,
		logger:               logger,
	}, nil
}

func (s *dispatchService) Dispatch(ctx context.Context, request *notifications.DispatchRequest) (*notifications.DispatchResult, error) {
	if request.Notification == nil {
		return nil, fmt.Errorf("dispatch request carries no notification")
	}
	if request.Notification.ID == "" {
		request.Notification.ID = uuid.NewString()
	}
	if request.Notification.DateTimeCreated.IsZero() {
		request.Notification.DateTimeCreated = time.Now()
	}

	if err := s.notificationRepo.Create(ctx, request.Notification); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	prefs, err := s.preferencesRepo.Get(ctx, request.UserID)
	if err != nil {
		prefs = notifications.DefaultPreferences(request.UserID)
	}

	requested := request.Channels
	if len(requested) == 0 {
		requested = notifications.AllChannels
	}

	urgent := request.Notification.Priority == notifications.PriorityUrgent
	result := &notifications.DispatchResult{
		UserID:   request.UserID,
		Outcomes: make(map[string]string, len(requested)),
	}

	for _, channel := range requested {
		status, detail := s.deliver(ctx, channel, prefs, request.Notification, urgent)
		result.Outcomes[channel] = status

		row := &notifications.UserNotification{
			ID:              uuid.NewString(),
			NotificationID:  request.Notification.ID,
			UserID:          request.UserID,
			Channel:         channel,
			Status:          status,
			Detail:          detail,
			DateTimeCreated: time.Now(),
		}
		if err := s.userNotificationRepo.Create(ctx, row); err != nil {
			return result, fmt.Errorf("failed to store delivery record: %w", err)
		}
	}

	return result, nil
}

// deliver runs one channel through the pipeline and returns the delivery
// status with an optional detail for skipped or failed attempts.
func (s *dispatchService) deliver(
	ctx context.Context,
	channel string,
	prefs *notifications.UserNotificationPreferences,
	notification *notifications.Notification,
	urgent bool,
) (string, string) {
	if !prefs.ChannelEnabled(channel) {
		return notifications.StatusSkipped, "channel disabled by user preference"
	}

	// Urgent messages cut through quiet hours.
	if !urgent && prefs.InQuietHours(time.Now()) {
		return notifications.StatusSkipped, "suppressed by quiet hours"
	}

	allowed, err := s.rateLimiter.Allow(ctx, prefs.UserID, channel)
	if err != nil {
		s.logger.Error("Rate limiter failed for user ", prefs.UserID, ": ", err)
		return notifications.StatusFailed, "rate limiter unavailable"
	}
	if !allowed {
		return notifications.StatusSkipped, "rate limit reached"
	}

	// The in-app channel has no transport; the stored row is the delivery.
	if channel == notifications.ChannelInApp {
		return notifications.StatusSent, ""
	}

	sender, ok := s.senders[channel]
	if !ok {
		return notifications.StatusSkipped, "channel not configured"
	}

	if err := sender.Send(ctx, prefs, scrubbed(notification)); err != nil {
		s.logger.Error("Delivery on channel ", channel, " failed for user ", prefs.UserID, ": ", err)
		return notifications.StatusFailed, phi.Scrub(err.Error())
	}

	return notifications.StatusSent, ""
}

// scrubbed returns a copy of the notification with identifying patterns
// removed from the content that leaves the platform.
func scrubbed(notification *notifications.Notification) *notifications.Notification {
	clean := *notification
	clean.Title = phi.Scrub(notification.Title)
	clean.Body = phi.Scrub(notification.Body)
	return &clean
}

// inboxService implements the InboxService interface over the user's in-app rows
type inboxService struct {
	userNotificationRepo notifications.UserNotificationRepository
	logger               logger.Logger
}

// NewInboxService creates a new instance of InboxService
func NewInboxService(
	userNotificationRepo notifications.UserNotificationRepository,
	logger logger.Logger,
) (notifications.InboxService, error) {
	return &inboxService{
		userNotificationRepo: userNotificationRepo,
		logger:               logger,
	}, nil
}

func (s *inboxService) List(ctx context.Context, query *notifications.InboxQuery) ([]*notifications.UserNotification, error) {
	return s.userNotificationRepo.List(ctx, query)
}

func (s *inboxService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.userNotificationRepo.UnreadCount(ctx, userID)
}

// MarkRead marks one notification read. Re-marking is a no-op.
func (s *inboxService) MarkRead(ctx context.Context, userID, userNotificationID string) error {
	row, err := s.userNotificationRepo.GetByID(ctx, userNotificationID)
	if err != nil {
		return fmt.Errorf("failed to fetch notification: %w", err)
	}
	if row.UserID != userID {
		return fmt.Errorf("notification %s does not belong to user %s", userNotificationID, userID)
	}
	if row.Read {
		return nil
	}

	return s.userNotificationRepo.MarkRead(ctx, userNotificationID, time.Now())
}

func (s *inboxService) MarkAllRead(ctx context.Context, userID string) error {
	return s.userNotificationRepo.MarkAllRead(ctx, userID, time.Now())
}

// preferencesService implements the PreferencesService interface
type preferencesService struct {
	preferencesRepo notifications.PreferencesRepository
	logger          logger.Logger
}

// NewPreferencesService creates a new instance of PreferencesService
func NewPreferencesService(
	preferencesRepo notifications.PreferencesRepository,
	logger logger.Logger,
) (notifications.PreferencesService, error) {
	return &preferencesService{
		preferencesRepo: preferencesRepo,
		logger:          logger,
	}, nil
}

// Get returns the user's preferences, creating defaults on first read.
func (s *preferencesService) Get(ctx context.Context, userID string) (*notifications.UserNotificationPreferences, error) {
	prefs, err := s.preferencesRepo.Get(ctx, userID)
	if err == nil {
		return prefs, nil
	}

	defaults := notifications.DefaultPreferences(userID)
	defaults.DateTimeUpdated = time.Now()
	if err := s.preferencesRepo.Upsert(ctx, defaults); err != nil {
		return nil, fmt.Errorf("failed to store default preferences: %w", err)
	}

	s.logger.Info("Created default notification preferences for user ", userID)
	return defaults, nil
}

func (s *preferencesService) Update(ctx context.Context, prefs *notifications.UserNotificationPreferences) error {
	prefs.DateTimeUpdated = time.Now()

	if err := s.preferencesRepo.Upsert(ctx, prefs); err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	s.logger.Info("Updated notification preferences for user ", prefs.UserID)
	return nil
}
