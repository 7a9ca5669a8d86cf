//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"medguard_service/internal/domain/notifications"
	pkgTesting "medguard_service/internal/pkg/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dispatchFixture struct {
	notificationRepo     *MockNotificationRepository
	userNotificationRepo *MockUserNotificationRepository
	preferencesRepo      *MockPreferencesRepository
	rateLimiter          *MockRateLimiter
	emailSender          *MockChannelSender
	service              notifications.DispatchService
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	t.Helper()

	f := &dispatchFixture{
		notificationRepo:     new(MockNotificationRepository),
		userNotificationRepo: new(MockUserNotificationRepository),
		preferencesRepo:      new(MockPreferencesRepository),
		rateLimiter:          new(MockRateLimiter),
		emailSender:          &MockChannelSender{ChannelName: notifications.ChannelEmail},
	}

	service, err := NewDispatchService(
		f.notificationRepo,
		f.userNotificationRepo,
		f.preferencesRepo,
		f.rateLimiter,
		[]notifications.ChannelSender{f.emailSender},
		pkgTesting.SetupTestLogger(t),
	)
	require.NoError(t, err)
	f.service = service
	return f
}

func testNotification(priority string) *notifications.Notification {
	return &notifications.Notification{
		ID:               uuid.NewString(),
		Title:            "Time for your medication",
		Body:             "Your evening dose is due.",
		NotificationType: notifications.TypeReminder,
		Priority:         priority,
		DateTimeCreated:  time.Now(),
	}
}

func TestDispatchService_SendsOnEnabledChannel(t *testing.T) {
	f := newDispatchFixture(t)
	userID := uuid.NewString()

	prefs := notifications.DefaultPreferences(userID)
	prefs.EmailEnabled = true
	prefs.EmailAddress = "user@example.com"

	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.preferencesRepo.On("Get", mock.Anything, userID).Return(prefs, nil)
	f.rateLimiter.On("Allow", mock.Anything, userID, notifications.ChannelEmail).Return(true, nil)
	f.emailSender.On("Send", mock.Anything, prefs, mock.Anything).Return(nil)
	f.userNotificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Dispatch(context.Background(), &notifications.DispatchRequest{
		UserID:       userID,
		Notification: testNotification(notifications.PriorityNormal),
		Channels:     []string{notifications.ChannelEmail},
	})
	require.NoError(t, err)
	assert.Equal(t, notifications.StatusSent, result.Outcomes[notifications.ChannelEmail])
	f.emailSender.AssertNumberOfCalls(t, "Send", 1)
}

func TestDispatchService_SkipsDisabledChannel(t *testing.T) {
	f := newDispatchFixture(t)
	userID := uuid.NewString()

	// Defaults enable in-app only.
	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.preferencesRepo.On("Get", mock.Anything, userID).Return(notifications.DefaultPreferences(userID), nil)
	f.userNotificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Dispatch(context.Background(), &notifications.DispatchRequest{
		UserID:       userID,
		Notification: testNotification(notifications.PriorityNormal),
		Channels:     []string{notifications.ChannelEmail},
	})
	require.NoError(t, err)
	assert.Equal(t, notifications.StatusSkipped, result.Outcomes[notifications.ChannelEmail])
	f.emailSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	f.rateLimiter.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchService_QuietHoursSuppressNonUrgent(t *testing.T) {
	f := newDispatchFixture(t)
	userID := uuid.NewString()

	prefs := notifications.DefaultPreferences(userID)
	prefs.EmailEnabled = true
	prefs.EmailAddress = "user@example.com"
	// A window covering the whole day keeps the test independent of wall time.
	prefs.QuietHoursStart = "00:00"
	prefs.QuietHoursEnd = "23:59"

	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.preferencesRepo.On("Get", mock.Anything, userID).Return(prefs, nil)
	f.userNotificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Dispatch(context.Background(), &notifications.DispatchRequest{
		UserID:       userID,
		Notification: testNotification(notifications.PriorityNormal),
		Channels:     []string{notifications.ChannelEmail},
	})
	require.NoError(t, err)
	assert.Equal(t, notifications.StatusSkipped, result.Outcomes[notifications.ChannelEmail])
	f.emailSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchService_UrgentBypassesQuietHours(t *testing.T) {
	f := newDispatchFixture(t)
	userID := uuid.NewString()

	prefs := notifications.DefaultPreferences(userID)
	prefs.EmailEnabled = true
	prefs.EmailAddress = "user@example.com"
	prefs.QuietHoursStart = "00:00"
	prefs.QuietHoursEnd = "23:59"

	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.preferencesRepo.On("Get", mock.Anything, userID).Return(prefs, nil)
	f.rateLimiter.On("Allow", mock.Anything, userID, notifications.ChannelEmail).Return(true, nil)
	f.emailSender.On("Send", mock.Anything, prefs, mock.Anything).Return(nil)
	f.userNotificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Dispatch(context.Background(), &notifications.DispatchRequest{
		UserID:       userID,
		Notification: testNotification(notifications.PriorityUrgent),
		Channels:     []string{notifications.ChannelEmail},
	})
	require.NoError(t, err)
	assert.Equal(t, notifications.StatusSent, result.Outcomes[notifications.ChannelEmail])
}

func TestDispatchService_RateLimitSkips(t *testing.T) {
	f := newDispatchFixture(t)
	userID := uuid.NewString()

	prefs := notifications.DefaultPreferences(userID)
	prefs.EmailEnabled = true
	prefs.EmailAddress = "user@example.com"

	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.preferencesRepo.On("Get", mock.Anything, userID).Return(prefs, nil)
	f.rateLimiter.On("Allow", mock.Anything, userID, notifications.ChannelEmail).Return(false, nil)
	f.userNotificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Dispatch(context.Background(), &notifications.DispatchRequest{
		UserID:       userID,
		Notification: testNotification(notifications.PriorityNormal),
		Channels:     []string{notifications.ChannelEmail},
	})
	require.NoError(t, err)
	assert.Equal(t, notifications.StatusSkipped, result.Outcomes[notifications.ChannelEmail])
	f.emailSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchService_SenderFailureRecordsFailed(t *testing.T) {
	f := newDispatchFixture(t)
	userID := uuid.NewString()

	prefs := notifications.DefaultPreferences(userID)
	prefs.EmailEnabled = true
	prefs.EmailAddress = "user@example.com"

	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.preferencesRepo.On("Get", mock.Anything, userID).Return(prefs, nil)
	f.rateLimiter.On("Allow", mock.Anything, userID, notifications.ChannelEmail).Return(true, nil)
	f.emailSender.On("Send", mock.Anything, prefs, mock.Anything).Return(errors.New("smtp unreachable"))

	var recorded *notifications.UserNotification
	f.userNotificationRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			recorded = args.Get(1).(*notifications.UserNotification)
		}).Return(nil)

	result, err := f.service.Dispatch(context.Background(), &notifications.DispatchRequest{
		UserID:       userID,
		Notification: testNotification(notifications.PriorityNormal),
		Channels:     []string{notifications.ChannelEmail},
	})
	require.NoError(t, err)
	assert.Equal(t, notifications.StatusFailed, result.Outcomes[notifications.ChannelEmail])
	require.NotNil(t, recorded)
	assert.Equal(t, notifications.StatusFailed, recorded.Status)
	assert.Contains(t, recorded.Detail, "smtp unreachable")
}

func TestDispatchService_InAppNeedsNoSender(t *testing.T) {
	f := newDispatchFixture(t)
	userID := uuid.NewString()

	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.preferencesRepo.On("Get", mock.Anything, userID).Return(notifications.DefaultPreferences(userID), nil)
	f.rateLimiter.On("Allow", mock.Anything, userID, notifications.ChannelInApp).Return(true, nil)
	f.userNotificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Dispatch(context.Background(), &notifications.DispatchRequest{
		UserID:       userID,
		Notification: testNotification(notifications.PriorityNormal),
		Channels:     []string{notifications.ChannelInApp},
	})
	require.NoError(t, err)
	assert.Equal(t, notifications.StatusSent, result.Outcomes[notifications.ChannelInApp])
}

func TestDispatchService_MissingPreferencesFallBackToDefaults(t *testing.T) {
	f := newDispatchFixture(t)
	userID := uuid.NewString()

	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.preferencesRepo.On("Get", mock.Anything, userID).Return(nil, errors.New("preferences not found"))
	f.rateLimiter.On("Allow", mock.Anything, userID, notifications.ChannelInApp).Return(true, nil)
	f.userNotificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Dispatch(context.Background(), &notifications.DispatchRequest{
		UserID:       userID,
		Notification: testNotification(notifications.PriorityNormal),
	})
	require.NoError(t, err)
	// Defaults reach every channel but only in-app is enabled.
	assert.Equal(t, notifications.StatusSent, result.Outcomes[notifications.ChannelInApp])
	assert.Equal(t, notifications.StatusSkipped, result.Outcomes[notifications.ChannelEmail])
	assert.Equal(t, notifications.StatusSkipped, result.Outcomes[notifications.ChannelPush])
	assert.Equal(t, notifications.StatusSkipped, result.Outcomes[notifications.ChannelSMS])
}

func TestDispatchService_ScrubsOutboundContent(t *testing.T) {
	f := newDispatchFixture(t)
	userID := uuid.NewString()

	prefs := notifications.DefaultPreferences(userID)
	prefs.EmailEnabled = true
	prefs.EmailAddress = "user@example.com"

	var sent *notifications.Notification
	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.preferencesRepo.On("Get", mock.Anything, userID).Return(prefs, nil)
	f.rateLimiter.On("Allow", mock.Anything, userID, notifications.ChannelEmail).Return(true, nil)
	f.emailSender.On("Send", mock.Anything, prefs, mock.Anything).
		Run(func(args mock.Arguments) {
			sent = args.Get(2).(*notifications.Notification)
		}).Return(nil)
	f.userNotificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	notification := testNotification(notifications.PriorityNormal)
	notification.Body = "Contact thandi@example.com about your refill."

	_, err := f.service.Dispatch(context.Background(), &notifications.DispatchRequest{
		UserID:       userID,
		Notification: notification,
		Channels:     []string{notifications.ChannelEmail},
	})
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.NotContains(t, sent.Body, "thandi@example.com")
	assert.Contains(t, sent.Body, "[REDACTED]")
	// The stored master row keeps the original content.
	assert.Contains(t, notification.Body, "thandi@example.com")
}

func TestInboxService_MarkRead_WrongUser(t *testing.T) {
	userNotificationRepo := new(MockUserNotificationRepository)
	service, err := NewInboxService(userNotificationRepo, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	rowID := uuid.NewString()
	userNotificationRepo.On("GetByID", mock.Anything, rowID).Return(&notifications.UserNotification{
		ID:     rowID,
		UserID: uuid.NewString(),
	}, nil)

	err = service.MarkRead(context.Background(), uuid.NewString(), rowID)
	assert.Error(t, err)
	userNotificationRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestInboxService_MarkRead_AlreadyReadIsNoOp(t *testing.T) {
	userNotificationRepo := new(MockUserNotificationRepository)
	service, err := NewInboxService(userNotificationRepo, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)

	userID := uuid.NewString()
	rowID := uuid.NewString()
	userNotificationRepo.On("GetByID", mock.Anything, rowID).Return(&notifications.UserNotification{
		ID:     rowID,
		UserID: userID,
		Read:   true,
	}, nil)

	require.NoError(t, service.MarkRead(context.Background(), userID, rowID))
	userNotificationRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}
