//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestNotification(t *testing.T) *notifications.Notification {
	t.Helper()

	return &notifications.Notification{
		ID:               uuid.NewString(),
		Title:            "Time for your medication",
		Body:             "Metformin 500 mg is due at 08:00.",
		NotificationType: notifications.TypeReminder,
		Priority:         notifications.PriorityNormal,
		Metadata:         map[string]string{"schedule_id": uuid.NewString()},
		DateTimeCreated:  time.Now(),
	}
}

func createTestUserNotification(t *testing.T, notificationID, userID, channel string) *notifications.UserNotification {
	t.Helper()

	return &notifications.UserNotification{
		ID:              uuid.NewString(),
		NotificationID:  notificationID,
		UserID:          userID,
		Channel:         channel,
		Status:          notifications.StatusSent,
		DateTimeCreated: time.Now(),
	}
}

func TestNotificationSqliteRepository_CreateAndGet(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	notification := createTestNotification(t)
	require.NoError(t, ctx.NotificationRepo.Create(context.Background(), notification))

	fetched, err := ctx.NotificationRepo.GetByID(context.Background(), notification.ID)
	require.NoError(t, err)
	assert.Equal(t, notification.Title, fetched.Title)
	assert.Equal(t, notification.Metadata["schedule_id"], fetched.Metadata["schedule_id"])
}

func TestNotificationRepository_Create_InvalidNotification(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	notification := &notifications.Notification{} // Invalid - missing required fields

	err := ctx.NotificationRepo.Create(context.Background(), notification)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestUserNotificationSqliteRepository_InboxListsInAppOnly(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	userID := uuid.NewString()
	notification := createTestNotification(t)
	require.NoError(t, ctx.NotificationRepo.Create(context.Background(), notification))

	inApp := createTestUserNotification(t, notification.ID, userID, notifications.ChannelInApp)
	email := createTestUserNotification(t, notification.ID, userID, notifications.ChannelEmail)
	require.NoError(t, ctx.UserNotificationRepo.Create(context.Background(), inApp))
	require.NoError(t, ctx.UserNotificationRepo.Create(context.Background(), email))

	list, err := ctx.UserNotificationRepo.List(context.Background(), notifications.NewInboxQuery(userID))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, notifications.ChannelInApp, list[0].Channel)
}

func TestUserNotificationSqliteRepository_InboxExcludesSkippedDeliveries(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	userID := uuid.NewString()
	notification := createTestNotification(t)
	require.NoError(t, ctx.NotificationRepo.Create(context.Background(), notification))

	sent := createTestUserNotification(t, notification.ID, userID, notifications.ChannelInApp)
	skipped := createTestUserNotification(t, notification.ID, userID, notifications.ChannelInApp)
	skipped.Status = notifications.StatusSkipped
	skipped.Detail = "rate limited"
	require.NoError(t, ctx.UserNotificationRepo.Create(context.Background(), sent))
	require.NoError(t, ctx.UserNotificationRepo.Create(context.Background(), skipped))

	list, err := ctx.UserNotificationRepo.List(context.Background(), notifications.NewInboxQuery(userID))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sent.ID, list[0].ID)

	count, err := ctx.UserNotificationRepo.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserNotificationSqliteRepository_MarkReadAndUnreadCount(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	userID := uuid.NewString()
	notification := createTestNotification(t)
	require.NoError(t, ctx.NotificationRepo.Create(context.Background(), notification))

	first := createTestUserNotification(t, notification.ID, userID, notifications.ChannelInApp)
	second := createTestUserNotification(t, notification.ID, userID, notifications.ChannelInApp)
	require.NoError(t, ctx.UserNotificationRepo.Create(context.Background(), first))
	require.NoError(t, ctx.UserNotificationRepo.Create(context.Background(), second))

	count, err := ctx.UserNotificationRepo.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, ctx.UserNotificationRepo.MarkRead(context.Background(), first.ID, time.Now()))

	count, err = ctx.UserNotificationRepo.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, ctx.UserNotificationRepo.MarkAllRead(context.Background(), userID, time.Now()))

	count, err = ctx.UserNotificationRepo.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUserNotificationSqliteRepository_DeleteReadBefore(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	userID := uuid.NewString()
	notification := createTestNotification(t)
	require.NoError(t, ctx.NotificationRepo.Create(context.Background(), notification))

	read := createTestUserNotification(t, notification.ID, userID, notifications.ChannelInApp)
	unread := createTestUserNotification(t, notification.ID, userID, notifications.ChannelInApp)
	require.NoError(t, ctx.UserNotificationRepo.Create(context.Background(), read))
	require.NoError(t, ctx.UserNotificationRepo.Create(context.Background(), unread))
	require.NoError(t, ctx.UserNotificationRepo.MarkRead(context.Background(), read.ID, time.Now().Add(-48*time.Hour)))

	deleted, err := ctx.UserNotificationRepo.DeleteReadBefore(context.Background(), time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	count, err := ctx.UserNotificationRepo.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPreferencesSqliteRepository_Get_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.PreferencesRepo.Get(context.Background(), uuid.NewString())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPreferencesSqliteRepository_Upsert(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	userID := uuid.NewString()
	prefs := notifications.DefaultPreferences(userID)
	prefs.EmailEnabled = true
	prefs.EmailAddress = "thandi@example.com"
	prefs.QuietHoursStart = "21:00"
	prefs.QuietHoursEnd = "07:00"

	require.NoError(t, ctx.PreferencesRepo.Upsert(context.Background(), prefs))

	fetched, err := ctx.PreferencesRepo.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, fetched.EmailEnabled)
	assert.Equal(t, "21:00", fetched.QuietHoursStart)

	// Second upsert replaces the row.
	prefs.EmailEnabled = false
	prefs.EmailAddress = ""
	require.NoError(t, ctx.PreferencesRepo.Upsert(context.Background(), prefs))

	fetched, err = ctx.PreferencesRepo.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, fetched.EmailEnabled)
}
