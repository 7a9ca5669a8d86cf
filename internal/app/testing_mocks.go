//go:build unit
// +build unit

package app

import (
	"context"
	"time"

	"medguard_service/internal/domain/medications"
	"medguard_service/internal/domain/notifications"

	"github.com/stretchr/testify/mock"
)

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *notifications.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, notificationID string) (*notifications.Notification, error) {
	args := m.Called(ctx, notificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.Notification), args.Error(1)
}

// MockUserNotificationRepository is a mock implementation of UserNotificationRepository
type MockUserNotificationRepository struct {
	mock.Mock
}

func (m *MockUserNotificationRepository) Create(ctx context.Context, userNotification *notifications.UserNotification) error {
	args := m.Called(ctx, userNotification)
	return args.Error(0)
}

func (m *MockUserNotificationRepository) List(ctx context.Context, query *notifications.InboxQuery) ([]*notifications.UserNotification, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notifications.UserNotification), args.Error(1)
}

func (m *MockUserNotificationRepository) GetByID(ctx context.Context, userNotificationID string) (*notifications.UserNotification, error) {
	args := m.Called(ctx, userNotificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.UserNotification), args.Error(1)
}

func (m *MockUserNotificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserNotificationRepository) MarkRead(ctx context.Context, userNotificationID string, readAt time.Time) error {
	args := m.Called(ctx, userNotificationID, readAt)
	return args.Error(0)
}

func (m *MockUserNotificationRepository) MarkAllRead(ctx context.Context, userID string, readAt time.Time) error {
	args := m.Called(ctx, userID, readAt)
	return args.Error(0)
}

func (m *MockUserNotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockPreferencesRepository is a mock implementation of PreferencesRepository
type MockPreferencesRepository struct {
	mock.Mock
}

func (m *MockPreferencesRepository) Get(ctx context.Context, userID string) (*notifications.UserNotificationPreferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.UserNotificationPreferences), args.Error(1)
}

func (m *MockPreferencesRepository) Upsert(ctx context.Context, prefs *notifications.UserNotificationPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

// MockRateLimiter is a mock implementation of RateLimiter
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, userID, channel string) (bool, error) {
	args := m.Called(ctx, userID, channel)
	return args.Bool(0), args.Error(1)
}

// MockChannelSender is a mock implementation of ChannelSender
type MockChannelSender struct {
	mock.Mock
	ChannelName string
}

func (m *MockChannelSender) Channel() string {
	return m.ChannelName
}

func (m *MockChannelSender) Send(ctx context.Context, prefs *notifications.UserNotificationPreferences, notification *notifications.Notification) error {
	args := m.Called(ctx, prefs, notification)
	return args.Error(0)
}

// MockDispatchService is a mock implementation of DispatchService
type MockDispatchService struct {
	mock.Mock
}

func (m *MockDispatchService) Dispatch(ctx context.Context, request *notifications.DispatchRequest) (*notifications.DispatchResult, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.DispatchResult), args.Error(1)
}

// MockScheduleRepository is a mock implementation of ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *medications.MedicationSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) List(ctx context.Context, query *medications.ScheduleQuery) ([]*medications.MedicationSchedule, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*medications.MedicationSchedule), args.Error(1)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, scheduleID string) (*medications.MedicationSchedule, error) {
	args := m.Called(ctx, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medications.MedicationSchedule), args.Error(1)
}

func (m *MockScheduleRepository) UpdateByID(ctx context.Context, schedule *medications.MedicationSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

func (m *MockScheduleRepository) DeleteByID(ctx context.Context, scheduleID string) error {
	args := m.Called(ctx, scheduleID)
	return args.Error(0)
}

func (m *MockScheduleRepository) ListActivePatients(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockMedicationLogRepository is a mock implementation of MedicationLogRepository
type MockMedicationLogRepository struct {
	mock.Mock
}

func (m *MockMedicationLogRepository) Create(ctx context.Context, log *medications.MedicationLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockMedicationLogRepository) List(ctx context.Context, query *medications.LogQuery) ([]*medications.MedicationLog, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*medications.MedicationLog), args.Error(1)
}

func (m *MockMedicationLogRepository) CountByStatus(ctx context.Context, patientID string, periodStart, periodEnd time.Time) (map[string]int, error) {
	args := m.Called(ctx, patientID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// MockAdherenceReportRepository is a mock implementation of AdherenceReportRepository
type MockAdherenceReportRepository struct {
	mock.Mock
}

func (m *MockAdherenceReportRepository) Upsert(ctx context.Context, report *medications.AdherenceReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockAdherenceReportRepository) List(ctx context.Context, query *medications.ReportQuery) ([]*medications.AdherenceReport, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*medications.AdherenceReport), args.Error(1)
}

func (m *MockAdherenceReportRepository) GetByID(ctx context.Context, reportID string) (*medications.AdherenceReport, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medications.AdherenceReport), args.Error(1)
}

// MockReminderRepository is a mock implementation of ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *medications.MedicationReminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) ListDue(ctx context.Context, cutoff time.Time, limit int) ([]*medications.MedicationReminder, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*medications.MedicationReminder), args.Error(1)
}

func (m *MockReminderRepository) ExistsForSlot(ctx context.Context, scheduleID string, sendAt time.Time) (bool, error) {
	args := m.Called(ctx, scheduleID, sendAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockReminderRepository) MarkSent(ctx context.Context, reminderID string, sentAt time.Time) error {
	args := m.Called(ctx, reminderID, sentAt)
	return args.Error(0)
}

func (m *MockReminderRepository) DeleteBySchedule(ctx context.Context, scheduleID string) error {
	args := m.Called(ctx, scheduleID)
	return args.Error(0)
}
