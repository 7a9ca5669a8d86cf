package app

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/domain/medications"
	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/domain/pwa"
	"medguard_service/internal/infrastructure/scheduler"
	"medguard_service/internal/pkg/config"
	"medguard_service/internal/pkg/logger"
)

// reminderWindow is how far back the reminder job looks for dose slots it may
// have missed, e.g. across a restart.
const reminderWindow = 10 * time.Minute

// Jobs bundles the recurring background work of the platform.
type Jobs struct {
	reminderService      medications.ReminderService
	adherenceService     medications.AdherenceService
	scheduleRepo         medications.ScheduleRepository
	userNotificationRepo notifications.UserNotificationRepository
	offlineRepo          pwa.OfflineDataRepository
	deviceRepo           pwa.UserDeviceRepository
	subscriptionRepo     pwa.PushSubscriptionRepository
	retention            config.RetentionSettings
	location             *time.Location
	logger               logger.Logger
}

// NewJobs creates the background job bundle. The timezone names the location
// day boundaries are computed in; empty means UTC.
func NewJobs(
	reminderService medications.ReminderService,
	adherenceService medications.AdherenceService,
	scheduleRepo medications.ScheduleRepository,
	userNotificationRepo notifications.UserNotificationRepository,
	offlineRepo pwa.OfflineDataRepository,
	deviceRepo pwa.UserDeviceRepository,
	subscriptionRepo pwa.PushSubscriptionRepository,
	retention config.RetentionSettings,
	timezone string,
	logger logger.Logger,
) (*Jobs, error) {
	if err := retention.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retention settings: %w", err)
	}

	location := time.UTC
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %s: %w", timezone, err)
		}
		location = loc
	}

	return &Jobs{
		reminderService:      reminderService,
		adherenceService:     adherenceService,
		scheduleRepo:         scheduleRepo,
		userNotificationRepo: userNotificationRepo,
		offlineRepo:          offlineRepo,
		deviceRepo:           deviceRepo,
		subscriptionRepo:     subscriptionRepo,
		retention:            retention,
		location:             location,
		logger:               logger,
	}, nil
}

// Register wires the jobs into the scheduler with the configured cron specs.
func (j *Jobs) Register(s *scheduler.Scheduler, settings config.SchedulerSettings) error {
	jobs := []scheduler.Job{
		{Name: "medication-reminders", Spec: settings.ReminderSpec, Run: j.RunReminders},
		{Name: "adherence-reports", Spec: settings.ReportSpec, Run: j.RunAdherenceReports},
		{Name: "retention-cleanup", Spec: settings.CleanupSpec, Run: j.RunCleanup},
	}

	for _, job := range jobs {
		if err := s.Register(job); err != nil {
			return err
		}
	}

	return nil
}

// RunReminders expands upcoming dose slots into reminder rows and dispatches
// the due ones.
func (j *Jobs) RunReminders(ctx context.Context) error {
	now := time.Now()

	created, err := j.reminderService.ExpandDue(ctx, now, reminderWindow)
	if err != nil {
		return fmt.Errorf("reminder expansion failed: %w", err)
	}

	dispatched, err := j.reminderService.DispatchDue(ctx, now)
	if err != nil {
		return fmt.Errorf("reminder dispatch failed: %w", err)
	}

	if created > 0 || dispatched > 0 {
		j.logger.Info("Reminder run created ", created, " and dispatched ", dispatched, " reminder(s)")
	}
	return nil
}

// RunAdherenceReports generates the previous-day report for every patient
// with an active schedule. Day boundaries follow the configured timezone.
func (j *Jobs) RunAdherenceReports(ctx context.Context) error {
	patients, err := j.scheduleRepo.ListActivePatients(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active patients: %w", err)
	}

	now := time.Now().In(j.location)
	periodEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, j.location)
	periodStart := periodEnd.AddDate(0, 0, -1)

	generated := 0
	for _, patientID := range patients {
		if _, err := j.adherenceService.GenerateReport(ctx, patientID, periodStart, periodEnd); err != nil {
			j.logger.Error("Failed to generate report for patient ", patientID, ": ", err)
			continue
		}
		generated++
	}

	j.logger.Info("Generated ", generated, " adherence report(s) for ", len(patients), " patient(s)")
	return nil
}

// RunCleanup prunes soft state past its retention window: read in-app
// notifications, synced offline changes, and stale push endpoints.
func (j *Jobs) RunCleanup(ctx context.Context) error {
	now := time.Now()

	notificationsDeleted, err := j.userNotificationRepo.DeleteReadBefore(ctx, now.AddDate(0, 0, -j.retention.ReadNotificationDays))
	if err != nil {
		return fmt.Errorf("failed to prune notifications: %w", err)
	}

	offlineDeleted, err := j.offlineRepo.DeleteSyncedBefore(ctx, now.AddDate(0, 0, -j.retention.SyncedOfflineDays))
	if err != nil {
		return fmt.Errorf("failed to prune offline data: %w", err)
	}

	deviceCutoff := now.AddDate(0, 0, -j.retention.InactiveDeviceDays)
	devicesDeleted, err := j.deviceRepo.DeleteInactiveSince(ctx, deviceCutoff)
	if err != nil {
		return fmt.Errorf("failed to prune devices: %w", err)
	}

	subscriptionsDeleted, err := j.subscriptionRepo.DeleteCreatedBefore(ctx, deviceCutoff)
	if err != nil {
		return fmt.Errorf("failed to prune subscriptions: %w", err)
	}

	j.logger.Info("Cleanup removed ", notificationsDeleted, " notification(s), ",
		offlineDeleted, " offline item(s), ", devicesDeleted, " device(s), ",
		subscriptionsDeleted, " subscription(s)")
	return nil
}
