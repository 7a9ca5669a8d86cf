package commands

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/app"
	"medguard_service/internal/infrastructure/persistence"
	"medguard_service/internal/pkg/config"
	"medguard_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// JobCommandHandler encapsulates logic for running the scheduled jobs on demand via CLI.
type JobCommandHandler struct {
	jobs    *app.Jobs
	timeout time.Duration
	logger  logger.Logger
}

// NewJobCommandHandler initializes and returns a JobCommandHandler instance with
// configured logger and fully wired background jobs.
func NewJobCommandHandler() (*JobCommandHandler, error) {
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

	scheduleRepo, err := persistence.NewGormScheduleRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule repository: %w", err)
	}

	medicationLogRepo, err := persistence.NewGormMedicationLogRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create medication log repository: %w", err)
	}

	adherenceReportRepo, err := persistence.NewGormAdherenceReportRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create adherence report repository: %w", err)
	}

	reminderRepo, err := persistence.NewGormReminderRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder repository: %w", err)
	}

	userNotificationRepo, err := persistence.NewGormUserNotificationRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user notification repository: %w", err)
	}

	pushSubscriptionRepo, err := persistence.NewGormPushSubscriptionRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create push subscription repository: %w", err)
	}

	userDeviceRepo, err := persistence.NewGormUserDeviceRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user device repository: %w", err)
	}

	offlineDataRepo, err := persistence.NewGormOfflineDataRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create offline data repository: %w", err)
	}

	dispatchService, err := buildDispatchService(appConfig, db, loggerInstance)
	if err != nil {
		return nil, err
	}

	reminderService, err := app.NewReminderService(scheduleRepo, reminderRepo, dispatchService, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder service: %w", err)
	}

	adherenceService, err := app.NewAdherenceService(medicationLogRepo, adherenceReportRepo, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create adherence service: %w", err)
	}

	jobs, err := app.NewJobs(
		reminderService,
		adherenceService,
		scheduleRepo,
		userNotificationRepo,
		offlineDataRepo,
		userDeviceRepo,
		pushSubscriptionRepo,
		appConfig.Retention,
		appConfig.Scheduler.Timezone,
		loggerInstance,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create jobs: %w", err)
	}

	return &JobCommandHandler{
		jobs:    jobs,
		timeout: jobTimeout(appConfig.Scheduler),
		logger:  loggerInstance,
	}, nil
}

func jobTimeout(settings config.SchedulerSettings) time.Duration {
	if settings.JobTimeoutSec <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(settings.JobTimeoutSec) * time.Second
}

// RunRemindersCmd dispatches due medication reminders once
func (commandHandler *JobCommandHandler) RunRemindersCmd(_ *cobra.Command, _ []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandHandler.timeout)
	defer cancel()

	if err := commandHandler.jobs.RunReminders(ctx); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Reminder run completed")
}

// RunAdherenceReportsCmd generates the daily adherence reports once
func (commandHandler *JobCommandHandler) RunAdherenceReportsCmd(_ *cobra.Command, _ []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandHandler.timeout)
	defer cancel()

	if err := commandHandler.jobs.RunAdherenceReports(ctx); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Adherence report run completed")
}

// RunCleanupCmd prunes read notifications, synced offline rows and inactive devices once
func (commandHandler *JobCommandHandler) RunCleanupCmd(_ *cobra.Command, _ []string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandHandler.timeout)
	defer cancel()

	if err := commandHandler.jobs.RunCleanup(ctx); err != nil {
		commandHandler.logger.Error(err)
		return
	}
	commandHandler.logger.Info("Retention cleanup run completed")
}

// InitJobCommands initializes job commands
func InitJobCommands(rootCmd *cobra.Command) error {
	handler, err := NewJobCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create job command handler %w", err)
	}

	var runRemindersCmd = &cobra.Command{
		Use:   "run-reminders",
		Short: "Dispatch due medication reminders",
		Run:   handler.RunRemindersCmd,
	}
	rootCmd.AddCommand(runRemindersCmd)

	var runReportsCmd = &cobra.Command{
		Use:   "run-adherence-reports",
		Short: "Generate adherence reports for patients with active schedules",
		Run:   handler.RunAdherenceReportsCmd,
	}
	rootCmd.AddCommand(runReportsCmd)

	var runCleanupCmd = &cobra.Command{
		Use:   "run-cleanup",
		Short: "Prune expired notifications, offline data and inactive devices",
		Run:   handler.RunCleanupCmd,
	}
	rootCmd.AddCommand(runCleanupCmd)

	return nil
}
