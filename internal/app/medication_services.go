package app

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/domain/medications"
	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// scheduleService implements the ScheduleService interface for managing medication schedules
type scheduleService struct {
	scheduleRepo medications.ScheduleRepository
	reminderRepo medications.ReminderRepository
	logger       logger.Logger
}

// NewScheduleService creates a new instance of ScheduleService
func NewScheduleService(
	scheduleRepo medications.ScheduleRepository,
	reminderRepo medications.ReminderRepository,
	logger logger.Logger,
) (medications.ScheduleService, error) {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		reminderRepo: reminderRepo,
		logger:       logger,
	}, nil
}

// Create registers a new medication schedule for a patient.
func (s *scheduleService) Create(ctx context.Context, schedule *medications.MedicationSchedule) (*medications.MedicationSchedule, error) {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	schedule.DateTimeCreated = time.Now()

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	s.logger.Info("Created medication schedule with id ", schedule.ID)
	return schedule, nil
}

func (s *scheduleService) List(ctx context.Context, query *medications.ScheduleQuery) ([]*medications.MedicationSchedule, error) {
	return s.scheduleRepo.List(ctx, query)
}

func (s *scheduleService) GetByID(ctx context.Context, scheduleID string) (*medications.MedicationSchedule, error) {
	return s.scheduleRepo.GetByID(ctx, scheduleID)
}

func (s *scheduleService) UpdateByID(ctx context.Context, schedule *medications.MedicationSchedule) error {
	if err := s.scheduleRepo.UpdateByID(ctx, schedule); err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	// Dose times may have moved; drop materialized reminders so they are
	// re-expanded from the new TimesOfDay.
	if err := s.reminderRepo.DeleteBySchedule(ctx, schedule.ID); err != nil {
		return fmt.Errorf("failed to reset reminders for schedule %s: %w", schedule.ID, err)
	}

	return nil
}

// DeleteByID removes a schedule and its pending reminders.
func (s *scheduleService) DeleteByID(ctx context.Context, scheduleID string) error {
	if err := s.reminderRepo.DeleteBySchedule(ctx, scheduleID); err != nil {
		return fmt.Errorf("failed to delete reminders for schedule %s: %w", scheduleID, err)
	}

	if err := s.scheduleRepo.DeleteByID(ctx, scheduleID); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	s.logger.Info("Deleted medication schedule with id ", scheduleID)
	return nil
}

// doseLogService implements the DoseLogService interface for recording dose outcomes
type doseLogService struct {
	logRepo      medications.MedicationLogRepository
	scheduleRepo medications.ScheduleRepository
	logger       logger.Logger
}

// NewDoseLogService creates a new instance of DoseLogService
func NewDoseLogService(
	logRepo medications.MedicationLogRepository,
	scheduleRepo medications.ScheduleRepository,
	logger logger.Logger,
) (medications.DoseLogService, error) {
	return &doseLogService{
		logRepo:      logRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}, nil
}

// Record persists one dose outcome for a schedule.
func (s *doseLogService) Record(ctx context.Context, log *medications.MedicationLog) (*medications.MedicationLog, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, log.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schedule for dose log: %w", err)
	}

	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	log.PatientID = schedule.PatientID
	if log.RecordedAt.IsZero() {
		log.RecordedAt = time.Now()
	}

	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to record dose: %w", err)
	}

	s.logger.Info("Recorded dose ", log.Status, " for schedule ", log.ScheduleID)
	return log, nil
}

func (s *doseLogService) List(ctx context.Context, query *medications.LogQuery) ([]*medications.MedicationLog, error) {
	return s.logRepo.List(ctx, query)
}

// adherenceService implements the AdherenceService interface
type adherenceService struct {
	logRepo    medications.MedicationLogRepository
	reportRepo medications.AdherenceReportRepository
	logger     logger.Logger
}

// NewAdherenceService creates a new instance of AdherenceService
func NewAdherenceService(
	logRepo medications.MedicationLogRepository,
	reportRepo medications.AdherenceReportRepository,
	logger logger.Logger,
) (medications.AdherenceService, error) {
	return &adherenceService{
		logRepo:    logRepo,
		reportRepo: reportRepo,
		logger:     logger,
	}, nil
}

// GenerateReport builds the adherence report for a patient over a period,
// replacing any previous report for the same (patient, period).
func (s *adherenceService) GenerateReport(ctx context.Context, patientID string, periodStart, periodEnd time.Time) (*medications.AdherenceReport, error) {
	if !periodEnd.After(periodStart) {
		return nil, fmt.Errorf("period end %v must be after period start %v", periodEnd, periodStart)
	}

	counts, err := s.logRepo.CountByStatus(ctx, patientID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dose outcomes: %w", err)
	}

	taken := counts[medications.DoseStatusTaken]
	missed := counts[medications.DoseStatusMissed]
	skipped := counts[medications.DoseStatusSkipped]
	scheduled := taken + missed + skipped

	rate := medications.CalculateAdherenceRate(taken, scheduled)

	report := &medications.AdherenceReport{
		ID:              uuid.NewString(),
		PatientID:       patientID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		ScheduledDoses:  scheduled,
		TakenDoses:      taken,
		MissedDoses:     missed,
		SkippedDoses:    skipped,
		AdherenceRate:   rate,
		Status:          medications.AdherenceStatusFor(rate),
		DateTimeCreated: time.Now(),
	}

	if err := s.reportRepo.Upsert(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to store adherence report: %w", err)
	}

	s.logger.Info("Generated adherence report for patient ", patientID, " with rate ", rate)
	return report, nil
}

func (s *adherenceService) ListReports(ctx context.Context, query *medications.ReportQuery) ([]*medications.AdherenceReport, error) {
	return s.reportRepo.List(ctx, query)
}

// reminderService implements the ReminderService interface. It turns schedules
// into concrete reminder rows and pushes due ones through the dispatcher.
type reminderService struct {
	scheduleRepo medications.ScheduleRepository
	reminderRepo medications.ReminderRepository
	dispatcher   notifications.DispatchService
	logger       logger.Logger
}

// NewReminderService creates a new instance of ReminderService
func NewReminderService(
	scheduleRepo medications.ScheduleRepository,
	reminderRepo medications.ReminderRepository,
	dispatcher notifications.DispatchService,
	logger logger.Logger,
) (medications.ReminderService, error) {
	return &reminderService{
		scheduleRepo: scheduleRepo,
		reminderRepo: reminderRepo,
		dispatcher:   dispatcher,
		logger:       logger,
	}, nil
}

// ExpandDue materializes reminder rows for doses falling inside the window
// ending at now. The slot uniqueness check makes re-runs idempotent.
func (s *reminderService) ExpandDue(ctx context.Context, now time.Time, window time.Duration) (int, error) {
	query := medications.NewScheduleQuery()
	query.ActiveOnly = true
	query.Limit = 500

	schedules, err := s.scheduleRepo.List(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to list active schedules: %w", err)
	}

	created := 0
	windowStart := now.Add(-window)

	for _, schedule := range schedules {
		location, err := time.LoadLocation(schedule.Timezone)
		if err != nil {
			s.logger.Warn("Schedule ", schedule.ID, " has unknown timezone ", schedule.Timezone)
			continue
		}

		for _, slot := range doseInstants(schedule, windowStart, now, location) {
			exists, err := s.reminderRepo.ExistsForSlot(ctx, schedule.ID, slot)
			if err != nil {
				return created, fmt.Errorf("failed to check reminder slot: %w", err)
			}
			if exists {
				continue
			}

			// Channels stay empty so the dispatcher resolves them against the
			// patient's preferences at send time.
			reminder := &medications.MedicationReminder{
				ID:         uuid.NewString(),
				ScheduleID: schedule.ID,
				PatientID:  schedule.PatientID,
				SendAt:     slot,
			}
			if err := s.reminderRepo.Create(ctx, reminder); err != nil {
				return created, fmt.Errorf("failed to create reminder: %w", err)
			}
			created++
		}
	}

	return created, nil
}

// DispatchDue sends every unsent reminder whose SendAt is not after now.
func (s *reminderService) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.reminderRepo.ListDue(ctx, now, 200)
	if err != nil {
		return 0, fmt.Errorf("failed to list due reminders: %w", err)
	}

	dispatched := 0
	for _, reminder := range due {
		schedule, err := s.scheduleRepo.GetByID(ctx, reminder.ScheduleID)
		if err != nil {
			s.logger.Warn("Reminder ", reminder.ID, " references missing schedule: ", err)
			continue
		}

		notification := &notifications.Notification{
			ID:               uuid.NewString(),
			Title:            "Time for your medication",
			Body:             fmt.Sprintf("%s %s %s is due.", schedule.MedicationName, schedule.Dosage, schedule.DoseUnit),
			NotificationType: notifications.TypeReminder,
			Priority:         notifications.PriorityHigh,
			Metadata: map[string]string{
				"schedule_id": schedule.ID,
				"send_at":     reminder.SendAt.Format(time.RFC3339),
			},
			DateTimeCreated: time.Now(),
		}

		_, err = s.dispatcher.Dispatch(ctx, &notifications.DispatchRequest{
			UserID:       reminder.PatientID,
			Notification: notification,
			Channels:     reminder.Channels,
		})
		if err != nil {
			s.logger.Error("Failed to dispatch reminder ", reminder.ID, ": ", err)
			continue
		}

		if err := s.reminderRepo.MarkSent(ctx, reminder.ID, now); err != nil {
			return dispatched, fmt.Errorf("failed to mark reminder sent: %w", err)
		}
		dispatched++
	}

	return dispatched, nil
}

// doseInstants returns the concrete dose times of a schedule falling inside
// (start, end], evaluated in the schedule's timezone.
func doseInstants(schedule *medications.MedicationSchedule, start, end time.Time, location *time.Location) []time.Time {
	var instants []time.Time

	local := start.In(location)
	firstDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)

	for day := firstDay; !day.After(end.In(location)); day = day.AddDate(0, 0, 1) {
		for _, clock := range schedule.TimesOfDay {
			parsed, err := time.Parse("15:04", clock)
			if err != nil {
				continue
			}

			instant := time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, location)
			if !instant.After(start) || instant.After(end) {
				continue
			}
			if instant.Before(schedule.StartDate) {
				continue
			}
			if schedule.EndDate != nil && instant.After(*schedule.EndDate) {
				continue
			}
			instants = append(instants, instant)
		}
	}

	return instants
}
