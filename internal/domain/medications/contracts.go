package medications

import (
	"context"
	"time"
)

// ScheduleService defines methods for managing medication schedules.
type ScheduleService interface {
	// Create registers a new medication schedule for a patient.
	// It returns the stored MedicationSchedule and any error encountered.
	Create(ctx context.Context, schedule *MedicationSchedule) (*MedicationSchedule, error)

	// List retrieves schedules considering a query filter when set.
	List(ctx context.Context, query *ScheduleQuery) ([]*MedicationSchedule, error)

	// GetByID retrieves a schedule by its unique ID.
	GetByID(ctx context.Context, scheduleID string) (*MedicationSchedule, error)

	// UpdateByID replaces a schedule's mutable fields.
	UpdateByID(ctx context.Context, schedule *MedicationSchedule) error

	// DeleteByID removes a schedule and its pending reminders.
	DeleteByID(ctx context.Context, scheduleID string) error
}

// DoseLogService defines methods for recording and querying dose outcomes.
type DoseLogService interface {
	// Record persists one dose outcome (taken, missed or skipped) for a schedule.
	Record(ctx context.Context, log *MedicationLog) (*MedicationLog, error)

	// List retrieves dose logs considering a query filter when set.
	List(ctx context.Context, query *LogQuery) ([]*MedicationLog, error)
}

// AdherenceService computes and stores adherence reports.
type AdherenceService interface {
	// GenerateReport builds the adherence report for a patient over a period,
	// replacing any previous report for the same (patient, period).
	GenerateReport(ctx context.Context, patientID string, periodStart, periodEnd time.Time) (*AdherenceReport, error)

	// ListReports retrieves stored reports considering a query filter when set.
	ListReports(ctx context.Context, query *ReportQuery) ([]*AdherenceReport, error)
}

// ReminderService expands schedules into concrete reminders and hands due
// reminders to the notification dispatcher.
type ReminderService interface {
	// ExpandDue materializes reminder rows for doses falling inside the window
	// ending at now. Already materialized slots are left untouched.
	ExpandDue(ctx context.Context, now time.Time, window time.Duration) (int, error)

	// DispatchDue sends every unsent reminder whose SendAt is not after now and
	// marks it sent. It returns the number of reminders dispatched.
	DispatchDue(ctx context.Context, now time.Time) (int, error)
}

// ScheduleRepository defines the interface for MedicationSchedule persistence.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *MedicationSchedule) error
	List(ctx context.Context, query *ScheduleQuery) ([]*MedicationSchedule, error)
	GetByID(ctx context.Context, scheduleID string) (*MedicationSchedule, error)
	UpdateByID(ctx context.Context, schedule *MedicationSchedule) error
	DeleteByID(ctx context.Context, scheduleID string) error
	// ListActivePatients returns the distinct patient IDs having at least one
	// active schedule, for periodic report generation.
	ListActivePatients(ctx context.Context) ([]string, error)
}

// MedicationLogRepository defines the interface for MedicationLog persistence.
type MedicationLogRepository interface {
	Create(ctx context.Context, log *MedicationLog) error
	List(ctx context.Context, query *LogQuery) ([]*MedicationLog, error)
	// CountByStatus aggregates a patient's dose outcomes inside a period.
	CountByStatus(ctx context.Context, patientID string, periodStart, periodEnd time.Time) (map[string]int, error)
}

// AdherenceReportRepository defines the interface for AdherenceReport persistence.
type AdherenceReportRepository interface {
	// Upsert stores the report, replacing an existing row with the same
	// patient and period.
	Upsert(ctx context.Context, report *AdherenceReport) error
	List(ctx context.Context, query *ReportQuery) ([]*AdherenceReport, error)
	GetByID(ctx context.Context, reportID string) (*AdherenceReport, error)
}

// ReminderRepository defines the interface for MedicationReminder persistence.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *MedicationReminder) error
	// ListDue returns unsent reminders with SendAt not after the cutoff.
	ListDue(ctx context.Context, cutoff time.Time, limit int) ([]*MedicationReminder, error)
	// ExistsForSlot reports whether a reminder row already covers the given
	// schedule and dose instant.
	ExistsForSlot(ctx context.Context, scheduleID string, sendAt time.Time) (bool, error)
	MarkSent(ctx context.Context, reminderID string, sentAt time.Time) error
	DeleteBySchedule(ctx context.Context, scheduleID string) error
}
