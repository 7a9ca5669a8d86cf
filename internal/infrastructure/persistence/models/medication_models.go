package models

import (
	"strings"
	"time"

	"medguard_service/internal/domain/medications"
)

// MedicationScheduleModel is the GORM database model for medication schedules
type MedicationScheduleModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	PatientID       string    `gorm:"not null;index;type:uuid"`
	MedicationName  string    `gorm:"not null;type:varchar(255)"`
	Dosage          string    `gorm:"not null;type:varchar(50)"`
	DoseUnit        string    `gorm:"not null;type:varchar(20)"`
	Frequency       string    `gorm:"not null;type:varchar(50)"`
	TimesOfDay      string    `gorm:"not null;type:varchar(255)"` // comma-joined HH:MM values
	StartDate       time.Time `gorm:"not null"`
	EndDate         *time.Time
	Active          bool   `gorm:"not null;index"`
	Timezone        string `gorm:"not null;type:varchar(64)"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MedicationScheduleModel) TableName() string {
	return "medication_schedules"
}

// ToDomain converts GORM model to domain entity
func (m *MedicationScheduleModel) ToDomain() *medications.MedicationSchedule {
	return &medications.MedicationSchedule{
		ID:              m.ID,
		PatientID:       m.PatientID,
		MedicationName:  m.MedicationName,
		Dosage:          m.Dosage,
		DoseUnit:        m.DoseUnit,
		Frequency:       m.Frequency,
		TimesOfDay:      strings.Split(m.TimesOfDay, ","),
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		Active:          m.Active,
		Timezone:        m.Timezone,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MedicationScheduleModel) FromDomain(s *medications.MedicationSchedule) {
	m.ID = s.ID
	m.PatientID = s.PatientID
	m.MedicationName = s.MedicationName
	m.Dosage = s.Dosage
	m.DoseUnit = s.DoseUnit
	m.Frequency = s.Frequency
	m.TimesOfDay = strings.Join(s.TimesOfDay, ",")
	m.StartDate = s.StartDate
	m.EndDate = s.EndDate
	m.Active = s.Active
	m.Timezone = s.Timezone
	m.DateTimeCreated = s.DateTimeCreated
}

// MedicationLogModel is the GORM database model for dose logs
type MedicationLogModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	ScheduleID  string    `gorm:"not null;index;type:uuid"`
	PatientID   string    `gorm:"not null;index;type:uuid"`
	ScheduledAt time.Time `gorm:"not null;index"`
	RecordedAt  time.Time `gorm:"not null"`
	Status      string    `gorm:"not null;type:varchar(10);index"`
	Notes       string    `gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (MedicationLogModel) TableName() string {
	return "medication_logs"
}

// ToDomain converts GORM model to domain entity
func (m *MedicationLogModel) ToDomain() *medications.MedicationLog {
	return &medications.MedicationLog{
		ID:          m.ID,
		ScheduleID:  m.ScheduleID,
		PatientID:   m.PatientID,
		ScheduledAt: m.ScheduledAt,
		RecordedAt:  m.RecordedAt,
		Status:      m.Status,
		Notes:       m.Notes,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MedicationLogModel) FromDomain(l *medications.MedicationLog) {
	m.ID = l.ID
	m.ScheduleID = l.ScheduleID
	m.PatientID = l.PatientID
	m.ScheduledAt = l.ScheduledAt
	m.RecordedAt = l.RecordedAt
	m.Status = l.Status
	m.Notes = l.Notes
}

// AdherenceReportModel is the GORM database model for adherence reports
type AdherenceReportModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	PatientID       string    `gorm:"not null;uniqueIndex:idx_report_patient_period;type:uuid"`
	PeriodStart     time.Time `gorm:"not null;uniqueIndex:idx_report_patient_period"`
	PeriodEnd       time.Time `gorm:"not null;uniqueIndex:idx_report_patient_period"`
	ScheduledDoses  int       `gorm:"not null"`
	TakenDoses      int       `gorm:"not null"`
	MissedDoses     int       `gorm:"not null"`
	SkippedDoses    int       `gorm:"not null"`
	AdherenceRate   float64   `gorm:"not null"`
	Status          string    `gorm:"not null;type:varchar(10)"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (AdherenceReportModel) TableName() string {
	return "adherence_reports"
}

// ToDomain converts GORM model to domain entity
func (m *AdherenceReportModel) ToDomain() *medications.AdherenceReport {
	return &medications.AdherenceReport{
		ID:              m.ID,
		PatientID:       m.PatientID,
		PeriodStart:     m.PeriodStart,
		PeriodEnd:       m.PeriodEnd,
		ScheduledDoses:  m.ScheduledDoses,
		TakenDoses:      m.TakenDoses,
		MissedDoses:     m.MissedDoses,
		SkippedDoses:    m.SkippedDoses,
		AdherenceRate:   m.AdherenceRate,
		Status:          medications.AdherenceStatus(m.Status),
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *AdherenceReportModel) FromDomain(r *medications.AdherenceReport) {
	m.ID = r.ID
	m.PatientID = r.PatientID
	m.PeriodStart = r.PeriodStart
	m.PeriodEnd = r.PeriodEnd
	m.ScheduledDoses = r.ScheduledDoses
	m.TakenDoses = r.TakenDoses
	m.MissedDoses = r.MissedDoses
	m.SkippedDoses = r.SkippedDoses
	m.AdherenceRate = r.AdherenceRate
	m.Status = string(r.Status)
	m.DateTimeCreated = r.DateTimeCreated
}

// MedicationReminderModel is the GORM database model for reminders
type MedicationReminderModel struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	ScheduleID string    `gorm:"not null;uniqueIndex:idx_reminder_slot;type:uuid"`
	PatientID  string    `gorm:"not null;index;type:uuid"`
	SendAt     time.Time `gorm:"not null;uniqueIndex:idx_reminder_slot;index"`
	Channels   string    `gorm:"not null;type:varchar(100)"` // comma-joined channel names
	Sent       bool      `gorm:"not null;index"`
	SentAt     *time.Time
}

// TableName specifies the table name for GORM
func (MedicationReminderModel) TableName() string {
	return "medication_reminders"
}

// ToDomain converts GORM model to domain entity
func (m *MedicationReminderModel) ToDomain() *medications.MedicationReminder {
	var channels []string
	if m.Channels != "" {
		channels = strings.Split(m.Channels, ",")
	}
	return &medications.MedicationReminder{
		ID:         m.ID,
		ScheduleID: m.ScheduleID,
		PatientID:  m.PatientID,
		SendAt:     m.SendAt,
		Channels:   channels,
		Sent:       m.Sent,
		SentAt:     m.SentAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *MedicationReminderModel) FromDomain(r *medications.MedicationReminder) {
	m.ID = r.ID
	m.ScheduleID = r.ScheduleID
	m.PatientID = r.PatientID
	m.SendAt = r.SendAt
	m.Channels = strings.Join(r.Channels, ",")
	m.Sent = r.Sent
	m.SentAt = r.SentAt
}
