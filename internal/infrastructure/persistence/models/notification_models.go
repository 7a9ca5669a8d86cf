package models

import (
	"encoding/json"
	"time"

	"medguard_service/internal/domain/notifications"
)

// NotificationModel is the GORM database model for notification content
type NotificationModel struct {
	ID               string    `gorm:"primaryKey;type:uuid"`
	Title            string    `gorm:"not null;type:varchar(255)"`
	Body             string    `gorm:"not null;type:text"`
	NotificationType string    `gorm:"not null;type:varchar(20);index"`
	Priority         string    `gorm:"not null;type:varchar(10)"`
	Metadata         string    `gorm:"type:text"` // JSON-encoded map
	DateTimeCreated  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts GORM model to domain entity
func (m *NotificationModel) ToDomain() *notifications.Notification {
	var metadata map[string]string
	if m.Metadata != "" {
		// Corrupt metadata degrades to nil rather than failing the read.
		_ = json.Unmarshal([]byte(m.Metadata), &metadata)
	}

	return &notifications.Notification{
		ID:               m.ID,
		Title:            m.Title,
		Body:             m.Body,
		NotificationType: m.NotificationType,
		Priority:         m.Priority,
		Metadata:         metadata,
		DateTimeCreated:  m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *NotificationModel) FromDomain(n *notifications.Notification) {
	m.ID = n.ID
	m.Title = n.Title
	m.Body = n.Body
	m.NotificationType = n.NotificationType
	m.Priority = n.Priority
	if len(n.Metadata) > 0 {
		encoded, err := json.Marshal(n.Metadata)
		if err == nil {
			m.Metadata = string(encoded)
		}
	} else {
		m.Metadata = ""
	}
	m.DateTimeCreated = n.DateTimeCreated
}

// UserNotificationModel is the GORM database model for per-user delivery rows
type UserNotificationModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	NotificationID  string `gorm:"not null;index;type:uuid"`
	UserID          string `gorm:"not null;index;type:uuid"`
	Channel         string `gorm:"not null;type:varchar(10);index"`
	Status          string `gorm:"not null;type:varchar(10)"`
	Detail          string `gorm:"type:varchar(500)"`
	Read            bool   `gorm:"not null;index"`
	ReadAt          *time.Time
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (UserNotificationModel) TableName() string {
	return "user_notifications"
}

// ToDomain converts GORM model to domain entity
func (m *UserNotificationModel) ToDomain() *notifications.UserNotification {
	return &notifications.UserNotification{
		ID:              m.ID,
		NotificationID:  m.NotificationID,
		UserID:          m.UserID,
		Channel:         m.Channel,
		Status:          m.Status,
		Detail:          m.Detail,
		Read:            m.Read,
		ReadAt:          m.ReadAt,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserNotificationModel) FromDomain(u *notifications.UserNotification) {
	m.ID = u.ID
	m.NotificationID = u.NotificationID
	m.UserID = u.UserID
	m.Channel = u.Channel
	m.Status = u.Status
	m.Detail = u.Detail
	m.Read = u.Read
	m.ReadAt = u.ReadAt
	m.DateTimeCreated = u.DateTimeCreated
}

// UserNotificationPreferencesModel is the GORM database model for preferences
type UserNotificationPreferencesModel struct {
	UserID          string `gorm:"primaryKey;type:uuid"`
	EmailEnabled    bool   `gorm:"not null"`
	PushEnabled     bool   `gorm:"not null"`
	SMSEnabled      bool   `gorm:"not null"`
	InAppEnabled    bool   `gorm:"not null"`
	QuietHoursStart string `gorm:"type:varchar(5)"`
	QuietHoursEnd   string `gorm:"type:varchar(5)"`
	Timezone        string `gorm:"type:varchar(64)"`
	EmailAddress    string `gorm:"type:varchar(255)"`
	PhoneNumber     string `gorm:"type:varchar(30)"`
	DateTimeUpdated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserNotificationPreferencesModel) TableName() string {
	return "user_notification_preferences"
}

// ToDomain converts GORM model to domain entity
func (m *UserNotificationPreferencesModel) ToDomain() *notifications.UserNotificationPreferences {
	return &notifications.UserNotificationPreferences{
		UserID:          m.UserID,
		EmailEnabled:    m.EmailEnabled,
		PushEnabled:     m.PushEnabled,
		SMSEnabled:      m.SMSEnabled,
		InAppEnabled:    m.InAppEnabled,
		QuietHoursStart: m.QuietHoursStart,
		QuietHoursEnd:   m.QuietHoursEnd,
		Timezone:        m.Timezone,
		EmailAddress:    m.EmailAddress,
		PhoneNumber:     m.PhoneNumber,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserNotificationPreferencesModel) FromDomain(p *notifications.UserNotificationPreferences) {
	m.UserID = p.UserID
	m.EmailEnabled = p.EmailEnabled
	m.PushEnabled = p.PushEnabled
	m.SMSEnabled = p.SMSEnabled
	m.InAppEnabled = p.InAppEnabled
	m.QuietHoursStart = p.QuietHoursStart
	m.QuietHoursEnd = p.QuietHoursEnd
	m.Timezone = p.Timezone
	m.EmailAddress = p.EmailAddress
	m.PhoneNumber = p.PhoneNumber
	m.DateTimeUpdated = p.DateTimeUpdated
}
