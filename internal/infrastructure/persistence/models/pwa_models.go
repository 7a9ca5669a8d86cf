package models

import (
	"time"

	"medguard_service/internal/domain/pwa"
)

// PushSubscriptionModel is the GORM database model for web-push subscriptions
type PushSubscriptionModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	UserID          string    `gorm:"not null;index;type:uuid"`
	Endpoint        string    `gorm:"not null;uniqueIndex;type:varchar(500)"`
	P256dh          string    `gorm:"not null;type:varchar(255)"`
	Auth            string    `gorm:"not null;type:varchar(255)"`
	DeviceName      string    `gorm:"type:varchar(100)"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (PushSubscriptionModel) TableName() string {
	return "push_subscriptions"
}

// ToDomain converts GORM model to domain entity
func (m *PushSubscriptionModel) ToDomain() *pwa.PushSubscription {
	return &pwa.PushSubscription{
		ID:              m.ID,
		UserID:          m.UserID,
		Endpoint:        m.Endpoint,
		P256dh:          m.P256dh,
		Auth:            m.Auth,
		DeviceName:      m.DeviceName,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PushSubscriptionModel) FromDomain(s *pwa.PushSubscription) {
	m.ID = s.ID
	m.UserID = s.UserID
	m.Endpoint = s.Endpoint
	m.P256dh = s.P256dh
	m.Auth = s.Auth
	m.DeviceName = s.DeviceName
	m.DateTimeCreated = s.DateTimeCreated
}

// UserDeviceModel is the GORM database model for FCM devices
type UserDeviceModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	UserID          string    `gorm:"not null;uniqueIndex:idx_user_token;type:uuid"`
	FCMToken        string    `gorm:"not null;uniqueIndex:idx_user_token;type:varchar(500)"`
	DeviceType      string    `gorm:"not null;type:varchar(10)"`
	LastActiveAt    time.Time `gorm:"not null;index"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserDeviceModel) TableName() string {
	return "user_devices"
}

// ToDomain converts GORM model to domain entity
func (m *UserDeviceModel) ToDomain() *pwa.UserDevice {
	return &pwa.UserDevice{
		ID:              m.ID,
		UserID:          m.UserID,
		FCMToken:        m.FCMToken,
		DeviceType:      m.DeviceType,
		LastActiveAt:    m.LastActiveAt,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserDeviceModel) FromDomain(d *pwa.UserDevice) {
	m.ID = d.ID
	m.UserID = d.UserID
	m.FCMToken = d.FCMToken
	m.DeviceType = d.DeviceType
	m.LastActiveAt = d.LastActiveAt
	m.DateTimeCreated = d.DateTimeCreated
}

// PWASettingsModel is the GORM database model for per-user PWA settings
type PWASettingsModel struct {
	UserID          string    `gorm:"primaryKey;type:uuid"`
	OfflineEnabled  bool      `gorm:"not null"`
	SyncIntervalS   int       `gorm:"not null"`
	ThemeColor      string    `gorm:"type:varchar(10)"`
	DateTimeUpdated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PWASettingsModel) TableName() string {
	return "pwa_settings"
}

// ToDomain converts GORM model to domain entity
func (m *PWASettingsModel) ToDomain() *pwa.PWASettings {
	return &pwa.PWASettings{
		UserID:          m.UserID,
		OfflineEnabled:  m.OfflineEnabled,
		SyncIntervalS:   m.SyncIntervalS,
		ThemeColor:      m.ThemeColor,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PWASettingsModel) FromDomain(s *pwa.PWASettings) {
	m.UserID = s.UserID
	m.OfflineEnabled = s.OfflineEnabled
	m.SyncIntervalS = s.SyncIntervalS
	m.ThemeColor = s.ThemeColor
	m.DateTimeUpdated = s.DateTimeUpdated
}

// OfflineDataModel is the GORM database model for queued offline changes
type OfflineDataModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	UserID          string    `gorm:"not null;uniqueIndex:idx_offline_resource;type:uuid"`
	Resource        string    `gorm:"not null;uniqueIndex:idx_offline_resource;type:varchar(50)"`
	ResourceID      string    `gorm:"not null;uniqueIndex:idx_offline_resource;type:varchar(64)"`
	Payload         string    `gorm:"not null;type:text"`
	ClientTimestamp time.Time `gorm:"not null"`
	SyncedAt        *time.Time `gorm:"index"`
}

// TableName specifies the table name for GORM
func (OfflineDataModel) TableName() string {
	return "offline_data"
}

// ToDomain converts GORM model to domain entity
func (m *OfflineDataModel) ToDomain() *pwa.OfflineData {
	return &pwa.OfflineData{
		ID:              m.ID,
		UserID:          m.UserID,
		Resource:        m.Resource,
		ResourceID:      m.ResourceID,
		Payload:         m.Payload,
		ClientTimestamp: m.ClientTimestamp,
		SyncedAt:        m.SyncedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *OfflineDataModel) FromDomain(d *pwa.OfflineData) {
	m.ID = d.ID
	m.UserID = d.UserID
	m.Resource = d.Resource
	m.ResourceID = d.ResourceID
	m.Payload = d.Payload
	m.ClientTimestamp = d.ClientTimestamp
	m.SyncedAt = d.SyncedAt
}
