//go:build unit
// +build unit

package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medguard_service/internal/domain/pwa"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPWAHandler_Subscribe_Success(t *testing.T) {
	mockSubscriptionService := new(MockSubscriptionService)
	mockSyncService := new(MockSyncService)
	mockSettingsService := new(MockSettingsService)

	handler := NewPWAHandler(mockSubscriptionService, mockSyncService, mockSettingsService)

	userID := uuid.NewString()
	subscription := &pwa.PushSubscription{
		ID:       uuid.NewString(),
		UserID:   userID,
		Endpoint: "https://fcm.googleapis.com/fcm/send/abc123",
		P256dh:   "BNcRdreALRFX",
		Auth:     "tBHItJI5svbp",
	}

	requestBody := fmt.Sprintf(`{
		"user_id": %q,
		"endpoint": "https://fcm.googleapis.com/fcm/send/abc123",
		"p256dh": "BNcRdreALRFX",
		"auth": "tBHItJI5svbp"
	}`, userID)

	mockSubscriptionService.
		On("Subscribe", mock.Anything, mock.AnythingOfType("*pwa.PushSubscription")).
		Return(subscription, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/pwa/subscriptions", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Subscribe(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "fcm.googleapis.com")
	mockSubscriptionService.AssertExpectations(t)
}

func TestPWAHandler_Unsubscribe_MissingEndpoint(t *testing.T) {
	mockSubscriptionService := new(MockSubscriptionService)
	mockSyncService := new(MockSyncService)
	mockSettingsService := new(MockSettingsService)

	handler := NewPWAHandler(mockSubscriptionService, mockSyncService, mockSettingsService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/pwa/subscriptions", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Unsubscribe(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSubscriptionService.AssertNotCalled(t, "Unsubscribe", mock.Anything, mock.Anything)
}

func TestPWAHandler_RegisterDevice_InvalidType(t *testing.T) {
	mockSubscriptionService := new(MockSubscriptionService)
	mockSyncService := new(MockSyncService)
	mockSettingsService := new(MockSettingsService)

	handler := NewPWAHandler(mockSubscriptionService, mockSyncService, mockSettingsService)

	requestBody := fmt.Sprintf(`{
		"user_id": %q,
		"fcm_token": "token-abc",
		"device_type": "desktop"
	}`, uuid.NewString())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/pwa/devices", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.RegisterDevice(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSubscriptionService.AssertNotCalled(t, "RegisterDevice", mock.Anything, mock.Anything)
}

func TestPWAHandler_Sync_Success(t *testing.T) {
	mockSubscriptionService := new(MockSubscriptionService)
	mockSyncService := new(MockSyncService)
	mockSettingsService := new(MockSettingsService)

	handler := NewPWAHandler(mockSubscriptionService, mockSyncService, mockSettingsService)

	userID := uuid.NewString()
	requestBody := fmt.Sprintf(`{
		"user_id": %q,
		"items": [
			{
				"resource": "medication_log",
				"resource_id": "log-1",
				"payload": "{\"status\":\"taken\"}",
				"client_timestamp": "2026-08-30T08:05:00Z"
			}
		]
	}`, userID)

	mockSyncService.
		On("Sync", mock.Anything, userID, mock.Anything).
		Return([]*pwa.SyncItemResult{
			{ResourceID: "log-1", Applied: true},
		}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/pwa/sync", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Sync(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"applied":true`)
	mockSyncService.AssertExpectations(t)
}

func TestPWAHandler_Sync_EmptyBatch(t *testing.T) {
	mockSubscriptionService := new(MockSubscriptionService)
	mockSyncService := new(MockSyncService)
	mockSettingsService := new(MockSettingsService)

	handler := NewPWAHandler(mockSubscriptionService, mockSyncService, mockSettingsService)

	requestBody := fmt.Sprintf(`{"user_id": %q, "items": []}`, uuid.NewString())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/pwa/sync", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Sync(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSyncService.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything, mock.Anything)
}

func TestPWAHandler_GetSettings_Success(t *testing.T) {
	mockSubscriptionService := new(MockSubscriptionService)
	mockSyncService := new(MockSyncService)
	mockSettingsService := new(MockSettingsService)

	handler := NewPWAHandler(mockSubscriptionService, mockSyncService, mockSettingsService)

	userID := uuid.NewString()
	mockSettingsService.
		On("Get", mock.Anything, userID).
		Return(pwa.DefaultSettings(userID), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/"+userID+"/pwa/settings", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "userId", Value: userID}}

	handler.GetSettings(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "#2563eb")
	mockSettingsService.AssertExpectations(t)
}

func TestPWAHandler_UpdateSettings_IntervalTooShort(t *testing.T) {
	mockSubscriptionService := new(MockSubscriptionService)
	mockSyncService := new(MockSyncService)
	mockSettingsService := new(MockSettingsService)

	handler := NewPWAHandler(mockSubscriptionService, mockSyncService, mockSettingsService)

	requestBody := `{"offline_enabled": true, "sync_interval_s": 5, "theme_color": "#2563eb"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/users/"+uuid.NewString()+"/pwa/settings", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "userId", Value: uuid.NewString()}}

	handler.UpdateSettings(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSettingsService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPWAHandler_ListSubscriptions_Success(t *testing.T) {
	mockSubscriptionService := new(MockSubscriptionService)
	mockSyncService := new(MockSyncService)
	mockSettingsService := new(MockSettingsService)

	handler := NewPWAHandler(mockSubscriptionService, mockSyncService, mockSettingsService)

	userID := uuid.NewString()
	mockSubscriptionService.
		On("ListForUser", mock.Anything, userID).
		Return(
			[]*pwa.PushSubscription{{ID: uuid.NewString(), UserID: userID, Endpoint: "https://push.example/sub1"}},
			[]*pwa.UserDevice{{ID: uuid.NewString(), UserID: userID, DeviceType: pwa.DeviceAndroid, LastActiveAt: time.Now()}},
			nil,
		)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/"+userID+"/pwa/subscriptions", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "userId", Value: userID}}

	handler.ListSubscriptions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "push.example/sub1")
	assert.Contains(t, w.Body.String(), pwa.DeviceAndroid)
	mockSubscriptionService.AssertExpectations(t)
}

func TestPWAHandler_Manifest(t *testing.T) {
	mockSubscriptionService := new(MockSubscriptionService)
	mockSyncService := new(MockSyncService)
	mockSettingsService := new(MockSettingsService)

	handler := NewPWAHandler(mockSubscriptionService, mockSyncService, mockSettingsService)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/pwa/manifest", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Manifest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MedGuard SA")
	assert.Contains(t, w.Body.String(), "standalone")
}
