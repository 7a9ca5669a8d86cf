//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	mockScheduleService := new(MockScheduleService)
	mockDoseLogService := new(MockDoseLogService)
	mockAdherenceService := new(MockAdherenceService)
	mockDispatchService := new(MockDispatchService)
	mockInboxService := new(MockInboxService)
	mockPreferencesService := new(MockPreferencesService)
	mockPatientService := new(MockPatientService)
	mockPrescriptionService := new(MockPrescriptionService)
	mockEmergencyContactService := new(MockEmergencyContactService)
	mockSubscriptionService := new(MockSubscriptionService)
	mockSyncService := new(MockSyncService)
	mockSettingsService := new(MockSettingsService)

	r := gin.Default()

	// Setup mocks to return nil
	mockScheduleService.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	mockDoseLogService.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	mockAdherenceService.On("ListReports", mock.Anything, mock.Anything).Return(nil, nil)
	mockPrescriptionService.On("List", mock.Anything, mock.Anything).Return(nil, nil)

	SetupRoutes(r,
		mockScheduleService, mockDoseLogService, mockAdherenceService,
		mockDispatchService, mockInboxService, mockPreferencesService,
		mockPatientService, mockPrescriptionService, mockEmergencyContactService,
		mockSubscriptionService, mockSyncService, mockSettingsService)

	// Verify routes are registered by testing they respond (even with errors)
	tests := []struct {
		method string
		url    string
	}{
		{"GET", "/api/v1/medications/schedules"},
		{"GET", "/api/v1/medications/logs"},
		{"GET", "/api/v1/medications/adherence/reports"},
		{"POST", "/api/v1/notifications/dispatch"},
		{"GET", "/api/v1/prescriptions"},
		{"POST", "/api/v1/patients"},
		{"POST", "/api/v1/pwa/sync"},
		{"GET", "/api/v1/pwa/manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Just verify route exists (status != 404)
			assert.NotEqual(t, http.StatusNotFound, w.Code, "Route should be registered")
		})
	}
}
