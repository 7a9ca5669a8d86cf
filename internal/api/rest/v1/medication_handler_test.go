//go:build unit
// +build unit

package v1

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medguard_service/internal/domain/medications"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMedicationHandler_CreateSchedule_Success(t *testing.T) {
	mockScheduleService := new(MockScheduleService)
	mockDoseLogService := new(MockDoseLogService)
	mockAdherenceService := new(MockAdherenceService)

	handler := NewMedicationHandler(mockScheduleService, mockDoseLogService, mockAdherenceService)

	patientID := uuid.NewString()
	schedule := &medications.MedicationSchedule{
		ID:             uuid.NewString(),
		PatientID:      patientID,
		MedicationName: "Metformin",
		Dosage:         "500",
		DoseUnit:       "mg",
		Frequency:      "twice daily",
		TimesOfDay:     []string{"08:00", "20:00"},
		StartDate:      time.Now(),
		Active:         true,
		Timezone:       "Africa/Johannesburg",
	}

	requestBody := fmt.Sprintf(`{
		"patient_id": %q,
		"medication_name": "Metformin",
		"dosage": "500",
		"dose_unit": "mg",
		"frequency": "twice daily",
		"times_of_day": ["08:00", "20:00"],
		"start_date": "2026-08-01T00:00:00Z",
		"timezone": "Africa/Johannesburg"
	}`, patientID)

	mockScheduleService.
		On("Create", mock.Anything, mock.AnythingOfType("*medications.MedicationSchedule")).
		Return(schedule, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/medications/schedules", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.CreateSchedule(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Metformin")
	mockScheduleService.AssertExpectations(t)
}

func TestMedicationHandler_CreateSchedule_ValidationError(t *testing.T) {
	mockScheduleService := new(MockScheduleService)
	mockDoseLogService := new(MockDoseLogService)
	mockAdherenceService := new(MockAdherenceService)

	handler := NewMedicationHandler(mockScheduleService, mockDoseLogService, mockAdherenceService)

	// 25:00 is not a wall-clock time
	requestBody := fmt.Sprintf(`{
		"patient_id": %q,
		"medication_name": "Metformin",
		"dosage": "500",
		"dose_unit": "mg",
		"frequency": "twice daily",
		"times_of_day": ["25:00"],
		"start_date": "2026-08-01T00:00:00Z",
		"timezone": "Africa/Johannesburg"
	}`, uuid.NewString())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/medications/schedules", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.CreateSchedule(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockScheduleService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMedicationHandler_ListSchedules_Success(t *testing.T) {
	mockScheduleService := new(MockScheduleService)
	mockDoseLogService := new(MockDoseLogService)
	mockAdherenceService := new(MockAdherenceService)

	handler := NewMedicationHandler(mockScheduleService, mockDoseLogService, mockAdherenceService)

	schedule := &medications.MedicationSchedule{
		ID:             uuid.NewString(),
		PatientID:      uuid.NewString(),
		MedicationName: "Amlodipine",
		Dosage:         "5",
		DoseUnit:       "mg",
		Frequency:      "once daily",
		TimesOfDay:     []string{"08:00"},
		StartDate:      time.Now(),
		Active:         true,
		Timezone:       "Africa/Johannesburg",
	}

	mockScheduleService.
		On("List", mock.Anything, mock.Anything).
		Return([]*medications.MedicationSchedule{schedule}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/medications/schedules?activeOnly=true", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.ListSchedules(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Amlodipine")
	mockScheduleService.AssertExpectations(t)
}

func TestMedicationHandler_GetScheduleByID_NotFound(t *testing.T) {
	mockScheduleService := new(MockScheduleService)
	mockDoseLogService := new(MockDoseLogService)
	mockAdherenceService := new(MockAdherenceService)

	handler := NewMedicationHandler(mockScheduleService, mockDoseLogService, mockAdherenceService)

	scheduleID := uuid.NewString()
	mockScheduleService.
		On("GetByID", mock.Anything, scheduleID).
		Return(nil, errors.New("not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/medications/schedules/"+scheduleID, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: scheduleID}}

	handler.GetScheduleByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockScheduleService.AssertExpectations(t)
}

func TestMedicationHandler_DeleteScheduleByID_Success(t *testing.T) {
	mockScheduleService := new(MockScheduleService)
	mockDoseLogService := new(MockDoseLogService)
	mockAdherenceService := new(MockAdherenceService)

	handler := NewMedicationHandler(mockScheduleService, mockDoseLogService, mockAdherenceService)

	scheduleID := uuid.NewString()
	mockScheduleService.
		On("DeleteByID", mock.Anything, scheduleID).
		Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/medications/schedules/"+scheduleID, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: scheduleID}}

	handler.DeleteScheduleByID(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockScheduleService.AssertExpectations(t)
}

func TestMedicationHandler_RecordDose_Success(t *testing.T) {
	mockScheduleService := new(MockScheduleService)
	mockDoseLogService := new(MockDoseLogService)
	mockAdherenceService := new(MockAdherenceService)

	handler := NewMedicationHandler(mockScheduleService, mockDoseLogService, mockAdherenceService)

	scheduleID := uuid.NewString()
	log := &medications.MedicationLog{
		ID:          uuid.NewString(),
		ScheduleID:  scheduleID,
		PatientID:   uuid.NewString(),
		ScheduledAt: time.Now(),
		RecordedAt:  time.Now(),
		Status:      medications.DoseStatusTaken,
	}

	requestBody := fmt.Sprintf(`{
		"schedule_id": %q,
		"scheduled_at": "2026-08-30T08:00:00Z",
		"status": "taken"
	}`, scheduleID)

	mockDoseLogService.
		On("Record", mock.Anything, mock.AnythingOfType("*medications.MedicationLog")).
		Return(log, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/medications/logs", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.RecordDose(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "taken")
	mockDoseLogService.AssertExpectations(t)
}

func TestMedicationHandler_RecordDose_InvalidStatus(t *testing.T) {
	mockScheduleService := new(MockScheduleService)
	mockDoseLogService := new(MockDoseLogService)
	mockAdherenceService := new(MockAdherenceService)

	handler := NewMedicationHandler(mockScheduleService, mockDoseLogService, mockAdherenceService)

	requestBody := fmt.Sprintf(`{
		"schedule_id": %q,
		"scheduled_at": "2026-08-30T08:00:00Z",
		"status": "forgotten"
	}`, uuid.NewString())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/medications/logs", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.RecordDose(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockDoseLogService.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestMedicationHandler_GenerateAdherenceReport_Success(t *testing.T) {
	mockScheduleService := new(MockScheduleService)
	mockDoseLogService := new(MockDoseLogService)
	mockAdherenceService := new(MockAdherenceService)

	handler := NewMedicationHandler(mockScheduleService, mockDoseLogService, mockAdherenceService)

	patientID := uuid.NewString()
	report := &medications.AdherenceReport{
		ID:             uuid.NewString(),
		PatientID:      patientID,
		PeriodStart:    time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
		PeriodEnd:      time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		ScheduledDoses: 14,
		TakenDoses:     13,
		MissedDoses:    1,
		AdherenceRate:  92.86,
		Status:         medications.AdherenceExcellent,
	}

	requestBody := fmt.Sprintf(`{
		"patient_id": %q,
		"period_start": "2026-08-23T00:00:00Z",
		"period_end": "2026-08-30T00:00:00Z"
	}`, patientID)

	mockAdherenceService.
		On("GenerateReport", mock.Anything, patientID, mock.Anything, mock.Anything).
		Return(report, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/medications/adherence/reports", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.GenerateAdherenceReport(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "excellent")
	mockAdherenceService.AssertExpectations(t)
}

func TestMedicationHandler_GenerateAdherenceReport_InvertedPeriod(t *testing.T) {
	mockScheduleService := new(MockScheduleService)
	mockDoseLogService := new(MockDoseLogService)
	mockAdherenceService := new(MockAdherenceService)

	handler := NewMedicationHandler(mockScheduleService, mockDoseLogService, mockAdherenceService)

	requestBody := fmt.Sprintf(`{
		"patient_id": %q,
		"period_start": "2026-08-30T00:00:00Z",
		"period_end": "2026-08-23T00:00:00Z"
	}`, uuid.NewString())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/medications/adherence/reports", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.GenerateAdherenceReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAdherenceService.AssertNotCalled(t, "GenerateReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
