package v1

import (
	"fmt"
	"net/http"
	"time"

	"medguard_service/internal/domain/medications"
	"medguard_service/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// MedicationHandler defines the interface for handling schedule, dose log and
// adherence operations
type MedicationHandler interface {
	CreateSchedule(ctx *gin.Context)
	ListSchedules(ctx *gin.Context)
	GetScheduleByID(ctx *gin.Context)
	UpdateScheduleByID(ctx *gin.Context)
	DeleteScheduleByID(ctx *gin.Context)
	RecordDose(ctx *gin.Context)
	ListDoseLogs(ctx *gin.Context)
	GenerateAdherenceReport(ctx *gin.Context)
	ListAdherenceReports(ctx *gin.Context)
}

// medicationHandler struct holds the services
type medicationHandler struct {
	scheduleService  medications.ScheduleService
	doseLogService   medications.DoseLogService
	adherenceService medications.AdherenceService
}

// NewMedicationHandler creates a new MedicationHandler
func NewMedicationHandler(scheduleService medications.ScheduleService, doseLogService medications.DoseLogService, adherenceService medications.AdherenceService) MedicationHandler {
	return &medicationHandler{
		scheduleService:  scheduleService,
		doseLogService:   doseLogService,
		adherenceService: adherenceService,
	}
}

// CreateSchedule registers a new medication schedule
func (handler *medicationHandler) CreateSchedule(ctx *gin.Context) {
	var request CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	schedule, err := handler.scheduleService.Create(ctx, request.ToDomain())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error creating schedule: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, newScheduleResponse(schedule))
}

// ListSchedules fetches schedules optionally with query parameters
func (handler *medicationHandler) ListSchedules(ctx *gin.Context) {
	query := medications.NewScheduleQuery()

	if patientID := ctx.Query("patientId"); len(patientID) > 0 {
		query.PatientID = patientID
	}

	if medicationName := ctx.Query("medicationName"); len(medicationName) > 0 {
		query.MedicationName = medicationName
	}

	if activeOnly := ctx.Query("activeOnly"); activeOnly == "true" {
		query.ActiveOnly = true
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	schedules, err := handler.scheduleService.List(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err)})
		return
	}

	listResponse := []ScheduleResponse{}
	for _, schedule := range schedules {
		listResponse = append(listResponse, newScheduleResponse(schedule))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetScheduleByID fetches a schedule by ID
func (handler *medicationHandler) GetScheduleByID(ctx *gin.Context) {
	scheduleID := ctx.Param("id")

	schedule, err := handler.scheduleService.GetByID(ctx, scheduleID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("schedule with id %s not found", scheduleID)})
		return
	}

	ctx.JSON(http.StatusOK, newScheduleResponse(schedule))
}

// UpdateScheduleByID replaces a schedule's mutable fields
func (handler *medicationHandler) UpdateScheduleByID(ctx *gin.Context) {
	scheduleID := ctx.Param("id")

	var request CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	schedule := request.ToDomain()
	schedule.ID = scheduleID

	if err := handler.scheduleService.UpdateByID(ctx, schedule); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error updating schedule: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, newScheduleResponse(schedule))
}

// DeleteScheduleByID deletes a schedule and its pending reminders
func (handler *medicationHandler) DeleteScheduleByID(ctx *gin.Context) {
	scheduleID := ctx.Param("id")

	if err := handler.scheduleService.DeleteByID(ctx, scheduleID); err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("schedule with id %s not found", scheduleID)})
		return
	}

	ctx.JSON(http.StatusNoContent, InfoResponse{Message: fmt.Sprintf("deleted schedule with id %s", scheduleID)})
}

// RecordDose records one dose outcome for a schedule
func (handler *medicationHandler) RecordDose(ctx *gin.Context) {
	var request RecordDoseRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	log, err := handler.doseLogService.Record(ctx, &medications.MedicationLog{
		ScheduleID:  request.ScheduleID,
		ScheduledAt: request.ScheduledAt,
		Status:      request.Status,
		Notes:       request.Notes,
	})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error recording dose: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, newDoseLogResponse(log))
}

// ListDoseLogs fetches dose logs optionally with query parameters
func (handler *medicationHandler) ListDoseLogs(ctx *gin.Context) {
	query := medications.NewLogQuery()

	if scheduleID := ctx.Query("scheduleId"); len(scheduleID) > 0 {
		query.ScheduleID = scheduleID
	}

	if patientID := ctx.Query("patientId"); len(patientID) > 0 {
		query.PatientID = patientID
	}

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = status
	}

	if periodStart := ctx.Query("periodStart"); len(periodStart) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, periodStart)
		if err == nil {
			query.PeriodStart = parsedTime
		}
	}

	if periodEnd := ctx.Query("periodEnd"); len(periodEnd) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, periodEnd)
		if err == nil {
			query.PeriodEnd = parsedTime
		}
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	logs, err := handler.doseLogService.List(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err)})
		return
	}

	listResponse := []DoseLogResponse{}
	for _, log := range logs {
		listResponse = append(listResponse, newDoseLogResponse(log))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GenerateAdherenceReport builds the adherence report for a patient over a period
func (handler *medicationHandler) GenerateAdherenceReport(ctx *gin.Context) {
	var request GenerateReportRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	report, err := handler.adherenceService.GenerateReport(ctx, request.PatientID, request.PeriodStart, request.PeriodEnd)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error generating report: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, newAdherenceReportResponse(report))
}

// ListAdherenceReports fetches stored reports optionally with query parameters
func (handler *medicationHandler) ListAdherenceReports(ctx *gin.Context) {
	query := medications.NewReportQuery()

	if patientID := ctx.Query("patientId"); len(patientID) > 0 {
		query.PatientID = patientID
	}

	if periodStart := ctx.Query("periodStart"); len(periodStart) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, periodStart)
		if err == nil {
			query.PeriodStart = parsedTime
		}
	}

	if periodEnd := ctx.Query("periodEnd"); len(periodEnd) > 0 {
		parsedTime, err := time.Parse(time.RFC3339, periodEnd)
		if err == nil {
			query.PeriodEnd = parsedTime
		}
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	reports, err := handler.adherenceService.ListReports(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err)})
		return
	}

	listResponse := []AdherenceReportResponse{}
	for _, report := range reports {
		listResponse = append(listResponse, newAdherenceReportResponse(report))
	}

	ctx.JSON(http.StatusOK, listResponse)
}
