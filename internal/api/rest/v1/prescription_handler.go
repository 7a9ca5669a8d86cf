package v1

import (
	"fmt"
	"net/http"

	"medguard_service/internal/domain/prescriptions"
	"medguard_service/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// PrescriptionHandler defines the interface for handling patient, prescription
// and emergency contact operations
type PrescriptionHandler interface {
	RegisterPatient(ctx *gin.Context)
	GetPatientByID(ctx *gin.Context)
	SubmitPrescription(ctx *gin.Context)
	ListPrescriptions(ctx *gin.Context)
	GetPrescriptionByID(ctx *gin.Context)
	UpdatePrescriptionStatus(ctx *gin.Context)
	RequestRenewal(ctx *gin.Context)
	RequestTransfer(ctx *gin.Context)
	CreateEmergencyContact(ctx *gin.Context)
	ListEmergencyContacts(ctx *gin.Context)
	UpdateEmergencyContactByID(ctx *gin.Context)
	DeleteEmergencyContactByID(ctx *gin.Context)
}

// prescriptionHandler struct holds the services
type prescriptionHandler struct {
	patientService          prescriptions.PatientService
	prescriptionService     prescriptions.PrescriptionService
	emergencyContactService prescriptions.EmergencyContactService
}

// NewPrescriptionHandler creates a new PrescriptionHandler
func NewPrescriptionHandler(patientService prescriptions.PatientService, prescriptionService prescriptions.PrescriptionService, emergencyContactService prescriptions.EmergencyContactService) PrescriptionHandler {
	return &prescriptionHandler{
		patientService:          patientService,
		prescriptionService:     prescriptionService,
		emergencyContactService: emergencyContactService,
	}
}

// RegisterPatient creates a patient
func (handler *prescriptionHandler) RegisterPatient(ctx *gin.Context) {
	var request RegisterPatientRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	patient, err := handler.patientService.Register(ctx, &prescriptions.PrescriptionPatient{
		FirstName:        request.FirstName,
		LastName:         request.LastName,
		Email:            request.Email,
		PhoneNumber:      request.PhoneNumber,
		DateOfBirth:      request.DateOfBirth,
		MedicalAidNumber: request.MedicalAidNumber,
	})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error registering patient: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, newPatientResponse(patient))
}

// GetPatientByID fetches a patient by ID
func (handler *prescriptionHandler) GetPatientByID(ctx *gin.Context) {
	patientID := ctx.Param("id")

	patient, err := handler.patientService.GetByID(ctx, patientID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("patient with id %s not found", patientID)})
		return
	}

	ctx.JSON(http.StatusOK, newPatientResponse(patient))
}

// SubmitPrescription stores a new prescription with its medications
func (handler *prescriptionHandler) SubmitPrescription(ctx *gin.Context) {
	var request SubmitPrescriptionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	prescription, err := handler.prescriptionService.Submit(ctx, request.ToDomain())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error submitting prescription: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, newPrescriptionResponse(prescription))
}

// ListPrescriptions fetches prescriptions optionally with query parameters
func (handler *prescriptionHandler) ListPrescriptions(ctx *gin.Context) {
	query := prescriptions.NewPrescriptionQuery()

	if patientID := ctx.Query("patientId"); len(patientID) > 0 {
		query.PatientID = patientID
	}

	if status := ctx.Query("status"); len(status) > 0 {
		query.Status = status
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

	listing, err := handler.prescriptionService.List(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err)})
		return
	}

	listResponse := []PrescriptionResponse{}
	for _, prescription := range listing {
		listResponse = append(listResponse, newPrescriptionResponse(prescription))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetPrescriptionByID fetches a prescription with its medications
func (handler *prescriptionHandler) GetPrescriptionByID(ctx *gin.Context) {
	prescriptionID := ctx.Param("id")

	prescription, err := handler.prescriptionService.GetByID(ctx, prescriptionID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("prescription with id %s not found", prescriptionID)})
		return
	}

	ctx.JSON(http.StatusOK, newPrescriptionResponse(prescription))
}

// UpdatePrescriptionStatus applies a lifecycle transition
func (handler *prescriptionHandler) UpdatePrescriptionStatus(ctx *gin.Context) {
	prescriptionID := ctx.Param("id")

	var request UpdatePrescriptionStatusRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	prescription, err := handler.prescriptionService.UpdateStatus(ctx, prescriptionID, request.Status)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error updating status: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, newPrescriptionResponse(prescription))
}

// RequestRenewal moves a prescription into renewal_requested
func (handler *prescriptionHandler) RequestRenewal(ctx *gin.Context) {
	prescriptionID := ctx.Param("id")

	prescription, err := handler.prescriptionService.RequestRenewal(ctx, prescriptionID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error requesting renewal: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, newPrescriptionResponse(prescription))
}

// RequestTransfer moves the prescription to another pharmacy
func (handler *prescriptionHandler) RequestTransfer(ctx *gin.Context) {
	prescriptionID := ctx.Param("id")

	var request TransferPrescriptionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	prescription, err := handler.prescriptionService.RequestTransfer(ctx, prescriptionID, request.SourcePharmacy, request.TargetPharmacy)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error requesting transfer: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, newPrescriptionResponse(prescription))
}

// CreateEmergencyContact stores an emergency contact
func (handler *prescriptionHandler) CreateEmergencyContact(ctx *gin.Context) {
	var request EmergencyContactRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	contact, err := handler.emergencyContactService.Create(ctx, &prescriptions.EmergencyContact{
		PatientID:    request.PatientID,
		Name:         request.Name,
		Relationship: request.Relationship,
		PhoneNumber:  request.PhoneNumber,
		Email:        request.Email,
		Priority:     request.Priority,
	})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error creating emergency contact: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, newEmergencyContactResponse(contact))
}

// ListEmergencyContacts returns a patient's contacts ordered by priority
func (handler *prescriptionHandler) ListEmergencyContacts(ctx *gin.Context) {
	patientID := ctx.Param("id")

	contacts, err := handler.emergencyContactService.ListByPatient(ctx, patientID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err)})
		return
	}

	listResponse := []EmergencyContactResponse{}
	for _, contact := range contacts {
		listResponse = append(listResponse, newEmergencyContactResponse(contact))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// UpdateEmergencyContactByID replaces an emergency contact
func (handler *prescriptionHandler) UpdateEmergencyContactByID(ctx *gin.Context) {
	contactID := ctx.Param("id")

	var request EmergencyContactRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	contact := &prescriptions.EmergencyContact{
		ID:           contactID,
		PatientID:    request.PatientID,
		Name:         request.Name,
		Relationship: request.Relationship,
		PhoneNumber:  request.PhoneNumber,
		Email:        request.Email,
		Priority:     request.Priority,
	}

	if err := handler.emergencyContactService.UpdateByID(ctx, contact); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error updating emergency contact: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, newEmergencyContactResponse(contact))
}

// DeleteEmergencyContactByID removes an emergency contact
func (handler *prescriptionHandler) DeleteEmergencyContactByID(ctx *gin.Context) {
	contactID := ctx.Param("id")

	if err := handler.emergencyContactService.DeleteByID(ctx, contactID); err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("emergency contact with id %s not found", contactID)})
		return
	}

	ctx.JSON(http.StatusNoContent, InfoResponse{Message: fmt.Sprintf("deleted emergency contact with id %s", contactID)})
}
