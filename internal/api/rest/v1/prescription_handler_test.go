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

	"medguard_service/internal/domain/prescriptions"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPrescriptionHandler_RegisterPatient_Success(t *testing.T) {
	mockPatientService := new(MockPatientService)
	mockPrescriptionService := new(MockPrescriptionService)
	mockEmergencyContactService := new(MockEmergencyContactService)

	handler := NewPrescriptionHandler(mockPatientService, mockPrescriptionService, mockEmergencyContactService)

	patient := &prescriptions.PrescriptionPatient{
		ID:          uuid.NewString(),
		FirstName:   "Thandi",
		LastName:    "Nkosi",
		Email:       "thandi.nkosi@example.co.za",
		PhoneNumber: "+27825550101",
		DateOfBirth: time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	requestBody := `{
		"first_name": "Thandi",
		"last_name": "Nkosi",
		"email": "thandi.nkosi@example.co.za",
		"phone_number": "+27825550101",
		"date_of_birth": "1985-06-15T00:00:00Z"
	}`

	mockPatientService.
		On("Register", mock.Anything, mock.AnythingOfType("*prescriptions.PrescriptionPatient")).
		Return(patient, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/patients", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.RegisterPatient(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "thandi.nkosi@example.co.za")
	mockPatientService.AssertExpectations(t)
}

func TestPrescriptionHandler_RegisterPatient_InvalidEmail(t *testing.T) {
	mockPatientService := new(MockPatientService)
	mockPrescriptionService := new(MockPrescriptionService)
	mockEmergencyContactService := new(MockEmergencyContactService)

	handler := NewPrescriptionHandler(mockPatientService, mockPrescriptionService, mockEmergencyContactService)

	requestBody := `{
		"first_name": "Thandi",
		"last_name": "Nkosi",
		"email": "not-an-email",
		"date_of_birth": "1985-06-15T00:00:00Z"
	}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/patients", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.RegisterPatient(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockPatientService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func submitRequestBody(patientID string) string {
	return fmt.Sprintf(`{
		"patient_id": %q,
		"doctor_name": "Dr. N. Dlamini",
		"doctor_practice_number": "PR0012345",
		"source_pharmacy": "Clicks Rosebank",
		"medications": [
			{"name": "Amoxicillin", "dosage": "500 mg", "quantity": 21, "repeats": 0, "instructions": "Three times daily after meals"}
		]
	}`, patientID)
}

func TestPrescriptionHandler_SubmitPrescription_Success(t *testing.T) {
	mockPatientService := new(MockPatientService)
	mockPrescriptionService := new(MockPrescriptionService)
	mockEmergencyContactService := new(MockEmergencyContactService)

	handler := NewPrescriptionHandler(mockPatientService, mockPrescriptionService, mockEmergencyContactService)

	patientID := uuid.NewString()
	prescription := &prescriptions.Prescription{
		ID:        uuid.NewString(),
		PatientID: patientID,
		Doctor: prescriptions.PrescriptionDoctor{
			Name:           "Dr. N. Dlamini",
			PracticeNumber: "PR0012345",
		},
		Status: prescriptions.StatusSubmitted,
		Medications: []*prescriptions.PrescriptionMedication{
			{ID: uuid.NewString(), Name: "Amoxicillin", Dosage: "500 mg", Quantity: 21},
		},
	}

	mockPrescriptionService.
		On("Submit", mock.Anything, mock.AnythingOfType("*prescriptions.Prescription")).
		Return(prescription, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/prescriptions", bytes.NewBufferString(submitRequestBody(patientID)))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.SubmitPrescription(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Amoxicillin")
	assert.Contains(t, w.Body.String(), prescriptions.StatusSubmitted)
	mockPrescriptionService.AssertExpectations(t)
}

func TestPrescriptionHandler_SubmitPrescription_NoMedications(t *testing.T) {
	mockPatientService := new(MockPatientService)
	mockPrescriptionService := new(MockPrescriptionService)
	mockEmergencyContactService := new(MockEmergencyContactService)

	handler := NewPrescriptionHandler(mockPatientService, mockPrescriptionService, mockEmergencyContactService)

	requestBody := fmt.Sprintf(`{
		"patient_id": %q,
		"doctor_name": "Dr. N. Dlamini",
		"doctor_practice_number": "PR0012345",
		"medications": []
	}`, uuid.NewString())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/prescriptions", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.SubmitPrescription(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockPrescriptionService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestPrescriptionHandler_UpdatePrescriptionStatus_InvalidTransition(t *testing.T) {
	mockPatientService := new(MockPatientService)
	mockPrescriptionService := new(MockPrescriptionService)
	mockEmergencyContactService := new(MockEmergencyContactService)

	handler := NewPrescriptionHandler(mockPatientService, mockPrescriptionService, mockEmergencyContactService)

	prescriptionID := uuid.NewString()
	mockPrescriptionService.
		On("UpdateStatus", mock.Anything, prescriptionID, prescriptions.StatusApproved).
		Return(nil, prescriptions.ErrInvalidTransition)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/prescriptions/"+prescriptionID+"/status", bytes.NewBufferString(`{"status": "approved"}`))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: prescriptionID}}

	handler.UpdatePrescriptionStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockPrescriptionService.AssertExpectations(t)
}

func TestPrescriptionHandler_RequestTransfer_Success(t *testing.T) {
	mockPatientService := new(MockPatientService)
	mockPrescriptionService := new(MockPrescriptionService)
	mockEmergencyContactService := new(MockEmergencyContactService)

	handler := NewPrescriptionHandler(mockPatientService, mockPrescriptionService, mockEmergencyContactService)

	prescriptionID := uuid.NewString()
	prescription := &prescriptions.Prescription{
		ID:        prescriptionID,
		PatientID: uuid.NewString(),
		Doctor: prescriptions.PrescriptionDoctor{
			Name:           "Dr. N. Dlamini",
			PracticeNumber: "PR0012345",
		},
		Status:         prescriptions.StatusTransferred,
		SourcePharmacy: "Clicks Rosebank",
		TargetPharmacy: "Dis-Chem Sandton",
	}

	mockPrescriptionService.
		On("RequestTransfer", mock.Anything, prescriptionID, "Clicks Rosebank", "Dis-Chem Sandton").
		Return(prescription, nil)

	requestBody := `{"source_pharmacy": "Clicks Rosebank", "target_pharmacy": "Dis-Chem Sandton"}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/prescriptions/"+prescriptionID+"/transfer", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: prescriptionID}}

	handler.RequestTransfer(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dis-Chem Sandton")
	mockPrescriptionService.AssertExpectations(t)
}

func TestPrescriptionHandler_CreateEmergencyContact_Success(t *testing.T) {
	mockPatientService := new(MockPatientService)
	mockPrescriptionService := new(MockPrescriptionService)
	mockEmergencyContactService := new(MockEmergencyContactService)

	handler := NewPrescriptionHandler(mockPatientService, mockPrescriptionService, mockEmergencyContactService)

	patientID := uuid.NewString()
	contact := &prescriptions.EmergencyContact{
		ID:           uuid.NewString(),
		PatientID:    patientID,
		Name:         "Sipho Mokoena",
		Relationship: "spouse",
		PhoneNumber:  "+27825550111",
		Priority:     1,
	}

	requestBody := fmt.Sprintf(`{
		"patient_id": %q,
		"name": "Sipho Mokoena",
		"relationship": "spouse",
		"phone_number": "+27825550111",
		"priority": 1
	}`, patientID)

	mockEmergencyContactService.
		On("Create", mock.Anything, mock.AnythingOfType("*prescriptions.EmergencyContact")).
		Return(contact, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/emergency-contacts", bytes.NewBufferString(requestBody))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.CreateEmergencyContact(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Sipho Mokoena")
	mockEmergencyContactService.AssertExpectations(t)
}

func TestPrescriptionHandler_ListEmergencyContacts_Error(t *testing.T) {
	mockPatientService := new(MockPatientService)
	mockPrescriptionService := new(MockPrescriptionService)
	mockEmergencyContactService := new(MockEmergencyContactService)

	handler := NewPrescriptionHandler(mockPatientService, mockPrescriptionService, mockEmergencyContactService)

	patientID := uuid.NewString()
	mockEmergencyContactService.
		On("ListByPatient", mock.Anything, patientID).
		Return(nil, errors.New("list failed"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/patients/"+patientID+"/emergency-contacts", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{gin.Param{Key: "id", Value: patientID}}

	handler.ListEmergencyContacts(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockEmergencyContactService.AssertExpectations(t)
}
