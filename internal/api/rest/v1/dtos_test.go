//go:build unit
// +build unit

package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateScheduleRequest_Validate(t *testing.T) {
	patientID := "6f1f64a2-9c2e-4b60-9e3e-0a2f4c5d6e7f"
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		request   CreateScheduleRequest
		shouldErr bool
	}{
		{"Valid twice daily", CreateScheduleRequest{
			PatientID: patientID, MedicationName: "Metformin", Dosage: "500", DoseUnit: "mg",
			Frequency: "twice daily", TimesOfDay: []string{"08:00", "20:00"},
			StartDate: start, Timezone: "Africa/Johannesburg",
		}, false},
		{"Missing times of day", CreateScheduleRequest{
			PatientID: patientID, MedicationName: "Metformin", Dosage: "500", DoseUnit: "mg",
			Frequency: "twice daily", StartDate: start, Timezone: "Africa/Johannesburg",
		}, true},
		{"Invalid clock value", CreateScheduleRequest{
			PatientID: patientID, MedicationName: "Metformin", Dosage: "500", DoseUnit: "mg",
			Frequency: "twice daily", TimesOfDay: []string{"8am"},
			StartDate: start, Timezone: "Africa/Johannesburg",
		}, true},
		{"Invalid patient id", CreateScheduleRequest{
			PatientID: "patient-1", MedicationName: "Metformin", Dosage: "500", DoseUnit: "mg",
			Frequency: "twice daily", TimesOfDay: []string{"08:00"},
			StartDate: start, Timezone: "Africa/Johannesburg",
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestGenerateReportRequest_Validate_PeriodOrder(t *testing.T) {
	patientID := "6f1f64a2-9c2e-4b60-9e3e-0a2f4c5d6e7f"
	start := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	valid := GenerateReportRequest{PatientID: patientID, PeriodStart: start, PeriodEnd: end}
	require.NoError(t, valid.Validate())

	inverted := GenerateReportRequest{PatientID: patientID, PeriodStart: end, PeriodEnd: start}
	require.Error(t, inverted.Validate())
}

func TestDispatchNotificationRequest_Validate(t *testing.T) {
	userID := "6f1f64a2-9c2e-4b60-9e3e-0a2f4c5d6e7f"

	tests := []struct {
		name      string
		request   DispatchNotificationRequest
		shouldErr bool
	}{
		{"Valid reminder", DispatchNotificationRequest{
			UserID: userID, Title: "Dose due", Body: "Metformin 500 mg is due.",
			NotificationType: "reminder", Priority: "high",
		}, false},
		{"Valid explicit channels", DispatchNotificationRequest{
			UserID: userID, Title: "Dose due", Body: "Metformin 500 mg is due.",
			NotificationType: "reminder", Priority: "high", Channels: []string{"inapp", "push"},
		}, false},
		{"Unknown channel", DispatchNotificationRequest{
			UserID: userID, Title: "Dose due", Body: "Metformin 500 mg is due.",
			NotificationType: "reminder", Priority: "high", Channels: []string{"telegram"},
		}, true},
		{"Unknown type", DispatchNotificationRequest{
			UserID: userID, Title: "Dose due", Body: "Metformin 500 mg is due.",
			NotificationType: "gossip", Priority: "high",
		}, true},
		{"Missing body", DispatchNotificationRequest{
			UserID: userID, Title: "Dose due", NotificationType: "reminder", Priority: "high",
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestSubmitPrescriptionRequest_Validate(t *testing.T) {
	patientID := "6f1f64a2-9c2e-4b60-9e3e-0a2f4c5d6e7f"

	valid := SubmitPrescriptionRequest{
		PatientID:            patientID,
		DoctorName:           "Dr. N. Dlamini",
		DoctorPracticeNumber: "PR0012345",
		Medications: []SubmitMedicationRequest{
			{Name: "Amoxicillin", Dosage: "500 mg", Quantity: 21},
		},
	}
	require.NoError(t, valid.Validate())

	noMedications := valid
	noMedications.Medications = nil
	require.Error(t, noMedications.Validate())

	tooManyRepeats := valid
	tooManyRepeats.Medications = []SubmitMedicationRequest{
		{Name: "Amoxicillin", Dosage: "500 mg", Quantity: 21, Repeats: 13},
	}
	require.Error(t, tooManyRepeats.Validate())
}

func TestUpdateSettingsRequest_Validate(t *testing.T) {
	valid := UpdateSettingsRequest{OfflineEnabled: true, SyncIntervalS: 300, ThemeColor: "#2563eb"}
	require.NoError(t, valid.Validate())

	badColor := UpdateSettingsRequest{SyncIntervalS: 300, ThemeColor: "blue"}
	require.Error(t, badColor.Validate())

	tooFrequent := UpdateSettingsRequest{SyncIntervalS: 5}
	require.Error(t, tooFrequent.Validate())
}

func TestErrorResponse_Creation(t *testing.T) {
	errResp := ErrorResponse{
		Message: "Test error",
	}

	require.Equal(t, "Test error", errResp.Message)
}

func TestInfoResponse_Creation(t *testing.T) {
	infoResp := InfoResponse{
		Message: "Operation successful",
	}

	require.Equal(t, "Operation successful", infoResp.Message)
}
