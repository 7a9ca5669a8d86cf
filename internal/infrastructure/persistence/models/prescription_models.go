package models

import (
	"time"

	"medguard_service/internal/domain/prescriptions"
)

// PrescriptionPatientModel is the GORM database model for patients
type PrescriptionPatientModel struct {
	ID               string    `gorm:"primaryKey;type:uuid"`
	FirstName        string    `gorm:"not null;type:varchar(100)"`
	LastName         string    `gorm:"not null;type:varchar(100)"`
	Email            string    `gorm:"not null;uniqueIndex;type:varchar(255)"`
	PhoneNumber      string    `gorm:"type:varchar(30)"`
	DateOfBirth      time.Time `gorm:"not null"`
	MedicalAidNumber string    `gorm:"type:varchar(50)"`
	DateTimeCreated  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PrescriptionPatientModel) TableName() string {
	return "prescription_patients"
}

// ToDomain converts GORM model to domain entity
func (m *PrescriptionPatientModel) ToDomain() *prescriptions.PrescriptionPatient {
	return &prescriptions.PrescriptionPatient{
		ID:               m.ID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		PhoneNumber:      m.PhoneNumber,
		DateOfBirth:      m.DateOfBirth,
		MedicalAidNumber: m.MedicalAidNumber,
		DateTimeCreated:  m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PrescriptionPatientModel) FromDomain(p *prescriptions.PrescriptionPatient) {
	m.ID = p.ID
	m.FirstName = p.FirstName
	m.LastName = p.LastName
	m.Email = p.Email
	m.PhoneNumber = p.PhoneNumber
	m.DateOfBirth = p.DateOfBirth
	m.MedicalAidNumber = p.MedicalAidNumber
	m.DateTimeCreated = p.DateTimeCreated
}

// PrescriptionModel is the GORM database model for prescription headers.
// The prescribing doctor is flattened into the row.
type PrescriptionModel struct {
	ID                   string `gorm:"primaryKey;type:uuid"`
	PatientID            string `gorm:"not null;index;type:uuid"`
	DoctorName           string `gorm:"not null;type:varchar(150)"`
	DoctorPracticeNumber string `gorm:"not null;type:varchar(50)"`
	DoctorContactNumber  string `gorm:"type:varchar(30)"`
	Status               string `gorm:"not null;type:varchar(20);index"`
	SourcePharmacy       string `gorm:"type:varchar(150)"`
	TargetPharmacy       string `gorm:"type:varchar(150)"`
	Notes                string `gorm:"type:text"`
	Medications          []PrescriptionMedicationModel `gorm:"foreignKey:PrescriptionID;constraint:OnDelete:CASCADE"`
	DateTimeCreated      time.Time `gorm:"not null"`
	DateTimeUpdated      time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PrescriptionModel) TableName() string {
	return "prescriptions"
}

// ToDomain converts GORM model to domain entity
func (m *PrescriptionModel) ToDomain() *prescriptions.Prescription {
	medications := make([]*prescriptions.PrescriptionMedication, len(m.Medications))
	for i := range m.Medications {
		medications[i] = m.Medications[i].ToDomain()
	}

	return &prescriptions.Prescription{
		ID:        m.ID,
		PatientID: m.PatientID,
		Doctor: prescriptions.PrescriptionDoctor{
			Name:           m.DoctorName,
			PracticeNumber: m.DoctorPracticeNumber,
			ContactNumber:  m.DoctorContactNumber,
		},
		Status:          m.Status,
		SourcePharmacy:  m.SourcePharmacy,
		TargetPharmacy:  m.TargetPharmacy,
		Notes:           m.Notes,
		Medications:     medications,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PrescriptionModel) FromDomain(p *prescriptions.Prescription) {
	m.ID = p.ID
	m.PatientID = p.PatientID
	m.DoctorName = p.Doctor.Name
	m.DoctorPracticeNumber = p.Doctor.PracticeNumber
	m.DoctorContactNumber = p.Doctor.ContactNumber
	m.Status = p.Status
	m.SourcePharmacy = p.SourcePharmacy
	m.TargetPharmacy = p.TargetPharmacy
	m.Notes = p.Notes
	m.Medications = make([]PrescriptionMedicationModel, len(p.Medications))
	for i, medication := range p.Medications {
		m.Medications[i].FromDomain(medication)
	}
	m.DateTimeCreated = p.DateTimeCreated
	m.DateTimeUpdated = p.DateTimeUpdated
}

// PrescriptionMedicationModel is the GORM database model for line items
type PrescriptionMedicationModel struct {
	ID             string `gorm:"primaryKey;type:uuid"`
	PrescriptionID string `gorm:"not null;index;type:uuid"`
	Name           string `gorm:"not null;type:varchar(255)"`
	Dosage         string `gorm:"not null;type:varchar(50)"`
	Quantity       int    `gorm:"not null"`
	Repeats        int    `gorm:"not null"`
	Instructions   string `gorm:"type:varchar(500)"`
}

// TableName specifies the table name for GORM
func (PrescriptionMedicationModel) TableName() string {
	return "prescription_medications"
}

// ToDomain converts GORM model to domain entity
func (m *PrescriptionMedicationModel) ToDomain() *prescriptions.PrescriptionMedication {
	return &prescriptions.PrescriptionMedication{
		ID:             m.ID,
		PrescriptionID: m.PrescriptionID,
		Name:           m.Name,
		Dosage:         m.Dosage,
		Quantity:       m.Quantity,
		Repeats:        m.Repeats,
		Instructions:   m.Instructions,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PrescriptionMedicationModel) FromDomain(p *prescriptions.PrescriptionMedication) {
	m.ID = p.ID
	m.PrescriptionID = p.PrescriptionID
	m.Name = p.Name
	m.Dosage = p.Dosage
	m.Quantity = p.Quantity
	m.Repeats = p.Repeats
	m.Instructions = p.Instructions
}

// EmergencyContactModel is the GORM database model for emergency contacts
type EmergencyContactModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	PatientID       string    `gorm:"not null;index;type:uuid"`
	Name            string    `gorm:"not null;type:varchar(150)"`
	Relationship    string    `gorm:"not null;type:varchar(50)"`
	PhoneNumber     string    `gorm:"not null;type:varchar(30)"`
	Email           string    `gorm:"type:varchar(255)"`
	Priority        int       `gorm:"not null"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (EmergencyContactModel) TableName() string {
	return "emergency_contacts"
}

// ToDomain converts GORM model to domain entity
func (m *EmergencyContactModel) ToDomain() *prescriptions.EmergencyContact {
	return &prescriptions.EmergencyContact{
		ID:              m.ID,
		PatientID:       m.PatientID,
		Name:            m.Name,
		Relationship:    m.Relationship,
		PhoneNumber:     m.PhoneNumber,
		Email:           m.Email,
		Priority:        m.Priority,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *EmergencyContactModel) FromDomain(c *prescriptions.EmergencyContact) {
	m.ID = c.ID
	m.PatientID = c.PatientID
	m.Name = c.Name
	m.Relationship = c.Relationship
	m.PhoneNumber = c.PhoneNumber
	m.Email = c.Email
	m.Priority = c.Priority
	m.DateTimeCreated = c.DateTimeCreated
}
