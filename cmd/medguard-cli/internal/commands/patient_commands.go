package commands

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/app"
	"medguard_service/internal/domain/prescriptions"
	"medguard_service/internal/infrastructure/persistence"
	"medguard_service/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// PatientCommandHandler encapsulates logic for managing patients via CLI.
type PatientCommandHandler struct {
	patientService prescriptions.PatientService
	logger         logger.Logger
}

// NewPatientCommandHandler initializes and returns a PatientCommandHandler instance with
// configured logger and patient service.
func NewPatientCommandHandler() (*PatientCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	appConfig, err := loadAppConfig()
	if err != nil {
		return nil, err
	}

	db, err := openDatabase(appConfig)
	if err != nil {
		return nil, err
	}

	patientRepo, err := persistence.NewGormPatientRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient repository: %w", err)
	}

	patientService, err := app.NewPatientService(patientRepo, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient service: %w", err)
	}

	return &PatientCommandHandler{
		patientService: patientService,
		logger:         loggerInstance,
	}, nil
}

// RegisterPatientCmd registers a patient with a unique email address
func (commandHandler *PatientCommandHandler) RegisterPatientCmd(cmd *cobra.Command, _ []string) {
	firstName, err := cmd.Flags().GetString("first-name")
	if err != nil {
		commandHandler.logger.Error("invalid first-name flag ", err)
		return
	}

	lastName, err := cmd.Flags().GetString("last-name")
	if err != nil {
		commandHandler.logger.Error("invalid last-name flag ", err)
		return
	}

	email, err := cmd.Flags().GetString("email")
	if err != nil {
		commandHandler.logger.Error("invalid email flag ", err)
		return
	}

	phoneNumber, err := cmd.Flags().GetString("phone-number")
	if err != nil {
		commandHandler.logger.Error("invalid phone-number flag ", err)
		return
	}

	dateOfBirthRaw, err := cmd.Flags().GetString("date-of-birth")
	if err != nil {
		commandHandler.logger.Error("invalid date-of-birth flag ", err)
		return
	}

	medicalAidNumber, err := cmd.Flags().GetString("medical-aid-number")
	if err != nil {
		commandHandler.logger.Error("invalid medical-aid-number flag ", err)
		return
	}

	dateOfBirth, err := time.Parse("2006-01-02", dateOfBirthRaw)
	if err != nil {
		commandHandler.logger.Error("date-of-birth must be YYYY-MM-DD ", err)
		return
	}

	patient := &prescriptions.PrescriptionPatient{
		ID:               uuid.New().String(),
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		PhoneNumber:      phoneNumber,
		DateOfBirth:      dateOfBirth,
		MedicalAidNumber: medicalAidNumber,
	}

	created, err := commandHandler.patientService.Register(context.Background(), patient)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Registered patient ", created.ID, " (", created.Email, ")")
}

// InitPatientCommands initializes patient commands
func InitPatientCommands(rootCmd *cobra.Command) error {
	handler, err := NewPatientCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create patient command handler %w", err)
	}

	var registerPatientCmd = &cobra.Command{
		Use:   "register-patient",
		Short: "Register a patient",
		Run:   handler.RegisterPatientCmd,
	}
	registerPatientCmd.Flags().StringP("first-name", "", "", "Patient first name")
	registerPatientCmd.Flags().StringP("last-name", "", "", "Patient last name")
	registerPatientCmd.Flags().StringP("email", "", "", "Unique email address")
	registerPatientCmd.Flags().StringP("phone-number", "", "", "Phone number in E.164 form, e.g. +27821234567")
	registerPatientCmd.Flags().StringP("date-of-birth", "", "", "Date of birth (YYYY-MM-DD)")
	registerPatientCmd.Flags().StringP("medical-aid-number", "", "", "Medical aid membership number")
	rootCmd.AddCommand(registerPatientCmd)

	return nil
}
