package commands

import (
	"context"
	"fmt"
	"time"

	"medguard_service/internal/app"
	"medguard_service/internal/domain/medications"
	"medguard_service/internal/infrastructure/persistence"
	"medguard_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// AdherenceCommandHandler encapsulates logic for generating adherence reports via CLI.
type AdherenceCommandHandler struct {
	adherenceService medications.AdherenceService
	logger           logger.Logger
}

// NewAdherenceCommandHandler initializes and returns an AdherenceCommandHandler instance with
// configured logger and adherence service.
func NewAdherenceCommandHandler() (*AdherenceCommandHandler, error) {
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

	medicationLogRepo, err := persistence.NewGormMedicationLogRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create medication log repository: %w", err)
	}

	adherenceReportRepo, err := persistence.NewGormAdherenceReportRepository(db, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create adherence report repository: %w", err)
	}

	adherenceService, err := app.NewAdherenceService(medicationLogRepo, adherenceReportRepo, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create adherence service: %w", err)
	}

	return &AdherenceCommandHandler{
		adherenceService: adherenceService,
		logger:           loggerInstance,
	}, nil
}

// GenerateReportCmd builds an adherence report for a patient over a period
func (commandHandler *AdherenceCommandHandler) GenerateReportCmd(cmd *cobra.Command, _ []string) {
	patientID, err := cmd.Flags().GetString("patient-id")
	if err != nil {
		commandHandler.logger.Error("invalid patient-id flag ", err)
		return
	}

	periodStartRaw, err := cmd.Flags().GetString("period-start")
	if err != nil {
		commandHandler.logger.Error("invalid period-start flag ", err)
		return
	}

	periodEndRaw, err := cmd.Flags().GetString("period-end")
	if err != nil {
		commandHandler.logger.Error("invalid period-end flag ", err)
		return
	}

	periodStart, err := time.Parse(time.RFC3339, periodStartRaw)
	if err != nil {
		commandHandler.logger.Error("period-start must be RFC3339 ", err)
		return
	}

	periodEnd, err := time.Parse(time.RFC3339, periodEndRaw)
	if err != nil {
		commandHandler.logger.Error("period-end must be RFC3339 ", err)
		return
	}

	if !periodEnd.After(periodStart) {
		commandHandler.logger.Error("period-end must be after period-start")
		return
	}

	report, err := commandHandler.adherenceService.GenerateReport(context.Background(), patientID, periodStart, periodEnd)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Adherence report ", report.ID, ": rate ", report.AdherenceRate,
		"%, status ", string(report.Status),
		", taken ", report.TakenDoses, "/", report.ScheduledDoses)
}

// InitAdherenceCommands initializes adherence commands
func InitAdherenceCommands(rootCmd *cobra.Command) error {
	handler, err := NewAdherenceCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create adherence command handler %w", err)
	}

	var generateReportCmd = &cobra.Command{
		Use:   "generate-adherence-report",
		Short: "Generate an adherence report for a patient",
		Run:   handler.GenerateReportCmd,
	}
	generateReportCmd.Flags().StringP("patient-id", "", "", "Patient id to report on")
	generateReportCmd.Flags().StringP("period-start", "", "", "Report period start (RFC3339)")
	generateReportCmd.Flags().StringP("period-end", "", "", "Report period end (RFC3339)")
	rootCmd.AddCommand(generateReportCmd)

	return nil
}
