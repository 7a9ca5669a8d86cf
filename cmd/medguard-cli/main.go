// Package main is the entry point for the medguard-cli application.
// It initializes the root command and registers sub-commands for running
// background jobs on demand, dispatching notifications and generating
// adherence reports, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "medguard_service/cmd/medguard-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "medguard-cli",
		Short: "MedGuard operations CLI tool",
		Long: `medguard-cli is a command-line tool for operating a MedGuard deployment.
Supports running the scheduled jobs on demand (medication reminders, adherence
reports, retention cleanup), dispatching notifications to a user and generating
adherence reports for a patient.

Configuration is read from the file named by the CONFIG_PATH environment
variable, falling back to ../../configs/medguard.yaml.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	// Register job commands
	if err := commands.InitJobCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize job commands: %w", err)
	}

	// Register notification commands
	if err := commands.InitNotifyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize notification commands: %w", err)
	}

	// Register adherence commands
	if err := commands.InitAdherenceCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize adherence commands: %w", err)
	}

	// Register patient commands
	if err := commands.InitPatientCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize patient commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
