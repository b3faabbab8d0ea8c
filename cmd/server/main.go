/*
main.go - Application entry point

PURPOSE:
  Command-line front end of the attendance payroll engine. Loads the
  configuration, builds the logger and the SQLite store, and dispatches to
  a subcommand.

COMMANDS:
  serve               Start the HTTP API
  process <file|->    Compute payroll for one report and print or export it
  workers             List the worker directory

CONFIGURATION:
  --config path/to/config.yaml (optional; see config/config.go for the
  search path, .env and PAYROLL_* overrides)

GRACEFUL SHUTDOWN (serve):
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run the API with the defaults
  ./payroll-engine serve

  # Run with an in-memory database on another port
  PAYROLL_DATABASE_PATH=":memory:" PAYROLL_SERVER_PORT=3000 ./payroll-engine serve

  # Compute a report, Monday the 5th was a holiday, the 7th was justified
  ./payroll-engine process report.txt --holiday 05 --justified 07

  # Export the payslip
  ./payroll-engine process report.txt --format pdf --out pablo.pdf

SEE ALSO:
  - api/server.go: Router configuration
  - payroll/engine.go: Report pipeline
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/warp/attendance-payroll/config"
	"github.com/warp/attendance-payroll/store/sqlite"
	"go.uber.org/zap"
)

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "payroll-engine",
		Short:         "Attendance report payroll engine",
		Long:          "Turns clock-in/clock-out attendance reports into hours worked, lateness deductions, bonuses and pay",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err = config.NewLogger(cfg.Log)
			if err != nil {
				return err
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(processCmd())
	rootCmd.AddCommand(workersCmd())

	return rootCmd
}

// openStore opens the configured database and applies the seed.
func openStore(cmd *cobra.Command) (*sqlite.Store, error) {
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := seedStore(cmd.Context(), store, cfg.Seed, logger); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
