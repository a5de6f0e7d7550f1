package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/scopezero/scopezero/internal/config"
	"github.com/scopezero/scopezero/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootState is shared by the root command and its subcommands for one run.
type rootState struct {
	configPath string
	projectDir string
	now        func() time.Time

	app       *App
	logResult *logging.LogPathResult
}

// NewRootCmd creates the root Cobra command for the scopezero CLI.
func NewRootCmd(ver string) *cobra.Command {
	return newRootCmd(ver, time.Now)
}

func newRootCmd(ver string, now func() time.Time) *cobra.Command {
	state := &rootState{now: now}

	cmd := &cobra.Command{
		Use:           "scopezero",
		Short:         "Scope 3 supply-chain emissions dashboard",
		Long:          "scopezero: ingest supplier shipment data and report Scope 3 emissions, hotspots and mitigations",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, state.logResult)
		},
	}

	cmd.PersistentFlags().StringVar(&state.configPath, "config", "", "config file (default ~/.scopezero/config.yaml)")
	cmd.PersistentFlags().StringVar(&state.projectDir, "project-dir", "", "project directory containing .scopezero/")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(
		newIngestCmd(state),
		newRecordsCmd(state),
		newAddCmd(state),
		newSyncCmd(state),
		newFactorsCmd(state),
		newColumnsCmd(state),
		newAuditCmd(state),
		newTemplateCmd(),
		newServeCmd(state),
		newDashboardCmd(state),
	)
	return cmd
}

// setup loads configuration, configures logging and builds the App.
func (s *rootState) setup(cmd *cobra.Command) error {
	cwd, _ := os.Getwd()
	cfg, err := config.Load(config.LoadOptions{
		Path:       s.configPath,
		ProjectDir: config.ResolveProjectDir(cmd.Context(), s.projectDir, cwd),
	})
	if err != nil {
		return err
	}

	result := setupLogging(cmd, cfg)
	s.logResult = &result

	app, err := NewApp(cfg, s.now)
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	s.app = app
	return nil
}

const rootCmdExample = `  # Ingest supplier shipments and print the dashboard
  scopezero ingest shipments.csv

  # Check column detection without committing
  scopezero ingest shipments.xlsx --preview

  # Record a single shipment
  scopezero add --supplier "Vulcan Steel" --material Steel --weight 5000 --distance 120

  # Connect a logistics partner
  scopezero sync Maersk

  # Serve the HTTP API
  scopezero serve --addr :8080

  # Interactive dashboard
  scopezero dashboard shipments.csv`
