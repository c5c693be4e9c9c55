package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/periscan/periscan/core"
	"github.com/periscan/periscan/internal/contract"
	"github.com/periscan/periscan/internal/runstore"
	"github.com/periscan/periscan/schema"
)

// runsSetup loads minimal configuration needed for run tracking operations.
// This is used by commands that need store access without full shared setup.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.StoreBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize run tracking with the loaded config
	if err := runstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	// Get output-related config values used by the list/status/export writers
	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors
	cfg.ResultLimit = viper.GetInt("limit")
	cfg.Precision = viper.GetInt("precision")
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.StoreBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for the migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on search run tracking.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by search commands. This avoids light curve
// validation and complex config processing for simple store operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage recorded search runs and exports",
	Long: `Manage the search run history used for tracking and reporting.

When enabled, Periscan records every search, storing:
- Run metadata (timestamp, input file, configuration, duration)
- The ranked peaks of each search

This enables comparing candidate lists across reductions and exporting
search history for analytics.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show recent search runs
  status  - Show run tracking statistics
  clear   - Remove all recorded runs
  export  - Export run history to Parquet
  migrate - Run database schema migrations

Examples:
  # Review recent searches
  periscan runs list

  # Export for analysis in pandas/DuckDB
  periscan runs export --output-file search-history`,
}

// runsListCmd lists recent search runs.
var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent search runs",
	Long: `List recorded search runs, newest first.

Each row shows the run ID, start time, wall time, input file, objective,
method, trial period count and the best peak found. Use --limit to control
how many runs are shown.

Examples:
  # Show the last 25 runs
  periscan runs list

  # Export the full history as JSON
  periscan runs list --limit 1000 --output json`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRunList(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list search runs", err)
		}
	},
}

// runsStatusCmd shows run tracking status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about search run tracking.

Displays:
- Backend type and connection status
- Total number of recorded runs and peaks
- Last and oldest run timestamps

Use this to verify run tracking is enabled and working, and to check
database connection health.

Examples:
  # Check run tracking status
  periscan runs status`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRunStatus(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot get run tracking status", err)
		}
	},
}

// runsClearCmd clears the recorded run history.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded search runs",
	Long: `Delete all stored search runs and their ranked peaks.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  periscan runs export --output-file backup
  periscan runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRunClear(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot clear search runs", err)
		}
	},
}

// runsExportCmd exports the run history to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export search history to Parquet for analytics",
	Long: `Export all recorded search data to Parquet format.

Exports two datasets:
- Search runs - metadata about each search execution
- Ranked peaks - the top candidates of every recorded run

Requires: --output-file parameter, used as the prefix for both files.

Examples:
  # Export all data
  periscan runs export --output-file search-history

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('search-history.search_peaks.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ExecuteRunExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export search runs", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  periscan runs migrate

  # Migrate to specific version
  periscan runs migrate --target-version 1

  # Rollback to initial state
  periscan runs migrate --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.MigrateSearchStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
