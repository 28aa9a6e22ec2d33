package cmd

import (
	"fmt"

	"github.com/searchpulse/searchpulse/internal/contract"
	"github.com/searchpulse/searchpulse/internal/runstore"
	"github.com/searchpulse/searchpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsSetup loads minimal configuration needed for run store operations.
// This is used by commands that need store access without full shared setup.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as the sqlite default
	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend %q: must be sqlite, mysql, postgresql or none", backendStr)
	}
	if (backend == schema.MySQLBackend || backend == schema.PostgreSQLBackend) && connStr == "" {
		return fmt.Errorf("store-db-connect is required for the %s backend", backend)
	}

	// Initialize the store with the loaded config
	if err := runstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

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

	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend %q: must be sqlite, mysql, postgresql or none", backendStr)
	}
	if (backend == schema.MySQLBackend || backend == schema.PostgreSQLBackend) && connStr == "" {
		return fmt.Errorf("store-db-connect is required for the %s backend", backend)
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on run history management.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by report commands. This avoids input file
// handling and complex config processing for simple store operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage persisted run history and exports",
	Long: `Manage the run history recorded by the compare and aggregate commands.

Every persisted run stores:
- Run metadata (timestamp, configuration, duration)
- Every classified metric row per entity

This enables longitudinal reporting, trend detection, and data export
for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run store statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  # Check run history status
  searchpulse runs status

  # Export for analysis in pandas/DuckDB
  searchpulse runs export --output-file run-history.parquet`,
}

// runsStatusCmd shows run store status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show run store statistics",
	Long: `Display the state of the run store: backend in use, total runs, last
and oldest run timestamps, and per-table row counts.

Examples:
  searchpulse runs status
  searchpulse runs status --store-backend postgresql --store-db-connect "postgres://..."`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := runstore.Manager.GetRunStore()
		if store == nil {
			contract.LogFatal("Cannot show run status", fmt.Errorf("run store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Cannot show run status", err)
		}
		runstore.PrintStoreStatus(status)
	},
}

// runsClearCmd clears the run history.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all persisted run history",
	Long: `Delete all stored runs and their metric rows.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  searchpulse runs export --output-file backup.parquet
  searchpulse runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.DropStore(cfg.StoreBackend, contract.GetStoreDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// runsExportCmd exports the run history to Parquet.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet files",
	Long: `Export all persisted runs and metric rows to Parquet files for use
with Spark, pandas, DuckDB, or any Parquet-compatible tool.

Two files are written, named after --output-file:
  <output-file>.report_runs.parquet
  <output-file>.report_metric_deltas.parquet

Examples:
  searchpulse runs export --output-file run-history`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ExecuteRunsExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// runsMigrateCmd runs schema migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations for the run store",
	Long: `Apply or roll back schema migrations on the run store database.

The target version controls the direction:
  -1  migrate up to the latest version (default)
   0  roll back all migrations
   N  migrate to version N exactly

Examples:
  # Bring the schema up to date
  searchpulse runs migrate

  # Roll everything back
  searchpulse runs migrate --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
