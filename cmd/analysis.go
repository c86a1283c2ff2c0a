package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/internal/iocache"
	"github.com/elijahadejumo/DocStability/schema"
)

// loadAnalysisBackend reads and validates the analysis backend settings.
// An empty backend means tracking is disabled.
func loadAnalysisBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.NoneBackend
	if b := viper.GetString("analysis-backend"); b != "" {
		backend = schema.DatabaseBackend(b)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("%w: analysis backend '%s' must be sqlite, mysql, postgresql, none", contract.ErrInvalidInput, backend)
	}
	connStr := viper.GetString("analysis-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// analysisSetup loads minimal configuration needed for analysis operations.
// It skips Git repo validation and only opens the analysis store.
func analysisSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := loadAnalysisBackend()
	if err != nil {
		return err
	}

	// no commit log cache for analysis commands
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// analysisMigrateSetup does NOT initialize stores or create tables,
// so migrations can run on a fresh database.
func analysisMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := loadAnalysisBackend()
	if err != nil {
		return err
	}

	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetAnalysisDBFilePath()
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	return nil
}

// analysisCmd focused on analysis data management.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage tracked analysis runs and exports",
	Long: `Manage the history of analysis runs used for longitudinal studies.

When --analysis-backend is set, every engine run records:
- Run metadata (UUID, repository, range, configuration, duration)
- Every metric it computed, keyed by engine and scope

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show tracking statistics
  export  - Export runs and metrics to Parquet
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  docstability analysis status --analysis-backend sqlite

  # Export for pandas or DuckDB
  docstability analysis export --analysis-backend sqlite --output-file runs.parquet`,
}

// analysisClearCmd clears the analysis data.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all tracked analysis runs",
	Long: `Delete every stored analysis run and metric value.

For SQLite: deletes the database file
For MySQL/PostgreSQL: drops the tracking tables

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  docstability analysis export --output-file backup.parquet
  docstability analysis clear`,
	PreRunE: analysisSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		// release the SQLite handle before the file goes away
		iocache.CloseStores()
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, contract.GetAnalysisDBFilePath(), cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		cmd.Println("Analysis data cleared successfully.")
	},
}

// analysisStatusCmd shows analysis status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display analysis tracking statistics and connection details",
	Long: `Show the backend, connection state, number of runs, first and last
run times and table sizes of the analysis store.

Examples:
  docstability analysis status`,
	PreRunE: analysisSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetAnalysisStore()
		if store == nil {
			iocache.PrintAnalysisStatus(os.Stdout, schema.AnalysisStatus{Backend: string(schema.NoneBackend)})
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(os.Stdout, status)
	},
}

// analysisExportCmd exports analysis data to Parquet files.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tracked runs and metrics to Parquet",
	Long: `Export all stored analysis data as two Parquet files next to --output-file:
one with the runs and one with the metric values.

Requires: --output-file

Examples:
  docstability analysis export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.analysis_runs.parquet') LIMIT 10"`,
	PreRunE: analysisSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(os.Stdout, iocache.Manager.GetAnalysisStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd runs database migrations for the analysis store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the analysis store.

By default, migrates to the latest version. Use --target-version for a
specific version, or 0 to roll every migration back.

Examples:
  # Migrate to latest version (default)
  docstability analysis migrate

  # Roll back everything
  docstability analysis migrate --target-version 0`,
	PreRunE: analysisMigrateSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		msg, err := iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, viper.GetInt("target-version"))
		if err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		cmd.Println(msg)
	},
}
