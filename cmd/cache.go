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

// cacheSetup loads minimal configuration needed for cache operations.
// It skips Git repo validation and only opens the commit log cache.
func cacheSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("%w: cache backend '%s' must be sqlite, mysql, postgresql, none", contract.ErrInvalidInput, backend)
	}
	connStr := viper.GetString("cache-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// no analysis tracking for cache commands
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the Git commit log cache",
	Long: `Manage the cache of parsed commit logs that speeds up repeated analyses.

Entries are keyed by repository, HEAD commit, date range and merge setting,
so a new commit or a different range never reuses stale data.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  docstability cache status
  docstability cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached commit logs",
	Long: `Delete all cached commit logs from the configured backend.

For SQLite: deletes the database file
For MySQL/PostgreSQL: drops the cache table

Examples:
  # Clear SQLite cache (default)
  docstability cache clear

  # Clear a PostgreSQL cache
  DOCSTABILITY_CACHE_BACKEND=postgresql DOCSTABILITY_CACHE_DB_CONNECT="..." docstability cache clear`,
	PreRunE: cacheSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		iocache.CloseStores()
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		cmd.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend, connection state, entry count, first and last entry
times and table size of the commit log cache.

Examples:
  docstability cache status`,
	PreRunE: cacheSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetActivityStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}
