// Package cmd defines the command-line interface for docstability.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/internal/outwriter"
	"github.com/elijahadejumo/DocStability/schema"
)

// addRhythmFlags registers the window and labeling options.
func addRhythmFlags(cmd *cobra.Command) {
	cmd.Flags().String("granularity", string(schema.MonthGranularity), "Window size: week or month or both")
	cmd.Flags().Float64("cv-threshold", contract.DefaultCVThreshold, "Coefficient of variation at or below which a rhythm is stable")
	cmd.Flags().Int("min-total-commits", contract.DefaultMinTotalCommits, "Commits needed before a rhythm is labeled stable or unstable")
	cmd.Flags().Int("min-active-windows", contract.DefaultMinActiveWindows, "Active windows needed before a rhythm is labeled stable or unstable")
}

func addRhythmArtifactFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("write-timeseries", false, "Also write per-window commit counts")
	cmd.Flags().Bool("write-file-details", false, "Also write one row per health-document commit and file")
}

func addDominantFlag(cmd *cobra.Command) {
	cmd.Flags().Float64("dominant-threshold", contract.DefaultDominantThreshold, "Health-document file share at or above which a mixed commit is dominant, in (0, 1]")
}

func addEntropyArtifactFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("write-probabilities", false, "Add the p_month column to the monthly distribution")
	cmd.Flags().Bool("write-sha-list", false, "Also write the SHAs of every health-document commit")
}

func addTopKFlag(cmd *cobra.Command) {
	cmd.Flags().String("topk", contract.DefaultTopK, "Comma-separated k values for the top-k contributor shares")
}

func addContributorArtifactFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("write-details", false, "Also write the per-contributor commit counts")
	cmd.Flags().Bool("write-bots", false, "Also write the detected bot identities")
}

// bindCommandFlags binds the local flags of the running command to Viper.
// Several commands share flag names, so only the executing one may own the keys.
func bindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(rhythmCmd)
	rootCmd.AddCommand(ownershipCmd)
	rootCmd.AddCommand(entropyCmd)
	rootCmd.AddCommand(contributorsCmd)
	rootCmd.AddCommand(intentionCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(combineCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("since", "", "Inclusive start date YYYY-MM-DD (default: five years before until)")
	rootCmd.PersistentFlags().String("until", "", "Inclusive end date YYYY-MM-DD (default: today)")
	rootCmd.PersistentFlags().Bool("include-merges", false, "Count merge commits")
	rootCmd.PersistentFlags().Bool("include-bots", false, "Keep bot identities in contributor metrics")
	rootCmd.PersistentFlags().StringSlice("bot-patterns", nil, "Extra regular expressions that mark an identity as a bot, added to the built-in list")
	rootCmd.PersistentFlags().Int("bot-samples", contract.DefaultBotSamples, "Sample names kept per detected bot")
	rootCmd.PersistentFlags().String("out-prefix", "", "Artifact file prefix (default depends on the analysis)")
	rootCmd.PersistentFlags().String("output-dir", contract.DefaultOutputDir, "Directory holding one artifact folder per repository")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Engine flags are bound in PreRunE by the command that runs
	addRhythmFlags(rhythmCmd)
	addRhythmArtifactFlags(rhythmCmd)
	addDominantFlag(ownershipCmd)
	addEntropyArtifactFlags(entropyCmd)
	addTopKFlag(contributorsCmd)
	addContributorArtifactFlags(contributorsCmd)
	addDominantFlag(intentionCmd)

	addRhythmFlags(reportCmd)
	addRhythmArtifactFlags(reportCmd)
	addDominantFlag(reportCmd)
	addEntropyArtifactFlags(reportCmd)
	addTopKFlag(reportCmd)
	addContributorArtifactFlags(reportCmd)

	addRhythmFlags(mcpCmd)
	addDominantFlag(mcpCmd)
	addTopKFlag(mcpCmd)

	combineCmd.Flags().String("marker", "", "Substring of the artifact file name to combine: "+strings.Join(outwriter.CombineMarkers, ", "))
	combineCmd.Flags().Int("rows", 0, "Keep at most this many data rows (0 = all)")
	combineCmd.Flags().String("combined-file", "", "Path of the combined CSV (default: <output-dir>/combined_<marker>.csv)")
	if err := combineCmd.MarkFlagRequired("marker"); err != nil {
		contract.LogFatal("Error marking combine flags", err)
	}
	if err := viper.BindPFlags(combineCmd.Flags()); err != nil {
		contract.LogFatal("Error binding combine flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 = latest, 0 = rollback all)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}
