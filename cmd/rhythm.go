package cmd

import (
	"github.com/spf13/cobra"

	"github.com/elijahadejumo/DocStability/core"
	"github.com/elijahadejumo/DocStability/internal/contract"
)

// rhythmCmd measures the update cadence of health documents.
var rhythmCmd = &cobra.Command{
	Use:   "rhythm [repo-path]",
	Short: "Measure how regularly health documents are updated.",
	Long: `Bucket every health-document commit into week or month windows and
measure how evenly the updates are spread.

For each granularity the result holds:
- Total commits and active windows
- Mean, standard deviation and coefficient of variation per window
- Longest run of windows without a single update
- A label: stable, unstable, sparse or inactive

Artifacts land in <output-dir>/<repo>/ and always include the rhythm metrics
CSV plus a JSON summary. Window counts and per-file details are optional.

Examples:
  # Monthly rhythm over the default five-year window
  docstability rhythm

  # Both granularities for a specific range
  docstability rhythm ~/src/project --granularity both --since 2020-01-01 --until 2024-12-31

  # Also write the per-window counts and per-file commit details
  docstability rhythm --write-timeseries --write-file-details`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRhythm(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run rhythm analysis", err)
		}
	},
}
