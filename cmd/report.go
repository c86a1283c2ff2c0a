package cmd

import (
	"github.com/spf13/cobra"

	"github.com/elijahadejumo/DocStability/core"
	"github.com/elijahadejumo/DocStability/internal/contract"
)

// reportCmd runs every engine against one commit log.
var reportCmd = &cobra.Command{
	Use:   "report [repo-path]",
	Short: "Run every analysis over a single pass of the Git history.",
	Long: `Read the commit log once and run rhythm, ownership, entropy,
contributors and intention over it.

Each engine writes its own artifacts with its own prefix, so a report
directory looks the same as five separate runs.

Examples:
  # Full report with the default settings
  docstability report ~/src/project

  # Full report as one JSON document
  docstability report --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run report", err)
		}
	},
}
