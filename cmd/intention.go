package cmd

import (
	"github.com/spf13/cobra"

	"github.com/elijahadejumo/DocStability/core"
	"github.com/elijahadejumo/DocStability/internal/contract"
)

// intentionCmd reports how deliberate health-document commits are.
var intentionCmd = &cobra.Command{
	Use:   "intention [repo-path]",
	Short: "Measure how often health documents are the point of a commit.",
	Long: `Split the commits that touch health documents into doc-only commits,
mixed commits dominated by health documents, and mixed commits where the
documents are incidental. Reports counts and rates over all touching commits.

Examples:
  # Intent breakdown for the current repository
  docstability intention

  # Emit the breakdown as JSON
  docstability intention --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIntention(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run intention analysis", err)
		}
	},
}
