package cmd

import (
	"github.com/spf13/cobra"

	"github.com/elijahadejumo/DocStability/core"
	"github.com/elijahadejumo/DocStability/internal/contract"
)

// ownershipCmd measures who maintains the health documents.
var ownershipCmd = &cobra.Command{
	Use:   "ownership [repo-path]",
	Short: "Measure how concentrated health-document commits are among contributors.",
	Long: `Classify every commit that touches a health document as doc-only,
dominant mixed or non-dominant mixed and measure how the work is shared.

Reports per category (plus all touching commits together):
- Commit counts and unique contributors
- Top-1, top-3, top-5 and top-10 shares of the commits
- Bus factor at 50% and 80% coverage

A partition check verifies that the three categories add up to all touches.

Examples:
  # Default analysis of the current repository
  docstability ownership

  # Stricter notion of a dominant commit
  docstability ownership --dominant-threshold 0.75

  # Attribute bot commits as regular contributors
  docstability ownership --include-bots`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOwnership(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run ownership analysis", err)
		}
	},
}
