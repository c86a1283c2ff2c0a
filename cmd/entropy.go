package cmd

import (
	"github.com/spf13/cobra"

	"github.com/elijahadejumo/DocStability/core"
	"github.com/elijahadejumo/DocStability/internal/contract"
)

// entropyCmd measures how health-document updates spread over calendar months.
var entropyCmd = &cobra.Command{
	Use:   "entropy [repo-path]",
	Short: "Measure how evenly health-document commits spread across months.",
	Long: `Count health-document commits per calendar month over the analysis range
and compute the Shannon entropy of that distribution.

The normalized entropy is 1 when every month saw the same number of updates
and 0 when all updates happened in a single month. Top-month shares and a
Gini coefficient over the months are reported alongside.

Examples:
  # Entropy over the default range
  docstability entropy

  # Include per-month probabilities and the list of touching commits
  docstability entropy --write-probabilities --write-sha-list`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteEntropy(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run entropy analysis", err)
		}
	},
}
