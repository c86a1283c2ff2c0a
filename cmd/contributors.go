package cmd

import (
	"github.com/spf13/cobra"

	"github.com/elijahadejumo/DocStability/core"
	"github.com/elijahadejumo/DocStability/internal/contract"
)

// contributorsCmd measures repo-wide contributor concentration.
var contributorsCmd = &cobra.Command{
	Use:   "contributors [repo-path]",
	Short: "Measure how concentrated all commits are among contributors.",
	Long: `Count commits per contributor across the whole repository and compute
concentration metrics over them.

Reports:
- Gini coefficient of the commit distribution
- Top-k shares for every requested k
- Bot identities that were excluded, with sample names

Examples:
  # Default top-3/5/10 shares without bots
  docstability contributors

  # Custom k values and the full per-contributor table
  docstability contributors --topk 1,2,5 --write-details

  # Keep bots and write what was detected
  docstability contributors --include-bots --write-bots`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteContributors(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run contributor analysis", err)
		}
	},
}
