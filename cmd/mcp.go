package cmd

import (
	"github.com/spf13/cobra"

	"github.com/elijahadejumo/DocStability/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the DocStability MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents run the rhythm,
ownership, entropy and contributor analyses and classify paths.

Flags and config set the defaults; each tool call may override the
repository, the date range and engine options. Tool calls return JSON and
never write artifacts.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
