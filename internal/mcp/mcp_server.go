// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

// rangeOptions are shared by every repository tool.
func rangeOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the configured repository).")),
		mcp.WithString("since", mcp.Description("Inclusive start date, YYYY-MM-DD.")),
		mcp.WithString("until", mcp.Description("Inclusive end date, YYYY-MM-DD.")),
		mcp.WithBoolean("include_merges", mcp.Description("Count merge commits. Defaults to false.")),
	}
}

func newTool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	all := append([]mcp.ToolOption{mcp.WithDescription(description)}, rangeOptions()...)
	return mcp.NewTool(name, append(all, opts...)...)
}

// NewMCPServer initializes and configures the docstability MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"DocStability Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		git:     contract.NewLocalGitClient(),
	}

	s.AddTool(newTool("get_rhythm",
		"Measure how regularly the project's health documents (README, CONTRIBUTING, SECURITY, ...) are updated, per week or month window.",
		mcp.WithString("granularity", mcp.Description("Window size. Defaults to 'month'."),
			mcp.Enum(string(schema.WeekGranularity), string(schema.MonthGranularity), "both")),
	), h.handleGetRhythm)

	s.AddTool(newTool("get_ownership",
		"Measure how concentrated health-document commits are among contributors (top-k shares and bus factors).",
		mcp.WithNumber("dominant_threshold", mcp.Description("Health-doc file share at or above which a mixed commit is dominant. In (0, 1], defaults to 0.5.")),
		mcp.WithBoolean("include_bots", mcp.Description("Attribute bot commits to contributors. Defaults to false.")),
	), h.handleGetOwnership)

	s.AddTool(newTool("get_entropy",
		"Measure how evenly health-document commits are spread across calendar months.",
	), h.handleGetEntropy)

	s.AddTool(newTool("get_contributors",
		"Measure repo-wide contributor concentration over all commits (Gini and top-k shares).",
		mcp.WithString("topk", mcp.Description("Comma separated k values for the top-k shares. Defaults to '3,5,10'.")),
		mcp.WithBoolean("include_bots", mcp.Description("Keep bot identities in the metrics. Defaults to false.")),
	), h.handleGetContributors)

	s.AddTool(mcp.NewTool("classify_paths",
		mcp.WithDescription("Explain whether each repository-relative path counts as a project health document."),
		mcp.WithArray("paths", mcp.Description("Paths to classify."), mcp.Required(), mcp.WithStringItems()),
	), h.handleClassifyPaths)

	return s
}

// StartMCPServer starts the docstability MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
