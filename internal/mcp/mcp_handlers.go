package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/elijahadejumo/DocStability/core"
	"github.com/elijahadejumo/DocStability/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	git     contract.GitClient
}

// configFor clones the base config and applies the shared range arguments.
// Tool calls only return results; they never write artifacts.
func (h *toolHandler) configFor(ctx context.Context, request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.WriteArtifacts = false
	if p := request.GetString("repo_path", ""); p != "" {
		if err := contract.ResolveRepoPath(ctx, cfg, h.git, p); err != nil {
			return nil, err
		}
	}
	cfg.IncludeMerges = request.GetBool("include_merges", cfg.IncludeMerges)
	if err := contract.RevalidateRange(cfg, request.GetString("since", ""), request.GetString("until", "")); err != nil {
		return nil, err
	}
	return cfg, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRhythm(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if g := request.GetString("granularity", ""); g != "" {
		granularities, err := contract.ParseGranularities(g)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}
		cfg.Granularities = granularities
	}

	res, err := core.GetRhythmResults(core.SuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rhythm analysis failed: %v", err)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleGetOwnership(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.IncludeBots = request.GetBool("include_bots", cfg.IncludeBots)
	if t := request.GetFloat("dominant_threshold", 0); t != 0 {
		if t < 0 || t > 1 {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: dominant_threshold must be in (0, 1] (received %.3f)", t)), nil
		}
		cfg.DominantThreshold = t
	}

	res, err := core.GetOwnershipResults(core.SuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ownership analysis failed: %v", err)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleGetEntropy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	res, err := core.GetEntropyResults(core.SuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("entropy analysis failed: %v", err)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleGetContributors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.IncludeBots = request.GetBool("include_bots", cfg.IncludeBots)
	if k := request.GetString("topk", ""); k != "" {
		topK, err := contract.ParseTopK(k)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}
		cfg.TopK = topK
	}

	res, err := core.GetContributorsResults(core.SuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("contributor analysis failed: %v", err)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleClassifyPaths(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := request.GetStringSlice("paths", nil)
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths must contain at least one path"), nil
	}
	return jsonResult(core.ClassifyPaths(paths))
}
