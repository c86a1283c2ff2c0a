// Package core runs the health-doc engines over a repository snapshot.
package core

import (
	"context"
	"time"

	"github.com/elijahadejumo/DocStability/core/classify"
	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/internal/outwriter"
	"github.com/elijahadejumo/DocStability/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// newGitClient builds the git client used by every entry point.
var newGitClient = func() contract.GitClient {
	return contract.NewLocalGitClient()
}

// prepare logs the header, opens run tracking and builds the snapshot.
func prepare(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, engines ...schema.Engine) (context.Context, *schema.Snapshot, error) {
	logAnalysisHeader(ctx, cfg, engines)
	ctx = beginTracking(ctx, cfg, mgr, engines)
	snap, err := loadSnapshot(ctx, cfg, newGitClient(), mgr)
	if err != nil {
		endTracking(ctx, mgr, nil)
		return ctx, nil, err
	}
	return ctx, snap, nil
}

// GetRhythmResults computes the windowed rhythm metrics without printing them.
func GetRhythmResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.RhythmResult, error) {
	ctx, snap, err := prepare(ctx, cfg, mgr, schema.RhythmEngine)
	if err != nil {
		return nil, err
	}
	res := AnalyzeRhythm(snap, cfg)
	endTracking(ctx, mgr, res.MetricValues())
	return res, nil
}

// GetOwnershipResults computes the ownership concentration rows without printing them.
func GetOwnershipResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.OwnershipResult, error) {
	ctx, snap, err := prepare(ctx, cfg, mgr, schema.OwnershipEngine)
	if err != nil {
		return nil, err
	}
	res := AnalyzeOwnership(snap)
	endTracking(ctx, mgr, res.MetricValues())
	return res, nil
}

// GetEntropyResults computes the monthly entropy summary without printing it.
func GetEntropyResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.EntropyResult, error) {
	ctx, snap, err := prepare(ctx, cfg, mgr, schema.EntropyEngine)
	if err != nil {
		return nil, err
	}
	res := AnalyzeEntropy(snap, cfg.WriteProbabilities)
	endTracking(ctx, mgr, res.MetricValues())
	return res, nil
}

// GetContributorsResults computes repo-wide contributor concentration without printing it.
func GetContributorsResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.ContributorsResult, error) {
	ctx, snap, err := prepare(ctx, cfg, mgr, schema.ContributorsEngine)
	if err != nil {
		return nil, err
	}
	res := AnalyzeContributors(snap, cfg.TopK, !cfg.IncludeBots)
	endTracking(ctx, mgr, res.MetricValues())
	return res, nil
}

// GetIntentionResults computes the commit intention summary without printing it.
func GetIntentionResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.IntentionResult, error) {
	ctx, snap, err := prepare(ctx, cfg, mgr, schema.IntentionEngine)
	if err != nil {
		return nil, err
	}
	res := AnalyzeIntention(snap)
	endTracking(ctx, mgr, res.MetricValues())
	return res, nil
}

// GetReportResults runs every engine over one snapshot.
func GetReportResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.Report, error) {
	ctx, snap, err := prepare(ctx, cfg, mgr, reportEngines...)
	if err != nil {
		return nil, err
	}
	rep, err := RunReport(ctx, snap, cfg)
	if err != nil {
		endTracking(ctx, mgr, nil)
		return nil, err
	}
	endTracking(ctx, mgr, rep.MetricValues())
	return rep, nil
}

// ExecuteRhythm runs the rhythm analysis and writes its artifacts.
// It serves as the main entry point for the 'rhythm' command.
func ExecuteRhythm(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	res, err := GetRhythmResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintRhythmResults(res, cfg, time.Since(start))
}

// ExecuteOwnership runs the ownership analysis and writes its artifacts.
func ExecuteOwnership(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	res, err := GetOwnershipResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintOwnershipResults(res, cfg, time.Since(start))
}

// ExecuteEntropy runs the entropy analysis and writes its artifacts.
func ExecuteEntropy(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	res, err := GetEntropyResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintEntropyResults(res, cfg, time.Since(start))
}

// ExecuteContributors runs the contributor concentration analysis and writes its artifacts.
func ExecuteContributors(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	res, err := GetContributorsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintContributorsResults(res, cfg, time.Since(start))
}

// ExecuteIntention runs the intention summary and writes its artifacts.
func ExecuteIntention(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	res, err := GetIntentionResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintIntentionResults(res, cfg, time.Since(start))
}

// ExecuteReport runs every engine and writes all artifacts.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	rep, err := GetReportResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintReport(rep, cfg, time.Since(start))
}

// ClassifyPaths explains how the default rule table treats each path.
func ClassifyPaths(paths []string) []schema.PathVerdict {
	rules := classify.Default()
	out := make([]schema.PathVerdict, 0, len(paths))
	for _, p := range paths {
		n := classify.NormalizePath(p)
		out = append(out, schema.PathVerdict{
			Path:       p,
			Normalized: n,
			Included:   n != "" && rules.IsIncluded(n),
			Excluded:   n != "" && rules.IsExcluded(n),
			HealthDoc:  rules.IsHealthDoc(p),
		})
	}
	return out
}

// SuppressHeader returns a context under which no analysis header is logged.
// The MCP server uses it so tool calls stay quiet.
func SuppressHeader(ctx context.Context) context.Context {
	return withSuppressHeader(ctx)
}
