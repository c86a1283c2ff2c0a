package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/elijahadejumo/DocStability/core/agg"
	"github.com/elijahadejumo/DocStability/core/classify"
	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

// loadSnapshot performs the single log retrieval and classification pass every engine reads from.
func loadSnapshot(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*schema.Snapshot, error) {
	bots, err := classify.NewBotDetector(cfg.BotPatterns)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contract.ErrInvalidInput, err)
	}

	commits, stats, err := agg.LoadCommits(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	if stats.Malformed > 0 {
		contract.Logger.WithFields(logrus.Fields{
			"repo":      cfg.RepoName,
			"malformed": stats.Malformed,
			"headers":   stats.Headers,
		}).Warn("skipped malformed commit records")
	}

	return agg.BuildSnapshot(cfg, commits, stats, classify.Default(), bots), nil
}

// logAnalysisHeader announces the run on stderr.
func logAnalysisHeader(ctx context.Context, cfg *contract.Config, engines []schema.Engine) {
	if shouldSuppressHeader(ctx) {
		return
	}
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = string(e)
	}
	contract.Logger.WithFields(logrus.Fields{
		"repo":    cfg.RepoName,
		"since":   cfg.Since.Format(schema.DateLayout),
		"until":   cfg.Until.Format(schema.DateLayout),
		"engines": strings.Join(names, ","),
	}).Info("analyzing repository")
}

// beginTracking opens an analysis run in the analysis store, if one is configured.
// The run id is carried on the returned context.
func beginTracking(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, engines []schema.Engine) context.Context {
	store := analysisStoreOf(mgr)
	if store == nil {
		return ctx
	}

	granularities := make([]string, len(cfg.Granularities))
	for i, g := range cfg.Granularities {
		granularities[i] = string(g)
	}
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = string(e)
	}
	params := map[string]any{
		"engines":            names,
		"repo_path":          cfg.RepoPath,
		"since":              cfg.Since.Format(schema.DateLayout),
		"until":              cfg.Until.Format(schema.DateLayout),
		"granularities":      granularities,
		"dominant_threshold": cfg.DominantThreshold,
		"cv_threshold":       cfg.CVThreshold,
		"min_total_commits":  cfg.MinTotalCommits,
		"min_active_windows": cfg.MinActiveWindows,
		"include_merges":     cfg.IncludeMerges,
		"include_bots":       cfg.IncludeBots,
		"rules_version":      classify.RulesVersion,
	}

	id, err := store.BeginAnalysis(time.Now(), cfg.RepoName, params)
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return ctx
	}
	if id <= 0 {
		return ctx
	}
	contract.Logger.WithFields(logrus.Fields{"analysis_id": id, "repo": cfg.RepoName}).Debug("analysis run started")
	return withAnalysisID(ctx, id)
}

// endTracking stores the metric rows of the run and closes it.
// Failures are reported as warnings and never abort the analysis.
func endTracking(ctx context.Context, mgr contract.CacheManager, values []schema.MetricValue) {
	store := analysisStoreOf(mgr)
	id, ok := getAnalysisID(ctx)
	if store == nil || !ok {
		return
	}
	if err := store.RecordMetrics(id, values); err != nil {
		contract.LogWarn(fmt.Sprintf("Analysis tracking failed for run %d", id), err)
	}
	if err := store.EndAnalysis(id, time.Now(), len(values)); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
	contract.Logger.WithFields(logrus.Fields{"analysis_id": id, "rows": len(values)}).Debug("analysis run finished")
}

func analysisStoreOf(mgr contract.CacheManager) contract.AnalysisStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetAnalysisStore()
}
