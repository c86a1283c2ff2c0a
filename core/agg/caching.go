package agg

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

// currentCacheVersion defines the version of the cached commit log schema
const currentCacheVersion = 1

// cacheTTL is how long a cached commit log stays valid.
const cacheTTL = 7 * 24 * time.Hour

// cachedLog is the value stored for one commit log.
type cachedLog struct {
	Commits []schema.CommitRecord `json:"commits"`
	Stats   schema.ParseStats     `json:"stats"`
}

// LoadCommits returns the parsed commit log for cfg, going through the activity
// store when one is configured.
func LoadCommits(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]schema.CommitRecord, schema.ParseStats, error) {
	var activity contract.CacheStore
	if mgr != nil {
		activity = mgr.GetActivityStore()
	}
	if activity == nil {
		// Fallback to direct computation
		return fetchCommits(ctx, cfg, client)
	}

	key := generateCacheKey(ctx, cfg, client)

	if result := checkCacheHit(activity, key); result != nil {
		contract.Logger.WithField("repo", cfg.RepoName).Debug("commit log cache hit")
		return result.Commits, result.Stats, nil
	}
	return computeAndStore(ctx, cfg, client, activity, key)
}

func fetchCommits(ctx context.Context, cfg *contract.Config, client contract.GitClient) ([]schema.CommitRecord, schema.ParseStats, error) {
	out, err := client.GetCommitLog(ctx, cfg.RepoPath, cfg.Since, cfg.Until, cfg.IncludeMerges)
	if err != nil {
		return nil, schema.ParseStats{}, err
	}
	commits, stats := ParseCommitLog(out, contract.Logger.WithField("repo", cfg.RepoName))
	return commits, stats, nil
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(activity contract.CacheStore, key string) *cachedLog {
	data, version, ts, err := activity.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion && time.Since(time.Unix(ts, 0)) <= cacheTTL {
		var result cachedLog
		if err := json.Unmarshal(data, &result); err == nil {
			return &result
		}
	}
	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, client contract.GitClient, activity contract.CacheStore, key string) ([]schema.CommitRecord, schema.ParseStats, error) {
	commits, stats, err := fetchCommits(ctx, cfg, client)
	if err != nil {
		return nil, stats, err
	}

	if data, err := json.Marshal(cachedLog{Commits: commits, Stats: stats}); err == nil {
		if err := activity.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.Logger.WithError(err).Warn("could not store commit log in cache")
		}
	}
	return commits, stats, nil
}

// generateCacheKey creates a unique key based on the log parameters
func generateCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient) string {
	// Include repo hash to invalidate cache when repository state changes
	repoHash, err := client.GetRepoHash(ctx, cfg.RepoPath)
	if err != nil {
		repoHash = ""
	}

	key := fmt.Sprintf("%s:%s:%s:%t:%s",
		cfg.RepoPath,
		cfg.Since.Format(schema.DateLayout),
		cfg.Until.Format(schema.DateLayout),
		cfg.IncludeMerges,
		repoHash,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
