package agg

import (
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/elijahadejumo/DocStability/core/classify"
	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

// BuildSnapshot classifies every commit once and fills the shared count tables.
// Commits whose committer date falls outside [since, until] are dropped so that
// every engine sees the same commit set.
func BuildSnapshot(cfg *contract.Config, commits []schema.CommitRecord, stats schema.ParseStats, rules *classify.Rules, bots *classify.BotDetector) *schema.Snapshot {
	snap := &schema.Snapshot{
		Repo:              cfg.RepoName,
		RepoPath:          cfg.RepoPath,
		Since:             cfg.Since,
		Until:             cfg.Until,
		IncludeMerges:     cfg.IncludeMerges,
		IncludeBots:       cfg.IncludeBots,
		DominantThreshold: cfg.DominantThreshold,
		ParseStats:        stats,
		AllCommits:        make(map[string]int),
		HumanCommits:      make(map[string]int),
		Bots:              make(map[string]*schema.BotSighting),
	}

	rangeEnd := cfg.Until.Add(24 * time.Hour)
	outside := 0

	for _, c := range commits {
		if c.CommittedAt.Before(cfg.Since) || !c.CommittedAt.Before(rangeEnd) {
			outside++
			continue
		}
		if c.IsMerge && !cfg.IncludeMerges {
			continue
		}
		snap.TotalCommits++

		id := classify.ResolveIdentity(c.AuthorName, c.AuthorEmail)
		isBot := bots.LooksLikeBot(c.AuthorName, c.AuthorEmail)
		snap.AllCommits[id]++
		if isBot {
			snap.BotCommits++
			recordBot(snap, bots, id, c, cfg.BotSamples)
		} else {
			snap.HumanCommits[id]++
		}

		cls := rules.ClassifyCommit(c.Files, cfg.DominantThreshold)
		if !cls.Touches() {
			continue
		}
		snap.Touching = append(snap.Touching, schema.ClassifiedCommit{
			Commit:         c,
			Classification: cls,
			Identity:       id,
			IsBot:          isBot,
		})
	}

	contract.Logger.WithFields(logrus.Fields{
		"repo":           snap.Repo,
		"commits":        snap.TotalCommits,
		"touching":       len(snap.Touching),
		"bot_commits":    snap.BotCommits,
		"malformed":      stats.Malformed,
		"outside_window": outside,
	}).Debug("built commit snapshot")

	return snap
}

func recordBot(snap *schema.Snapshot, bots *classify.BotDetector, id string, c schema.CommitRecord, maxSamples int) {
	s, ok := snap.Bots[id]
	if !ok {
		s = &schema.BotSighting{Patterns: make(map[string]struct{})}
		snap.Bots[id] = s
	}
	s.Commits++
	for _, p := range bots.MatchedPatterns(c.AuthorName, c.AuthorEmail) {
		s.Patterns[p] = struct{}{}
	}
	sample := classify.BotSample(c.AuthorName, c.AuthorEmail)
	if len(s.Samples) < maxSamples && !slices.Contains(s.Samples, sample) {
		s.Samples = append(s.Samples, sample)
	}
}
