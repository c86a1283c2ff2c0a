package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elijahadejumo/DocStability/schema"
)

func contributorSnapshot() *schema.Snapshot {
	snap := newSnapshot()
	snap.TotalCommits = 10
	snap.BotCommits = 2
	snap.AllCommits = map[string]int{"ada@example.com": 5, "bob@example.com": 2, "cy@example.com": 1, "bot@renovateapp.com": 2}
	snap.HumanCommits = map[string]int{"ada@example.com": 5, "bob@example.com": 2, "cy@example.com": 1}
	snap.Bots = map[string]*schema.BotSighting{
		"bot@renovateapp.com": {
			Commits:  2,
			Patterns: map[string]struct{}{`renovate`: {}, `\bbot\b`: {}},
			Samples:  []string{"Renovate Bot <bot@renovateapp.com>"},
		},
	}
	return snap
}

func TestAnalyzeContributors_ExcludeBots(t *testing.T) {
	res := AnalyzeContributors(contributorSnapshot(), []int{10, 3, 3, 1}, true)

	assert.Equal(t, 10, res.TotalCommitsAll)
	assert.Equal(t, 2, res.BotCommitsClassified)
	assert.Equal(t, 1, res.UniqueBotContributorIDs)
	assert.Equal(t, 8, res.CommitsCountedForMetrics)
	assert.Equal(t, 3, res.UniqueContributorsForMetrics)

	// sorted, deduplicated k values
	require.Len(t, res.TopShares, 3)
	assert.Equal(t, 1, res.TopShares[0].K)
	assert.InDelta(t, 5.0/8.0, res.TopShares[0].Share, 1e-12)
	assert.Equal(t, 10, res.TopShares[2].K)
	assert.InDelta(t, 1.0, res.TopShares[2].Share, 1e-12)

	assert.Equal(t, "ada@example.com", res.Contributors[0].ContributorID)
	assert.Equal(t, 5, res.Contributors[0].Commits)
	assert.Greater(t, res.Gini, 0.0)

	require.Len(t, res.Bots, 1)
	assert.Equal(t, []string{`\bbot\b`, `renovate`}, res.Bots[0].MatchedPatterns)
	assert.Equal(t, 2, res.Bots[0].BotCommits)
}

func TestAnalyzeContributors_KeepBots(t *testing.T) {
	res := AnalyzeContributors(contributorSnapshot(), []int{3}, false)
	assert.Equal(t, 10, res.CommitsCountedForMetrics)
	assert.Equal(t, 4, res.UniqueContributorsForMetrics)
	assert.False(t, res.ExcludeBots)
	// bots are reported either way
	assert.Len(t, res.Bots, 1)
}

func TestAnalyzeContributors_TiesSortByID(t *testing.T) {
	snap := newSnapshot()
	snap.AllCommits = map[string]int{"b@x": 1, "a@x": 1, "c@x": 3}
	res := AnalyzeContributors(snap, nil, false)
	ids := []string{res.Contributors[0].ContributorID, res.Contributors[1].ContributorID, res.Contributors[2].ContributorID}
	assert.Equal(t, []string{"c@x", "a@x", "b@x"}, ids)
	assert.Empty(t, res.TopShares)
}

func TestAnalyzeContributors_Empty(t *testing.T) {
	res := AnalyzeContributors(newSnapshot(), []int{3, 5}, true)
	assert.Zero(t, res.CommitsCountedForMetrics)
	assert.Zero(t, res.Gini)
	for _, ts := range res.TopShares {
		assert.Zero(t, ts.Share)
	}
}
