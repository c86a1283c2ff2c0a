package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elijahadejumo/DocStability/schema"
)

func TestAnalyzeIntention(t *testing.T) {
	snap := ownershipSnapshot()
	snap.BotCommits = 1
	res := AnalyzeIntention(snap)

	assert.True(t, res.BotsIncluded)
	assert.Equal(t, snap.TotalCommits, res.TotalCommitsInRange)
	assert.Equal(t, 5, res.TouchCommits)
	assert.Equal(t, 3, res.OnlyCommits)
	assert.Equal(t, 1, res.DominantCommits)
	assert.Equal(t, 1, res.NonDominantCommits)
	assert.Equal(t, res.TouchCommits, res.PartitionSum)

	require.NotNil(t, res.OnlyRate)
	assert.InDelta(t, 0.6, *res.OnlyRate, 1e-12)
	assert.InDelta(t, 0.2, *res.DominantRate, 1e-12)
	assert.InDelta(t, 0.2, *res.NonDominantRate, 1e-12)
}

func TestAnalyzeIntention_BotsDoNotChangeTouchCount(t *testing.T) {
	for _, includeBots := range []bool{false, true} {
		snap := ownershipSnapshot()
		snap.BotCommits = 1
		snap.IncludeBots = includeBots

		res := AnalyzeIntention(snap)
		assert.Equal(t, len(snap.Touching), res.TouchCommits)
		assert.Equal(t, categoryOf(t, AnalyzeOwnership(snap), schema.DocTouch).Commits, res.TouchCommits)
		assert.Equal(t, snap.TotalCommits, res.TotalCommitsInRange)
	}
}

func TestAnalyzeIntention_NoTouchLeavesRatesBlank(t *testing.T) {
	res := AnalyzeIntention(newSnapshot())
	assert.Zero(t, res.TouchCommits)
	assert.Nil(t, res.OnlyRate)
	assert.Nil(t, res.DominantRate)
	assert.Nil(t, res.NonDominantRate)
}
