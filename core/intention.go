package core

import (
	"github.com/elijahadejumo/DocStability/schema"
)

var intentionNotes = []string{
	"Counts cover commits in [since, until] by committer date.",
	"Health docs must match an include pattern and no exclude pattern.",
	"Bot commits are counted; bot detection only affects attribution.",
	"Dominant mixed commits use the file-count share health_files / total_files.",
	"The partition sum must equal health_docs_touch_commits.",
}

// AnalyzeIntention summarizes how health-doc commits split between focused and mixed work.
// Every touching commit counts, bots included, so the touch count matches the other engines.
func AnalyzeIntention(snap *schema.Snapshot) *schema.IntentionResult {
	res := &schema.IntentionResult{
		RepoRange:           schema.NewRepoRange(snap),
		DominantThreshold:   snap.DominantThreshold,
		BotsIncluded:        true,
		TotalCommitsInRange: snap.TotalCommits,
		TouchCommits:        len(snap.Touching),
		Notes:               intentionNotes,
	}

	for _, c := range snap.Touching {
		switch c.Classification.Category {
		case schema.DocOnly:
			res.OnlyCommits++
		case schema.DocDominant:
			res.DominantCommits++
		case schema.DocNonDominant:
			res.NonDominantCommits++
		}
	}

	res.PartitionSum = res.OnlyCommits + res.DominantCommits + res.NonDominantCommits
	res.OnlyRate = rate(res.OnlyCommits, res.TouchCommits)
	res.DominantRate = rate(res.DominantCommits, res.TouchCommits)
	res.NonDominantRate = rate(res.NonDominantCommits, res.TouchCommits)
	return res
}

func rate(num, den int) *float64 {
	if den <= 0 {
		return nil
	}
	return schema.Float(float64(num) / float64(den))
}
