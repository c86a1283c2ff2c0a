package core

import (
	"time"

	"github.com/elijahadejumo/DocStability/core/algo"
	"github.com/elijahadejumo/DocStability/schema"
)

var entropyNotes = []string{
	"Health docs are matched with the same include and exclude tables as the rhythm report.",
	"entropy_norm is the Shannon entropy of the monthly distribution divided by ln(months), in [0,1].",
	"Lower entropy means activity is concentrated in fewer months.",
}

// BuildMonths returns the YYYY-MM keys of every month overlapping [since, until].
func BuildMonths(since, until time.Time) []string {
	windows := BuildWindows(since, until, schema.MonthGranularity)
	out := make([]string, len(windows))
	for i, w := range windows {
		out[i] = w.Format(schema.MonthLayout)
	}
	return out
}

// AnalyzeEntropy measures how evenly health-doc commits spread over calendar months.
func AnalyzeEntropy(snap *schema.Snapshot, withProbabilities bool) *schema.EntropyResult {
	months := BuildMonths(snap.Since, snap.Until)
	byMonth := make(map[string]int, len(months))
	res := &schema.EntropyResult{
		RepoRange:           schema.NewRepoRange(snap),
		Months:              len(months),
		IncludeMerges:       snap.IncludeMerges,
		TotalCommitsInRange: snap.TotalCommits,
		HealthFileCommits:   len(snap.Touching),
		Notes:               entropyNotes,
	}

	for _, c := range snap.Touching {
		byMonth[c.Commit.CommittedAt.UTC().Format(schema.MonthLayout)]++
		res.TouchSHAs = append(res.TouchSHAs, c.Commit.Hash)
	}

	counts := make([]int, len(months))
	for i, m := range months {
		counts[i] = byMonth[m]
		if counts[i] > 0 {
			res.ActiveMonths++
		}
	}
	total := algo.Sum(counts)

	for i, m := range months {
		mc := schema.MonthCount{Month: m, Count: counts[i]}
		if withProbabilities && total > 0 {
			mc.Probability = schema.Float(float64(counts[i]) / float64(total))
		}
		res.Distribution = append(res.Distribution, mc)
	}

	if len(months) > 0 {
		res.ActiveMonthRate = float64(res.ActiveMonths) / float64(len(months))
	}
	res.EntropyNorm = algo.NormalizedEntropy(counts)
	if total > 0 {
		res.Top1MonthShare = schema.Float(algo.TopKShare(counts, 1))
		res.Top3MonthShare = schema.Float(algo.TopKShare(counts, 3))
		res.Top6MonthShare = schema.Float(algo.TopKShare(counts, 6))
		res.GiniMonthConcentration = schema.Float(algo.Gini(counts))
	}
	return res
}
