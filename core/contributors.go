package core

import (
	"cmp"
	"slices"

	"github.com/elijahadejumo/DocStability/core/algo"
	"github.com/elijahadejumo/DocStability/schema"
)

// AnalyzeContributors computes repo-wide commit concentration over every commit in range.
// Bots are always reported, and are left out of the metrics when excludeBots is set.
func AnalyzeContributors(snap *schema.Snapshot, topK []int, excludeBots bool) *schema.ContributorsResult {
	source := snap.AllCommits
	if excludeBots {
		source = snap.HumanCommits
	}

	contributors := sortedCounts(source)
	counts := make([]int, len(contributors))
	for i, c := range contributors {
		counts[i] = c.Commits
	}

	res := &schema.ContributorsResult{
		RepoRange:                    schema.NewRepoRange(snap),
		ExcludeBots:                  excludeBots,
		TotalCommitsAll:              snap.TotalCommits,
		BotCommitsClassified:         snap.BotCommits,
		UniqueBotContributorIDs:      len(snap.Bots),
		CommitsCountedForMetrics:     algo.Sum(counts),
		UniqueContributorsForMetrics: len(contributors),
		Gini:                         algo.Gini(counts),
		Contributors:                 contributors,
		Bots:                         botReport(snap.Bots),
	}

	ks := slices.Clone(topK)
	slices.Sort(ks)
	for _, k := range slices.Compact(ks) {
		res.TopShares = append(res.TopShares, schema.TopShare{K: k, Share: algo.TopKShare(counts, k)})
	}
	return res
}

// sortedCounts orders identities by commit count, largest first, then by id.
func sortedCounts(m map[string]int) []schema.ContributorCount {
	out := make([]schema.ContributorCount, 0, len(m))
	for id, n := range m {
		out = append(out, schema.ContributorCount{ContributorID: id, Commits: n})
	}
	slices.SortFunc(out, func(a, b schema.ContributorCount) int {
		if c := cmp.Compare(b.Commits, a.Commits); c != 0 {
			return c
		}
		return cmp.Compare(a.ContributorID, b.ContributorID)
	})
	return out
}

func botReport(bots map[string]*schema.BotSighting) []schema.BotContributor {
	out := make([]schema.BotContributor, 0, len(bots))
	for id, s := range bots {
		patterns := make([]string, 0, len(s.Patterns))
		for p := range s.Patterns {
			patterns = append(patterns, p)
		}
		slices.Sort(patterns)
		out = append(out, schema.BotContributor{
			ContributorID:   id,
			BotCommits:      s.Commits,
			MatchedPatterns: patterns,
			Samples:         slices.Clone(s.Samples),
		})
	}
	slices.SortFunc(out, func(a, b schema.BotContributor) int {
		if c := cmp.Compare(b.BotCommits, a.BotCommits); c != 0 {
			return c
		}
		return cmp.Compare(a.ContributorID, b.ContributorID)
	})
	return out
}
