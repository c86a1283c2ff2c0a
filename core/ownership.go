package core

import (
	"github.com/elijahadejumo/DocStability/core/algo"
	"github.com/elijahadejumo/DocStability/schema"
)

var ownershipNotes = []string{
	"Commit counts include all authors, bots included, and match the rhythm totals.",
	"Contributor counts, top-k shares and bus factors exclude bots unless --include-bots is set.",
	"Paths are normalized before matching; renames keep the destination path.",
	"Commits are dated by committer time and files come from --name-only.",
	"The partition check compares touch with only + dominant + non_dominant over all authors.",
}

// categoryCounts holds the two identity tallies of one category.
type categoryCounts struct {
	all  map[string]int // every author
	attr map[string]int // attribution set, bots dropped unless included
}

func newCategoryCounts() *categoryCounts {
	return &categoryCounts{all: make(map[string]int), attr: make(map[string]int)}
}

func (c *categoryCounts) add(id string, attributed bool) {
	c.all[id]++
	if attributed {
		c.attr[id]++
	}
}

// AnalyzeOwnership computes contributor concentration for every touching category.
func AnalyzeOwnership(snap *schema.Snapshot) *schema.OwnershipResult {
	tallies := make(map[schema.Category]*categoryCounts, len(schema.TouchCategories))
	for _, cat := range schema.TouchCategories {
		tallies[cat] = newCategoryCounts()
	}

	for _, c := range snap.Touching {
		attributed := snap.IncludeBots || !c.IsBot
		tallies[schema.DocTouch].add(c.Identity, attributed)
		if t, ok := tallies[c.Classification.Category]; ok {
			t.add(c.Identity, attributed)
		}
	}

	res := &schema.OwnershipResult{
		RepoRange:           schema.NewRepoRange(snap),
		DominantThreshold:   snap.DominantThreshold,
		BotsIncludedInAttr:  snap.IncludeBots,
		MergesIncluded:      snap.IncludeMerges,
		TotalCommitsInRange: snap.TotalCommits,
		Notes:               ownershipNotes,
	}
	for _, cat := range schema.TouchCategories {
		res.Categories = append(res.Categories, summarizeCategory(cat, tallies[cat]))
	}

	res.Partition = schema.PartitionCheck{
		Touch:       res.Categories[0].Commits,
		Only:        res.Categories[1].Commits,
		Dominant:    res.Categories[2].Commits,
		NonDominant: res.Categories[3].Commits,
	}
	return res
}

func summarizeCategory(cat schema.Category, t *categoryCounts) schema.CategoryOwnership {
	out := schema.CategoryOwnership{
		Category:     cat,
		Commits:      sumValues(t.all),
		Contributors: len(t.attr),
	}
	if out.Commits == 0 {
		return out
	}

	counts := mapValues(t.attr)
	out.Top1Share = schema.Float(algo.TopKShare(counts, 1))
	out.Top3Share = schema.Float(algo.TopKShare(counts, 3))
	out.Top5Share = schema.Float(algo.TopKShare(counts, 5))
	out.Top10Share = schema.Float(algo.TopKShare(counts, 10))
	out.Bus50 = schema.Int(algo.BusFactor(counts, 0.5))
	out.Bus80 = schema.Int(algo.BusFactor(counts, 0.8))
	return out
}

func mapValues(m map[string]int) []int {
	out := make([]int, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func sumValues(m map[string]int) int {
	return algo.Sum(mapValues(m))
}
