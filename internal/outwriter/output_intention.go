package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

var intentionHeader = []string{
	"repo", "since", "until", "dominant_threshold", "bots_included",
	"total_commits_in_range", "health_docs_touch_commits",
	"health_docs_only_commits", "health_docs_dominant_mixed_commits", "health_docs_mixed_non_dominant_commits",
	"health_docs_only_rate", "health_docs_dominant_mixed_rate", "health_docs_mixed_non_dominant_rate",
	"health_docs_partition_check_sum",
}

type intentionSummary struct {
	*schema.IntentionResult
	summaryMeta
}

// PrintIntentionResults writes the intention summary and renders the category split.
func PrintIntentionResults(res *schema.IntentionResult, cfg *contract.Config, duration time.Duration) error {
	return emit(intentionOutput(res, cfg.PrefixFor(schema.IntentionEngine)), cfg, duration)
}

func intentionOutput(res *schema.IntentionResult, prefix string) engineOutput {
	rows := [][]string{intentionRow(res)}
	return engineOutput{
		engine: schema.IntentionEngine,
		prefix: prefix,
		repo:   res.Repo,
		artifacts: []artifact{{
			key:   "summary_csv",
			name:  prefix + "_health_docs_intention_summary.csv",
			write: csvTable(intentionHeader, rows),
		}},
		summary: func(meta summaryMeta) any {
			return intentionSummary{IntentionResult: res, summaryMeta: meta}
		},
		csv: csvTable(intentionHeader, rows),
		table: func(w io.Writer) error {
			return writeIntentionTable(w, res)
		},
		metrics: res.MetricValues(),
	}
}

func intentionRow(res *schema.IntentionResult) []string {
	return []string{
		res.Repo,
		res.Since,
		res.Until,
		strconv.FormatFloat(res.DominantThreshold, 'f', 3, 64),
		schema.YesNo(res.BotsIncluded),
		strconv.Itoa(res.TotalCommitsInRange),
		strconv.Itoa(res.TouchCommits),
		strconv.Itoa(res.OnlyCommits),
		strconv.Itoa(res.DominantCommits),
		strconv.Itoa(res.NonDominantCommits),
		schema.FormatOptionalFloat(res.OnlyRate),
		schema.FormatOptionalFloat(res.DominantRate),
		schema.FormatOptionalFloat(res.NonDominantRate),
		strconv.Itoa(res.PartitionSum),
	}
}

// writeIntentionTable generates and writes the human-readable table.
func writeIntentionTable(w io.Writer, res *schema.IntentionResult) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Commits", "Rate"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	rateCell := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return schema.FormatFloat(*v)
	}
	data := [][]string{
		{string(schema.DocOnly), strconv.Itoa(res.OnlyCommits), rateCell(res.OnlyRate)},
		{string(schema.DocDominant), strconv.Itoa(res.DominantCommits), rateCell(res.DominantRate)},
		{string(schema.DocNonDominant), strconv.Itoa(res.NonDominantCommits), rateCell(res.NonDominantRate)},
		{string(schema.DocTouch), strconv.Itoa(res.TouchCommits), "-"},
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d commits touch health docs (bots included: %s)\n",
		res.TouchCommits, res.TotalCommitsInRange, schema.YesNo(res.BotsIncluded))
	return err
}
