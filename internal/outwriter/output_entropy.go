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

var entropySummaryHeader = []string{
	"repo", "since", "until", "months", "include_merges",
	"total_commits_in_range", "health_file_commits", "active_months", "active_month_rate",
	"entropy_norm", "top1_month_share", "top3_month_share", "top6_month_share",
	"gini_month_concentration",
}

type entropySummary struct {
	*schema.EntropyResult
	summaryMeta
}

// PrintEntropyResults writes the entropy artifacts and renders the summary.
func PrintEntropyResults(res *schema.EntropyResult, cfg *contract.Config, duration time.Duration) error {
	return emit(entropyOutput(res, cfg, cfg.PrefixFor(schema.EntropyEngine)), cfg, duration)
}

func entropyOutput(res *schema.EntropyResult, cfg *contract.Config, prefix string) engineOutput {
	summaryRows := [][]string{entropySummaryRow(res)}
	distHeader, distRows := monthlyDistribution(res, cfg.WriteProbabilities)

	artifacts := []artifact{
		{
			key:   "monthly_distribution_csv",
			name:  prefix + "_monthly_distribution.csv",
			write: csvTable(distHeader, distRows),
		},
		{
			key:   "entropy_summary_csv",
			name:  prefix + "_entropy_summary.csv",
			write: csvTable(entropySummaryHeader, summaryRows),
		},
	}
	if cfg.WriteSHAList {
		artifacts = append(artifacts, artifact{
			key:   "sha_list",
			name:  prefix + "_health_docs_touch_shas.txt",
			write: func(w io.Writer) error { return writeLines(w, res.TouchSHAs) },
		})
	}

	return engineOutput{
		engine:    schema.EntropyEngine,
		prefix:    prefix,
		repo:      res.Repo,
		artifacts: artifacts,
		summary: func(meta summaryMeta) any {
			trimmed := *res
			trimmed.TouchSHAs = nil
			return entropySummary{EntropyResult: &trimmed, summaryMeta: meta}
		},
		csv: csvTable(entropySummaryHeader, summaryRows),
		table: func(w io.Writer) error {
			return writeEntropyTable(w, res)
		},
		metrics: res.MetricValues(),
	}
}

func entropySummaryRow(res *schema.EntropyResult) []string {
	return []string{
		res.Repo,
		res.Since,
		res.Until,
		strconv.Itoa(res.Months),
		schema.YesNo(res.IncludeMerges),
		strconv.Itoa(res.TotalCommitsInRange),
		strconv.Itoa(res.HealthFileCommits),
		strconv.Itoa(res.ActiveMonths),
		schema.FormatFloat(res.ActiveMonthRate),
		schema.FormatOptionalFloat(res.EntropyNorm),
		schema.FormatOptionalFloat(res.Top1MonthShare),
		schema.FormatOptionalFloat(res.Top3MonthShare),
		schema.FormatOptionalFloat(res.Top6MonthShare),
		schema.FormatOptionalFloat(res.GiniMonthConcentration),
	}
}

// monthlyDistribution returns one row per month key. p_month is added on request
// and is blank when no month has any activity.
func monthlyDistribution(res *schema.EntropyResult, withProbabilities bool) ([]string, [][]string) {
	header := []string{"repo", "month", "health_file_commit_count"}
	if withProbabilities {
		header = append(header, "p_month")
	}
	rows := make([][]string, 0, len(res.Distribution))
	for _, mc := range res.Distribution {
		row := []string{res.Repo, mc.Month, strconv.Itoa(mc.Count)}
		if withProbabilities {
			row = append(row, schema.FormatOptionalFloat(mc.Probability))
		}
		rows = append(rows, row)
	}
	return header, rows
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// writeEntropyTable generates and writes the human-readable table.
func writeEntropyTable(w io.Writer, res *schema.EntropyResult) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	opt := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return schema.FormatFloat(*v)
	}
	data := [][]string{
		{"Months", strconv.Itoa(res.Months)},
		{"Commits in range", strconv.Itoa(res.TotalCommitsInRange)},
		{"Health-file commits", strconv.Itoa(res.HealthFileCommits)},
		{"Active months", strconv.Itoa(res.ActiveMonths)},
		{"Active month rate", schema.FormatFloat(res.ActiveMonthRate)},
		{"Entropy (normalized)", opt(res.EntropyNorm)},
		{"Top-1 month share", opt(res.Top1MonthShare)},
		{"Top-3 month share", opt(res.Top3MonthShare)},
		{"Top-6 month share", opt(res.Top6MonthShare)},
		{"Gini (months)", opt(res.GiniMonthConcentration)},
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Monthly spread of %s from %s to %s (merges included: %s)\n",
		res.Repo, res.Since, res.Until, schema.YesNo(res.IncludeMerges))
	return err
}
