package outwriter

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

var (
	contributorDetailsHeader = []string{"repo", "contributor_id", "commits"}
	botReportHeader          = []string{"repo", "contributor_id", "bot_commits", "matched_patterns", "samples"}
)

// contributorTableRows caps the identities shown in the text table.
const contributorTableRows = 10

type contributorsSummary struct {
	*schema.ContributorsResult
	summaryMeta
}

// PrintContributorsResults writes the contributor concentration artifacts and renders the top identities.
func PrintContributorsResults(res *schema.ContributorsResult, cfg *contract.Config, duration time.Duration) error {
	return emit(contributorsOutput(res, cfg, cfg.PrefixFor(schema.ContributorsEngine)), cfg, duration)
}

func contributorsOutput(res *schema.ContributorsResult, cfg *contract.Config, prefix string) engineOutput {
	header, row := contributorsSummaryRow(res)
	rows := [][]string{row}

	artifacts := []artifact{{
		key:   "summary_csv",
		name:  prefix + "_summary.csv",
		write: csvTable(header, rows),
	}}
	if cfg.WriteDetails {
		artifacts = append(artifacts, artifact{
			key:   "contributors_csv",
			name:  prefix + "_contributors.csv",
			write: csvTable(contributorDetailsHeader, contributorDetailRows(res)),
		})
	}
	if cfg.WriteBots {
		artifacts = append(artifacts, artifact{
			key:   "bots_csv",
			name:  prefix + "_bots.csv",
			write: csvTable(botReportHeader, botReportRows(res)),
		})
	}

	return engineOutput{
		engine:    schema.ContributorsEngine,
		prefix:    prefix,
		repo:      res.Repo,
		artifacts: artifacts,
		summary: func(meta summaryMeta) any {
			trimmed := *res
			trimmed.Contributors = nil
			trimmed.Bots = nil
			return contributorsSummary{ContributorsResult: &trimmed, summaryMeta: meta}
		},
		csv: csvTable(header, rows),
		table: func(w io.Writer) error {
			return writeContributorsTable(w, res, cfg)
		},
		metrics: res.MetricValues(),
	}
}

// contributorsSummaryRow renders the summary with one top{k}_share column per requested k.
func contributorsSummaryRow(res *schema.ContributorsResult) ([]string, []string) {
	header := []string{
		"repo", "since", "until",
		"total_commits_all", "bot_commits_classified", "unique_bot_contributor_ids",
		"commits_counted_for_metrics", "unique_contributors_for_metrics", "gini",
	}
	row := []string{
		res.Repo,
		res.Since,
		res.Until,
		strconv.Itoa(res.TotalCommitsAll),
		strconv.Itoa(res.BotCommitsClassified),
		strconv.Itoa(res.UniqueBotContributorIDs),
		strconv.Itoa(res.CommitsCountedForMetrics),
		strconv.Itoa(res.UniqueContributorsForMetrics),
		schema.FormatFloat(res.Gini),
	}
	for _, ts := range res.TopShares {
		header = append(header, "top"+strconv.Itoa(ts.K)+"_share")
		row = append(row, schema.FormatFloat(ts.Share))
	}
	return header, row
}

func contributorDetailRows(res *schema.ContributorsResult) [][]string {
	rows := make([][]string, 0, len(res.Contributors))
	for _, c := range res.Contributors {
		rows = append(rows, []string{res.Repo, c.ContributorID, strconv.Itoa(c.Commits)})
	}
	return rows
}

func botReportRows(res *schema.ContributorsResult) [][]string {
	rows := make([][]string, 0, len(res.Bots))
	for _, b := range res.Bots {
		patterns := slices.Sorted(slices.Values(b.MatchedPatterns))
		rows = append(rows, []string{
			res.Repo,
			b.ContributorID,
			strconv.Itoa(b.BotCommits),
			strings.Join(patterns, ";"),
			strings.Join(b.Samples, " | "),
		})
	}
	return rows
}

// writeContributorsTable generates and writes the human-readable table.
func writeContributorsTable(w io.Writer, res *schema.ContributorsResult, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Contributor", "Commits", "Share"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTablePathWidth(cfg, 30)
	var data [][]string
	for i, c := range res.Contributors {
		if i == contributorTableRows {
			break
		}
		share := 0.0
		if res.CommitsCountedForMetrics > 0 {
			share = float64(c.Commits) / float64(res.CommitsCountedForMetrics)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(c.ContributorID, maxWidth),
			strconv.Itoa(c.Commits),
			schema.FormatFloat(share),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	shares := make([]string, 0, len(res.TopShares))
	for _, ts := range res.TopShares {
		shares = append(shares, fmt.Sprintf("top%d=%s", ts.K, schema.FormatFloat(ts.Share)))
	}
	_, err := fmt.Fprintf(w, "Gini %s over %d contributors (%d commits, %d bot commits from %d bot ids). %s\n",
		schema.FormatFloat(res.Gini), res.UniqueContributorsForMetrics, res.CommitsCountedForMetrics,
		res.BotCommitsClassified, res.UniqueBotContributorIDs, strings.Join(shares, " "))
	return err
}
