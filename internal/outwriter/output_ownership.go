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

var ownershipStatSuffixes = []string{
	"_commits", "_contributors",
	"_top1_share", "_top3_share", "_top5_share", "_top10_share",
	"_bus50", "_bus80",
}

type ownershipSummary struct {
	*schema.OwnershipResult
	summaryMeta
}

// PrintOwnershipResults writes the ownership summary and renders one row per category.
func PrintOwnershipResults(res *schema.OwnershipResult, cfg *contract.Config, duration time.Duration) error {
	return emit(ownershipOutput(res, cfg.PrefixFor(schema.OwnershipEngine)), cfg, duration)
}

func ownershipOutput(res *schema.OwnershipResult, prefix string) engineOutput {
	header := ownershipHeader()
	rows := [][]string{ownershipRow(res)}
	return engineOutput{
		engine: schema.OwnershipEngine,
		prefix: prefix,
		repo:   res.Repo,
		artifacts: []artifact{{
			key:   "summary_csv",
			name:  prefix + "_health_docs_ownership_summary.csv",
			write: csvTable(header, rows),
		}},
		summary: func(meta summaryMeta) any {
			return ownershipSummary{OwnershipResult: res, summaryMeta: meta}
		},
		csv: csvTable(header, rows),
		table: func(w io.Writer) error {
			return writeOwnershipTable(w, res)
		},
		metrics: res.MetricValues(),
	}
}

// ownershipHeader returns the summary columns: run parameters, eight statistics
// per touching category, then the partition check.
func ownershipHeader() []string {
	header := []string{
		"repo", "since", "until", "dominant_threshold",
		"bots_included_in_attr", "merges_included", "total_commits_in_range",
	}
	for _, c := range schema.TouchCategories {
		for _, suffix := range ownershipStatSuffixes {
			header = append(header, "health_docs_"+string(c)+suffix)
		}
	}
	return append(header,
		"health_docs_partition_check",
		"health_docs_partition_touch",
		"health_docs_partition_sum_parts",
	)
}

func ownershipRow(res *schema.OwnershipResult) []string {
	row := []string{
		res.Repo,
		res.Since,
		res.Until,
		strconv.FormatFloat(res.DominantThreshold, 'f', 3, 64),
		schema.YesNo(res.BotsIncludedInAttr),
		schema.YesNo(res.MergesIncluded),
		strconv.Itoa(res.TotalCommitsInRange),
	}
	for _, c := range schema.TouchCategories {
		row = append(row, categoryCells(findCategory(res, c))...)
	}
	return append(row,
		strconv.FormatBool(res.Partition.Holds()),
		strconv.Itoa(res.Partition.Touch),
		strconv.Itoa(res.Partition.SumParts()),
	)
}

func findCategory(res *schema.OwnershipResult, c schema.Category) schema.CategoryOwnership {
	for _, co := range res.Categories {
		if co.Category == c {
			return co
		}
	}
	return schema.CategoryOwnership{Category: c}
}

func categoryCells(c schema.CategoryOwnership) []string {
	return []string{
		strconv.Itoa(c.Commits),
		strconv.Itoa(c.Contributors),
		schema.FormatOptionalFloat(c.Top1Share),
		schema.FormatOptionalFloat(c.Top3Share),
		schema.FormatOptionalFloat(c.Top5Share),
		schema.FormatOptionalFloat(c.Top10Share),
		schema.FormatOptionalInt(c.Bus50),
		schema.FormatOptionalInt(c.Bus80),
	}
}

// writeOwnershipTable generates and writes the human-readable table.
func writeOwnershipTable(w io.Writer, res *schema.OwnershipResult) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Category", "Commits", "Contrib", "Top1", "Top3", "Top5", "Top10", "Bus50", "Bus80"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range schema.TouchCategories {
		cells := categoryCells(findCategory(res, c))
		for i, v := range cells {
			if v == "" {
				cells[i] = "-"
			}
		}
		data = append(data, append([]string{string(c)}, cells...))
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	check := "holds"
	if !res.Partition.Holds() {
		check = "FAILS"
	}
	_, err := fmt.Fprintf(w, "Partition check %s: touch=%d only+dominant+non_dominant=%d (threshold %.3f, %d commits in range)\n",
		check, res.Partition.Touch, res.Partition.SumParts(), res.DominantThreshold, res.TotalCommitsInRange)
	return err
}
