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

var (
	rhythmMetricsHeader = []string{
		"repo", "granularity", "window_count", "health_file_commits",
		"mu", "sigma", "cv", "phi_c", "active_window_rate", "label",
	}
	windowCountsHeader = []string{"repo", "granularity", "window_start", "health_file_commits"}
	fileDetailsHeader  = []string{"repo", "commit_sha", "commit_date", "health_file"}
)

// rhythmSummary is the rhythm summary JSON. Per-window and per-file rows live in their own CSVs.
type rhythmSummary struct {
	*schema.RhythmResult
	summaryMeta
}

// PrintRhythmResults writes the rhythm artifacts and renders the metrics rows.
func PrintRhythmResults(res *schema.RhythmResult, cfg *contract.Config, duration time.Duration) error {
	return emit(rhythmOutput(res, cfg, cfg.PrefixFor(schema.RhythmEngine)), cfg, duration)
}

func rhythmOutput(res *schema.RhythmResult, cfg *contract.Config, prefix string) engineOutput {
	artifacts := []artifact{{
		key:   "metrics_csv",
		name:  prefix + "_rhythm_metrics.csv",
		write: csvTable(rhythmMetricsHeader, rhythmMetricsRows(res)),
	}}
	if cfg.WriteTimeseries {
		artifacts = append(artifacts, artifact{
			key:   "timeseries_csv",
			name:  prefix + "_window_counts.csv",
			write: csvTable(windowCountsHeader, windowCountRows(res)),
		})
	}
	if cfg.WriteFileDetails {
		artifacts = append(artifacts, artifact{
			key:   "file_details_csv",
			name:  prefix + "_file_details.csv",
			write: csvTable(fileDetailsHeader, fileDetailRows(res)),
		})
	}

	return engineOutput{
		engine:    schema.RhythmEngine,
		prefix:    prefix,
		repo:      res.Repo,
		artifacts: artifacts,
		summary: func(meta summaryMeta) any {
			trimmed := *res
			trimmed.Windows = nil
			trimmed.FileDetails = nil
			return rhythmSummary{RhythmResult: &trimmed, summaryMeta: meta}
		},
		csv: csvTable(rhythmMetricsHeader, rhythmMetricsRows(res)),
		table: func(w io.Writer) error {
			return writeRhythmTable(w, res)
		},
		metrics: res.MetricValues(),
	}
}

func rhythmMetricsRows(res *schema.RhythmResult) [][]string {
	rows := make([][]string, 0, len(res.Metrics))
	for _, m := range res.Metrics {
		rows = append(rows, []string{
			m.Repo,
			string(m.Granularity),
			strconv.Itoa(m.WindowCount),
			strconv.Itoa(m.HealthFileCommits),
			schema.FormatFloat(m.Mu),
			schema.FormatFloat(m.Sigma),
			schema.FormatOptionalFloat(m.CV),
			schema.FormatFloat(m.PhiC),
			schema.FormatFloat(m.ActiveWindowRate),
			string(m.Label),
		})
	}
	return rows
}

func windowCountRows(res *schema.RhythmResult) [][]string {
	rows := make([][]string, 0, len(res.Windows))
	for _, wc := range res.Windows {
		rows = append(rows, []string{
			res.Repo,
			string(wc.Granularity),
			wc.WindowStart.Format(schema.DateLayout),
			strconv.Itoa(wc.HealthFileCommits),
		})
	}
	return rows
}

func fileDetailRows(res *schema.RhythmResult) [][]string {
	rows := make([][]string, 0, len(res.FileDetails))
	for _, fd := range res.FileDetails {
		rows = append(rows, []string{
			res.Repo,
			fd.CommitSHA,
			fd.CommitDate.UTC().Format(time.RFC3339),
			fd.HealthFile,
		})
	}
	return rows
}

// writeRhythmTable generates and writes the human-readable table.
func writeRhythmTable(w io.Writer, res *schema.RhythmResult) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Granularity", "Windows", "Commits", "Mu", "Sigma", "CV", "Phi_c", "Active", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, m := range res.Metrics {
		cv := schema.FormatOptionalFloat(m.CV)
		if cv == "" {
			cv = "-"
		}
		data = append(data, []string{
			string(m.Granularity),
			strconv.Itoa(m.WindowCount),
			strconv.Itoa(m.HealthFileCommits),
			schema.FormatFloat(m.Mu),
			schema.FormatFloat(m.Sigma),
			cv,
			schema.FormatFloat(m.PhiC),
			schema.FormatFloat(m.ActiveWindowRate),
			contract.GetColorLabel(m.Label),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Rhythm of %s from %s to %s (%d health-file commits)\n",
		res.Repo, res.Since, res.Until, res.TotalHealthFileCommits)
	return err
}
