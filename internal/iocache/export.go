package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/internal/parquet"
)

// ExecuteAnalysisExport exports tracked runs and metric values from store to two
// Parquet files named after outputFile.
func ExecuteAnalysisExport(w io.Writer, store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis tracking is not configured")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total analysis runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total metric records: %d\n", status.TableSizes[metricValuesTable])

	runs, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	metrics, err := store.GetAllMetricRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve metric values: %w", err)
	}

	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquet.ConvertAnalysisRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d analysis runs to: %s\n", len(runs), runsFile)

	metricsFile := outputFile + ".metric_values.parquet"
	if err := parquet.WriteMetricValuesParquet(parquet.ConvertMetricRecords(metrics), metricsFile); err != nil {
		return fmt.Errorf("failed to write metric values: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d metric values to: %s\n", len(metrics), metricsFile)

	return nil
}
