// Package parquet exports docstability metrics and tracked runs to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/elijahadejumo/DocStability/schema"
)

// AnalysisRun maps to the docstability_analysis_runs table.
type AnalysisRun struct {
	AnalysisID int64  `parquet:"analysis_id,snappy"`
	RunUUID    string `parquet:"run_uuid,snappy"`
	Repo       string `parquet:"repo,snappy"`

	// StartTime is when the analysis began (TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime stays null for runs that never finished
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`

	TotalMetricRows int32 `parquet:"total_metric_rows,snappy"`

	// ConfigParams is the JSON-encoded configuration of the run
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// MetricValue maps to the docstability_metric_values table.
type MetricValue struct {
	AnalysisID int64    `parquet:"analysis_id,snappy"`
	Engine     string   `parquet:"engine,dict,snappy"`
	Scope      string   `parquet:"scope,dict,snappy"`
	Metric     string   `parquet:"metric,dict,snappy"`
	Value      *float64 `parquet:"value,optional,snappy"`
}

// EngineMetric is one row of a per-engine Parquet artifact.
type EngineMetric struct {
	Repo   string   `parquet:"repo,dict,snappy"`
	Engine string   `parquet:"engine,dict,snappy"`
	Scope  string   `parquet:"scope,dict,snappy"`
	Metric string   `parquet:"metric,snappy"`
	Value  *float64 `parquet:"value,optional,snappy"`
}

// writeParquet writes rows to outputPath through a temp file in the same directory,
// so a failed write never leaves a partial file behind.
func writeParquet[T any](rows []T, outputPath string) error {
	tmp, err := os.CreateTemp(filepath.Dir(outputPath), filepath.Base(outputPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](tmp)
	if _, err := writer.Write(rows); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close parquet file: %w", err)
	}
	return os.Rename(tmpPath, outputPath)
}

// WriteAnalysisRunsParquet writes tracked runs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteMetricValuesParquet writes stored metric values to a Parquet file.
func WriteMetricValuesParquet(data []MetricValue, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteEngineParquet writes one engine's metric values as <dir>/<prefix>_<engine>.parquet
// and returns the path.
func WriteEngineParquet(dir, prefix, repo string, engine schema.Engine, values []schema.MetricValue) (string, error) {
	rows := make([]EngineMetric, 0, len(values))
	for _, v := range values {
		rows = append(rows, EngineMetric{
			Repo:   repo,
			Engine: string(v.Engine),
			Scope:  v.Scope,
			Metric: v.Metric,
			Value:  v.Value,
		})
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.parquet", prefix, engine))
	if err := writeParquet(rows, path); err != nil {
		return "", err
	}
	return path, nil
}

// ReadRows reads every row of a Parquet file into T.
func ReadRows[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file %s: %w", path, err)
	}
	return rows, nil
}

// ConvertAnalysisRunRecords converts store records to Parquet rows.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, r := range records {
		result[i] = AnalysisRun{
			AnalysisID:      r.AnalysisID,
			RunUUID:         r.RunUUID,
			Repo:            r.Repo,
			StartTime:       r.StartTime,
			EndTime:         r.EndTime,
			RunDurationMs:   r.RunDurationMs,
			TotalMetricRows: r.TotalMetricRows,
			ConfigParams:    r.ConfigParams,
		}
	}
	return result
}

// ConvertMetricRecords converts store records to Parquet rows.
func ConvertMetricRecords(records []schema.MetricRecord) []MetricValue {
	result := make([]MetricValue, len(records))
	for i, r := range records {
		result[i] = MetricValue(r)
	}
	return result
}
