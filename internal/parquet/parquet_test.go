package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elijahadejumo/DocStability/schema"
)

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"analysis run", new(AnalysisRun), []string{"analysis_id", "run_uuid", "repo", "start_time", "end_time", "run_duration_ms", "total_metric_rows", "config_params"}},
		{"metric value", new(MetricValue), []string{"analysis_id", "engine", "scope", "metric", "value"}},
		{"engine metric", new(EngineMetric), []string{"repo", "engine", "scope", "metric", "value"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, colName := range tt.columns {
				_, ok := s.Lookup(colName)
				assert.True(t, ok, "Column %s should exist in schema", colName)
			}
		})
	}
}

func TestWriteAnalysisRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"engines":["rhythm"]}`

	data := []AnalysisRun{
		{AnalysisID: 1, RunUUID: "a", Repo: "demo", StartTime: start, EndTime: &end, RunDurationMs: &duration, TotalMetricRows: 12, ConfigParams: &params},
		{AnalysisID: 2, RunUUID: "b", Repo: "demo", StartTime: start.Add(time.Hour)},
	}
	require.NoError(t, WriteAnalysisRunsParquet(data, outputPath))

	rows, err := ReadRows[AnalysisRun](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].RunUUID)
	assert.WithinDuration(t, start, rows[0].StartTime, time.Millisecond)
	require.NotNil(t, rows[0].RunDurationMs)
	assert.Equal(t, int32(1500), *rows[0].RunDurationMs)
	assert.Nil(t, rows[1].EndTime)
	assert.Nil(t, rows[1].ConfigParams)
}

func TestWriteEngineParquet(t *testing.T) {
	dir := t.TempDir()
	values := []schema.MetricValue{
		{Engine: schema.EntropyEngine, Scope: "month", Metric: "entropy_norm", Value: schema.Float(0.5)},
		{Engine: schema.EntropyEngine, Scope: "month", Metric: "top1_month_share"},
	}

	path, err := WriteEngineParquet(dir, "demo", "demo-repo", schema.EntropyEngine, values)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "demo_entropy.parquet"), path)

	rows, err := ReadRows[EngineMetric](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "demo-repo", rows[0].Repo)
	require.NotNil(t, rows[0].Value)
	assert.InDelta(t, 0.5, *rows[0].Value, 1e-12)
	assert.Nil(t, rows[1].Value)

	// no temp files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteParquet_MissingDirectory(t *testing.T) {
	err := WriteMetricValuesParquet(nil, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}

func TestConvertRecords(t *testing.T) {
	duration := int32(10)
	runs := ConvertAnalysisRunRecords([]schema.AnalysisRunRecord{{AnalysisID: 3, RunUUID: "u", Repo: "r", RunDurationMs: &duration, TotalMetricRows: 4}})
	require.Len(t, runs, 1)
	assert.Equal(t, int64(3), runs[0].AnalysisID)
	assert.Equal(t, &duration, runs[0].RunDurationMs)
	assert.Equal(t, int32(4), runs[0].TotalMetricRows)

	metrics := ConvertMetricRecords([]schema.MetricRecord{{AnalysisID: 3, Engine: "rhythm", Scope: "month", Metric: "cv", Value: schema.Float(0.2)}})
	require.Len(t, metrics, 1)
	assert.Equal(t, "rhythm", metrics[0].Engine)
	assert.Equal(t, "cv", metrics[0].Metric)
}
