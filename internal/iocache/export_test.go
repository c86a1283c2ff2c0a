package iocache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elijahadejumo/DocStability/internal/parquet"
	"github.com/elijahadejumo/DocStability/schema"
)

func TestExecuteAnalysisExport(t *testing.T) {
	store := &MockAnalysisStore{}
	store.On("GetStatus").Return(schema.AnalysisStatus{Backend: "sqlite", Connected: true, TotalRuns: 1, TableSizes: map[string]int64{metricValuesTable: 1}}, nil)
	store.On("GetAllAnalysisRuns").Return([]schema.AnalysisRunRecord{{AnalysisID: 1, RunUUID: "u", Repo: "demo", StartTime: fixedStart}}, nil)
	store.On("GetAllMetricRecords").Return([]schema.MetricRecord{{AnalysisID: 1, Engine: "entropy", Scope: "month", Metric: "entropy_norm", Value: schema.Float(0.4)}}, nil)

	out := filepath.Join(t.TempDir(), "export")
	var buf bytes.Buffer
	require.NoError(t, ExecuteAnalysisExport(&buf, store, out))

	assert.Contains(t, buf.String(), "Exported 1 analysis runs")
	_, err := os.Stat(out + ".analysis_runs.parquet")
	assert.NoError(t, err)

	rows, err := parquet.ReadRows[parquet.MetricValue](out + ".metric_values.parquet")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "entropy_norm", rows[0].Metric)
	store.AssertExpectations(t)
}

func TestExecuteAnalysisExport_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorContains(t, ExecuteAnalysisExport(&buf, &MockAnalysisStore{}, ""), "--output-file")
	assert.ErrorContains(t, ExecuteAnalysisExport(&buf, nil, "out"), "not configured")

	empty := &MockAnalysisStore{}
	empty.On("GetStatus").Return(schema.AnalysisStatus{Backend: "sqlite"}, nil)
	assert.ErrorContains(t, ExecuteAnalysisExport(&buf, empty, "out"), "no analysis data")

	failing := &MockAnalysisStore{}
	failing.On("GetStatus").Return(schema.AnalysisStatus{}, assert.AnError)
	assert.ErrorIs(t, ExecuteAnalysisExport(&buf, failing, "out"), assert.AnError)
}
