package iocache

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elijahadejumo/DocStability/schema"
)

func TestPrintCacheStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintCacheStatus(&buf, schema.CacheStatus{Backend: "sqlite", Connected: true, TotalEntries: 2, LastEntryTime: fixedStart, OldestEntryTime: fixedStart, TableSizeBytes: 4096})
	out := buf.String()
	assert.Contains(t, out, "Cache Backend: sqlite")
	assert.Contains(t, out, "Total Entries: 2")
	assert.Contains(t, out, "Table Size: 4096 bytes")

	buf.Reset()
	PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
	assert.NotContains(t, buf.String(), "Total Entries")
}

func TestPrintAnalysisStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintAnalysisStatus(&buf, schema.AnalysisStatus{
		Backend:          "sqlite",
		Connected:        true,
		TotalRuns:        1,
		LastRunID:        4,
		LastRunUUID:      "u-4",
		LastRunTime:      fixedStart,
		OldestRunTime:    fixedStart,
		TotalMetricsRows: 9,
		TableSizes:       map[string]int64{metricValuesTable: 9, analysisRunsTable: 1},
	})
	out := buf.String()
	assert.Contains(t, out, "Last Run ID: 4 (u-4)")
	assert.Contains(t, out, "Total Metric Rows: 9")
	// tables print in name order
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(analysisRunsTable)), bytes.Index(buf.Bytes(), []byte(metricValuesTable)))
}
