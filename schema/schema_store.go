package schema

import "time"

// AnalysisRunRecord represents a row from the docstability_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID      int64
	RunUUID         string
	Repo            string
	StartTime       time.Time
	EndTime         *time.Time
	RunDurationMs   *int32
	TotalMetricRows int32
	ConfigParams    *string
}

// MetricRecord represents a row from the docstability_metric_values table.
type MetricRecord struct {
	AnalysisID int64
	Engine     string
	Scope      string
	Metric     string
	Value      *float64
}

// MetricValue is a single named number produced by an engine.
// Scope qualifies the metric, e.g. a granularity or a commit category.
type MetricValue struct {
	Engine Engine
	Scope  string
	Metric string
	Value  *float64
}
