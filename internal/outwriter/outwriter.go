// Package outwriter renders engine results as tables, CSV, JSON and Parquet artifacts.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/internal/parquet"
	"github.com/elijahadejumo/DocStability/schema"
)

// analysisTypes tags each summary JSON with the analysis that produced it.
var analysisTypes = map[schema.Engine]string{
	schema.RhythmEngine:       "project_health_files",
	schema.OwnershipEngine:    "health_docs_ownership",
	schema.EntropyEngine:      "health_docs_entropy",
	schema.ContributorsEngine: "contributor_concentration",
	schema.IntentionEngine:    "health_docs_intention",
}

// artifact is one file written under the repository's artifact directory.
type artifact struct {
	key   string // entry in the summary's outputs map
	name  string // file name inside the artifact directory
	write func(io.Writer) error
}

// summaryMeta is appended to every summary JSON.
type summaryMeta struct {
	AnalysisType    string            `json:"analysis_type"`
	OutputDirectory string            `json:"output_directory,omitempty"`
	Outputs         map[string]string `json:"outputs,omitempty"`
}

// engineOutput is everything one engine can emit.
type engineOutput struct {
	engine    schema.Engine
	prefix    string
	repo      string
	artifacts []artifact
	summary   func(meta summaryMeta) any
	csv       func(io.Writer) error
	table     func(io.Writer) error
	metrics   []schema.MetricValue
}

// emit writes the artifacts of a single engine and renders it in the configured output mode.
func emit(out engineOutput, cfg *contract.Config, duration time.Duration) error {
	meta, err := writeArtifacts(out, cfg)
	if err != nil {
		return err
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, out.summary(meta))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, out.csv, "Wrote CSV")
	default:
		// Text and parquet modes both show the table; parquet files are artifacts.
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := out.table(w); err != nil {
				return err
			}
			return writeFooter(w, duration, meta)
		}, "Wrote table")
	}
}

// writeArtifacts stages every artifact of out, then moves them into place together.
// A failure before the final rename leaves nothing behind.
func writeArtifacts(out engineOutput, cfg *contract.Config) (summaryMeta, error) {
	meta := summaryMeta{AnalysisType: analysisTypes[out.engine]}
	if !cfg.WriteArtifacts {
		return meta, nil
	}

	dir := cfg.ArtifactDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return meta, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	meta.OutputDirectory = dir
	meta.Outputs = make(map[string]string, len(out.artifacts)+1)

	staged := make([]stagedFile, 0, len(out.artifacts)+1)
	for _, a := range out.artifacts {
		path := filepath.Join(dir, a.name)
		s, err := stageFile(path, a.write)
		if err != nil {
			discardStaged(staged)
			return meta, err
		}
		staged = append(staged, s)
		meta.Outputs[a.key] = path
	}

	if cfg.Output == schema.ParquetOut {
		path, err := parquet.WriteEngineParquet(dir, out.prefix, out.repo, out.engine, out.metrics)
		if err != nil {
			discardStaged(staged)
			return meta, fmt.Errorf("failed to write parquet output: %w", err)
		}
		meta.Outputs["parquet"] = path
	}

	summaryPath := filepath.Join(dir, out.prefix+"_summary.json")
	s, err := stageFile(summaryPath, func(w io.Writer) error {
		return writeJSON(w, out.summary(meta))
	})
	if err != nil {
		discardStaged(staged)
		return meta, err
	}
	staged = append(staged, s)

	if err := commitStaged(staged); err != nil {
		return meta, err
	}
	contract.Logger.WithFields(logrus.Fields{
		"engine": out.engine,
		"dir":    dir,
		"files":  len(meta.Outputs) + 1,
	}).Info("wrote artifacts")
	return meta, nil
}

// writeFooter prints the timing line under a table.
func writeFooter(w io.Writer, duration time.Duration, metas ...summaryMeta) error {
	for _, m := range metas {
		if m.OutputDirectory == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "Artifacts (%s) written to %s\n", m.AnalysisType, m.OutputDirectory); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Analysis completed in %v\n", duration)
	return err
}
