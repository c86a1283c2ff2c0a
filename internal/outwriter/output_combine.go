package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/elijahadejumo/DocStability/internal/contract"
)

// CombineMarkers lists the artifact markers understood by CombineOutputs.
var CombineMarkers = []string{
	"rhythm_metric",
	"entropy_summary",
	"ownership_summary",
	"intention_summary",
	"contributors_summary",
}

// CombineResult describes one combined table.
type CombineResult struct {
	Projects int
	Rows     int
	Skipped  []string
}

// CombineOutputs concatenates the first CSV matching marker from every project
// directory under outputsDir into outFile, prefixed with a project_name column.
// The header comes from the first matching file. Each project keeps at most
// maxRows data rows, or all of them when maxRows <= 0.
func CombineOutputs(outputsDir, marker string, maxRows int, outFile string) (CombineResult, error) {
	var result CombineResult
	marker = strings.ToLower(strings.TrimSpace(marker))
	if marker == "" {
		return result, fmt.Errorf("%w: combine marker is empty", contract.ErrInvalidInput)
	}

	entries, err := os.ReadDir(outputsDir)
	if err != nil {
		return result, fmt.Errorf("failed to read outputs directory %s: %w", outputsDir, err)
	}

	var header []string
	var combined [][]string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		project := e.Name()
		path, err := findMarkedCSV(filepath.Join(outputsDir, project), marker)
		if err != nil {
			return result, err
		}
		if path == "" {
			result.Skipped = append(result.Skipped, project)
			continue
		}

		fileHeader, rows, err := readCSV(path)
		if err != nil {
			return result, err
		}
		if fileHeader == nil {
			contract.Logger.WithField("file", path).Warn("skipping empty CSV")
			result.Skipped = append(result.Skipped, project)
			continue
		}
		if header == nil {
			header = append([]string{"project_name"}, fileHeader...)
		}

		if maxRows > 0 && len(rows) > maxRows {
			rows = rows[:maxRows]
		}
		for _, r := range rows {
			combined = append(combined, append([]string{project}, fitRow(r, len(header)-1)...))
		}
		result.Projects++
	}

	if header == nil {
		return result, fmt.Errorf("no CSV matching %q found under %s", marker, outputsDir)
	}

	if dir := filepath.Dir(outFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return result, fmt.Errorf("failed to create directory for %s: %w", outFile, err)
		}
	}
	if err := writeAtomic(outFile, csvTable(header, combined)); err != nil {
		return result, err
	}

	result.Rows = len(combined)
	contract.Logger.WithFields(logrus.Fields{
		"marker":   marker,
		"projects": result.Projects,
		"rows":     result.Rows,
		"skipped":  len(result.Skipped),
	}).Info("combined outputs")
	return result, nil
}

// findMarkedCSV returns the first CSV under dir, in lexical walk order, whose
// lowercased name contains marker.
func findMarkedCSV(dir, marker string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if strings.HasSuffix(name, ".csv") && strings.Contains(name, marker) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return found, nil
}

// readCSV returns the header and data rows of a CSV file. Rows may be ragged.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return header, rows, nil
}

// fitRow pads a row with empty cells, or truncates it, to width.
func fitRow(row []string, width int) []string {
	if len(row) >= width {
		return row[:width]
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
