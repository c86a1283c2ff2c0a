package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/elijahadejumo/DocStability/internal/contract"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		_, _ = fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// csvTable returns a writer func for a header and pre-rendered rows.
func csvTable(header []string, rows [][]string) func(io.Writer) error {
	return func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return cw.WriteAll(rows)
		})
	}
}

// stagedFile is a fully written temp file waiting to be renamed into place.
type stagedFile struct {
	tmp   string
	final string
}

// stageFile writes a temp file next to path. Nothing is visible at path until commitStaged.
func stageFile(path string, write func(io.Writer) error) (stagedFile, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return stagedFile{}, fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmp := f.Name()
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return stagedFile{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return stagedFile{}, fmt.Errorf("failed to close %s: %w", path, err)
	}
	return stagedFile{tmp: tmp, final: path}, nil
}

// discardStaged removes temp files that were never committed.
func discardStaged(files []stagedFile) {
	for _, s := range files {
		_ = os.Remove(s.tmp)
	}
}

// commitStaged renames every staged file into place.
func commitStaged(files []stagedFile) error {
	var errs []error
	for _, s := range files {
		if err := os.Rename(s.tmp, s.final); err != nil {
			_ = os.Remove(s.tmp)
			errs = append(errs, fmt.Errorf("failed to move %s into place: %w", s.final, err))
		}
	}
	return errors.Join(errs...)
}

// writeAtomic writes a single file through a temp file and rename.
func writeAtomic(path string, write func(io.Writer) error) error {
	s, err := stageFile(path, write)
	if err != nil {
		return err
	}
	return commitStaged([]stagedFile{s})
}
