package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/elijahadejumo/DocStability/schema"
)

// Color variables for console output.
var (
	StableColor   = color.New(color.FgGreen, color.Bold) // steady cadence
	UnstableColor = color.New(color.FgRed, color.Bold)   // bursty cadence
	SparseColor   = color.New(color.FgYellow)            // too little activity to judge
	InactiveColor = color.New(color.FgHiBlack)           // no activity at all
)

// GetColorLabel returns a colored rhythm label for console output (table).
func GetColorLabel(label schema.RhythmLabel) string {
	text := string(label)
	switch label {
	case schema.StableLabel:
		return StableColor.Sprint(text)
	case schema.UnstableLabel:
		return UnstableColor.Sprint(text)
	case schema.SparseLabel:
		return SparseColor.Sprint(text)
	default:
		return InactiveColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".docstability_cache.db"
	}
	return filepath.Join(homeDir, ".docstability_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".docstability_analysis.db"
	}
	return filepath.Join(homeDir, ".docstability_analysis.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the "..." prefix.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
