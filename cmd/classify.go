package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elijahadejumo/DocStability/core"
	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/internal/outwriter"
	"github.com/elijahadejumo/DocStability/schema"
)

// outputSetup loads only the rendering options, for commands that never touch Git.
func outputSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("%w: output format '%s' must be text, csv, json, parquet", contract.ErrInvalidInput, cfg.Output)
	}
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")

	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return fmt.Errorf("%w: --color: %v", contract.ErrInvalidInput, err)
	}
	cfg.UseColors = colors
	return contract.ConfigureLogger(viper.GetString("log-level"), viper.GetString("log-format"))
}

// readPaths returns args, or the non-blank lines of r when no args are given.
func readPaths(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read paths: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no paths given", contract.ErrInvalidInput)
	}
	return paths, nil
}

// classifyCmd explains the health-document rules for arbitrary paths.
var classifyCmd = &cobra.Command{
	Use:   "classify [path...]",
	Short: "Explain whether paths count as project health documents.",
	Long: `Run repository-relative paths through the health-document rules and show
which include and exclude rules matched.

Paths are read from the arguments, or one per line from stdin when no
arguments are given.

Examples:
  # Check a couple of paths
  docstability classify README.md docs/README.md .github/SECURITY.md

  # Classify every tracked file
  git ls-files | docstability classify --output csv`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return outputSetup()
	},
	Run: func(_ *cobra.Command, args []string) {
		paths, err := readPaths(args, os.Stdin)
		if err != nil {
			contract.LogFatal("Cannot read paths", err)
		}
		if err := outwriter.PrintClassification(core.ClassifyPaths(paths), cfg); err != nil {
			contract.LogFatal("Cannot classify paths", err)
		}
	},
}
