package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/internal/outwriter"
)

// combineFileFor returns the combined CSV path, defaulting into the outputs directory.
func combineFileFor(outputsDir, marker, combinedFile string) string {
	if combinedFile != "" {
		return combinedFile
	}
	return filepath.Join(outputsDir, "combined_"+marker+".csv")
}

// combineCmd merges per-project artifacts into one table.
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Merge one artifact type across every analyzed project into a single CSV.",
	Long: `Walk the project folders under the outputs directory, pick the first CSV
whose name contains the marker, and stack them into one table with a
leading project_name column.

Known markers: ` + strings.Join(outwriter.CombineMarkers, ", ") + `

Examples:
  # Combine every rhythm metrics table under ./outputs
  docstability combine --marker rhythm_metric

  # Keep only the first 50 rows and write somewhere else
  docstability combine --marker entropy_summary --rows 50 --combined-file entropy.csv`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if err := loadConfigFile(); err != nil {
			return err
		}
		return contract.ConfigureLogger(viper.GetString("log-level"), viper.GetString("log-format"))
	},
	Run: func(cmd *cobra.Command, _ []string) {
		outputsDir := viper.GetString("output-dir")
		marker := viper.GetString("marker")
		outFile := combineFileFor(outputsDir, marker, viper.GetString("combined-file"))

		res, err := outwriter.CombineOutputs(outputsDir, marker, viper.GetInt("rows"), outFile)
		if err != nil {
			contract.LogFatal("Cannot combine outputs", err)
		}
		cmd.Printf("Combined %d rows from %d projects into %s\n", res.Rows, res.Projects, outFile)
		if len(res.Skipped) > 0 {
			cmd.Printf("No %q CSV in: %s\n", marker, strings.Join(res.Skipped, ", "))
		}
	},
}
