package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

// PrintClassification renders how the rule table treats each path.
func PrintClassification(verdicts []schema.PathVerdict, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, verdicts)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"path", "normalized", "included", "excluded", "health_doc"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, v := range verdicts {
					if err := cw.Write([]string{
						v.Path,
						v.Normalized,
						strconv.FormatBool(v.Included),
						strconv.FormatBool(v.Excluded),
						strconv.FormatBool(v.HealthDoc),
					}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassificationTable(w, verdicts, cfg)
		}, "Wrote table")
	}
}

// writeClassificationTable generates and writes the human-readable table.
func writeClassificationTable(w io.Writer, verdicts []schema.PathVerdict, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Path", "Included", "Excluded", "Health Doc"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := GetMaxTablePathWidth(cfg, 35)
	healthDocs := 0
	var data [][]string
	for _, v := range verdicts {
		if v.HealthDoc {
			healthDocs++
		}
		data = append(data, []string{
			contract.TruncatePath(v.Path, maxWidth),
			schema.YesNo(v.Included),
			schema.YesNo(v.Excluded),
			schema.YesNo(v.HealthDoc),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d paths are health docs\n", healthDocs, len(verdicts))
	return err
}
