package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

// reportOutputs lists the engines present in rep, each under its report prefix.
func reportOutputs(rep *schema.Report, cfg *contract.Config) []engineOutput {
	var outs []engineOutput
	if rep.Rhythm != nil {
		outs = append(outs, rhythmOutput(rep.Rhythm, cfg, cfg.ReportPrefixFor(schema.RhythmEngine)))
	}
	if rep.Ownership != nil {
		outs = append(outs, ownershipOutput(rep.Ownership, cfg.ReportPrefixFor(schema.OwnershipEngine)))
	}
	if rep.Entropy != nil {
		outs = append(outs, entropyOutput(rep.Entropy, cfg, cfg.ReportPrefixFor(schema.EntropyEngine)))
	}
	if rep.Contributors != nil {
		outs = append(outs, contributorsOutput(rep.Contributors, cfg, cfg.ReportPrefixFor(schema.ContributorsEngine)))
	}
	if rep.Intention != nil {
		outs = append(outs, intentionOutput(rep.Intention, cfg.ReportPrefixFor(schema.IntentionEngine)))
	}
	return outs
}

// PrintReport writes the artifacts of every engine in rep and renders them one after another.
func PrintReport(rep *schema.Report, cfg *contract.Config, duration time.Duration) error {
	outs := reportOutputs(rep, cfg)
	metas := make([]summaryMeta, 0, len(outs))
	for _, o := range outs {
		meta, err := writeArtifacts(o, cfg)
		if err != nil {
			return fmt.Errorf("failed to write %s artifacts: %w", o.engine, err)
		}
		metas = append(metas, meta)
	}

	switch cfg.Output {
	case schema.JSONOut:
		doc := make(map[schema.Engine]any, len(outs))
		for i, o := range outs {
			doc[o.engine] = o.summary(metas[i])
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, doc)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			for i, o := range outs {
				if i > 0 {
					if _, err := fmt.Fprintln(w); err != nil {
						return err
					}
				}
				if err := o.csv(w); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			for _, o := range outs {
				if _, err := fmt.Fprintf(w, "\n[%s]\n", o.engine); err != nil {
					return err
				}
				if err := o.table(w); err != nil {
					return err
				}
			}
			return writeFooter(w, duration, metas...)
		}, "Wrote table")
	}
}
