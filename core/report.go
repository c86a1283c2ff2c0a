package core

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

// reportEngines lists the engines a full report runs.
var reportEngines = []schema.Engine{
	schema.RhythmEngine,
	schema.OwnershipEngine,
	schema.EntropyEngine,
	schema.ContributorsEngine,
	schema.IntentionEngine,
}

// RunReport runs every engine over the same snapshot side by side.
// The snapshot is only read; each engine fills its own field of the report.
func RunReport(ctx context.Context, snap *schema.Snapshot, cfg *contract.Config) (*schema.Report, error) {
	rep := &schema.Report{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.Rhythm = AnalyzeRhythm(snap, cfg)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.Ownership = AnalyzeOwnership(snap)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.Entropy = AnalyzeEntropy(snap, cfg.WriteProbabilities)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.Contributors = AnalyzeContributors(snap, cfg.TopK, !cfg.IncludeBots)
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep.Intention = AnalyzeIntention(snap)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rep, nil
}
