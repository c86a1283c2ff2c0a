package core

import (
	"time"

	"github.com/elijahadejumo/DocStability/core/algo"
	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

// RhythmThresholds controls how a rhythm row is labeled.
type RhythmThresholds struct {
	CV        float64
	MinTotal  int
	MinActive int
}

// thresholdsFromConfig pulls the labeling thresholds out of the config.
func thresholdsFromConfig(cfg *contract.Config) RhythmThresholds {
	return RhythmThresholds{
		CV:        cfg.CVThreshold,
		MinTotal:  cfg.MinTotalCommits,
		MinActive: cfg.MinActiveWindows,
	}
}

// WindowStart returns the start of the window containing t, in UTC.
// Weeks start on Monday; months on the first day.
func WindowStart(t time.Time, g schema.Granularity) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if g == schema.WeekGranularity {
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// BuildWindows returns the contiguous window starts covering [since, until].
// The first window contains since and the last one contains until.
func BuildWindows(since, until time.Time, g schema.Granularity) []time.Time {
	start := WindowStart(since, g)
	end := WindowStart(until, g)
	var out []time.Time
	for w := start; !w.After(end); w = nextWindow(w, g) {
		out = append(out, w)
	}
	return out
}

func nextWindow(w time.Time, g schema.Granularity) time.Time {
	if g == schema.WeekGranularity {
		return w.AddDate(0, 0, 7)
	}
	return w.AddDate(0, 1, 0)
}

// ComputeRhythm derives the dispersion statistics of one granularity.
// Counts missing from the map are zero windows and still take part in mu and sigma.
func ComputeRhythm(counts map[time.Time]int, windows []time.Time, th RhythmThresholds) schema.RhythmMetrics {
	series := make([]int, len(windows))
	active := 0
	for i, w := range windows {
		series[i] = counts[w]
		if series[i] > 0 {
			active++
		}
	}

	m := schema.RhythmMetrics{
		WindowCount:       len(windows),
		HealthFileCommits: algo.Sum(series),
		ActiveWindows:     active,
	}

	mu := algo.Mean(series)
	if mu == 0 {
		m.Label = schema.InactiveLabel
		return m
	}

	m.Mu = mu
	m.Sigma = algo.SampleStdDev(series)
	m.CV = algo.CoefficientOfVariation(m.Mu, m.Sigma)
	m.PhiC = algo.StabilityScore(m.CV)
	m.ActiveWindowRate = float64(active) / float64(len(windows))

	switch {
	case m.HealthFileCommits < th.MinTotal || active < th.MinActive:
		m.Label = schema.SparseLabel
	case m.CV != nil && *m.CV <= th.CV:
		m.Label = schema.StableLabel
	default:
		m.Label = schema.UnstableLabel
	}
	return m
}

// AnalyzeRhythm buckets every health-doc commit in the snapshot by window and
// computes one metrics row per configured granularity.
func AnalyzeRhythm(snap *schema.Snapshot, cfg *contract.Config) *schema.RhythmResult {
	res := &schema.RhythmResult{
		RepoRange:              schema.NewRepoRange(snap),
		Granularities:          cfg.Granularities,
		TotalHealthFileCommits: len(snap.Touching),
	}
	th := thresholdsFromConfig(cfg)

	for _, g := range cfg.Granularities {
		windows := BuildWindows(snap.Since, snap.Until, g)
		counts := make(map[time.Time]int, len(windows))
		for _, c := range snap.Touching {
			counts[WindowStart(c.Commit.CommittedAt, g)]++
		}

		m := ComputeRhythm(counts, windows, th)
		m.Repo = snap.Repo
		m.Granularity = g
		res.Metrics = append(res.Metrics, m)

		for _, w := range windows {
			res.Windows = append(res.Windows, schema.WindowCount{
				Granularity:       g,
				WindowStart:       w,
				HealthFileCommits: counts[w],
			})
		}
	}

	for _, c := range snap.Touching {
		for _, f := range c.Classification.HealthFiles {
			res.FileDetails = append(res.FileDetails, schema.FileDetail{
				CommitSHA:  c.Commit.Hash,
				CommitDate: c.Commit.CommittedAt,
				HealthFile: f,
			})
		}
	}

	return res
}
