package schema

import (
	"strconv"
)

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// YesNo renders a boolean the way the CSV reports do.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatFloat renders v with six decimals.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// FormatOptionalFloat renders v with six decimals, or an empty cell when v is nil.
func FormatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatFloat(*v)
}

// FormatOptionalInt renders v, or an empty cell when v is nil.
func FormatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// MetricValues flattens the rhythm rows into named metrics.
func (r *RhythmResult) MetricValues() []MetricValue {
	var out []MetricValue
	for _, m := range r.Metrics {
		scope := string(m.Granularity)
		out = append(out,
			MetricValue{RhythmEngine, scope, "window_count", Float(float64(m.WindowCount))},
			MetricValue{RhythmEngine, scope, "health_file_commits", Float(float64(m.HealthFileCommits))},
			MetricValue{RhythmEngine, scope, "mu", Float(m.Mu)},
			MetricValue{RhythmEngine, scope, "sigma", Float(m.Sigma)},
			MetricValue{RhythmEngine, scope, "cv", m.CV},
			MetricValue{RhythmEngine, scope, "phi_c", Float(m.PhiC)},
			MetricValue{RhythmEngine, scope, "active_window_rate", Float(m.ActiveWindowRate)},
		)
	}
	return out
}

// MetricValues flattens the ownership categories into named metrics.
func (r *OwnershipResult) MetricValues() []MetricValue {
	var out []MetricValue
	intPtr := func(v *int) *float64 {
		if v == nil {
			return nil
		}
		return Float(float64(*v))
	}
	for _, c := range r.Categories {
		scope := string(c.Category)
		out = append(out,
			MetricValue{OwnershipEngine, scope, "commits", Float(float64(c.Commits))},
			MetricValue{OwnershipEngine, scope, "contributors", Float(float64(c.Contributors))},
			MetricValue{OwnershipEngine, scope, "top1_share", c.Top1Share},
			MetricValue{OwnershipEngine, scope, "top3_share", c.Top3Share},
			MetricValue{OwnershipEngine, scope, "top5_share", c.Top5Share},
			MetricValue{OwnershipEngine, scope, "top10_share", c.Top10Share},
			MetricValue{OwnershipEngine, scope, "bus50", intPtr(c.Bus50)},
			MetricValue{OwnershipEngine, scope, "bus80", intPtr(c.Bus80)},
		)
	}
	return out
}

// MetricValues flattens the entropy summary into named metrics.
func (r *EntropyResult) MetricValues() []MetricValue {
	return []MetricValue{
		{EntropyEngine, "", "months", Float(float64(r.Months))},
		{EntropyEngine, "", "health_file_commits", Float(float64(r.HealthFileCommits))},
		{EntropyEngine, "", "active_month_rate", Float(r.ActiveMonthRate)},
		{EntropyEngine, "", "entropy_norm", r.EntropyNorm},
		{EntropyEngine, "", "top1_month_share", r.Top1MonthShare},
		{EntropyEngine, "", "top3_month_share", r.Top3MonthShare},
		{EntropyEngine, "", "top6_month_share", r.Top6MonthShare},
		{EntropyEngine, "", "gini_month_concentration", r.GiniMonthConcentration},
	}
}

// MetricValues flattens the contributor summary into named metrics.
func (r *ContributorsResult) MetricValues() []MetricValue {
	out := []MetricValue{
		{ContributorsEngine, "", "total_commits_all", Float(float64(r.TotalCommitsAll))},
		{ContributorsEngine, "", "bot_commits_classified", Float(float64(r.BotCommitsClassified))},
		{ContributorsEngine, "", "unique_contributors_for_metrics", Float(float64(r.UniqueContributorsForMetrics))},
		{ContributorsEngine, "", "gini", Float(r.Gini)},
	}
	for _, ts := range r.TopShares {
		out = append(out, MetricValue{ContributorsEngine, "", "top" + strconv.Itoa(ts.K) + "_share", Float(ts.Share)})
	}
	return out
}

// MetricValues flattens the intention summary into named metrics.
func (r *IntentionResult) MetricValues() []MetricValue {
	return []MetricValue{
		{IntentionEngine, "", "touch_commits", Float(float64(r.TouchCommits))},
		{IntentionEngine, "", "only_commits", Float(float64(r.OnlyCommits))},
		{IntentionEngine, "", "dominant_commits", Float(float64(r.DominantCommits))},
		{IntentionEngine, "", "non_dominant_commits", Float(float64(r.NonDominantCommits))},
		{IntentionEngine, "", "only_rate", r.OnlyRate},
		{IntentionEngine, "", "dominant_rate", r.DominantRate},
		{IntentionEngine, "", "non_dominant_rate", r.NonDominantRate},
	}
}

// MetricValues flattens every engine present in the report.
func (r *Report) MetricValues() []MetricValue {
	var out []MetricValue
	if r.Rhythm != nil {
		out = append(out, r.Rhythm.MetricValues()...)
	}
	if r.Ownership != nil {
		out = append(out, r.Ownership.MetricValues()...)
	}
	if r.Entropy != nil {
		out = append(out, r.Entropy.MetricValues()...)
	}
	if r.Contributors != nil {
		out = append(out, r.Contributors.MetricValues()...)
	}
	if r.Intention != nil {
		out = append(out, r.Intention.MetricValues()...)
	}
	return out
}
