package schema

import "time"

// RhythmMetrics is the per-granularity rhythm row.
type RhythmMetrics struct {
	Repo              string      `json:"repo"`
	Granularity       Granularity `json:"granularity"`
	WindowCount       int         `json:"window_count"`
	HealthFileCommits int         `json:"health_file_commits"`
	Mu                float64     `json:"mu"`
	Sigma             float64     `json:"sigma"`
	CV                *float64    `json:"cv"` // nil when mu is 0
	PhiC              float64     `json:"phi_c"`
	ActiveWindows     int         `json:"active_windows"`
	ActiveWindowRate  float64     `json:"active_window_rate"`
	Label             RhythmLabel `json:"label"`
}

// WindowCount is the number of health-doc commits in one time window.
type WindowCount struct {
	Granularity       Granularity `json:"granularity"`
	WindowStart       time.Time   `json:"window_start"`
	HealthFileCommits int         `json:"health_file_commits"`
}

// FileDetail is one health file touched by one commit.
type FileDetail struct {
	CommitSHA  string    `json:"commit_sha"`
	CommitDate time.Time `json:"commit_date"`
	HealthFile string    `json:"health_file"`
}

// RhythmResult is the complete output of the windowed aggregator.
type RhythmResult struct {
	RepoRange
	Granularities          []Granularity   `json:"granularities"`
	TotalHealthFileCommits int             `json:"total_health_file_commits"`
	Metrics                []RhythmMetrics `json:"metrics"`
	Windows                []WindowCount   `json:"windows,omitempty"`
	FileDetails            []FileDetail    `json:"file_details,omitempty"`
}

// CategoryOwnership holds the concentration statistics of one commit category.
// Shares and bus factors are nil when the category has no commits.
type CategoryOwnership struct {
	Category     Category `json:"category"`
	Commits      int      `json:"commits"`
	Contributors int      `json:"contributors"`
	Top1Share    *float64 `json:"top1_share"`
	Top3Share    *float64 `json:"top3_share"`
	Top5Share    *float64 `json:"top5_share"`
	Top10Share   *float64 `json:"top10_share"`
	Bus50        *int     `json:"bus50"`
	Bus80        *int     `json:"bus80"`
}

// PartitionCheck verifies that the touching categories partition the touch count.
type PartitionCheck struct {
	Touch       int `json:"touch"`
	Only        int `json:"only"`
	Dominant    int `json:"dominant"`
	NonDominant int `json:"non_dominant"`
}

// SumParts returns only + dominant + non_dominant.
func (p PartitionCheck) SumParts() int {
	return p.Only + p.Dominant + p.NonDominant
}

// Holds reports whether the parts add up to the touch count.
func (p PartitionCheck) Holds() bool {
	return p.Touch == p.SumParts()
}

// OwnershipResult is the output of the ownership concentration engine.
type OwnershipResult struct {
	RepoRange
	DominantThreshold   float64             `json:"dominant_threshold"`
	BotsIncludedInAttr  bool                `json:"bots_included_in_attr"`
	MergesIncluded      bool                `json:"merges_included"`
	TotalCommitsInRange int                 `json:"total_commits_in_range"`
	Categories          []CategoryOwnership `json:"categories"`
	Partition           PartitionCheck      `json:"partition"`
	Notes               []string            `json:"notes"`
}

// MonthCount is one bucket of the monthly distribution.
type MonthCount struct {
	Month       string   `json:"month"`
	Count       int      `json:"health_file_commit_count"`
	Probability *float64 `json:"p_month,omitempty"`
}

// EntropyResult is the output of the entropy engine.
type EntropyResult struct {
	RepoRange
	Months                 int          `json:"months"`
	IncludeMerges          bool         `json:"include_merges"`
	TotalCommitsInRange    int          `json:"total_commits_in_range"`
	HealthFileCommits      int          `json:"health_file_commits"`
	ActiveMonths           int          `json:"active_months"`
	ActiveMonthRate        float64      `json:"active_month_rate"`
	EntropyNorm            *float64     `json:"entropy_norm"`
	Top1MonthShare         *float64     `json:"top1_month_share"`
	Top3MonthShare         *float64     `json:"top3_month_share"`
	Top6MonthShare         *float64     `json:"top6_month_share"`
	GiniMonthConcentration *float64     `json:"gini_month_concentration"`
	Distribution           []MonthCount `json:"distribution"`
	TouchSHAs              []string     `json:"touch_shas,omitempty"`
	Notes                  []string     `json:"notes"`
}

// ContributorCount is one contributor and their commit count.
type ContributorCount struct {
	ContributorID string `json:"contributor_id"`
	Commits       int    `json:"commits"`
}

// BotContributor is one identity classified as automation.
type BotContributor struct {
	ContributorID   string   `json:"contributor_id"`
	BotCommits      int      `json:"bot_commits"`
	MatchedPatterns []string `json:"matched_patterns"`
	Samples         []string `json:"samples"`
}

// TopShare is the commit share of the k largest contributors.
type TopShare struct {
	K     int     `json:"k"`
	Share float64 `json:"share"`
}

// ContributorsResult is the repo-wide contributor concentration over all commits.
type ContributorsResult struct {
	RepoRange
	ExcludeBots                  bool               `json:"exclude_bots"`
	TotalCommitsAll              int                `json:"total_commits_all"`
	BotCommitsClassified         int                `json:"bot_commits_classified"`
	UniqueBotContributorIDs      int                `json:"unique_bot_contributor_ids"`
	CommitsCountedForMetrics     int                `json:"commits_counted_for_metrics"`
	UniqueContributorsForMetrics int                `json:"unique_contributors_for_metrics"`
	Gini                         float64            `json:"gini"`
	TopShares                    []TopShare         `json:"top_shares"`
	Contributors                 []ContributorCount `json:"contributors,omitempty"`
	Bots                         []BotContributor   `json:"bots,omitempty"`
}

// IntentionResult summarizes commit categories as counts and rates over touch.
type IntentionResult struct {
	RepoRange
	DominantThreshold   float64  `json:"dominant_threshold"`
	BotsIncluded        bool     `json:"bots_included"`
	TotalCommitsInRange int      `json:"total_commits_in_range"`
	TouchCommits        int      `json:"health_docs_touch_commits"`
	OnlyCommits         int      `json:"health_docs_only_commits"`
	DominantCommits     int      `json:"health_docs_dominant_mixed_commits"`
	NonDominantCommits  int      `json:"health_docs_mixed_non_dominant_commits"`
	OnlyRate            *float64 `json:"health_docs_only_rate"`
	DominantRate        *float64 `json:"health_docs_dominant_mixed_rate"`
	NonDominantRate     *float64 `json:"health_docs_mixed_non_dominant_rate"`
	PartitionSum        int      `json:"health_docs_partition_check_sum"`
	Notes               []string `json:"notes"`
}

// Report bundles the output of every engine for one repository.
type Report struct {
	Rhythm       *RhythmResult       `json:"rhythm,omitempty"`
	Ownership    *OwnershipResult    `json:"ownership,omitempty"`
	Entropy      *EntropyResult      `json:"entropy,omitempty"`
	Contributors *ContributorsResult `json:"contributors,omitempty"`
	Intention    *IntentionResult    `json:"intention,omitempty"`
}
