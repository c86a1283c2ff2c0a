// Package schema has the models shared by every part of docstability.
package schema

import "time"

// CommitRecord is one commit as reported by the commit log adapter.
// It is never mutated after parsing.
type CommitRecord struct {
	Hash        string    `json:"hash"`
	CommittedAt time.Time `json:"committed_at"` // committer time, UTC
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	Files       []string  `json:"files"` // de-duplicated, first-seen order
	IsMerge     bool      `json:"is_merge"`
}

// ParseStats summarizes a single pass over the raw commit log.
type ParseStats struct {
	Headers   int `json:"headers"`
	Malformed int `json:"malformed"`
}

// Classification is the outcome of classifying one commit's changed files.
type Classification struct {
	Category    Category `json:"category"`
	HealthFiles []string `json:"health_files"`
	OtherFiles  []string `json:"other_files"`
}

// Touches reports whether the commit changed at least one health doc.
func (c Classification) Touches() bool {
	return len(c.HealthFiles) > 0
}

// DocShare returns the fraction of counted files that are health docs.
func (c Classification) DocShare() float64 {
	total := len(c.HealthFiles) + len(c.OtherFiles)
	if total == 0 {
		return 0
	}
	return float64(len(c.HealthFiles)) / float64(total)
}

// ClassifiedCommit joins a commit with its classification and resolved author.
type ClassifiedCommit struct {
	Commit         CommitRecord   `json:"commit"`
	Classification Classification `json:"classification"`
	Identity       string         `json:"identity"`
	IsBot          bool           `json:"is_bot"`
}

// BotSighting records why an identity was flagged as automation.
type BotSighting struct {
	Commits  int
	Patterns map[string]struct{}
	Samples  []string
}

// Snapshot holds the count tables built in the single pass over a commit log.
// Engines only read from it.
type Snapshot struct {
	Repo              string
	RepoPath          string
	Since             time.Time
	Until             time.Time
	IncludeMerges     bool
	IncludeBots       bool
	DominantThreshold float64

	TotalCommits int
	BotCommits   int
	ParseStats   ParseStats

	// Touching holds every commit with at least one health doc, in log order.
	Touching []ClassifiedCommit

	// AllCommits maps identity to commit count over every commit, bots included.
	AllCommits map[string]int
	// HumanCommits maps identity to commit count over commits not flagged as bots.
	HumanCommits map[string]int
	// Bots maps identity to its bot sightings.
	Bots map[string]*BotSighting
}

// RepoRange is the common header of every report row.
type RepoRange struct {
	Repo  string `json:"repo"`
	Since string `json:"since"`
	Until string `json:"until"`
}

// NewRepoRange builds a RepoRange from a snapshot.
func NewRepoRange(s *Snapshot) RepoRange {
	return RepoRange{
		Repo:  s.Repo,
		Since: s.Since.Format(DateLayout),
		Until: s.Until.Format(DateLayout),
	}
}

// DateLayout is the ISO calendar date layout used across reports.
const DateLayout = "2006-01-02"

// MonthLayout is the layout of month keys.
const MonthLayout = "2006-01"

// PathVerdict explains how the rule table treats one path.
type PathVerdict struct {
	Path       string `json:"path"`
	Normalized string `json:"normalized"`
	Included   bool   `json:"included"`
	Excluded   bool   `json:"excluded"`
	HealthDoc  bool   `json:"health_doc"`
}
