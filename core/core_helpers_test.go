package core

import (
	"time"

	"github.com/elijahadejumo/DocStability/schema"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// touchCommit builds one classified commit for a hand-made snapshot.
func touchCommit(hash string, at time.Time, id string, isBot bool, cat schema.Category, health ...string) schema.ClassifiedCommit {
	cls := schema.Classification{Category: cat, HealthFiles: health}
	if cat == schema.DocDominant || cat == schema.DocNonDominant {
		cls.OtherFiles = []string{"Makefile"}
	}
	return schema.ClassifiedCommit{
		Commit:         schema.CommitRecord{Hash: hash, CommittedAt: at, Files: append(health, cls.OtherFiles...)},
		Classification: cls,
		Identity:       id,
		IsBot:          isBot,
	}
}

// newSnapshot returns an empty 2024 snapshot for repo "demo".
func newSnapshot() *schema.Snapshot {
	return &schema.Snapshot{
		Repo:              "demo",
		RepoPath:          "/tmp/demo",
		Since:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Until:             time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		DominantThreshold: 0.5,
		AllCommits:        map[string]int{},
		HumanCommits:      map[string]int{},
		Bots:              map[string]*schema.BotSighting{},
	}
}
