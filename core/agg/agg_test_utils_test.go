package agg

import (
	"fmt"
	"strings"
	"time"

	"github.com/elijahadejumo/DocStability/internal/contract"
)

// logCommit is one commit in a generated git log fixture.
type logCommit struct {
	hash    string
	at      time.Time
	name    string
	email   string
	parents string
	files   []string
}

// generateTestGitLog renders commits the way GetCommitLog prints them.
func generateTestGitLog(commits []logCommit) []byte {
	var lines []string
	for _, c := range commits {
		lines = append(lines, fmt.Sprintf("%s%s\t%d\t%s\t%s\t%s",
			contract.CommitMarker, c.hash, c.at.Unix(), c.name, c.email, c.parents))
		lines = append(lines, c.files...)
		lines = append(lines, "")
	}
	return []byte(strings.Join(lines, "\n"))
}
