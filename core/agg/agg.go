// Package agg turns the raw commit log into the immutable snapshot every engine reads.
package agg

import (
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

// ParseCommitLog parses the output of GitClient.GetCommitLog.
// Malformed headers drop their commit (file lines included) and are counted in the stats.
func ParseCommitLog(out []byte, log logrus.FieldLogger) ([]schema.CommitRecord, schema.ParseStats) {
	var (
		commits []schema.CommitRecord
		stats   schema.ParseStats
		current *schema.CommitRecord
		seen    map[string]struct{}
	)

	flush := func() {
		if current != nil {
			commits = append(commits, *current)
		}
		current = nil
	}

	for i, line := range strings.Split(string(out), "\n") {
		if rest, ok := strings.CutPrefix(line, contract.CommitMarker); ok {
			flush()
			stats.Headers++

			rec, reason := parseCommitHeader(rest)
			if reason != "" {
				stats.Malformed++
				log.WithFields(logrus.Fields{"line": i + 1, "reason": reason}).Warn("skipping malformed commit header")
				continue
			}
			current = &rec
			seen = make(map[string]struct{})
			continue
		}

		path := strings.TrimSpace(line)
		if path == "" || current == nil {
			continue // blank separator, or files of a dropped commit
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		current.Files = append(current.Files, path)
	}
	flush()

	return commits, stats
}

// parseCommitHeader parses "hash\tepoch\tname\temail[\tparents]".
// It returns a non-empty reason when the header cannot be used.
func parseCommitHeader(rest string) (schema.CommitRecord, string) {
	parts := strings.SplitN(strings.TrimRight(rest, "\r"), "\t", 5)
	if len(parts) < 4 {
		return schema.CommitRecord{}, "expected at least 4 tab-separated fields"
	}

	epoch, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return schema.CommitRecord{}, "unparseable committer timestamp"
	}

	rec := schema.CommitRecord{
		Hash:        strings.TrimSpace(parts[0]),
		CommittedAt: time.Unix(epoch, 0).UTC(),
		AuthorName:  strings.TrimSpace(parts[2]),
		AuthorEmail: strings.TrimSpace(parts[3]),
	}
	if rec.Hash == "" {
		return schema.CommitRecord{}, "empty commit hash"
	}
	if len(parts) == 5 {
		rec.IsMerge = len(strings.Fields(parts[4])) >= 2
	}
	return rec, ""
}
