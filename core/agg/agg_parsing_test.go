package agg

import (
	"bytes"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elijahadejumo/DocStability/internal/contract"
)

func TestParseCommitLog(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	out := generateTestGitLog([]logCommit{
		{hash: "aaa111", at: base, name: "Alice", email: "alice@example.com", parents: "p1",
			files: []string{"README.md", "  src/app.py ", "README.md"}},
		{hash: "bbb222", at: base.Add(time.Hour), name: "Bob", email: "bob@example.com", parents: "p1 p2",
			files: []string{"CHANGELOG.md"}},
	})

	logger, hook := test.NewNullLogger()
	commits, stats := ParseCommitLog(out, logger)

	require.Len(t, commits, 2)
	assert.Equal(t, 2, stats.Headers)
	assert.Equal(t, 0, stats.Malformed)
	assert.Empty(t, hook.AllEntries())

	first := commits[0]
	assert.Equal(t, "aaa111", first.Hash)
	assert.Equal(t, base, first.CommittedAt)
	assert.Equal(t, time.UTC, first.CommittedAt.Location())
	assert.Equal(t, "Alice", first.AuthorName)
	assert.Equal(t, "alice@example.com", first.AuthorEmail)
	assert.Equal(t, []string{"README.md", "src/app.py"}, first.Files)
	assert.False(t, first.IsMerge)

	assert.True(t, commits[1].IsMerge)
}

func TestParseCommitLog_Malformed(t *testing.T) {
	raw := contract.CommitMarker + "good1\t1700000000\tAda\tada@example.com\n" +
		"README.md\n" +
		"\n" +
		contract.CommitMarker + "bad\tnot-a-number\tEve\teve@example.com\tp\n" +
		"LICENSE\n" +
		"\n" +
		contract.CommitMarker + "short\t1700000000\n" +
		"SECURITY.md\n" +
		"\n" +
		contract.CommitMarker + "good2\t1700003600\tAda\tada@example.com\tp\n" +
		"CONTRIBUTING.md\n"

	logger, hook := test.NewNullLogger()
	commits, stats := ParseCommitLog([]byte(raw), logger)

	require.Len(t, commits, 2)
	assert.Equal(t, "good1", commits[0].Hash)
	assert.Equal(t, []string{"README.md"}, commits[0].Files)
	assert.Equal(t, "good2", commits[1].Hash)
	assert.Equal(t, []string{"CONTRIBUTING.md"}, commits[1].Files)

	assert.Equal(t, 4, stats.Headers)
	assert.Equal(t, 2, stats.Malformed)
	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Data, "reason")
}

func TestParseCommitLog_Empty(t *testing.T) {
	logger, _ := test.NewNullLogger()
	commits, stats := ParseCommitLog(nil, logger)
	assert.Empty(t, commits)
	assert.Zero(t, stats.Headers)

	// file lines before any header are ignored
	commits, _ = ParseCommitLog([]byte("README.md\nLICENSE\n"), logger)
	assert.Empty(t, commits)
}

func TestParseCommitHeader(t *testing.T) {
	testCases := []struct {
		name       string
		rest       string
		expectBad  bool
		expectMerg bool
	}{
		{"four fields", "abc\t1700000000\tJohn\tjohn@example.com", false, false},
		{"single parent", "abc\t1700000000\tJohn\tjohn@example.com\tp1", false, false},
		{"two parents", "abc\t1700000000\tJohn\tjohn@example.com\tp1 p2", false, true},
		{"windows line ending", "abc\t1700000000\tJohn\tjohn@example.com\tp1\r", false, false},
		{"too few fields", "abc\t1700000000\tJohn", true, false},
		{"bad epoch", "abc\tyesterday\tJohn\tjohn@example.com", true, false},
		{"empty hash", "\t1700000000\tJohn\tjohn@example.com", true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, reason := parseCommitHeader(tc.rest)
			if tc.expectBad {
				assert.NotEmpty(t, reason)
				return
			}
			assert.Empty(t, reason)
			assert.Equal(t, tc.expectMerg, rec.IsMerge)
		})
	}
}

func FuzzParseCommitLog(f *testing.F) {
	f.Add(string(generateTestGitLog([]logCommit{{hash: "a", at: time.Unix(0, 0), name: "n", email: "e", files: []string{"README"}}})))
	f.Add(contract.CommitMarker + "x\t\t\t")
	f.Add("")
	f.Fuzz(func(t *testing.T, raw string) {
		logger, _ := test.NewNullLogger()
		commits, stats := ParseCommitLog([]byte(raw), logger)
		if len(commits)+stats.Malformed != stats.Headers {
			t.Fatalf("headers %d != commits %d + malformed %d", stats.Headers, len(commits), stats.Malformed)
		}
		for _, c := range commits {
			if bytes.Contains([]byte(c.Hash), []byte("\t")) {
				t.Fatalf("tab in hash %q", c.Hash)
			}
			seen := map[string]bool{}
			for _, f := range c.Files {
				if seen[f] || f == "" {
					t.Fatalf("duplicate or empty file %q", f)
				}
				seen[f] = true
			}
		}
	})
}
