//go:build basic

// Package integration contains integration tests for docstability.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureRange = []string{"--since", "2023-01-01", "--until", "2023-06-30", "--cache-backend", "none", "--color", "no"}

// TestEntropyVerification checks the health-doc commit count against git log.
func TestEntropyVerification(t *testing.T) {
	repo := newFixtureRepo(t)
	home := t.TempDir()
	outDir := t.TempDir()

	args := append([]string{"entropy", repo, "--output", "json", "--output-dir", outDir, "--write-sha-list"}, fixtureRange...)
	stdout, err := runCLI(t, repo, cliEnv(home), args...)
	require.NoError(t, err)

	var summary struct {
		HealthFileCommits int    `json:"health_file_commits"`
		Months            int    `json:"months"`
		ActiveMonths      int    `json:"active_months"`
		AnalysisType      string `json:"analysis_type"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))

	gitLog := runGit(t, repo, nil, append([]string{"log", "--format=%H", "--"}, fixtureHealthDocs...)...)
	gitSHAs := strings.Fields(gitLog)
	assert.Equal(t, len(gitSHAs), summary.HealthFileCommits)
	assert.Equal(t, 6, summary.Months)
	assert.Equal(t, 3, summary.ActiveMonths)
	assert.Equal(t, "health_docs_entropy", summary.AnalysisType)

	data, err := os.ReadFile(filepath.Join(outDir, "fixture", "health_docs_entropy_health_docs_touch_shas.txt"))
	require.NoError(t, err)
	assert.ElementsMatch(t, gitSHAs, strings.Fields(string(data)))
}

// TestReportWritesEveryArtifact runs the full report and checks the artifact set.
func TestReportWritesEveryArtifact(t *testing.T) {
	repo := newFixtureRepo(t)
	home := t.TempDir()
	outDir := t.TempDir()

	args := append([]string{"report", repo, "--output-dir", outDir}, fixtureRange...)
	stdout, err := runCLI(t, repo, cliEnv(home), args...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Analysis completed in")

	for _, name := range []string{
		"health_files_rhythm_metrics.csv",
		"health_files_summary.json",
		"ownership_health_docs_ownership_summary.csv",
		"health_docs_entropy_monthly_distribution.csv",
		"health_docs_entropy_entropy_summary.csv",
		"contributors_5yr_summary.csv",
		"intention_health_docs_intention_summary.csv",
	} {
		assert.FileExists(t, filepath.Join(outDir, "fixture", name))
	}
}

// TestIntentionCounts checks the commit categories of the fixture.
func TestIntentionCounts(t *testing.T) {
	repo := newFixtureRepo(t)

	// The bot commit counts either way; --include-bots only affects attribution.
	for _, extra := range [][]string{nil, {"--include-bots"}} {
		args := append([]string{"intention", repo, "--output", "json", "--output-dir", t.TempDir()}, fixtureRange...)
		args = append(args, extra...)
		stdout, err := runCLI(t, repo, cliEnv(t.TempDir()), args...)
		require.NoError(t, err)

		var summary struct {
			Touch       int `json:"health_docs_touch_commits"`
			Only        int `json:"health_docs_only_commits"`
			Dominant    int `json:"health_docs_dominant_mixed_commits"`
			NonDominant int `json:"health_docs_mixed_non_dominant_commits"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
		assert.Equal(t, 4, summary.Touch, extra)
		assert.Equal(t, 2, summary.Only, extra)
		assert.Equal(t, 1, summary.Dominant, extra)
		assert.Equal(t, 1, summary.NonDominant, extra)
	}
}

// TestClassifyAndCombine runs the commands that never read Git history.
func TestClassifyAndCombine(t *testing.T) {
	work := t.TempDir()
	env := cliEnv(t.TempDir())

	stdout, err := runCLI(t, work, env, "classify", "--output", "csv", "README.md", "docs/README.md")
	require.NoError(t, err)
	assert.Contains(t, stdout, "README.md,README.md,true,false,true")
	assert.Contains(t, stdout, "docs/README.md,docs/README.md,false,true,false")

	outDir := filepath.Join(work, "outputs")
	for _, project := range []string{"alpha", "beta"} {
		dir := filepath.Join(outDir, project)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "health_files_rhythm_metrics.csv"), []byte("repo,cv\n"+project+",0.5\n"), 0o600))
	}
	_, err = runCLI(t, work, env, "combine", "--marker", "rhythm_metric", "--output-dir", outDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "combined_rhythm_metric.csv"))
	require.NoError(t, err)
	assert.Equal(t, "project_name,repo,cv\nalpha,alpha,0.5\nbeta,beta,0.5\n", string(data))
}
