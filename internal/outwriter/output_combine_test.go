package outwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/schema"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestCombineOutputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alpha", "health_files_rhythm_metrics.csv"),
		"repo,granularity,cv\nalpha,week,0.5\nalpha,month,0.2\n")
	// ragged rows are padded or truncated to the header width
	writeFile(t, filepath.Join(root, "beta", "x_Rhythm_Metrics.CSV"),
		"repo,granularity,cv\nbeta,week\nbeta,month,0.1,extra\n")
	writeFile(t, filepath.Join(root, "gamma", "ownership_summary.csv"), "repo\ngamma\n")
	writeFile(t, filepath.Join(root, "stray.csv"), "not,a,project\n")

	out := filepath.Join(root, "combined", "rhythm.csv")
	res, err := CombineOutputs(root, "rhythm_metric", 0, out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Projects)
	assert.Equal(t, 4, res.Rows)
	assert.Equal(t, []string{"gamma"}, res.Skipped)

	assert.Equal(t, []string{
		"project_name,repo,granularity,cv",
		"alpha,alpha,week,0.5",
		"alpha,alpha,month,0.2",
		"beta,beta,week,",
		"beta,beta,month,0.1",
	}, readLines(t, out))
}

func TestCombineOutputs_RowLimit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alpha", "a_entropy_summary.csv"), "repo,v\nalpha,1\nalpha,2\nalpha,3\n")

	out := filepath.Join(t.TempDir(), "entropy.csv")
	res, err := CombineOutputs(root, "entropy_summary", 2, out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, []string{"project_name,repo,v", "alpha,alpha,1", "alpha,alpha,2"}, readLines(t, out))
}

func TestCombineOutputs_Errors(t *testing.T) {
	root := t.TempDir()

	_, err := CombineOutputs(root, " ", 0, filepath.Join(root, "x.csv"))
	assert.ErrorIs(t, err, contract.ErrInvalidInput)

	_, err = CombineOutputs(filepath.Join(root, "missing"), "rhythm_metric", 0, filepath.Join(root, "x.csv"))
	assert.Error(t, err)

	writeFile(t, filepath.Join(root, "alpha", "other.csv"), "a\n1\n")
	_, err = CombineOutputs(root, "rhythm_metric", 0, filepath.Join(root, "x.csv"))
	assert.ErrorContains(t, err, "no CSV matching")
	assert.NoFileExists(t, filepath.Join(root, "x.csv"))
}

func TestFitRow(t *testing.T) {
	assert.Equal(t, []string{"a", "", ""}, fitRow([]string{"a"}, 3))
	assert.Equal(t, []string{"a", "b"}, fitRow([]string{"a", "b", "c"}, 2))
	assert.Equal(t, []string{"a", "b"}, fitRow([]string{"a", "b"}, 2))
}

func TestPrintClassification(t *testing.T) {
	verdicts := []schema.PathVerdict{
		{Path: "README.md", Normalized: "README.md", Included: true, HealthDoc: true},
		{Path: "docs/README.md", Normalized: "docs/README.md", Excluded: true},
	}

	t.Run("csv", func(t *testing.T) {
		cfg := &contract.Config{Output: schema.CSVOut, OutputFile: filepath.Join(t.TempDir(), "out.csv")}
		require.NoError(t, PrintClassification(verdicts, cfg))
		assert.Equal(t, []string{
			"path,normalized,included,excluded,health_doc",
			"README.md,README.md,true,false,true",
			"docs/README.md,docs/README.md,false,true,false",
		}, readLines(t, cfg.OutputFile))
	})

	t.Run("table", func(t *testing.T) {
		cfg := &contract.Config{Output: schema.TextOut, Width: 100, OutputFile: filepath.Join(t.TempDir(), "out.txt")}
		require.NoError(t, PrintClassification(verdicts, cfg))
		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "1 of 2 paths are health docs")
	})
}
