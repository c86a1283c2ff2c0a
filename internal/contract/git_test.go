package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// skipIfGitNotAvailable skips the test if git binary is not found in PATH
func skipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

func TestMockGitClient_Run(t *testing.T) {
	mockClient := new(MockGitClient)
	ctx := context.Background()
	expectedOutput := []byte("a1b2c3d commit message")
	expectedError := errors.New("mocked git error")

	mockClient.On("Run", ctx, "/path/to/repo", "log", "-1", "--oneline").
		Return(expectedOutput, expectedError).
		Once()

	out, err := mockClient.Run(ctx, "/path/to/repo", "log", "-1", "--oneline")
	assert.Equal(t, expectedOutput, out)
	assert.Equal(t, expectedError, err)
	mockClient.AssertExpectations(t)
}

func TestMockGitClient_GetCommitLog(t *testing.T) {
	mockClient := new(MockGitClient)
	since := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	mockClient.On("GetCommitLog", mock.Anything, "/repo", since, until, false).Return([]byte("log"), nil)

	out, err := mockClient.GetCommitLog(context.Background(), "/repo", since, until, false)
	require.NoError(t, err)
	assert.Equal(t, []byte("log"), out)
	mockClient.AssertExpectations(t)
}

func TestNewLocalGitClient(t *testing.T) {
	assert.NotNil(t, NewLocalGitClient())
}

func TestLocalGitClient_RunOutsideRepository(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	_, err := client.Run(context.Background(), t.TempDir(), "rev-parse", "HEAD")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrToolInvocation)
}

func TestLocalGitClient_GetCommitLog(t *testing.T) {
	skipIfGitNotAvailable(t)

	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Env = append(cmd.Environ(),
			"GIT_AUTHOR_DATE=2023-03-15T12:00:00Z",
			"GIT_COMMITTER_DATE=2023-03-15T12:00:00Z",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	run("init", "-q")
	run("-c", "user.name=Ada", "-c", "user.email=ada@example.com",
		"commit", "-q", "--allow-empty", "-m", "empty")

	client := NewLocalGitClient()
	since := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)
	out, err := client.GetCommitLog(context.Background(), dir, since, until, false)
	require.NoError(t, err)
	assert.Contains(t, string(out), CommitMarker)
	assert.Contains(t, string(out), "ada@example.com")

	hash, err := client.GetRepoHash(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, hash, 40)
}

func TestLocalGitClient_GetCommitLog_RangeIsUTC(t *testing.T) {
	skipIfGitNotAvailable(t)
	t.Setenv("TZ", "EST5")

	dir := t.TempDir()
	commit := func(at, msg string) {
		cmd := exec.Command("git", "-C", dir, "-c", "user.name=Ada", "-c", "user.email=ada@example.com",
			"commit", "-q", "--allow-empty", "-m", msg)
		cmd.Env = append(cmd.Environ(), "GIT_AUTHOR_DATE="+at, "GIT_COMMITTER_DATE="+at)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	out, err := exec.Command("git", "-C", dir, "init", "-q").CombinedOutput()
	require.NoError(t, err, string(out))

	// 2024-01-01T02:00Z is in range in UTC but still 2023-12-31 in EST.
	commit("2024-01-01T02:00:00Z", "early-in-range")
	// 2024-04-01T04:00Z is past the range in UTC but still 2024-03-31 in EST.
	commit("2024-03-31T23:00:00-05:00", "late-out-of-range")

	client := NewLocalGitClient()
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	raw, err := client.GetCommitLog(context.Background(), dir, since, until, false)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(string(raw), CommitMarker))
	assert.Contains(t, string(raw), fmt.Sprintf("\t%d\t", time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC).Unix()))
}
