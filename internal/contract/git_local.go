package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/elijahadejumo/DocStability/schema"
)

// CommitMarker prefixes every commit header in the raw log.
const CommitMarker = "__COMMIT__"

// commitLogFormat yields hash, committer epoch, author name, author email and parents.
const commitLogFormat = "--pretty=format:" + CommitMarker + "%H%x09%ct%x09%an%x09%ae%x09%P"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("%w: git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", ErrToolInvocation, repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v. Ensure Git is installed and available on your PATH", ErrToolInvocation, err)
	}
	return out, nil
}

// GetCommitLog implements the GitClient interface.
// The range covers since 00:00:00 through until 23:59:59 UTC, whatever the local zone.
func (c *LocalGitClient) GetCommitLog(ctx context.Context, repoPath string, since, until time.Time, includeMerges bool) ([]byte, error) {
	args := []string{"log"}
	if !includeMerges {
		args = append(args, "--no-merges")
	}
	args = append(args,
		"--no-color",
		fmt.Sprintf("--since=%s 00:00:00 +0000", since.Format(schema.DateLayout)),
		fmt.Sprintf("--until=%s 23:59:59 +0000", until.Format(schema.DateLayout)),
		commitLogFormat,
		"--name-only",
	)
	return c.Run(ctx, repoPath, args...)
}

// GetRepoHash implements the GitClient interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
