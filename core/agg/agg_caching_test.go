package agg

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/elijahadejumo/DocStability/internal/contract"
	"github.com/elijahadejumo/DocStability/internal/iocache"
	"github.com/elijahadejumo/DocStability/schema"
)

// MockCacheStore for testing (alias for MockCacheStore)
type MockCacheStore = iocache.MockCacheStore

func cachedPayload(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(cachedLog{
		Commits: []schema.CommitRecord{{Hash: "abc", Files: []string{"README.md"}}},
		Stats:   schema.ParseStats{Headers: 1},
	})
	require.NoError(t, err)
	return data
}

func TestCheckCacheHit_CacheHit(t *testing.T) {
	mockStore := &MockCacheStore{}
	mockStore.On("Get", "test-key").Return(cachedPayload(t), currentCacheVersion, time.Now().Unix(), nil)

	actual := checkCacheHit(mockStore, "test-key")
	require.NotNil(t, actual)
	assert.Equal(t, "abc", actual.Commits[0].Hash)
	assert.Equal(t, 1, actual.Stats.Headers)
	mockStore.AssertExpectations(t)
}

func TestCheckCacheHit_CacheMiss(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		version int
		ts      int64
		err     error
	}{
		{"version mismatch", []byte("{}"), currentCacheVersion - 1, time.Now().Unix(), nil},
		{"stale", []byte("{}"), currentCacheVersion, time.Now().Add(-8 * 24 * time.Hour).Unix(), nil},
		{"store error", []byte{}, 0, 0, assert.AnError},
		{"invalid json", []byte("invalid json"), currentCacheVersion, time.Now().Unix(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := &MockCacheStore{}
			mockStore.On("Get", "test-key").Return(tt.data, tt.version, tt.ts, tt.err)
			assert.Nil(t, checkCacheHit(mockStore, "test-key"))
			mockStore.AssertExpectations(t)
		})
	}
}

func TestGenerateCacheKey(t *testing.T) {
	mockClient := &contract.MockGitClient{}
	cfg := snapshotConfig()
	mockClient.On("GetRepoHash", mock.Anything, mock.AnythingOfType("string")).Return("abcd1234", nil)

	key1 := generateCacheKey(context.Background(), cfg, mockClient)
	assert.Len(t, key1, 64) // SHA256 hash length

	cfg2 := cfg.Clone()
	cfg2.IncludeMerges = true
	key2 := generateCacheKey(context.Background(), cfg2, mockClient)
	assert.NotEqual(t, key1, key2)

	cfg3 := cfg.Clone()
	cfg3.Until = cfg.Until.AddDate(0, 0, 1)
	assert.NotEqual(t, key1, generateCacheKey(context.Background(), cfg3, mockClient))
	mockClient.AssertExpectations(t)
}

func TestGenerateCacheKey_RepoHashError(t *testing.T) {
	mockClient := &contract.MockGitClient{}
	mockClient.On("GetRepoHash", mock.Anything, mock.AnythingOfType("string")).Return("", assert.AnError)

	key := generateCacheKey(context.Background(), snapshotConfig(), mockClient)
	assert.Len(t, key, 64)
	mockClient.AssertExpectations(t)
}

func TestLoadCommits_NoCache(t *testing.T) {
	cfg := snapshotConfig()
	client := &contract.MockGitClient{}
	raw := generateTestGitLog([]logCommit{{hash: "h1", at: cfg.Since.Add(time.Hour), name: "Ada", email: "ada@example.com", files: []string{"README.md"}}})
	client.On("GetCommitLog", mock.Anything, cfg.RepoPath, cfg.Since, cfg.Until, false).Return(raw, nil)

	commits, stats, err := LoadCommits(context.Background(), cfg, client, nil)
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, 1, stats.Headers)
	client.AssertExpectations(t)
}

func TestLoadCommits_StoresOnMiss(t *testing.T) {
	cfg := snapshotConfig()
	client := &contract.MockGitClient{}
	raw := generateTestGitLog([]logCommit{{hash: "h1", at: cfg.Since.Add(time.Hour), name: "Ada", email: "ada@example.com"}})
	client.On("GetRepoHash", mock.Anything, cfg.RepoPath).Return("head", nil)
	client.On("GetCommitLog", mock.Anything, cfg.RepoPath, cfg.Since, cfg.Until, false).Return(raw, nil)

	store := &MockCacheStore{}
	store.On("Get", mock.AnythingOfType("string")).Return([]byte{}, 0, int64(0), assert.AnError)
	store.On("Set", mock.AnythingOfType("string"), mock.Anything, currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetActivityStore").Return(store)

	commits, _, err := LoadCommits(context.Background(), cfg, client, mgr)
	require.NoError(t, err)
	assert.Len(t, commits, 1)
	store.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestLoadCommits_GitFailure(t *testing.T) {
	cfg := snapshotConfig()
	client := &contract.MockGitClient{}
	client.On("GetCommitLog", mock.Anything, cfg.RepoPath, cfg.Since, cfg.Until, false).Return(nil, contract.ErrToolInvocation)

	_, _, err := LoadCommits(context.Background(), cfg, client, nil)
	assert.ErrorIs(t, err, contract.ErrToolInvocation)
}
