package iocache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elijahadejumo/DocStability/schema"
)

func TestMigrateAnalysis_NoneBackend(t *testing.T) {
	_, err := MigrateAnalysis(schema.NoneBackend, "", -1)
	assert.ErrorContains(t, err, "migrations are not supported for NoneBackend")
}

func TestMigrateAnalysis_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	msg, err := MigrateAnalysis(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
	assert.Contains(t, msg, "to version 2")

	msg, err = MigrateAnalysis(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
	assert.Contains(t, msg, "No migration needed")

	msg, err = MigrateAnalysis(schema.SQLiteBackend, dbPath, 1)
	require.NoError(t, err)
	assert.Contains(t, msg, "from version 2 to version 1")

	msg, err = MigrateAnalysis(schema.SQLiteBackend, dbPath, 0)
	require.NoError(t, err)
	assert.Contains(t, msg, "to version 0")

	_, err = MigrateAnalysis(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
}

func TestMigrateAnalysis_SQLiteMatchesStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	_, err := MigrateAnalysis(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	// the store opens a migrated database without recreating anything
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	id, err := store.BeginAnalysis(fixedStart, "demo", nil)
	require.NoError(t, err)
	assert.NoError(t, store.RecordMetrics(id, sampleMetrics()))
}

func TestMigrateAnalysis_UnsupportedBackend(t *testing.T) {
	_, err := MigrateAnalysis(schema.DatabaseBackend("oracle"), "", -1)
	assert.Error(t, err)
}
