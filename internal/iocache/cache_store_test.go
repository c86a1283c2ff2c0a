package iocache

import (
	"database/sql"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elijahadejumo/DocStability/schema"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "commit_log_cache", false},
		{"leading underscore", "_cache", false},
		{"digits after first char", "cache2", false},
		{"empty", "", true},
		{"leading digit", "2cache", true},
		{"injection", "cache; DROP TABLE users", true},
		{"hyphen", "commit-log", true},
		{"dot", "db.table", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`commit_log_cache`", quoteTableName(commitLogTable, schema.MySQLBackend))
	assert.Equal(t, `"commit_log_cache"`, quoteTableName(commitLogTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"commit_log_cache"`, quoteTableName(commitLogTable, schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", placeholder(schema.SQLiteBackend, 3))
	assert.Equal(t, "$3", placeholder(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 1, 3))
	assert.Equal(t, "?, ?", placeholders(schema.MySQLBackend, 1, 2))
}

func TestDriverFor(t *testing.T) {
	for backend, want := range map[schema.DatabaseBackend]string{
		schema.SQLiteBackend:     "sqlite",
		schema.MySQLBackend:      "mysql",
		schema.PostgreSQLBackend: "pgx",
	} {
		got, err := driverFor(backend)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := driverFor(schema.NoneBackend)
	assert.Error(t, err)
}

func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.MySQLBackend, "ON DUPLICATE KEY UPDATE"},
		{schema.PostgreSQLBackend, "ON CONFLICT (cache_key) DO UPDATE"},
		{schema.SQLiteBackend, "INSERT OR REPLACE"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			cs := &CacheStoreImpl{tableName: commitLogTable, backend: tt.backend}
			assert.Contains(t, cs.getUpsertQuery(), tt.want)
		})
	}
}

func TestGetCreateTableQuery(t *testing.T) {
	assert.Contains(t, getCreateTableQuery(commitLogTable, schema.MySQLBackend), "LONGBLOB")
	assert.Contains(t, getCreateTableQuery(commitLogTable, schema.PostgreSQLBackend), "BYTEA")
	assert.Contains(t, getCreateTableQuery(commitLogTable, schema.SQLiteBackend), "BLOB")
}

func TestNewCacheStoreErrors(t *testing.T) {
	_, err := NewCacheStore("bad-name", schema.SQLiteBackend, "")
	assert.Error(t, err)

	_, err = NewCacheStore(commitLogTable, schema.DatabaseBackend("oracle"), "")
	assert.ErrorContains(t, err, "unsupported cache backend")
}

func TestCacheStore_NoneBackend(t *testing.T) {
	store, err := NewCacheStore(commitLogTable, schema.NoneBackend, "")
	require.NoError(t, err)

	_, _, _, err = store.Get("key")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, store.Set("key", []byte("v"), 1, 1))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestCacheStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(commitLogTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	now := time.Now().Unix()
	require.NoError(t, store.Set("k1", []byte(`{"commits":[]}`), 1, now-60))
	require.NoError(t, store.Set("k2", []byte(`{}`), 1, now))
	// replaces the earlier value
	require.NoError(t, store.Set("k1", []byte(`{"commits":null}`), 2, now-30))

	value, version, ts, err := store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, `{"commits":null}`, string(value))
	assert.Equal(t, 2, version)
	assert.Equal(t, now-30, ts)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, now, status.LastEntryTime.Unix())
	assert.Equal(t, now-30, status.OldestEntryTime.Unix())
	assert.Positive(t, status.TableSizeBytes)
}

func TestCacheStoreGetStatus_MySQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	cs := &CacheStoreImpl{db: db, tableName: commitLogTable, backend: schema.MySQLBackend, connStr: "user:pw@tcp(localhost:3306)/docs"}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM `commit_log_cache`")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(cache_timestamp), MIN(cache_timestamp) FROM `commit_log_cache`")).
		WillReturnRows(sqlmock.NewRows([]string{"max", "min"}).AddRow(int64(2000), int64(1000)))
	mock.ExpectQuery("information_schema.tables").
		WithArgs("docs", commitLogTable).
		WillReturnRows(sqlmock.NewRows([]string{"size"}).AddRow(int64(16384)))

	status, err := cs.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalEntries)
	assert.Equal(t, int64(2000), status.LastEntryTime.Unix())
	assert.Equal(t, int64(16384), status.TableSizeBytes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheStoreGetStatus_PostgreSQLFallsBackToEstimate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	cs := &CacheStoreImpl{db: db, tableName: commitLogTable, backend: schema.PostgreSQLBackend}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "commit_log_cache"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT MAX").
		WillReturnRows(sqlmock.NewRows([]string{"max", "min"}).AddRow(int64(20), int64(10)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT pg_total_relation_size($1)")).
		WithArgs(commitLogTable).
		WillReturnError(sql.ErrConnDone)

	status, err := cs.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2000), status.TableSizeBytes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheStoreGet_PostgreSQLPlaceholder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	cs := &CacheStoreImpl{db: db, tableName: commitLogTable, backend: schema.PostgreSQLBackend}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "commit_log_cache" WHERE cache_key = $1`)).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"cache_value", "cache_version", "cache_timestamp"}).AddRow([]byte("v"), 1, int64(5)))

	value, version, ts, err := cs.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(5), ts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
