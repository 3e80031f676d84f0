package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	err := Migrate(db)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"workspaces", "history_snapshots", "punch_lists"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, "idx_history_workspace_stack").Scan(&name)
	require.NoError(t, err)
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite reports "memory"; WAL only applies to file DBs.
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "memory", mode)
}

func TestMigrate_HistoryStackCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO history_snapshots (id, workspace, stack, forest, created_at, seq)
		VALUES ('h1', 'default', 'sideways', '{}', '2025-01-01T00:00:00Z', 1)`)
	assert.Error(t, err, "unknown stack should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO history_snapshots (id, workspace, stack, forest, created_at, seq)
		VALUES ('h1', 'default', 'undo', '{}', '2025-01-01T00:00:00Z', 1)`)
	assert.NoError(t, err)
}

func TestMigrate_PunchListDefaults(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO punch_lists (workspace, updated_at) VALUES ('default', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	var body string
	require.NoError(t, db.QueryRow(`SELECT body FROM punch_lists WHERE workspace = 'default'`).Scan(&body))
	assert.Empty(t, body)
}

func TestMigrateBackfillHistorySeq_NoopWhenNumbered(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO history_snapshots (id, workspace, stack, forest, created_at, seq)
		VALUES ('h1', 'default', 'undo', '{}', '2025-01-01T00:00:00Z', 7)`)
	require.NoError(t, err)

	require.NoError(t, migrateBackfillHistorySeq(db))

	var seq int
	require.NoError(t, db.QueryRow(`SELECT seq FROM history_snapshots WHERE id = 'h1'`).Scan(&seq))
	assert.Equal(t, 7, seq)
}
