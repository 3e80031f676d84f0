package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacyHistoryWithoutSeq simulates a database
// created before history snapshots carried seq and label columns. Verifies
// that rows survive, the new columns appear, and legacy rows are numbered in
// creation order per workspace and stack.
func TestMigrate_UpgradePath_LegacyHistoryWithoutSeq(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacyStatements := []string{
		`CREATE TABLE IF NOT EXISTS workspaces (
			key        TEXT PRIMARY KEY,
			forest     TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history_snapshots (
			id         TEXT PRIMARY KEY,
			workspace  TEXT NOT NULL,
			stack      TEXT NOT NULL CHECK(stack IN ('undo','redo')),
			forest     TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}
	for i, stmt := range legacyStatements {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "legacy statement %d failed", i)
	}

	_, err = db.Exec(`INSERT INTO workspaces (key, forest, updated_at)
		VALUES ('default', '{"projects":[]}', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	legacyRows := []struct {
		id, stack, createdAt string
	}{
		{"u2", "undo", "2025-01-02T00:00:00Z"},
		{"u1", "undo", "2025-01-01T00:00:00Z"},
		{"r1", "redo", "2025-01-03T00:00:00Z"},
	}
	for _, r := range legacyRows {
		_, err := db.Exec(`INSERT INTO history_snapshots (id, workspace, stack, forest, created_at)
			VALUES (?, 'default', ?, '{"projects":[]}', ?)`, r.id, r.stack, r.createdAt)
		require.NoError(t, err)
	}

	err = Migrate(db)
	require.NoError(t, err, "migration on legacy schema should succeed")

	var forest string
	require.NoError(t, db.QueryRow(`SELECT forest FROM workspaces WHERE key = 'default'`).Scan(&forest))
	assert.Equal(t, `{"projects":[]}`, forest, "workspace should survive migration")

	seqOf := func(id string) int {
		var seq int
		require.NoError(t, db.QueryRow(`SELECT seq FROM history_snapshots WHERE id = ?`, id).Scan(&seq))
		return seq
	}
	assert.Equal(t, 1, seqOf("u1"))
	assert.Equal(t, 2, seqOf("u2"))
	assert.Equal(t, 1, seqOf("r1"))

	var label string
	require.NoError(t, db.QueryRow(`SELECT label FROM history_snapshots WHERE id = 'u1'`).Scan(&label))
	assert.Empty(t, label)

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='punch_lists'`).Scan(&name)
	require.NoError(t, err, "punch_lists should be created on upgrade")

	// Second run leaves the numbering alone.
	require.NoError(t, Migrate(db))
	assert.Equal(t, 2, seqOf("u2"))
}
