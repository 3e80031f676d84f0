package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillHistorySeq(db); err != nil {
		return fmt.Errorf("backfilling history seq values: %w", err)
	}
	return nil
}

var migrations = []string{
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

	`CREATE TABLE IF NOT EXISTS punch_lists (
		workspace  TEXT PRIMARY KEY,
		body       TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	)`,

	// Ordering within a stack used to rely on created_at, which collides
	// when edits land in the same second.
	`ALTER TABLE history_snapshots ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE history_snapshots ADD COLUMN label TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_history_workspace_stack ON history_snapshots(workspace, stack, seq)`,
}

// migrateBackfillHistorySeq numbers snapshots written before the seq column
// existed. Legacy rows sort before numbered ones within each workspace and
// stack. No-op once every row has seq > 0.
func migrateBackfillHistorySeq(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history_snapshots WHERE seq = 0`).Scan(&count); err != nil {
		return fmt.Errorf("checking history seq: %w", err)
	}
	if count == 0 {
		return nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, workspace, stack FROM history_snapshots ORDER BY workspace, stack, seq != 0, seq, created_at, rowid`)
	if err != nil {
		return fmt.Errorf("listing history snapshots: %w", err)
	}
	type snapshotRow struct {
		id, workspace, stack string
	}
	var all []snapshotRow
	for rows.Next() {
		var r snapshotRow
		if err := rows.Scan(&r.id, &r.workspace, &r.stack); err != nil {
			rows.Close()
			return fmt.Errorf("scanning history snapshot: %w", err)
		}
		all = append(all, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating history snapshots: %w", err)
	}

	seq := 0
	var group string
	for _, r := range all {
		if key := r.workspace + "\x00" + r.stack; key != group {
			group = key
			seq = 0
		}
		seq++
		if _, err := db.ExecContext(ctx,
			`UPDATE history_snapshots SET seq = ? WHERE id = ?`, seq, r.id); err != nil {
			return fmt.Errorf("updating history seq: %w", err)
		}
	}
	return nil
}
