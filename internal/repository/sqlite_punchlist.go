package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/waypoint/internal/db"
)

// SQLitePunchListRepo stores the free-form punch list body per workspace.
type SQLitePunchListRepo struct {
	db db.DBTX
}

// NewSQLitePunchListRepo creates a new SQLitePunchListRepo.
func NewSQLitePunchListRepo(conn db.DBTX) *SQLitePunchListRepo {
	return &SQLitePunchListRepo{db: conn}
}

// Get returns the stored body, or "" when the workspace has none.
func (r *SQLitePunchListRepo) Get(ctx context.Context, workspace string) (string, error) {
	var body string
	err := r.db.QueryRowContext(ctx,
		`SELECT body FROM punch_lists WHERE workspace = ?`, workspace).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading punch list: %w", err)
	}
	return body, nil
}

func (r *SQLitePunchListRepo) Save(ctx context.Context, workspace, body string) error {
	query := `INSERT INTO punch_lists (workspace, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(workspace) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, workspace, body, nowUTC()); err != nil {
		return fmt.Errorf("saving punch list: %w", err)
	}
	return nil
}
