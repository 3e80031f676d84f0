package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
)

// SQLiteForestRepo stores each workspace's forest as one JSON document.
type SQLiteForestRepo struct {
	db db.DBTX
}

// NewSQLiteForestRepo creates a new SQLiteForestRepo.
func NewSQLiteForestRepo(conn db.DBTX) *SQLiteForestRepo {
	return &SQLiteForestRepo{db: conn}
}

// Load returns the workspace forest, or an empty forest when nothing has been
// saved yet.
func (r *SQLiteForestRepo) Load(ctx context.Context, workspace string) (*domain.Forest, error) {
	var body, updatedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT forest, updated_at FROM workspaces WHERE key = ?`, workspace).Scan(&body, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.Forest{Projects: []*domain.Project{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading workspace %s: %w", workspace, err)
	}
	f, err := decodeForest(body)
	if err != nil {
		return nil, fmt.Errorf("workspace %s: %w", workspace, err)
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		f.UpdatedAt = ts
	}
	return f, nil
}

func (r *SQLiteForestRepo) Save(ctx context.Context, workspace string, f *domain.Forest) error {
	now := time.Now().UTC().Truncate(time.Second)
	f.UpdatedAt = now
	body, err := encodeForest(f)
	if err != nil {
		return err
	}
	query := `INSERT INTO workspaces (key, forest, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET forest = excluded.forest, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, workspace, body, now.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("saving workspace %s: %w", workspace, err)
	}
	return nil
}
