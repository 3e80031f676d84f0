package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/google/uuid"
)

// SQLiteHistoryRepo keeps undo and redo stacks of forest snapshots. The top
// of a stack is the row with the highest seq.
type SQLiteHistoryRepo struct {
	db db.DBTX
}

// NewSQLiteHistoryRepo creates a new SQLiteHistoryRepo.
func NewSQLiteHistoryRepo(conn db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: conn}
}

// Push places s on top of its stack, filling ID, Seq and CreatedAt.
func (r *SQLiteHistoryRepo) Push(ctx context.Context, s *Snapshot) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	body, err := encodeForest(s.Forest)
	if err != nil {
		return err
	}

	var top int
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM history_snapshots WHERE workspace = ? AND stack = ?`,
		s.Workspace, string(s.Stack)).Scan(&top)
	if err != nil {
		return fmt.Errorf("reading %s stack height: %w", s.Stack, err)
	}
	s.Seq = top + 1

	query := `INSERT INTO history_snapshots (id, workspace, stack, seq, label, forest, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.Workspace, string(s.Stack), s.Seq, s.Label, body,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("pushing %s snapshot: %w", s.Stack, err)
	}
	return nil
}

// Peek returns the top of the stack without removing it. An empty stack
// yields domain.ErrNotFound.
func (r *SQLiteHistoryRepo) Peek(ctx context.Context, workspace string, stack HistoryStack) (*Snapshot, error) {
	query := `SELECT id, workspace, stack, seq, label, forest, created_at
		FROM history_snapshots WHERE workspace = ? AND stack = ?
		ORDER BY seq DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, workspace, string(stack))
	return r.scanSnapshot(row, stack)
}

// Pop removes and returns the top of the stack.
func (r *SQLiteHistoryRepo) Pop(ctx context.Context, workspace string, stack HistoryStack) (*Snapshot, error) {
	s, err := r.Peek(ctx, workspace, stack)
	if err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history_snapshots WHERE id = ?`, s.ID); err != nil {
		return nil, fmt.Errorf("popping %s snapshot: %w", stack, err)
	}
	return s, nil
}

func (r *SQLiteHistoryRepo) Count(ctx context.Context, workspace string, stack HistoryStack) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM history_snapshots WHERE workspace = ? AND stack = ?`,
		workspace, string(stack)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s snapshots: %w", stack, err)
	}
	return n, nil
}

func (r *SQLiteHistoryRepo) Clear(ctx context.Context, workspace string, stack HistoryStack) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM history_snapshots WHERE workspace = ? AND stack = ?`, workspace, string(stack))
	if err != nil {
		return fmt.Errorf("clearing %s stack: %w", stack, err)
	}
	return nil
}

// Prune drops all but the newest keep snapshots of a stack.
func (r *SQLiteHistoryRepo) Prune(ctx context.Context, workspace string, stack HistoryStack, keep int) error {
	if keep < 0 {
		keep = 0
	}
	query := `DELETE FROM history_snapshots
		WHERE workspace = ? AND stack = ? AND id NOT IN (
			SELECT id FROM history_snapshots
			WHERE workspace = ? AND stack = ?
			ORDER BY seq DESC LIMIT ?
		)`
	_, err := r.db.ExecContext(ctx, query, workspace, string(stack), workspace, string(stack), keep)
	if err != nil {
		return fmt.Errorf("pruning %s stack: %w", stack, err)
	}
	return nil
}

func (r *SQLiteHistoryRepo) scanSnapshot(row *sql.Row, stack HistoryStack) (*Snapshot, error) {
	var s Snapshot
	var stackStr, body, createdAtStr string
	err := row.Scan(&s.ID, &s.Workspace, &stackStr, &s.Seq, &s.Label, &body, &createdAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s stack is empty: %w", stack, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	s.Stack = HistoryStack(stackStr)

	s.Forest, err = decodeForest(body)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", s.ID, err)
	}
	s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &s, nil
}
