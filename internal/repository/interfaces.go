package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// HistoryStack names one side of the undo/redo history.
type HistoryStack string

const (
	StackUndo HistoryStack = "undo"
	StackRedo HistoryStack = "redo"
)

// Snapshot is a full copy of a workspace forest taken before an edit.
type Snapshot struct {
	ID        string
	Workspace string
	Stack     HistoryStack
	Seq       int
	Label     string
	Forest    *domain.Forest
	CreatedAt time.Time
}

type ForestRepo interface {
	Load(ctx context.Context, workspace string) (*domain.Forest, error)
	Save(ctx context.Context, workspace string, f *domain.Forest) error
}

type HistoryRepo interface {
	Push(ctx context.Context, s *Snapshot) error
	Pop(ctx context.Context, workspace string, stack HistoryStack) (*Snapshot, error)
	Peek(ctx context.Context, workspace string, stack HistoryStack) (*Snapshot, error)
	Count(ctx context.Context, workspace string, stack HistoryStack) (int, error)
	Clear(ctx context.Context, workspace string, stack HistoryStack) error
	Prune(ctx context.Context, workspace string, stack HistoryStack, keep int) error
}

type PunchListRepo interface {
	Get(ctx context.Context, workspace string) (string, error)
	Save(ctx context.Context, workspace, body string) error
}
