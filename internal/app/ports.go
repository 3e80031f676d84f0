package app

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

type PlannerUseCase interface {
	Forest(ctx context.Context) (*domain.Forest, error)
	AddProject(ctx context.Context, draft ProjectDraft) (*domain.Project, error)
	AddPhase(ctx context.Context, projectID domain.ItemID, draft ItemDraft) (domain.ItemID, error)
	AddTask(ctx context.Context, parentID domain.ItemID, draft ItemDraft) (domain.ItemID, error)
	AddSubtask(ctx context.Context, taskID domain.ItemID, draft ItemDraft) (domain.ItemID, error)
	Rename(ctx context.Context, id domain.ItemID, name string) error
	SetDates(ctx context.Context, id domain.ItemID, start, end *time.Time) error
	SetCompleted(ctx context.Context, id domain.ItemID, done bool) error
	SetLocked(ctx context.Context, id domain.ItemID, locked bool) error
	SetPriority(ctx context.Context, projectID domain.ItemID, priority int) error
	SetExcludeFromStats(ctx context.Context, projectID domain.ItemID, exclude bool) error
	Tag(ctx context.Context, id domain.ItemID, tag string) error
	Untag(ctx context.Context, id domain.ItemID, tag string) error
	Delegate(ctx context.Context, taskID domain.ItemID, who string) error
	AddComment(ctx context.Context, id domain.ItemID, body string) (*domain.Comment, error)
	Link(ctx context.Context, successorID, predecessorID domain.ItemID) error
	Unlink(ctx context.Context, successorID domain.ItemID) error
	Delete(ctx context.Context, id domain.ItemID) error
}

type HistoryUseCase interface {
	// Undo restores the forest saved before the most recent edit and
	// returns that edit's label.
	Undo(ctx context.Context) (string, error)
	Redo(ctx context.Context) (string, error)
	Depth(ctx context.Context) (HistoryDepth, error)
}

type ReviewUseCase interface {
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)
}

type ExportUseCase interface {
	ExportJSON(ctx context.Context, w io.Writer) error
	ExportCSV(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, path string) (*ImportResult, error)
}

type PunchUseCase interface {
	Get(ctx context.Context) (string, error)
	Append(ctx context.Context, line string) error
	Replace(ctx context.Context, body string) error
	Handoff(ctx context.Context, targetID domain.ItemID) (*HandoffResult, error)
}
