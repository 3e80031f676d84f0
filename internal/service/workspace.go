package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/repository"
	"github.com/alexanderramin/waypoint/internal/scheduler"
)

const defaultHistoryLimit = 50

// Workspace selects the forest a service works on and how much undo history
// it keeps.
type Workspace struct {
	Name         string
	HistoryLimit int
	// IDs is shared by every service of a process. Nil means a fresh
	// clock-based generator.
	IDs *domain.IDGenerator
}

// errNoChange lets an edit finish successfully without saving or recording
// history.
var errNoChange = errors.New("no change")

type workspace struct {
	uow      db.UnitOfWork
	name     string
	limit    int
	ids      *domain.IDGenerator
	observer UseCaseObserver
}

func newWorkspace(uow db.UnitOfWork, ws Workspace, observers []UseCaseObserver) *workspace {
	name := ws.Name
	if name == "" {
		name = "default"
	}
	limit := ws.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	ids := ws.IDs
	if ids == nil {
		ids = domain.NewIDGenerator()
	}
	return &workspace{
		uow:      uow,
		name:     name,
		limit:    limit,
		ids:      ids,
		observer: useCaseObserverOrNoop(observers),
	}
}

// edit is the state handed to a mutation callback. The index is rebuilt by
// refresh after structural changes.
type edit struct {
	forest *domain.Forest
	idx    *domain.Index
	tx     db.DBTX
	fields map[string]any
}

func (e *edit) refresh() {
	e.idx = domain.NewIndex(e.forest)
}

func (w *workspace) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	w.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Workspace: w.name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// mutate runs fn against the stored forest inside one transaction. On
// success the forest is recomputed, the prior state is pushed onto the undo
// stack, the redo stack is cleared and the result is saved.
func (w *workspace) mutate(ctx context.Context, useCase string, fields map[string]any, fn func(ctx context.Context, e *edit) error) (err error) {
	startedAt := time.Now().UTC()
	if fields == nil {
		fields = map[string]any{}
	}
	fields["workspace"] = w.name
	defer func() {
		w.observe(ctx, useCase, startedAt, fields, err)
	}()

	return w.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		forests := repository.NewSQLiteForestRepo(tx)
		history := repository.NewSQLiteHistoryRepo(tx)

		f, err := forests.Load(ctx, w.name)
		if err != nil {
			return fmt.Errorf("loading forest: %w", err)
		}
		before, err := f.Clone()
		if err != nil {
			return fmt.Errorf("snapshotting forest: %w", err)
		}

		e := &edit{forest: f, tx: tx, fields: fields}
		e.refresh()
		w.ids.Observe(e.idx.MaxID())

		if err := fn(ctx, e); err != nil {
			if errors.Is(err, errNoChange) {
				fields["changed"] = false
				return nil
			}
			return err
		}

		report := scheduler.RecomputeAll(f)
		fields["rounds"] = report.Rounds
		fields["converged"] = report.Converged

		if err := history.Push(ctx, &repository.Snapshot{
			Workspace: w.name,
			Stack:     repository.StackUndo,
			Label:     useCase,
			Forest:    before,
		}); err != nil {
			return fmt.Errorf("recording undo: %w", err)
		}
		if err := history.Prune(ctx, w.name, repository.StackUndo, w.limit); err != nil {
			return fmt.Errorf("pruning undo: %w", err)
		}
		if err := history.Clear(ctx, w.name, repository.StackRedo); err != nil {
			return fmt.Errorf("clearing redo: %w", err)
		}
		return forests.Save(ctx, w.name, f)
	})
}

// load returns the stored forest with every derived field recomputed. The
// result is not saved.
func (w *workspace) load(ctx context.Context) (*domain.Forest, scheduler.Report, error) {
	var (
		f      *domain.Forest
		report scheduler.Report
	)
	err := w.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		f, err = repository.NewSQLiteForestRepo(tx).Load(ctx, w.name)
		return err
	})
	if err != nil {
		return nil, report, fmt.Errorf("loading forest: %w", err)
	}
	report = scheduler.RecomputeAll(f)
	return f, report, nil
}
