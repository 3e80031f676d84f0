package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/repository"
)

type historyService struct {
	ws *workspace
}

func NewHistoryService(uow db.UnitOfWork, ws Workspace, observers ...UseCaseObserver) HistoryService {
	return &historyService{ws: newWorkspace(uow, ws, observers)}
}

func (s *historyService) Undo(ctx context.Context) (string, error) {
	return s.step(ctx, "undo", repository.StackUndo, repository.StackRedo, domain.ErrNothingToUndo)
}

func (s *historyService) Redo(ctx context.Context) (string, error) {
	return s.step(ctx, "redo", repository.StackRedo, repository.StackUndo, domain.ErrNothingToRedo)
}

// step pops the newest snapshot from one stack, saves the current forest on
// the other and restores the popped state.
func (s *historyService) step(ctx context.Context, useCase string, from, to repository.HistoryStack, empty error) (label string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"workspace": s.ws.name}
	defer func() {
		s.ws.observe(ctx, useCase, startedAt, fields, err)
	}()

	err = s.ws.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		forests := repository.NewSQLiteForestRepo(tx)
		history := repository.NewSQLiteHistoryRepo(tx)

		snap, err := history.Pop(ctx, s.ws.name, from)
		if errors.Is(err, domain.ErrNotFound) {
			return empty
		}
		if err != nil {
			return fmt.Errorf("reading %s stack: %w", from, err)
		}
		current, err := forests.Load(ctx, s.ws.name)
		if err != nil {
			return fmt.Errorf("loading forest: %w", err)
		}
		if err := history.Push(ctx, &repository.Snapshot{
			Workspace: s.ws.name,
			Stack:     to,
			Label:     snap.Label,
			Forest:    current,
		}); err != nil {
			return fmt.Errorf("recording %s: %w", to, err)
		}
		if err := history.Prune(ctx, s.ws.name, to, s.ws.limit); err != nil {
			return fmt.Errorf("pruning %s: %w", to, err)
		}
		label = snap.Label
		fields["label"] = label
		return forests.Save(ctx, s.ws.name, snap.Forest)
	})
	return label, err
}

func (s *historyService) Depth(ctx context.Context) (app.HistoryDepth, error) {
	var depth app.HistoryDepth
	err := s.ws.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		history := repository.NewSQLiteHistoryRepo(tx)
		var err error
		if depth.Undo, err = history.Count(ctx, s.ws.name, repository.StackUndo); err != nil {
			return err
		}
		depth.Redo, err = history.Count(ctx, s.ws.name, repository.StackRedo)
		return err
	})
	return depth, err
}
