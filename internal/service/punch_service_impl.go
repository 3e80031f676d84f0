package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/punchlist"
	"github.com/alexanderramin/waypoint/internal/repository"
)

type punchService struct {
	ws *workspace
}

func NewPunchService(uow db.UnitOfWork, ws Workspace, observers ...UseCaseObserver) PunchService {
	return &punchService{ws: newWorkspace(uow, ws, observers)}
}

func (s *punchService) Get(ctx context.Context) (string, error) {
	var body string
	err := s.ws.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		body, err = repository.NewSQLitePunchListRepo(tx).Get(ctx, s.ws.name)
		return err
	})
	return body, err
}

func (s *punchService) Append(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return fmt.Errorf("punch list line: %w", domain.ErrNameRequired)
	}
	return s.edit(ctx, "punch-append", func(doc *punchlist.Document) {
		doc.Append(line)
	})
}

func (s *punchService) Replace(ctx context.Context, body string) error {
	return s.edit(ctx, "punch-replace", func(doc *punchlist.Document) {
		*doc = *punchlist.Parse(body)
	})
}

func (s *punchService) edit(ctx context.Context, useCase string, fn func(doc *punchlist.Document)) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"workspace": s.ws.name}
	defer func() {
		s.ws.observe(ctx, useCase, startedAt, fields, err)
	}()

	return s.ws.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePunchListRepo(tx)
		body, err := repo.Get(ctx, s.ws.name)
		if err != nil {
			return err
		}
		doc := punchlist.Parse(body)
		fn(doc)
		open, done := doc.Stats()
		fields["open"] = open
		fields["done"] = done
		return repo.Save(ctx, s.ws.name, doc.Render())
	})
}

// Handoff files every open top-level punch list item as a task under
// targetID (a project or phase). Nested items become subtasks. The filed
// lines are then checked off, in the same transaction, so a second handoff
// finds nothing new.
func (s *punchService) Handoff(ctx context.Context, targetID domain.ItemID) (*app.HandoffResult, error) {
	result := &app.HandoffResult{TargetID: targetID}
	fields := map[string]any{"target": targetID}
	err := s.ws.mutate(ctx, "punch-handoff", fields, func(ctx context.Context, e *edit) error {
		if p, ok := e.idx.Project(targetID); ok {
			result.TargetName = p.Name
		} else {
			it, ok := e.idx.Item(targetID)
			if !ok {
				return fmt.Errorf("target %d: %w", targetID, domain.ErrNotFound)
			}
			if it.Kind() != domain.KindPhase {
				return fmt.Errorf("handoff target must be a project or phase, %d is a %s: %w", targetID, it.Kind(), domain.ErrWrongKind)
			}
			result.TargetName = it.DisplayName()
		}

		repo := repository.NewSQLitePunchListRepo(e.tx)
		body, err := repo.Get(ctx, s.ws.name)
		if err != nil {
			return err
		}
		doc := punchlist.Parse(body)
		entries := doc.Open()
		if len(entries) == 0 {
			return errNoChange
		}

		for _, entry := range entries {
			t := taskFromEntry(entry, s.ws.ids)
			if err := e.forest.AddTask(e.idx, targetID, t); err != nil {
				return err
			}
			result.Tasks++
			result.Subtasks += len(t.Subtasks)
			result.Created = append(result.Created, t.ID)

			entry.Line.SetChecked(true)
			for _, child := range entry.Children {
				child.SetChecked(true)
			}
		}
		fields["tasks"] = result.Tasks
		fields["subtasks"] = result.Subtasks
		return repo.Save(ctx, s.ws.name, doc.Render())
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func taskFromEntry(entry *punchlist.Entry, ids *domain.IDGenerator) *domain.Task {
	l := entry.Line
	t := &domain.Task{
		ID:       ids.Next(),
		Name:     l.Title,
		Delegate: l.Delegate,
		Schedule: domain.Schedule{StartDate: l.Start, EndDate: l.Due},
	}
	for _, tag := range l.Tags {
		domain.AddTag(&t.Tags, tag)
	}
	for _, child := range entry.Children {
		t.Subtasks = append(t.Subtasks, &domain.Subtask{
			ID:        ids.Next(),
			Name:      child.Title,
			Completed: child.Checked,
			Schedule:  domain.Schedule{StartDate: child.Start, EndDate: child.Due},
		})
	}
	return t
}
