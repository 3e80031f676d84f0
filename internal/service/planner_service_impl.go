package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/google/uuid"
)

type plannerService struct {
	ws *workspace
}

func NewPlannerService(uow db.UnitOfWork, ws Workspace, observers ...UseCaseObserver) PlannerService {
	return &plannerService{ws: newWorkspace(uow, ws, observers)}
}

func (s *plannerService) Forest(ctx context.Context) (*domain.Forest, error) {
	f, _, err := s.ws.load(ctx)
	return f, err
}

func (s *plannerService) AddProject(ctx context.Context, draft app.ProjectDraft) (*domain.Project, error) {
	name, err := draftName(draft.Name)
	if err != nil {
		return nil, err
	}
	if err := checkRange(draft.Start, draft.End); err != nil {
		return nil, err
	}

	var created *domain.Project
	fields := map[string]any{"name": name}
	err = s.ws.mutate(ctx, "add-project", fields, func(ctx context.Context, e *edit) error {
		p := &domain.Project{
			ID:        s.ws.ids.Next(),
			Name:      name,
			StartDate: draft.Start,
			EndDate:   draft.End,
			Priority:  draft.Priority,
		}
		for _, tag := range draft.Tags {
			domain.AddTag(&p.Tags, tag)
		}
		if err := e.forest.AddProject(p); err != nil {
			return err
		}
		fields["id"] = p.ID
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *plannerService) AddPhase(ctx context.Context, projectID domain.ItemID, draft app.ItemDraft) (domain.ItemID, error) {
	return s.addItem(ctx, "add-phase", draft, func(e *edit, sched domain.Schedule, id domain.ItemID) error {
		ph := &domain.Phase{ID: id, Name: draft.Name, Schedule: sched}
		for _, tag := range draft.Tags {
			domain.AddTag(&ph.Tags, tag)
		}
		return e.forest.AddPhase(e.idx, projectID, ph)
	})
}

func (s *plannerService) AddTask(ctx context.Context, parentID domain.ItemID, draft app.ItemDraft) (domain.ItemID, error) {
	return s.addItem(ctx, "add-task", draft, func(e *edit, sched domain.Schedule, id domain.ItemID) error {
		t := &domain.Task{
			ID:        id,
			Name:      draft.Name,
			Completed: draft.Completed,
			Delegate:  strings.TrimPrefix(strings.TrimSpace(draft.Delegate), "@"),
			Schedule:  sched,
		}
		for _, tag := range draft.Tags {
			domain.AddTag(&t.Tags, tag)
		}
		return e.forest.AddTask(e.idx, parentID, t)
	})
}

func (s *plannerService) AddSubtask(ctx context.Context, taskID domain.ItemID, draft app.ItemDraft) (domain.ItemID, error) {
	return s.addItem(ctx, "add-subtask", draft, func(e *edit, sched domain.Schedule, id domain.ItemID) error {
		return e.forest.AddSubtask(e.idx, taskID, &domain.Subtask{
			ID:        id,
			Name:      draft.Name,
			Completed: draft.Completed,
			Schedule:  sched,
		})
	})
}

// addItem validates the shared draft fields, lets attach place the new item
// and then links its predecessor, if any.
func (s *plannerService) addItem(ctx context.Context, useCase string, draft app.ItemDraft, attach func(e *edit, sched domain.Schedule, id domain.ItemID) error) (domain.ItemID, error) {
	name, err := draftName(draft.Name)
	if err != nil {
		return 0, err
	}
	draft.Name = name
	if err := checkRange(draft.Start, draft.End); err != nil {
		return 0, err
	}

	var id domain.ItemID
	fields := map[string]any{"name": name}
	err = s.ws.mutate(ctx, useCase, fields, func(ctx context.Context, e *edit) error {
		id = s.ws.ids.Next()
		sched := domain.Schedule{
			StartDate: draft.Start,
			EndDate:   draft.End,
			Locked:    draft.Locked,
		}
		if err := attach(e, sched, id); err != nil {
			return err
		}
		fields["id"] = id
		if draft.PredecessorID == nil {
			return nil
		}
		e.refresh()
		fields["predecessor"] = *draft.PredecessorID
		return domain.Link(e.idx, id, *draft.PredecessorID)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *plannerService) Rename(ctx context.Context, id domain.ItemID, name string) error {
	return s.ws.mutate(ctx, "rename", map[string]any{"id": id}, func(ctx context.Context, e *edit) error {
		return e.idx.Rename(id, name)
	})
}

func (s *plannerService) SetDates(ctx context.Context, id domain.ItemID, start, end *time.Time) error {
	if err := checkRange(start, end); err != nil {
		return err
	}
	return s.ws.mutate(ctx, "set-dates", map[string]any{"id": id}, func(ctx context.Context, e *edit) error {
		if p, ok := e.idx.Project(id); ok {
			if p.Locked {
				return fmt.Errorf("project %q: %w", p.Name, domain.ErrLocked)
			}
			p.StartDate, p.EndDate = start, end
			return nil
		}
		it, err := resolveItem(e.idx, id)
		if err != nil {
			return err
		}
		if e.idx.Pinned(it) {
			return fmt.Errorf("%s %q: %w", it.Kind(), it.DisplayName(), domain.ErrLocked)
		}
		if t, ok := it.(*domain.Task); ok && !t.IsLeaf() {
			return fmt.Errorf("task %q: %w", t.Name, domain.ErrHasSubtasks)
		}
		sched := it.Sched()
		sched.StartDate, sched.EndDate = start, end
		return nil
	})
}

func (s *plannerService) SetCompleted(ctx context.Context, id domain.ItemID, done bool) error {
	return s.ws.mutate(ctx, "set-completed", map[string]any{"id": id, "done": done}, func(ctx context.Context, e *edit) error {
		if _, ok := e.idx.Project(id); ok {
			return fmt.Errorf("project completion is derived: %w", domain.ErrWrongKind)
		}
		it, err := resolveItem(e.idx, id)
		if err != nil {
			return err
		}
		switch v := it.(type) {
		case *domain.Subtask:
			if v.Completed == done {
				return errNoChange
			}
			v.Completed = done
		case *domain.Task:
			if !v.IsLeaf() {
				return fmt.Errorf("task %q: %w", v.Name, domain.ErrHasSubtasks)
			}
			if v.Completed == done {
				return errNoChange
			}
			v.Completed = done
		default:
			return fmt.Errorf("%s completion is derived: %w", it.Kind(), domain.ErrWrongKind)
		}
		return nil
	})
}

func (s *plannerService) SetLocked(ctx context.Context, id domain.ItemID, locked bool) error {
	return s.ws.mutate(ctx, "set-locked", map[string]any{"id": id, "locked": locked}, func(ctx context.Context, e *edit) error {
		if p, ok := e.idx.Project(id); ok {
			if p.Locked == locked {
				return errNoChange
			}
			p.Locked = locked
			return nil
		}
		it, err := resolveItem(e.idx, id)
		if err != nil {
			return err
		}
		if it.Sched().Locked == locked {
			return errNoChange
		}
		it.Sched().Locked = locked
		return nil
	})
}

func (s *plannerService) SetPriority(ctx context.Context, projectID domain.ItemID, priority int) error {
	if priority < 1 || priority > 10 {
		return domain.ErrInvalidPriority
	}
	return s.withProject(ctx, "set-priority", projectID, func(p *domain.Project) error {
		if p.Priority == priority {
			return errNoChange
		}
		p.Priority = priority
		return nil
	})
}

func (s *plannerService) SetExcludeFromStats(ctx context.Context, projectID domain.ItemID, exclude bool) error {
	return s.withProject(ctx, "set-exclude-from-stats", projectID, func(p *domain.Project) error {
		if p.ExcludeFromStats == exclude {
			return errNoChange
		}
		p.ExcludeFromStats = exclude
		return nil
	})
}

func (s *plannerService) withProject(ctx context.Context, useCase string, projectID domain.ItemID, fn func(p *domain.Project) error) error {
	return s.ws.mutate(ctx, useCase, map[string]any{"id": projectID}, func(ctx context.Context, e *edit) error {
		p, ok := e.idx.Project(projectID)
		if !ok {
			if kind, found := e.idx.KindOf(projectID); found {
				return fmt.Errorf("%d is a %s: %w", projectID, kind, domain.ErrWrongKind)
			}
			return fmt.Errorf("project %d: %w", projectID, domain.ErrNotFound)
		}
		return fn(p)
	})
}

func (s *plannerService) Tag(ctx context.Context, id domain.ItemID, tag string) error {
	return s.ws.mutate(ctx, "tag", map[string]any{"id": id, "tag": tag}, func(ctx context.Context, e *edit) error {
		tags, _, err := e.idx.Annotations(id)
		if err != nil {
			return err
		}
		if !domain.AddTag(tags, tag) {
			return errNoChange
		}
		return nil
	})
}

func (s *plannerService) Untag(ctx context.Context, id domain.ItemID, tag string) error {
	return s.ws.mutate(ctx, "untag", map[string]any{"id": id, "tag": tag}, func(ctx context.Context, e *edit) error {
		tags, _, err := e.idx.Annotations(id)
		if err != nil {
			return err
		}
		if !domain.RemoveTag(tags, tag) {
			return errNoChange
		}
		return nil
	})
}

func (s *plannerService) Delegate(ctx context.Context, taskID domain.ItemID, who string) error {
	who = strings.TrimPrefix(strings.TrimSpace(who), "@")
	return s.ws.mutate(ctx, "delegate", map[string]any{"id": taskID}, func(ctx context.Context, e *edit) error {
		it, err := resolveItem(e.idx, taskID)
		if err != nil {
			return err
		}
		t, ok := it.(*domain.Task)
		if !ok {
			return fmt.Errorf("only tasks can be delegated, %d is a %s: %w", taskID, it.Kind(), domain.ErrWrongKind)
		}
		if t.Delegate == who {
			return errNoChange
		}
		t.Delegate = who
		return nil
	})
}

func (s *plannerService) AddComment(ctx context.Context, id domain.ItemID, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("comment body is required")
	}
	c := &domain.Comment{
		ID:        uuid.New().String(),
		Body:      body,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	err := s.ws.mutate(ctx, "add-comment", map[string]any{"id": id}, func(ctx context.Context, e *edit) error {
		_, comments, err := e.idx.Annotations(id)
		if err != nil {
			return err
		}
		*comments = append(*comments, *c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *plannerService) Link(ctx context.Context, successorID, predecessorID domain.ItemID) error {
	fields := map[string]any{"successor": successorID, "predecessor": predecessorID}
	return s.ws.mutate(ctx, "link", fields, func(ctx context.Context, e *edit) error {
		return domain.Link(e.idx, successorID, predecessorID)
	})
}

func (s *plannerService) Unlink(ctx context.Context, successorID domain.ItemID) error {
	return s.ws.mutate(ctx, "unlink", map[string]any{"successor": successorID}, func(ctx context.Context, e *edit) error {
		it, err := resolveItem(e.idx, successorID)
		if err != nil {
			return err
		}
		if it.Sched().PredecessorID == nil {
			return errNoChange
		}
		// The successor keeps the dates it was last driven to.
		domain.Unlink(e.idx, successorID)
		return nil
	})
}

func (s *plannerService) Delete(ctx context.Context, id domain.ItemID) error {
	fields := map[string]any{"id": id}
	return s.ws.mutate(ctx, "delete", fields, func(ctx context.Context, e *edit) error {
		fields["removed"] = len(domain.SubtreeIDs(e.idx, id))
		return e.forest.Remove(e.idx, id)
	})
}

func draftName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	return name, nil
}

func checkRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// resolveItem looks up a phase, task or subtask, distinguishing project ids
// from unknown ones.
func resolveItem(idx *domain.Index, id domain.ItemID) (domain.Item, error) {
	if it, ok := idx.Item(id); ok {
		return it, nil
	}
	if _, ok := idx.Project(id); ok {
		return nil, fmt.Errorf("%d is a project: %w", id, domain.ErrWrongKind)
	}
	return nil, fmt.Errorf("id %d: %w", id, domain.ErrNotFound)
}
