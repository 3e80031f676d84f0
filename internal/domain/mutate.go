package domain

import (
	"fmt"
	"slices"
)

// AddProject appends p to the forest.
func (f *Forest) AddProject(p *Project) error {
	if p.Priority == 0 {
		p.Priority = 5
	}
	if p.Priority < 1 || p.Priority > 10 {
		return ErrInvalidPriority
	}
	f.Projects = append(f.Projects, p)
	return nil
}

// AddPhase appends ph to the project identified by projectID.
func (f *Forest) AddPhase(idx *Index, projectID ItemID, ph *Phase) error {
	p, ok := idx.Project(projectID)
	if !ok {
		return fmt.Errorf("project %d: %w", projectID, ErrNotFound)
	}
	p.Phases = append(p.Phases, ph)
	return nil
}

// AddTask appends t to a phase, or to the project's general tasks when
// parentID names a project.
func (f *Forest) AddTask(idx *Index, parentID ItemID, t *Task) error {
	if p, ok := idx.Project(parentID); ok {
		p.GeneralTasks = append(p.GeneralTasks, t)
		return nil
	}
	it, ok := idx.Item(parentID)
	if !ok {
		return fmt.Errorf("parent %d: %w", parentID, ErrNotFound)
	}
	ph, ok := it.(*Phase)
	if !ok {
		return fmt.Errorf("tasks belong to a project or phase, %d is a %s: %w", parentID, it.Kind(), ErrWrongKind)
	}
	ph.Tasks = append(ph.Tasks, t)
	return nil
}

// AddSubtask appends s to the task identified by taskID.
func (f *Forest) AddSubtask(idx *Index, taskID ItemID, s *Subtask) error {
	it, ok := idx.Item(taskID)
	if !ok {
		return fmt.Errorf("task %d: %w", taskID, ErrNotFound)
	}
	t, ok := it.(*Task)
	if !ok {
		return fmt.Errorf("subtasks belong to a task, %d is a %s: %w", taskID, it.Kind(), ErrWrongKind)
	}
	t.Subtasks = append(t.Subtasks, s)
	return nil
}

// SubtreeIDs lists id and every schedulable id beneath it. For a project the
// project id itself is included.
func SubtreeIDs(idx *Index, id ItemID) []ItemID {
	ids := []ItemID{id}
	addTask := func(t *Task) {
		ids = append(ids, t.ID)
		for _, s := range t.Subtasks {
			ids = append(ids, s.ID)
		}
	}
	if p, ok := idx.Project(id); ok {
		for _, ph := range p.Phases {
			ids = append(ids, ph.ID)
			for _, t := range ph.Tasks {
				addTask(t)
			}
		}
		for _, t := range p.GeneralTasks {
			addTask(t)
		}
		return ids
	}
	it, ok := idx.Item(id)
	if !ok {
		return ids
	}
	switch v := it.(type) {
	case *Phase:
		for _, t := range v.Tasks {
			addTask(t)
		}
	case *Task:
		for _, s := range v.Subtasks {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// Remove deletes the item with the given id and its subtree after severing
// every dependency edge that references a removed id.
func (f *Forest) Remove(idx *Index, id ItemID) error {
	kind, ok := idx.KindOf(id)
	if !ok {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	Sever(idx, SubtreeIDs(idx, id))

	switch kind {
	case KindProject:
		f.Projects = slices.DeleteFunc(f.Projects, func(p *Project) bool { return p.ID == id })
	case KindPhase:
		p := idx.Owner(id)
		p.Phases = slices.DeleteFunc(p.Phases, func(ph *Phase) bool { return ph.ID == id })
	case KindTask:
		match := func(t *Task) bool { return t.ID == id }
		if ph := idx.ParentPhase(id); ph != nil {
			ph.Tasks = slices.DeleteFunc(ph.Tasks, match)
		} else {
			p := idx.Owner(id)
			p.GeneralTasks = slices.DeleteFunc(p.GeneralTasks, match)
		}
	case KindSubtask:
		t := idx.ParentTask(id)
		t.Subtasks = slices.DeleteFunc(t.Subtasks, func(s *Subtask) bool { return s.ID == id })
	}
	return nil
}
