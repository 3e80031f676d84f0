package domain

import "fmt"

// Index is the id-keyed view over a forest. It is built once per recompute
// or edit and shared by every pass that needs to resolve ids.
type Index struct {
	items    map[ItemID]Item
	projects map[ItemID]*Project
	owner    map[ItemID]*Project
	tasks    map[ItemID]*Task // subtask id -> parent task
	phases   map[ItemID]*Phase
}

// NewIndex walks the forest and records every project, phase, task and
// subtask. Later duplicates of an id shadow earlier ones.
func NewIndex(f *Forest) *Index {
	idx := &Index{
		items:    make(map[ItemID]Item),
		projects: make(map[ItemID]*Project),
		owner:    make(map[ItemID]*Project),
		tasks:    make(map[ItemID]*Task),
		phases:   make(map[ItemID]*Phase),
	}
	if f == nil {
		return idx
	}
	for _, p := range f.Projects {
		idx.projects[p.ID] = p
		for _, ph := range p.Phases {
			idx.add(ph, p)
			for _, t := range ph.Tasks {
				idx.addTask(t, p)
				idx.phases[t.ID] = ph
			}
		}
		for _, t := range p.GeneralTasks {
			idx.addTask(t, p)
		}
	}
	return idx
}

func (idx *Index) add(it Item, p *Project) {
	idx.items[it.ItemID()] = it
	idx.owner[it.ItemID()] = p
}

func (idx *Index) addTask(t *Task, p *Project) {
	idx.add(t, p)
	for _, s := range t.Subtasks {
		idx.add(s, p)
		idx.tasks[s.ID] = t
	}
}

// Item resolves a phase, task or subtask.
func (idx *Index) Item(id ItemID) (Item, bool) {
	it, ok := idx.items[id]
	return it, ok
}

// Project resolves a project by id.
func (idx *Index) Project(id ItemID) (*Project, bool) {
	p, ok := idx.projects[id]
	return p, ok
}

// Owner returns the project an item belongs to.
func (idx *Index) Owner(id ItemID) *Project {
	return idx.owner[id]
}

// ParentTask returns the task a subtask belongs to.
func (idx *Index) ParentTask(subtaskID ItemID) *Task {
	return idx.tasks[subtaskID]
}

// ParentPhase returns the phase a task belongs to, or nil for general tasks.
func (idx *Index) ParentPhase(taskID ItemID) *Phase {
	return idx.phases[taskID]
}

// Len counts schedulable items (phases, tasks, subtasks).
func (idx *Index) Len() int {
	return len(idx.items)
}

// Pinned reports whether propagation must leave the item alone: the item
// itself or its project is locked.
func (idx *Index) Pinned(it Item) bool {
	if it.Sched().Locked {
		return true
	}
	if p := idx.owner[it.ItemID()]; p != nil && p.Locked {
		return true
	}
	return false
}

// Name returns a display name for any id, including projects.
func (idx *Index) Name(id ItemID) string {
	if it, ok := idx.items[id]; ok {
		return it.DisplayName()
	}
	if p, ok := idx.projects[id]; ok {
		return p.Name
	}
	return fmt.Sprintf("#%d", id)
}

// KindOf reports the kind of any id.
func (idx *Index) KindOf(id ItemID) (ItemKind, bool) {
	if it, ok := idx.items[id]; ok {
		return it.Kind(), true
	}
	if _, ok := idx.projects[id]; ok {
		return KindProject, true
	}
	return "", false
}

// MaxID returns the largest id present, or 0 for an empty forest.
func (idx *Index) MaxID() ItemID {
	var highest ItemID
	for id := range idx.items {
		highest = max(highest, id)
	}
	for id := range idx.projects {
		highest = max(highest, id)
	}
	return highest
}
