package testutil

import (
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// Epoch is day 0 for fixtures. It is a Wednesday.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Day returns Epoch plus n days.
func Day(n int) time.Time {
	return Epoch.AddDate(0, 0, n)
}

// DayPtr returns a pointer to Day(n).
func DayPtr(n int) *time.Time {
	d := Day(n)
	return &d
}

// Schedule options, shared by phases, tasks and subtasks.
type ScheduleOption func(*domain.Schedule)

func WithDays(start, end int) ScheduleOption {
	return func(s *domain.Schedule) {
		s.StartDate = DayPtr(start)
		s.EndDate = DayPtr(end)
	}
}

func WithEndDay(end int) ScheduleOption {
	return func(s *domain.Schedule) {
		s.EndDate = DayPtr(end)
	}
}

func WithStartDay(start int) ScheduleOption {
	return func(s *domain.Schedule) {
		s.StartDate = DayPtr(start)
	}
}

func Locked() ScheduleOption {
	return func(s *domain.Schedule) {
		s.Locked = true
	}
}

// DependsOn sets the predecessor without maintaining the inverse edge. Use
// Wire afterwards to rebuild dependents across the forest.
func DependsOn(id domain.ItemID) ScheduleOption {
	return func(s *domain.Schedule) {
		s.PredecessorID = &id
	}
}

func NewTestProject(id domain.ItemID, name string, phases ...*domain.Phase) *domain.Project {
	return &domain.Project{ID: id, Name: name, Priority: 5, Phases: phases}
}

func NewTestPhase(id domain.ItemID, name string, opts ...ScheduleOption) *domain.Phase {
	ph := &domain.Phase{ID: id, Name: name}
	for _, opt := range opts {
		opt(&ph.Schedule)
	}
	return ph
}

func NewTestTask(id domain.ItemID, name string, opts ...ScheduleOption) *domain.Task {
	t := &domain.Task{ID: id, Name: name}
	for _, opt := range opts {
		opt(&t.Schedule)
	}
	return t
}

func NewTestSubtask(id domain.ItemID, name string, completed bool, opts ...ScheduleOption) *domain.Subtask {
	s := &domain.Subtask{ID: id, Name: name, Completed: completed}
	for _, opt := range opts {
		opt(&s.Schedule)
	}
	return s
}

// NewTestForest wraps projects in a forest and fills in dependents from the
// predecessor references.
func NewTestForest(projects ...*domain.Project) *domain.Forest {
	f := &domain.Forest{Projects: projects}
	Wire(f)
	return f
}

// Wire rebuilds every dependents list from the predecessor references.
func Wire(f *domain.Forest) {
	domain.RebuildDependents(f)
}

// ChainForest builds the canonical A → B → C chain: A ends on day 10, B lasts
// five days, C lasts three.
func ChainForest() *domain.Forest {
	return NewTestForest(NewTestProject(1, "Launch",
		NewTestPhase(10, "A", WithDays(0, 10)),
		NewTestPhase(11, "B", WithDays(0, 5), DependsOn(10)),
		NewTestPhase(12, "C", WithDays(0, 3), DependsOn(11)),
	))
}
