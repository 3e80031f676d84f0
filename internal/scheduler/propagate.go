package scheduler

import (
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// Propagate moves every unpinned item with a predecessor so that it starts
// on the predecessor's resolved end date, keeping its previous duration. It
// reports whether any field changed.
//
// Dangling predecessors and predecessors without an end date leave the item
// untouched for this pass. Locked items, and items in locked projects, never
// move.
func Propagate(f *domain.Forest, idx *domain.Index) bool {
	changed := false
	visit := func(it domain.Item) {
		if propagateItem(idx, it) {
			changed = true
		}
	}
	for _, p := range f.Projects {
		for _, ph := range p.Phases {
			visit(ph)
			for _, t := range ph.Tasks {
				visitTask(t, visit)
			}
		}
		for _, t := range p.GeneralTasks {
			visitTask(t, visit)
		}
	}
	return changed
}

func visitTask(t *domain.Task, visit func(domain.Item)) {
	visit(t)
	for _, s := range t.Subtasks {
		visit(s)
	}
}

func propagateItem(idx *domain.Index, it domain.Item) bool {
	s := it.Sched()
	if s.PredecessorID == nil || idx.Pinned(it) {
		return false
	}
	pred, ok := idx.Item(*s.PredecessorID)
	if !ok {
		return false
	}
	predEnd := pred.Sched().ResolvedEnd()
	if predEnd == nil {
		return false
	}

	newStart, newEnd := shift(s.StartDate, s.EndDate, *predEnd)
	changed := setDate(&s.StartDate, newStart)
	changed = setDate(&s.EndDate, newEnd) || changed
	changed = setBool(&s.IsDriven, true) || changed
	changed = setString(&s.DriverName, pred.DisplayName()) || changed
	return changed
}

// shift moves a range to begin at to. Undated ranges only get a start; an
// end-before-start range keeps its negative duration.
func shift(start, end *time.Time, to time.Time) (*time.Time, *time.Time) {
	if start == nil || end == nil {
		return &to, end
	}
	e := to.Add(end.Sub(*start))
	return &to, &e
}
