package domain

import (
	"fmt"
	"slices"
)

// Link records predecessorID as the single predecessor of successorID,
// replacing any earlier predecessor. The edge is rejected when it would close
// a cycle, so the scheduler never sees one from this path.
func Link(idx *Index, successorID, predecessorID ItemID) error {
	if successorID == predecessorID {
		return ErrSelfDependency
	}
	succ, err := resolveLinkable(idx, successorID)
	if err != nil {
		return fmt.Errorf("successor: %w", err)
	}
	pred, err := resolveLinkable(idx, predecessorID)
	if err != nil {
		return fmt.Errorf("predecessor: %w", err)
	}
	// Rollup feeds a child's dates into its parent, so an edge along the
	// hierarchy loops through rollup even without a predecessor chain.
	if Nested(idx, successorID, predecessorID) {
		return fmt.Errorf("%s -> %s: %w", pred.DisplayName(), succ.DisplayName(), ErrCycle)
	}

	// With one predecessor per item the ancestry is a chain; walking it from
	// the new predecessor finds the successor iff the edge closes a loop.
	seen := map[ItemID]bool{predecessorID: true}
	for cur := pred; ; {
		up := cur.Sched().PredecessorID
		if up == nil || seen[*up] {
			break
		}
		if *up == successorID {
			return fmt.Errorf("%s -> %s: %w", pred.DisplayName(), succ.DisplayName(), ErrCycle)
		}
		seen[*up] = true
		next, ok := idx.Item(*up)
		if !ok {
			break
		}
		cur = next
	}

	Unlink(idx, successorID)
	id := predecessorID
	succ.Sched().PredecessorID = &id
	ps := pred.Sched()
	if !slices.Contains(ps.Dependents, successorID) {
		ps.Dependents = append(ps.Dependents, successorID)
	}
	return nil
}

// Unlink removes the predecessor edge of successorID in both directions.
// Unknown ids and items without a predecessor are a no-op.
func Unlink(idx *Index, successorID ItemID) {
	succ, ok := idx.Item(successorID)
	if !ok {
		return
	}
	s := succ.Sched()
	if s.PredecessorID == nil {
		return
	}
	if pred, ok := idx.Item(*s.PredecessorID); ok {
		ps := pred.Sched()
		ps.Dependents = slices.DeleteFunc(ps.Dependents, func(id ItemID) bool { return id == successorID })
	}
	s.PredecessorID = nil
	s.IsDriven = false
	s.DriverName = ""
}

// Sever drops every edge that touches any of ids, scanning the whole index so
// asymmetric dependents lists cannot leave a dangling reference behind.
func Sever(idx *Index, ids []ItemID) {
	removed := make(map[ItemID]bool, len(ids))
	for _, id := range ids {
		removed[id] = true
	}
	for id, it := range idx.items {
		s := it.Sched()
		if s.PredecessorID != nil && removed[*s.PredecessorID] {
			s.PredecessorID = nil
			s.IsDriven = false
			s.DriverName = ""
		}
		if removed[id] {
			s.PredecessorID = nil
		}
		s.Dependents = slices.DeleteFunc(s.Dependents, func(d ItemID) bool { return removed[d] })
	}
}

// Nested reports whether one of a and b contains the other: a phase and its
// tasks or subtasks, or a task and its subtasks.
func Nested(idx *Index, a, b ItemID) bool {
	return slices.Contains(SubtreeIDs(idx, a)[1:], b) || slices.Contains(SubtreeIDs(idx, b)[1:], a)
}

func resolveLinkable(idx *Index, id ItemID) (Item, error) {
	if it, ok := idx.Item(id); ok {
		return it, nil
	}
	if _, ok := idx.Project(id); ok {
		return nil, ErrProjectLink
	}
	return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
}

// RebuildDependents recomputes every dependents list from the predecessor
// references. Predecessors that do not resolve contribute nothing.
func RebuildDependents(f *Forest) {
	idx := NewIndex(f)
	items := f.Items()
	for _, it := range items {
		it.Sched().Dependents = nil
	}
	for _, it := range items {
		pid := it.Sched().PredecessorID
		if pid == nil {
			continue
		}
		if pred, ok := idx.Item(*pid); ok {
			pred.Sched().Dependents = append(pred.Sched().Dependents, it.ItemID())
		}
	}
}
