package scheduler

import (
	"math"
	"slices"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// Report describes one RecomputeAll run.
type Report struct {
	Items  int // phases, tasks and subtasks in the forest
	Rounds int
	// Converged is set when a round left the forest exactly as the previous
	// round did. It stays false when the budget ran out first: a cycle kept
	// dates moving, or the longest chain needed every round.
	Converged bool
}

// RecomputeAll brings every derived field of f up to date, mutating f in
// place. Each round is a full Rollup followed by a full Propagate; a chain of
// length L needs L rounds, so the budget is one round per item. Cycles are
// not detected here: the budget bounds the work and the dates are left where
// the last round put them.
//
// A round is a pure function of the tree, so once a round reproduces the
// previous state the remaining rounds could not change anything and are
// skipped. The run ends on a Propagate; the closing refresh only rewrites
// derived fields, so driven items keep the dates their predecessor gave them.
func RecomputeAll(f *domain.Forest) Report {
	idx := domain.NewIndex(f)
	r := Report{Items: idx.Len()}
	budget := max(1, r.Items)
	prev := stateOf(f)
	for r.Rounds < budget {
		r.Rounds++
		Rollup(f)
		Propagate(f, idx)
		cur := stateOf(f)
		if slices.Equal(prev, cur) {
			r.Converged = true
			break
		}
		prev = cur
	}
	refreshDerived(f)
	return r
}

// stateOf flattens every field a round can write. Comparing whole vectors
// rather than per-pass change flags matters for tasks with subtasks and a
// predecessor: rollup resets their dates and propagation shifts them again
// every round, yet the state at the end of each round is identical.
func stateOf(f *domain.Forest) []uint64 {
	var st []uint64
	date := func(t *time.Time) {
		if t == nil {
			st = append(st, 0, 0, 0)
			return
		}
		st = append(st, 1, uint64(t.Unix()), uint64(t.Nanosecond()))
	}
	flag := func(b bool) {
		if b {
			st = append(st, 1)
		} else {
			st = append(st, 0)
		}
	}
	sched := func(s *domain.Schedule) {
		date(s.StartDate)
		date(s.EndDate)
		date(s.EffectiveStart)
		date(s.EffectiveEnd)
		flag(s.IsDriven)
		st = append(st, uint64(len(s.DriverName)))
		for _, r := range s.DriverName {
			st = append(st, uint64(r))
		}
	}
	task := func(t *domain.Task) {
		sched(&t.Schedule)
		flag(t.Completed)
		st = append(st, math.Float64bits(t.Progress))
		for _, s := range t.Subtasks {
			sched(&s.Schedule)
		}
	}
	for _, p := range f.Projects {
		st = append(st, math.Float64bits(p.OverallProgress), math.Float64bits(p.TotalPhaseProgress))
		date(p.EffectiveStart)
		date(p.EffectiveEnd)
		for _, ph := range p.Phases {
			sched(&ph.Schedule)
			flag(ph.Completed)
			st = append(st, math.Float64bits(ph.Progress))
			for _, t := range ph.Tasks {
				task(t)
			}
		}
		for _, t := range p.GeneralTasks {
			task(t)
		}
	}
	return st
}
