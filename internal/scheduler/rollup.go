package scheduler

import (
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// Rollup recomputes progress, completion and effective date ranges bottom-up
// (subtask → task → phase → project) for the whole forest. It reports whether
// any field changed.
//
// Averages are unweighted: a phase's progress is the plain mean of its tasks'
// progress regardless of how many subtasks each task has.
func Rollup(f *domain.Forest) bool {
	return rollup(f, true)
}

// refreshDerived is Rollup without writing the own dates of tasks that have
// subtasks, so a shift applied by the last Propagate stays in place.
func refreshDerived(f *domain.Forest) bool {
	return rollup(f, false)
}

func rollup(f *domain.Forest, taskDates bool) bool {
	changed := false
	for _, p := range f.Projects {
		if rollupProject(p, taskDates) {
			changed = true
		}
	}
	return changed
}

func rollupProject(p *domain.Project, taskDates bool) bool {
	changed := false
	for _, t := range p.GeneralTasks {
		changed = rollupTask(t, taskDates) || changed
	}

	starts := []*time.Time{p.StartDate}
	ends := []*time.Time{p.EndDate}
	var total float64
	for _, ph := range p.Phases {
		changed = rollupPhase(ph, taskDates) || changed
		total += ph.Progress
		starts = append(starts, ph.EffectiveStart)
		ends = append(ends, ph.EffectiveEnd)
	}
	for _, t := range p.GeneralTasks {
		starts = append(starts, t.EffectiveStart)
		ends = append(ends, t.EffectiveEnd)
	}

	var overall float64
	if len(p.Phases) > 0 {
		overall = total / float64(len(p.Phases))
	}
	changed = setFloat(&p.TotalPhaseProgress, total) || changed
	changed = setFloat(&p.OverallProgress, overall) || changed
	changed = setDate(&p.EffectiveStart, domain.EarliestDate(starts...)) || changed
	changed = setDate(&p.EffectiveEnd, domain.LatestDate(ends...)) || changed
	return changed
}

func rollupPhase(ph *domain.Phase, taskDates bool) bool {
	changed := false
	starts := []*time.Time{ph.StartDate}
	ends := []*time.Time{ph.EndDate}
	var total float64
	for _, t := range ph.Tasks {
		changed = rollupTask(t, taskDates) || changed
		total += t.Progress
		starts = append(starts, t.EffectiveStart)
		ends = append(ends, t.EffectiveEnd)
	}

	var progress float64
	if len(ph.Tasks) > 0 {
		progress = total / float64(len(ph.Tasks))
	}
	changed = setFloat(&ph.Progress, progress) || changed
	changed = setBool(&ph.Completed, progress == 100) || changed
	changed = setDate(&ph.EffectiveStart, domain.EarliestDate(starts...)) || changed
	changed = setDate(&ph.EffectiveEnd, domain.LatestDate(ends...)) || changed
	return changed
}

func rollupTask(t *domain.Task, ownDates bool) bool {
	changed := false
	if t.IsLeaf() {
		var progress float64
		if t.Completed {
			progress = 100
		}
		changed = setFloat(&t.Progress, progress) || changed
		changed = setDate(&t.EffectiveStart, t.StartDate) || changed
		changed = setDate(&t.EffectiveEnd, t.EndDate) || changed
		return changed
	}

	done := 0
	var bounds, ends []*time.Time
	for _, s := range t.Subtasks {
		changed = setDate(&s.EffectiveStart, s.StartDate) || changed
		changed = setDate(&s.EffectiveEnd, s.EndDate) || changed
		if s.Completed {
			done++
		}
		bounds = append(bounds, s.StartDate, s.EndDate)
		ends = append(ends, s.EndDate)
	}
	progress := float64(done) / float64(len(t.Subtasks)) * 100
	start := domain.EarliestDate(bounds...)
	end := domain.LatestDate(ends...)

	// A task with subtasks has no authoritative state of its own.
	changed = setFloat(&t.Progress, progress) || changed
	changed = setBool(&t.Completed, progress == 100) || changed
	if ownDates {
		changed = setDate(&t.StartDate, start) || changed
		changed = setDate(&t.EndDate, end) || changed
	}
	changed = setDate(&t.EffectiveStart, start) || changed
	changed = setDate(&t.EffectiveEnd, end) || changed
	return changed
}

func setDate(dst **time.Time, v *time.Time) bool {
	if domain.SameDate(*dst, v) {
		return false
	}
	if v == nil {
		*dst = nil
		return true
	}
	c := *v
	*dst = &c
	return true
}

func setFloat(dst *float64, v float64) bool {
	if *dst == v {
		return false
	}
	*dst = v
	return true
}

func setBool(dst *bool, v bool) bool {
	if *dst == v {
		return false
	}
	*dst = v
	return true
}

func setString(dst *string, v string) bool {
	if *dst == v {
		return false
	}
	*dst = v
	return true
}
