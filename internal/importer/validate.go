package importer

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// ValidateExport checks a full export before it replaces the forest.
// Returns a slice of all validation errors found.
func ValidateExport(doc *ExportDocument) []error {
	var errs []error

	if doc.Version > FormatVersion {
		errs = append(errs, fmt.Errorf("version %d is newer than supported version %d", doc.Version, FormatVersion))
	}

	seen := make(map[domain.ItemID]string)
	claim := func(id domain.ItemID, where string) {
		if id <= 0 {
			errs = append(errs, fmt.Errorf("%s.id must be positive", where))
			return
		}
		if prev, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %d (also used by %s)", where, id, prev))
			return
		}
		seen[id] = where
	}

	f := &domain.Forest{Projects: doc.Projects}
	for i, p := range doc.Projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		if p == nil {
			errs = append(errs, fmt.Errorf("%s is null", prefix))
			continue
		}
		claim(p.ID, prefix)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.Priority < 1 || p.Priority > 10 {
			errs = append(errs, fmt.Errorf("%s.priority: %w (got %d)", prefix, domain.ErrInvalidPriority, p.Priority))
		}
		for j, ph := range p.Phases {
			phPrefix := fmt.Sprintf("%s.phases[%d]", prefix, j)
			claim(ph.ID, phPrefix)
			if ph.Name == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", phPrefix))
			}
			for k, t := range ph.Tasks {
				errs = append(errs, validateTask(t, fmt.Sprintf("%s.tasks[%d]", phPrefix, k), claim)...)
			}
		}
		for k, t := range p.GeneralTasks {
			errs = append(errs, validateTask(t, fmt.Sprintf("%s.generalTasks[%d]", prefix, k), claim)...)
		}
	}
	if len(errs) > 0 {
		// Edge checks need unique ids to mean anything.
		return errs
	}

	idx := domain.NewIndex(f)
	edges := make(map[domain.ItemID]domain.ItemID)
	for _, it := range f.Items() {
		pid := it.Sched().PredecessorID
		if pid == nil {
			continue
		}
		where := seen[it.ItemID()]
		switch {
		case *pid == it.ItemID():
			errs = append(errs, fmt.Errorf("%s.predecessorId: %w", where, domain.ErrSelfDependency))
		case isProject(idx, *pid):
			errs = append(errs, fmt.Errorf("%s.predecessorId: %w", where, domain.ErrProjectLink))
		default:
			if _, ok := idx.Item(*pid); !ok {
				errs = append(errs, fmt.Errorf("%s.predecessorId: id %d not found", where, *pid))
				continue
			}
			if domain.Nested(idx, it.ItemID(), *pid) {
				errs = append(errs, fmt.Errorf("%s.predecessorId: depends on its own parent or child: %w", where, domain.ErrCycle))
				continue
			}
			edges[it.ItemID()] = *pid
		}
	}
	errs = append(errs, detectCycles(edges, idx.Name)...)
	return errs
}

func validateTask(t *domain.Task, prefix string, claim func(domain.ItemID, string)) []error {
	var errs []error
	claim(t.ID, prefix)
	if t.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	for i, s := range t.Subtasks {
		sPrefix := fmt.Sprintf("%s.subtasks[%d]", prefix, i)
		claim(s.ID, sPrefix)
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", sPrefix))
		}
	}
	return errs
}

func isProject(idx *domain.Index, id domain.ItemID) bool {
	_, ok := idx.Project(id)
	return ok
}

// ValidatePlan checks a plan schema for errors before conversion.
func ValidatePlan(plan *PlanSchema) []error {
	var errs []error

	if plan.Project.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if plan.Project.Priority != 0 && (plan.Project.Priority < 1 || plan.Project.Priority > 10) {
		errs = append(errs, fmt.Errorf("project.priority: %w (got %d)", domain.ErrInvalidPriority, plan.Project.Priority))
	}
	errs = append(errs, validateOptionalDate("project.start_date", plan.Project.StartDate)...)
	errs = append(errs, validateOptionalDate("project.end_date", plan.Project.EndDate)...)

	refs := make(map[string]bool)
	claim := func(ref, prefix string) {
		if ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, ref))
		} else {
			refs[ref] = true
		}
	}

	phaseRefs := make(map[string]bool)
	for i, ph := range plan.Phases {
		prefix := fmt.Sprintf("phases[%d]", i)
		claim(ph.Ref, prefix)
		phaseRefs[ph.Ref] = true
		if ph.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, validateOptionalDate(prefix+".start_date", ph.StartDate)...)
		errs = append(errs, validateOptionalDate(prefix+".end_date", ph.EndDate)...)
	}

	for i, t := range plan.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		claim(t.Ref, prefix)
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if t.PhaseRef != "" && !phaseRefs[t.PhaseRef] {
			errs = append(errs, fmt.Errorf("%s.phase_ref: ref %q not found in phases", prefix, t.PhaseRef))
		}
		errs = append(errs, validateOptionalDate(prefix+".start_date", t.StartDate)...)
		errs = append(errs, validateOptionalDate(prefix+".end_date", t.EndDate)...)
		for j, s := range t.Subtasks {
			sPrefix := fmt.Sprintf("%s.subtasks[%d]", prefix, j)
			claim(s.Ref, sPrefix)
			if s.Name == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", sPrefix))
			}
			errs = append(errs, validateOptionalDate(sPrefix+".start_date", s.StartDate)...)
			errs = append(errs, validateOptionalDate(sPrefix+".end_date", s.EndDate)...)
		}
	}

	errs = append(errs, validateDependencies(plan.Dependencies, refs)...)
	return errs
}

func validateDependencies(deps []DependencyImport, refs map[string]bool) []error {
	var errs []error
	successors := make(map[string]bool)
	edges := make(map[string]string)

	for i, d := range deps {
		prefix := fmt.Sprintf("dependencies[%d]", i)

		if d.PredecessorRef == "" {
			errs = append(errs, fmt.Errorf("%s.predecessor_ref is required", prefix))
		} else if !refs[d.PredecessorRef] {
			errs = append(errs, fmt.Errorf("%s.predecessor_ref: ref %q not found", prefix, d.PredecessorRef))
		}

		if d.SuccessorRef == "" {
			errs = append(errs, fmt.Errorf("%s.successor_ref is required", prefix))
		} else if !refs[d.SuccessorRef] {
			errs = append(errs, fmt.Errorf("%s.successor_ref: ref %q not found", prefix, d.SuccessorRef))
		} else if successors[d.SuccessorRef] {
			errs = append(errs, fmt.Errorf("%s.successor_ref: %q already has a predecessor", prefix, d.SuccessorRef))
		}
		successors[d.SuccessorRef] = true

		if d.PredecessorRef != "" && d.PredecessorRef == d.SuccessorRef {
			errs = append(errs, fmt.Errorf("%s: self-dependency (predecessor_ref == successor_ref == %q)", prefix, d.PredecessorRef))
			continue
		}
		if d.PredecessorRef != "" && d.SuccessorRef != "" {
			edges[d.SuccessorRef] = d.PredecessorRef
		}
	}

	if len(edges) > 1 {
		errs = append(errs, detectCycles(edges, func(s string) string { return s })...)
	}
	return errs
}

// detectCycles walks successor -> predecessor edges with a white/gray/black
// DFS and reports each cycle once.
func detectCycles[K comparable](edges map[K]K, name func(K) string) []error {
	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)

	nodes := make([]K, 0, len(edges))
	for k := range edges {
		nodes = append(nodes, k)
	}
	// Stable error output regardless of map order.
	slices.SortFunc(nodes, func(a, b K) int { return cmp.Compare(name(a), name(b)) })

	color := make(map[K]int)
	var errs []error

	var visit func(node K)
	visit = func(node K) {
		color[node] = gray
		if next, ok := edges[node]; ok {
			switch color[next] {
			case gray:
				errs = append(errs, fmt.Errorf("circular dependency detected involving %q and %q: %w", name(node), name(next), domain.ErrCycle))
			case white:
				visit(next)
			}
		}
		color[node] = black
	}

	for _, node := range nodes {
		if color[node] == white {
			visit(node)
		}
	}
	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := domain.ParseDate(*dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
