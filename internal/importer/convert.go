package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// Forest turns a validated export into a forest with consistent dependents
// lists. Call ValidateExport first.
func (doc *ExportDocument) Forest() *domain.Forest {
	f := &domain.Forest{Projects: doc.Projects}
	if f.Projects == nil {
		f.Projects = []*domain.Project{}
	}
	domain.RebuildDependents(f)
	return f
}

// NewExportDocument wraps a forest for serialisation.
func NewExportDocument(f *domain.Forest) *ExportDocument {
	return &ExportDocument{
		Version:    FormatVersion,
		ExportedAt: f.UpdatedAt,
		Projects:   f.Projects,
	}
}

// ConvertPlan transforms a validated plan into a project with fresh ids.
// Call ValidatePlan first; ConvertPlan assumes the plan is valid.
func ConvertPlan(plan *PlanSchema, ids *domain.IDGenerator) (*domain.Project, error) {
	project := &domain.Project{
		ID:       ids.Next(),
		Name:     plan.Project.Name,
		Priority: plan.Project.Priority,
		Tags:     plan.Project.Tags,
	}
	if project.Priority == 0 {
		project.Priority = 5
	}
	var err error
	if project.StartDate, err = parseOptionalDate(plan.Project.StartDate); err != nil {
		return nil, fmt.Errorf("project.start_date: %w", err)
	}
	if project.EndDate, err = parseOptionalDate(plan.Project.EndDate); err != nil {
		return nil, fmt.Errorf("project.end_date: %w", err)
	}

	refMap := make(map[string]domain.Item) // ref -> converted item

	phases := make(map[string]*domain.Phase, len(plan.Phases))
	for _, p := range plan.Phases {
		ph := &domain.Phase{ID: ids.Next(), Name: p.Name, Tags: p.Tags}
		ph.Locked = p.Locked
		if err := setDates(&ph.Schedule, p.StartDate, p.EndDate); err != nil {
			return nil, fmt.Errorf("phase %q: %w", p.Ref, err)
		}
		project.Phases = append(project.Phases, ph)
		phases[p.Ref] = ph
		refMap[p.Ref] = ph
	}

	for _, ti := range plan.Tasks {
		t := &domain.Task{
			ID:        ids.Next(),
			Name:      ti.Name,
			Completed: ti.Completed,
			Delegate:  ti.Delegate,
			Tags:      ti.Tags,
		}
		t.Locked = ti.Locked
		if err := setDates(&t.Schedule, ti.StartDate, ti.EndDate); err != nil {
			return nil, fmt.Errorf("task %q: %w", ti.Ref, err)
		}
		for _, si := range ti.Subtasks {
			s := &domain.Subtask{ID: ids.Next(), Name: si.Name, Completed: si.Completed}
			if err := setDates(&s.Schedule, si.StartDate, si.EndDate); err != nil {
				return nil, fmt.Errorf("subtask %q: %w", si.Ref, err)
			}
			t.Subtasks = append(t.Subtasks, s)
			refMap[si.Ref] = s
		}
		if ph, ok := phases[ti.PhaseRef]; ok {
			ph.Tasks = append(ph.Tasks, t)
		} else {
			project.GeneralTasks = append(project.GeneralTasks, t)
		}
		refMap[ti.Ref] = t
	}

	idx := domain.NewIndex(&domain.Forest{Projects: []*domain.Project{project}})
	for _, d := range plan.Dependencies {
		succ, ok := refMap[d.SuccessorRef]
		if !ok {
			return nil, fmt.Errorf("dependency successor %q: %w", d.SuccessorRef, domain.ErrNotFound)
		}
		pred, ok := refMap[d.PredecessorRef]
		if !ok {
			return nil, fmt.Errorf("dependency predecessor %q: %w", d.PredecessorRef, domain.ErrNotFound)
		}
		pid := pred.ItemID()
		if domain.Nested(idx, succ.ItemID(), pid) {
			return nil, fmt.Errorf("dependency %q -> %q: %w", d.PredecessorRef, d.SuccessorRef, domain.ErrCycle)
		}
		succ.Sched().PredecessorID = &pid
	}

	domain.RebuildDependents(&domain.Forest{Projects: []*domain.Project{project}})
	return project, nil
}

func setDates(s *domain.Schedule, start, end *string) error {
	var err error
	if s.StartDate, err = parseOptionalDate(start); err != nil {
		return err
	}
	if s.EndDate, err = parseOptionalDate(end); err != nil {
		return err
	}
	return nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	return domain.ParseDate(*s)
}
