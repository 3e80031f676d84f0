package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/importer"
)

// CSVHeader is the first row written by ExportCSV.
var CSVHeader = []string{
	"project", "kind", "id", "name", "parent_id",
	"start", "end", "effective_start", "effective_end",
	"completed", "progress", "locked",
	"predecessor_id", "driven_by", "delegate", "tags",
}

type exportService struct {
	ws *workspace
}

func NewExportService(uow db.UnitOfWork, ws Workspace, observers ...UseCaseObserver) ExportService {
	return &exportService{ws: newWorkspace(uow, ws, observers)}
}

func (s *exportService) ExportJSON(ctx context.Context, w io.Writer) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"workspace": s.ws.name, "format": "json"}
	defer func() {
		s.ws.observe(ctx, "export", startedAt, fields, err)
	}()

	f, _, err := s.ws.load(ctx)
	if err != nil {
		return err
	}
	fields["projects"] = len(f.Projects)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(importer.NewExportDocument(f))
}

func (s *exportService) ExportCSV(ctx context.Context, w io.Writer) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"workspace": s.ws.name, "format": "csv"}
	defer func() {
		s.ws.observe(ctx, "export", startedAt, fields, err)
	}()

	f, _, err := s.ws.load(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	rows := 0
	write := func(record []string) error {
		rows++
		return cw.Write(record)
	}
	for _, p := range f.Projects {
		if err := write(projectRecord(p)); err != nil {
			return err
		}
		for _, ph := range p.Phases {
			if err := write(itemRecord(p, ph, p.ID, ph.Completed, ph.Progress, "", ph.Tags)); err != nil {
				return err
			}
			for _, t := range ph.Tasks {
				if err := writeTask(write, p, t, ph.ID); err != nil {
					return err
				}
			}
		}
		for _, t := range p.GeneralTasks {
			if err := writeTask(write, p, t, p.ID); err != nil {
				return err
			}
		}
	}
	fields["rows"] = rows
	cw.Flush()
	return cw.Error()
}

func writeTask(write func([]string) error, p *domain.Project, t *domain.Task, parentID domain.ItemID) error {
	if err := write(itemRecord(p, t, parentID, t.Completed, t.Progress, t.Delegate, t.Tags)); err != nil {
		return err
	}
	for _, st := range t.Subtasks {
		progress := 0.0
		if st.Completed {
			progress = 100
		}
		if err := write(itemRecord(p, st, t.ID, st.Completed, progress, "", nil)); err != nil {
			return err
		}
	}
	return nil
}

func projectRecord(p *domain.Project) []string {
	return []string{
		p.Name,
		string(domain.KindProject),
		formatID(p.ID),
		p.Name,
		"",
		formatCSVDate(p.StartDate),
		formatCSVDate(p.EndDate),
		formatCSVDate(p.EffectiveStart),
		formatCSVDate(p.EffectiveEnd),
		strconv.FormatBool(p.OverallProgress >= 100),
		formatProgress(p.OverallProgress),
		strconv.FormatBool(p.Locked),
		"",
		"",
		"",
		strings.Join(p.Tags, ";"),
	}
}

func itemRecord(p *domain.Project, it domain.Item, parentID domain.ItemID, completed bool, progress float64, delegate string, tags []string) []string {
	sched := it.Sched()
	pred := ""
	if sched.PredecessorID != nil {
		pred = formatID(*sched.PredecessorID)
	}
	return []string{
		p.Name,
		string(it.Kind()),
		formatID(it.ItemID()),
		it.DisplayName(),
		formatID(parentID),
		formatCSVDate(sched.StartDate),
		formatCSVDate(sched.EndDate),
		formatCSVDate(sched.EffectiveStart),
		formatCSVDate(sched.EffectiveEnd),
		strconv.FormatBool(completed),
		formatProgress(progress),
		strconv.FormatBool(sched.Locked),
		pred,
		sched.DriverName,
		delegate,
		strings.Join(tags, ";"),
	}
}

func formatID(id domain.ItemID) string {
	return strconv.FormatInt(int64(id), 10)
}

func formatCSVDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func formatProgress(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}

// Import applies an import file as one undoable edit. A full export replaces
// the forest; a plan appends one project.
func (s *exportService) Import(ctx context.Context, path string) (*app.ImportResult, error) {
	payload, err := importer.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}

	result := &app.ImportResult{}
	fields := map[string]any{"path": path}
	err = s.ws.mutate(ctx, "import", fields, func(ctx context.Context, e *edit) error {
		switch {
		case payload.Export != nil:
			if errs := importer.ValidateExport(payload.Export); len(errs) > 0 {
				return validationFailed(errs)
			}
			result.Mode = app.ImportReplace
			imported := payload.Export.Forest()
			e.forest.Projects = imported.Projects
			countProjects(result, imported.Projects)
		case payload.Plan != nil:
			if errs := importer.ValidatePlan(payload.Plan); len(errs) > 0 {
				return validationFailed(errs)
			}
			result.Mode = app.ImportAppend
			p, err := importer.ConvertPlan(payload.Plan, s.ws.ids)
			if err != nil {
				return fmt.Errorf("converting plan: %w", err)
			}
			if err := e.forest.AddProject(p); err != nil {
				return err
			}
			result.Project = p
			countProjects(result, []*domain.Project{p})
		}
		fields["mode"] = result.Mode
		fields["projects"] = result.Projects
		fields["dependencies"] = result.Dependencies
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func countProjects(result *app.ImportResult, projects []*domain.Project) {
	for _, p := range projects {
		result.Projects++
		result.Phases += len(p.Phases)
		for _, ph := range p.Phases {
			if ph.PredecessorID != nil {
				result.Dependencies++
			}
		}
		for _, t := range p.AllTasks() {
			result.Tasks++
			result.Subtasks += len(t.Subtasks)
			if t.PredecessorID != nil {
				result.Dependencies++
			}
			for _, st := range t.Subtasks {
				if st.PredecessorID != nil {
					result.Dependencies++
				}
			}
		}
	}
}

// validationFailed joins every problem under one headline so callers see
// them all at once.
func validationFailed(errs []error) error {
	return fmt.Errorf("import validation failed (%d errors):\n%w", len(errs), errors.Join(errs...))
}
