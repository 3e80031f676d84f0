package service

import (
	"context"
	"slices"
	"time"

	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/scheduler"
)

type reviewService struct {
	ws              *workspace
	dueSoonWeekdays int
}

func NewReviewService(uow db.UnitOfWork, ws Workspace, dueSoonWeekdays int, observers ...UseCaseObserver) ReviewService {
	return &reviewService{
		ws:              newWorkspace(uow, ws, observers),
		dueSoonWeekdays: max(dueSoonWeekdays, 0),
	}
}

func (s *reviewService) Review(ctx context.Context, req app.ReviewRequest) (resp *app.ReviewResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"workspace": s.ws.name}
	defer func() {
		s.ws.observe(ctx, "review", startedAt, fields, err)
	}()

	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	f, report, err := s.ws.load(ctx)
	if err != nil {
		return nil, err
	}
	fields["rounds"] = report.Rounds
	fields["converged"] = report.Converged

	projects := slices.Clone(f.Projects)
	scheduler.SortProjects(projects)

	resp = &app.ReviewResponse{GeneratedAt: now}
	var progressSum float64
	for _, p := range projects {
		if req.ProjectID != 0 && p.ID != req.ProjectID {
			continue
		}
		if p.ExcludeFromStats && !req.IncludeExcluded && req.ProjectID == 0 {
			resp.Summary.Excluded++
			continue
		}
		pr := s.reviewProject(p, now)
		resp.Projects = append(resp.Projects, pr)
		resp.Attention = append(resp.Attention, pr.Overdue...)
		resp.Attention = append(resp.Attention, pr.DueSoon...)

		if p.ExcludeFromStats {
			resp.Summary.Excluded++
			continue
		}
		resp.Summary.Projects++
		progressSum += pr.OverallProgress
		resp.Summary.Overdue += len(pr.Overdue)
		resp.Summary.DueSoon += len(pr.DueSoon)
		switch pr.Risk {
		case domain.RiskCritical:
			resp.Summary.Critical++
		case domain.RiskAtRisk:
			resp.Summary.AtRisk++
		default:
			resp.Summary.OnTrack++
		}
	}
	if resp.Summary.Projects > 0 {
		resp.Summary.AverageProgress = progressSum / float64(resp.Summary.Projects)
	}

	scheduler.CanonicalSort(resp.Attention, func(a app.AttentionItem) scheduler.Deadline {
		return scheduler.Deadline{ID: a.ID, Name: a.Name, End: a.End, Risk: a.Risk, Priority: a.Priority}
	})
	fields["projects"] = len(resp.Projects)
	fields["attention"] = len(resp.Attention)
	return resp, nil
}

// reviewProject summarises one recomputed project. Only leaf work (tasks
// without subtasks, and subtasks) is flagged as overdue or due soon; phases
// and parent tasks are rollups of it.
func (s *reviewService) reviewProject(p *domain.Project, now time.Time) app.ProjectReview {
	pr := app.ProjectReview{
		ID:                 p.ID,
		Name:               p.Name,
		Priority:           p.Priority,
		Tags:               p.Tags,
		OverallProgress:    p.OverallProgress,
		TotalPhaseProgress: p.TotalPhaseProgress,
		Start:              p.EffectiveStart,
		End:                p.EffectiveEnd,
		Phases:             len(p.Phases),
		Locked:             p.Locked,
		Excluded:           p.ExcludeFromStats,
	}

	for _, ph := range p.Phases {
		if ph.IsDriven {
			pr.Driven++
		}
	}

	flag := func(it domain.Item, done bool, delegate string) {
		sched := it.Sched()
		if sched.IsDriven {
			pr.Driven++
		}
		end := sched.ResolvedEnd()
		if done || end == nil {
			return
		}
		item := app.AttentionItem{
			ID:          it.ItemID(),
			Kind:        it.Kind(),
			Name:        it.DisplayName(),
			ProjectID:   p.ID,
			ProjectName: p.Name,
			Priority:    p.Priority,
			End:         end,
			DaysLeft:    domain.WeekdaysBetween(now, *end),
			Delegate:    delegate,
			DrivenBy:    sched.DriverName,
		}
		switch {
		case domain.DateOf(*end).Before(domain.DateOf(now)):
			item.Overdue = true
			item.Risk = domain.RiskCritical
			pr.Overdue = append(pr.Overdue, item)
		case item.DaysLeft <= s.dueSoonWeekdays:
			item.Risk = domain.RiskAtRisk
			pr.DueSoon = append(pr.DueSoon, item)
		}
	}

	for _, t := range p.AllTasks() {
		pr.Tasks++
		if t.Progress >= 100 {
			pr.CompletedTasks++
		}
		if t.IsLeaf() {
			flag(t, t.Completed, t.Delegate)
			continue
		}
		if t.IsDriven {
			pr.Driven++
		}
		for _, st := range t.Subtasks {
			pr.Subtasks++
			flag(st, st.Completed, t.Delegate)
		}
	}

	risk := scheduler.ComputeRisk(scheduler.RiskInput{
		Now:             now,
		Start:           p.EffectiveStart,
		End:             p.EffectiveEnd,
		ProgressPct:     p.OverallProgress,
		OverdueItems:    len(pr.Overdue),
		DueSoonWeekdays: s.dueSoonWeekdays,
	})
	pr.Risk = risk.Level
	pr.DaysLeft = risk.DaysLeft
	pr.ExpectedPct = risk.ExpectedPct
	return pr
}
