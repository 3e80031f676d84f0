package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "PRI", "PROGRESS", "RANGE", ""}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		var flags []string
		if p.Locked {
			flags = append(flags, StyleYellow.Render("locked"))
		}
		if p.ExcludeFromStats {
			flags = append(flags, Dim("excluded"))
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", p.ID)),
			Bold(p.Name),
			fmt.Sprintf("%d", p.Priority),
			RenderProgress(p.OverallProgress, 10),
			RangeCell(p.EffectiveStart, p.EffectiveEnd),
			strings.Join(flags, " "),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectTree renders a project card: metadata on the left, the
// phase/task/subtask tree on the right.
func FormatProjectTree(p *domain.Project) string {
	left := projectMetadata(p)
	right := RenderTree(ProjectTreeItems(p))
	if right == "" {
		right = Dim("No phases or tasks yet.")
	}
	return RenderBox("", lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
}

func projectMetadata(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Name) + "\n")
	if tags := Tags(p.Tags); tags != "" {
		b.WriteString(tags + "\n")
	}
	b.WriteString("\n")

	field := func(label, value string) {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value)
	}
	field("ID", Dim(fmt.Sprintf("%d", p.ID)))
	field("PRIORITY", fmt.Sprintf("%d", p.Priority))
	field("PLANNED", RangeCell(p.StartDate, p.EndDate))
	field("RANGE", RangeCell(p.EffectiveStart, p.EffectiveEnd))
	field("PROGRESS", RenderProgress(p.OverallProgress, 12))
	if p.Locked {
		field("LOCKED", StyleYellow.Render("yes"))
	}
	if p.ExcludeFromStats {
		field("STATS", Dim("excluded"))
	}
	if n := len(p.Comments); n > 0 {
		field("COMMENTS", fmt.Sprintf("%d", n))
	}
	return b.String()
}

// ProjectTreeItems flattens a project into tree rows: phases with their
// tasks and subtasks, then general tasks.
func ProjectTreeItems(p *domain.Project) []TreeItem {
	var items []TreeItem
	generalLast := len(p.GeneralTasks) == 0

	for i, ph := range p.Phases {
		items = append(items, TreeItem{
			Title:  ph.Name,
			ID:     int64(ph.ID),
			Level:  1,
			IsLast: i == len(p.Phases)-1 && generalLast,
			Done:   ph.Completed,
			Flags:  scheduleFlags(&ph.Schedule),
			Detail: itemDetail(&ph.Schedule, ph.Progress),
		})
		for j, t := range ph.Tasks {
			items = append(items, taskTreeItems(t, 2, j == len(ph.Tasks)-1)...)
		}
	}
	for j, t := range p.GeneralTasks {
		items = append(items, taskTreeItems(t, 1, j == len(p.GeneralTasks)-1)...)
	}
	return items
}

func taskTreeItems(t *domain.Task, level int, last bool) []TreeItem {
	flags := scheduleFlags(&t.Schedule)
	if t.Delegate != "" {
		flags = append(flags, "@"+t.Delegate)
	}
	items := []TreeItem{{
		Title:  t.Name,
		ID:     int64(t.ID),
		Level:  level,
		IsLast: last,
		Done:   t.Progress >= 100,
		Flags:  flags,
		Detail: itemDetail(&t.Schedule, t.Progress),
	}}
	for k, s := range t.Subtasks {
		progress := 0.0
		if s.Completed {
			progress = 100
		}
		items = append(items, TreeItem{
			Title:  s.Name,
			ID:     int64(s.ID),
			Level:  level + 1,
			IsLast: k == len(t.Subtasks)-1,
			Done:   s.Completed,
			Flags:  scheduleFlags(&s.Schedule),
			Detail: itemDetail(&s.Schedule, progress),
		})
	}
	return items
}

func scheduleFlags(s *domain.Schedule) []string {
	var flags []string
	if s.Locked {
		flags = append(flags, "locked")
	}
	if s.IsDriven {
		flags = append(flags, "after "+s.DriverName)
	}
	return flags
}

func itemDetail(s *domain.Schedule, progress float64) string {
	start, end := s.EffectiveStart, s.EffectiveEnd
	if start == nil && end == nil {
		start, end = s.StartDate, s.EndDate
	}
	dates := "undated"
	if start != nil || end != nil {
		dates = domain.FormatDate(start) + " → " + domain.FormatDate(end)
	}
	return fmt.Sprintf("%s  %3.0f%%", dates, progress)
}
