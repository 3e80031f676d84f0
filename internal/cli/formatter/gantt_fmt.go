package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	ganttMinWidth   = 10
	ganttLabelWidth = 28
)

// GanttRow is one bar of the chart.
type GanttRow struct {
	Label  string
	Level  int
	Start  *time.Time
	End    *time.Time
	Done   bool
	Driven bool
	Locked bool
}

// GanttRows lists a project's phases, tasks and subtasks with their
// effective dates, falling back to planned dates where nothing was computed.
func GanttRows(p *domain.Project) []GanttRow {
	var rows []GanttRow
	add := func(name string, level int, s *domain.Schedule, done bool) {
		start, end := s.EffectiveStart, s.EffectiveEnd
		if start == nil && end == nil {
			start, end = s.StartDate, s.EndDate
		}
		rows = append(rows, GanttRow{
			Label:  name,
			Level:  level,
			Start:  start,
			End:    end,
			Done:   done,
			Driven: s.IsDriven,
			Locked: s.Locked || p.Locked,
		})
	}
	addTask := func(t *domain.Task, level int) {
		add(t.Name, level, &t.Schedule, t.Progress >= 100)
		for _, s := range t.Subtasks {
			add(s.Name, level+1, &s.Schedule, s.Completed)
		}
	}
	for _, ph := range p.Phases {
		add(ph.Name, 0, &ph.Schedule, ph.Completed)
		for _, t := range ph.Tasks {
			addTask(t, 1)
		}
	}
	for _, t := range p.GeneralTasks {
		addTask(t, 0)
	}
	return rows
}

// GanttSpan returns the earliest and latest date across rows. ok is false
// when no row carries a date.
func GanttSpan(rows []GanttRow) (from, to time.Time, ok bool) {
	for _, r := range rows {
		for _, d := range []*time.Time{r.Start, r.End} {
			if d == nil {
				continue
			}
			day := domain.DateOf(*d)
			if !ok {
				from, to, ok = day, day, true
				continue
			}
			if day.Before(from) {
				from = day
			}
			if day.After(to) {
				to = day
			}
		}
	}
	return from, to, ok
}

// GanttColumn maps a day onto one of width columns spanning [from, to].
func GanttColumn(day, from, to time.Time, width int) int {
	span := int(to.Sub(from).Hours()/24) + 1
	offset := int(domain.DateOf(day).Sub(from).Hours() / 24)
	col := offset * width / span
	return max(0, min(col, width-1))
}

// FormatGantt renders a project's schedule as horizontal bars. width is the
// number of columns used for the timeline.
func FormatGantt(p *domain.Project, width int, now time.Time) string {
	width = max(width, ganttMinWidth)
	rows := GanttRows(p)
	title := "Gantt · " + p.Name
	if len(rows) == 0 {
		return RenderBox(title, Dim("No phases or tasks yet."))
	}
	from, to, ok := GanttSpan(rows)
	if !ok {
		return RenderBox(title, Dim("Nothing is scheduled yet."))
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(ganttLabel(r)))
	}
	labelWidth = min(labelWidth, ganttLabelWidth)

	today := -1
	if day := domain.DateOf(now); !day.Before(from) && !day.After(to) {
		today = GanttColumn(day, from, to, width)
	}

	var b strings.Builder
	left := from.Format(domain.DateLayout)
	right := to.Format(domain.DateLayout)
	gap := max(1, width-len(left)-len(right))
	fmt.Fprintf(&b, "%s  %s\n", strings.Repeat(" ", labelWidth), Dim(left+strings.Repeat(" ", gap)+right))

	for _, r := range rows {
		label := truncate(ganttLabel(r), labelWidth)
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(label))
		fmt.Fprintf(&b, "%s%s  %s\n", label, pad, ganttBar(r, from, to, width, today))
	}

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s done  %s driven  %s locked  %s planned  │ today",
		StyleGreen.Render("█"), StyleBlue.Render("█"), StyleYellow.Render("█"), StyleFg.Render("█"))))
	return RenderBox(title, b.String())
}

func ganttLabel(r GanttRow) string {
	return strings.Repeat("  ", r.Level) + r.Label
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func ganttBar(r GanttRow, from, to time.Time, width, today int) string {
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
		if i == today {
			cells[i] = Dim("│")
		}
	}
	start, end := r.Start, r.End
	if start == nil {
		start = end
	}
	if end == nil {
		end = start
	}
	if start == nil {
		return strings.Join(cells, "") + Dim(" undated")
	}
	lo := GanttColumn(*start, from, to, width)
	hi := max(lo, GanttColumn(*end, from, to, width))

	style := StyleFg
	switch {
	case r.Done:
		style = StyleGreen
	case r.Locked:
		style = StyleYellow
	case r.Driven:
		style = StyleBlue
	}
	for i := lo; i <= hi; i++ {
		cells[i] = style.Render("█")
	}
	return strings.Join(cells, "")
}
