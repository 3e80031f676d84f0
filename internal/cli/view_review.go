package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/cli/formatter"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── messages ─────────────────────────────────────────────────────────────────

// reviewLoadedMsg signals that review data has been loaded.
type reviewLoadedMsg struct {
	resp   *app.ReviewResponse
	forest *domain.Forest
	err    error
}

// ── keys ─────────────────────────────────────────────────────────────────────

type reviewKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Detail   key.Binding
	Excluded key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func defaultReviewKeys() reviewKeyMap {
	return reviewKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Detail:   key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "tree/gantt")),
		Excluded: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "excluded")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Detail, k.Excluded, k.Refresh, k.Quit}
}

// ── model ────────────────────────────────────────────────────────────────────

// reviewModel is the interactive review: a selectable project list on the
// left and the selected project's tree or Gantt chart on the right.
type reviewModel struct {
	ctx     context.Context
	app     *App
	req     app.ReviewRequest
	keys    reviewKeyMap
	loading bool
	err     error

	resp   *app.ReviewResponse
	forest *domain.Forest
	cursor int
	gantt  bool
	width  int
	height int
}

func newReviewModel(ctx context.Context, a *App, req app.ReviewRequest) *reviewModel {
	return &reviewModel{
		ctx:     ctx,
		app:     a,
		req:     req,
		keys:    defaultReviewKeys(),
		loading: true,
		width:   100,
	}
}

func (m *reviewModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *reviewModel) loadData() tea.Cmd {
	a, req, ctx := m.app, m.req, m.ctx
	return func() tea.Msg {
		req.Now = a.now()
		resp, err := a.Review.Review(ctx, req)
		if err != nil {
			return reviewLoadedMsg{err: err}
		}
		forest, err := a.Planner.Forest(ctx)
		if err != nil {
			return reviewLoadedMsg{err: err}
		}
		return reviewLoadedMsg{resp: resp, forest: forest}
	}
}

func (m *reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reviewLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.resp, m.forest = msg.resp, msg.forest
		if m.cursor >= len(m.resp.Projects) {
			m.cursor = max(0, len(m.resp.Projects)-1)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.resp != nil && m.cursor < len(m.resp.Projects)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Detail):
			m.gantt = !m.gantt
		case key.Matches(msg, m.keys.Excluded):
			m.req.IncludeExcluded = !m.req.IncludeExcluded
			m.loading = true
			return m, m.loadData()
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			m.err = nil
			return m, m.loadData()
		}
	}
	return m, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

const reviewLeftPaneWidth = 40

func (m *reviewModel) View() string {
	if m.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}
	if m.resp == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.FormatReviewSummary(m.resp.Summary) + "\n\n")

	if len(m.resp.Projects) == 0 {
		b.WriteString("  " + formatter.Dim("No projects to review.") + "\n")
		b.WriteString(m.helpBar())
		return b.String()
	}

	left := lipgloss.NewStyle().Width(reviewLeftPaneWidth).Render(m.renderProjectList())
	divider := formatter.StyleDim.Render("│")
	right := m.renderDetail()

	if m.width < 80 {
		b.WriteString(left + "\n" + right)
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " "+divider+" ", right))
	}
	b.WriteString("\n")
	b.WriteString(m.helpBar())
	return b.String()
}

func (m *reviewModel) renderProjectList() string {
	var b strings.Builder
	for i, p := range m.resp.Projects {
		cursor := "  "
		name := p.Name
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("> ")
			name = formatter.Bold(name)
		}
		if p.Excluded {
			name = formatter.Dim(p.Name + " (excluded)")
		}
		fmt.Fprintf(&b, "%s%s\n", cursor, name)
		fmt.Fprintf(&b, "    %s %s\n",
			formatter.RenderCompactBar(p.OverallProgress, 12, p.Excluded),
			formatter.RiskIndicator(p.Risk),
		)
		fmt.Fprintf(&b, "    %s  %s\n", formatter.DateCell(p.End), formatter.DaysLeftCell(p.DaysLeft))
	}
	return b.String()
}

func (m *reviewModel) renderDetail() string {
	selected := m.resp.Projects[m.cursor]
	p, ok := domain.NewIndex(m.forest).Project(selected.ID)
	if !ok {
		return formatter.Dim("Project no longer exists; press r to refresh.")
	}
	if m.gantt {
		width := max(m.width-reviewLeftPaneWidth-ganttChrome, 20)
		return formatter.FormatGantt(p, width, m.app.now())
	}

	var b strings.Builder
	b.WriteString(formatter.FormatProjectTree(p))
	attention := append(append([]app.AttentionItem{}, selected.Overdue...), selected.DueSoon...)
	if len(attention) > 0 {
		b.WriteString("\n" + formatter.FormatAttention(attention))
	}
	return b.String()
}

// ganttChrome is the width taken by the divider, the box and row labels.
const ganttChrome = 40

func (m *reviewModel) helpBar() string {
	var hints []string
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		hints = append(hints, formatter.Dim(h.Key+": "+h.Desc))
	}
	return "\n  " + strings.Join(hints, "  ")
}
