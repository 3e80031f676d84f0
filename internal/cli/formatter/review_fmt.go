package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/app"
)

// FormatReview renders the portfolio review: a summary line, one table row
// per project and the attention list.
func FormatReview(resp *app.ReviewResponse) string {
	var b strings.Builder

	b.WriteString(FormatReviewSummary(resp.Summary))
	b.WriteString("\n\n")

	if len(resp.Projects) == 0 {
		b.WriteString(Dim("No projects to review."))
		b.WriteString("\n")
		return RenderBox("Review "+resp.GeneratedAt.Format("2006-01-02"), b.String())
	}

	b.WriteString(FormatReviewProjects(resp.Projects, resp.GeneratedAt))

	if len(resp.Attention) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Needs Attention"))
		b.WriteString("\n")
		b.WriteString(FormatAttention(resp.Attention))
	}

	return RenderBox("Review "+resp.GeneratedAt.Format("2006-01-02"), b.String())
}

// FormatReviewSummary renders the one-line portfolio totals.
func FormatReviewSummary(s app.PortfolioSummary) string {
	parts := []string{
		Bold(fmt.Sprintf("%d projects", s.Projects)),
		fmt.Sprintf("avg %.0f%%", s.AverageProgress),
		StyleGreen.Render(fmt.Sprintf("%d on track", s.OnTrack)),
		StyleYellow.Render(fmt.Sprintf("%d at risk", s.AtRisk)),
		StyleRed.Render(fmt.Sprintf("%d critical", s.Critical)),
	}
	if s.Overdue > 0 {
		parts = append(parts, StyleRed.Render(fmt.Sprintf("%d overdue", s.Overdue)))
	}
	if s.DueSoon > 0 {
		parts = append(parts, StyleYellow.Render(fmt.Sprintf("%d due soon", s.DueSoon)))
	}
	if s.Excluded > 0 {
		parts = append(parts, Dim(fmt.Sprintf("%d excluded", s.Excluded)))
	}
	return strings.Join(parts, Dim(" · "))
}

// FormatReviewProjects renders the per-project review table. End dates are
// shown relative to now as well.
func FormatReviewProjects(projects []app.ProjectReview, now time.Time) string {
	headers := []string{"ID", "PROJECT", "PRI", "PROGRESS", "EXPECTED", "END", "LEFT", "RISK"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		name := Bold(p.Name)
		if p.Excluded {
			name = Dim(p.Name + " (excluded)")
		}
		expected := Dim("--")
		if p.Start != nil && p.End != nil {
			expected = fmt.Sprintf("%.0f%%", p.ExpectedPct)
		}
		end := DateCell(p.End)
		if p.End != nil {
			end += Dim(" (" + RelativeDateFrom(*p.End, now) + ")")
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", p.ID)),
			name,
			fmt.Sprintf("%d", p.Priority),
			RenderProgress(p.OverallProgress, 10),
			expected,
			end,
			DaysLeftCell(p.DaysLeft),
			RiskIndicator(p.Risk),
		})
	}
	return RenderTable(headers, rows)
}

// FormatAttention renders overdue and due-soon items.
func FormatAttention(items []app.AttentionItem) string {
	var b strings.Builder
	for _, it := range items {
		marker := StyleYellow.Render("◦")
		when := fmt.Sprintf("due in %dd", it.DaysLeft)
		if it.Overdue {
			marker = StyleRed.Render("•")
			when = fmt.Sprintf("%dd overdue", -it.DaysLeft)
		}
		line := fmt.Sprintf("  %s %s %s %s  %s  %s",
			marker,
			KindBadge(it.Kind),
			Dim(fmt.Sprintf("%d", it.ID)),
			it.Name,
			Dim(it.ProjectName),
			RiskColor(it.Risk).Render(when),
		)
		if it.Delegate != "" {
			line += "  " + StyleBlue.Render("@"+it.Delegate)
		}
		if it.DrivenBy != "" {
			line += "  " + Dim("after "+it.DrivenBy)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
