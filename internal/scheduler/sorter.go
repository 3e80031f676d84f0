package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// RiskPriority returns a sort priority (lower = more urgent).
func RiskPriority(r domain.RiskLevel) int {
	switch r {
	case domain.RiskCritical:
		return 0
	case domain.RiskAtRisk:
		return 1
	default:
		return 2
	}
}

// Deadline is the sortable view of anything with an end date.
type Deadline struct {
	ID       domain.ItemID
	Name     string
	End      *time.Time
	Risk     domain.RiskLevel
	Priority int // owning project priority, 1-10
}

// CanonicalSort sorts by the deterministic canonical rules:
// 1. Risk: critical > at_risk > on_track
// 2. End date: earliest first (nil last)
// 3. Project priority: higher first
// 4. Name: lexical ascending
// 5. ID: ascending
func CanonicalSort[T any](xs []T, key func(T) Deadline) {
	sort.SliceStable(xs, func(i, j int) bool {
		a, b := key(xs[i]), key(xs[j])

		riskA, riskB := RiskPriority(a.Risk), RiskPriority(b.Risk)
		if riskA != riskB {
			return riskA < riskB
		}

		if (a.End == nil) != (b.End == nil) {
			return a.End != nil
		}
		if a.End != nil && b.End != nil && !a.End.Equal(*b.End) {
			return a.End.Before(*b.End)
		}

		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}

		if a.Name != b.Name {
			return a.Name < b.Name
		}

		return a.ID < b.ID
	})
}

// SortProjects orders projects by priority (higher first), then name.
func SortProjects(projects []*domain.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}
