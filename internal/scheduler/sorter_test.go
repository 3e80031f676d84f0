package scheduler

import (
	"testing"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func identity(d Deadline) Deadline { return d }

func names(ds []Deadline) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return out
}

func TestCanonicalSort_RiskPriority(t *testing.T) {
	ds := []Deadline{
		{ID: 1, Name: "on track", Risk: domain.RiskOnTrack},
		{ID: 2, Name: "critical", Risk: domain.RiskCritical},
		{ID: 3, Name: "at risk", Risk: domain.RiskAtRisk},
	}

	CanonicalSort(ds, identity)

	assert.Equal(t, []string{"critical", "at risk", "on track"}, names(ds))
}

func TestCanonicalSort_EndDateTiebreak(t *testing.T) {
	ds := []Deadline{
		{ID: 1, Name: "undated"},
		{ID: 2, Name: "late", End: testutil.DayPtr(9)},
		{ID: 3, Name: "early", End: testutil.DayPtr(2)},
	}

	CanonicalSort(ds, identity)

	assert.Equal(t, []string{"early", "late", "undated"}, names(ds))
}

func TestCanonicalSort_PriorityThenNameThenID(t *testing.T) {
	end := testutil.DayPtr(5)
	ds := []Deadline{
		{ID: 4, Name: "b", End: end, Priority: 5},
		{ID: 3, Name: "a", End: end, Priority: 5},
		{ID: 2, Name: "z", End: end, Priority: 9},
		{ID: 1, Name: "a", End: end, Priority: 5},
	}

	CanonicalSort(ds, identity)

	assert.Equal(t, []domain.ItemID{2, 1, 3, 4}, []domain.ItemID{ds[0].ID, ds[1].ID, ds[2].ID, ds[3].ID})
}

func TestCanonicalSort_Deterministic(t *testing.T) {
	build := func() []Deadline {
		return []Deadline{
			{ID: 5, Name: "e", End: testutil.DayPtr(1), Risk: domain.RiskAtRisk},
			{ID: 2, Name: "b", End: testutil.DayPtr(1), Risk: domain.RiskAtRisk},
			{ID: 9, Name: "x", Risk: domain.RiskCritical},
		}
	}
	a, b := build(), build()
	b[0], b[2] = b[2], b[0]

	CanonicalSort(a, identity)
	CanonicalSort(b, identity)

	assert.Equal(t, names(a), names(b))
}

func TestSortProjects(t *testing.T) {
	ps := []*domain.Project{
		{ID: 1, Name: "Beta", Priority: 5},
		{ID: 2, Name: "Alpha", Priority: 5},
		{ID: 3, Name: "Zulu", Priority: 9},
	}

	SortProjects(ps)

	assert.Equal(t, "Zulu", ps[0].Name)
	assert.Equal(t, "Alpha", ps[1].Name)
	assert.Equal(t, "Beta", ps[2].Name)
}
