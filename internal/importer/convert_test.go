package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedIDs() *domain.IDGenerator {
	return domain.NewIDGeneratorWithClock(func() time.Time { return time.UnixMilli(1000) })
}

func TestConvertPlan_BuildsHierarchy(t *testing.T) {
	plan := &PlanSchema{
		Project: ProjectImport{Name: "Launch", StartDate: ptrStr("2025-01-01"), Tags: []string{"q1"}},
		Phases: []PhaseImport{
			{Ref: "design", Name: "Design", StartDate: ptrStr("2025-01-01"), EndDate: ptrStr("2025-01-11")},
			{Ref: "build", Name: "Build", StartDate: ptrStr("2025-01-01"), EndDate: ptrStr("2025-01-06"), Locked: true},
		},
		Tasks: []TaskImport{
			{Ref: "mock", PhaseRef: "design", Name: "Mockups", Delegate: "sam", Subtasks: []SubtaskImport{
				{Ref: "mock-a", Name: "Home", Completed: true},
			}},
			{Ref: "admin", Name: "Paperwork", EndDate: ptrStr("2025-01-03")},
		},
		Dependencies: []DependencyImport{{PredecessorRef: "design", SuccessorRef: "build"}},
	}
	require.Empty(t, ValidatePlan(plan))

	p, err := ConvertPlan(plan, fixedIDs())
	require.NoError(t, err)

	assert.Equal(t, domain.ItemID(1000), p.ID)
	assert.Equal(t, 5, p.Priority, "default priority")
	assert.Equal(t, []string{"q1"}, p.Tags)
	require.NotNil(t, p.StartDate)
	assert.True(t, testutil.Day(0).Equal(*p.StartDate))

	require.Len(t, p.Phases, 2)
	design, build := p.Phases[0], p.Phases[1]
	assert.True(t, build.Locked)
	require.NotNil(t, build.PredecessorID)
	assert.Equal(t, design.ID, *build.PredecessorID)
	assert.Equal(t, []domain.ItemID{build.ID}, design.Dependents)

	require.Len(t, design.Tasks, 1)
	mock := design.Tasks[0]
	assert.Equal(t, "sam", mock.Delegate)
	require.Len(t, mock.Subtasks, 1)
	assert.True(t, mock.Subtasks[0].Completed)

	require.Len(t, p.GeneralTasks, 1)
	assert.Equal(t, "Paperwork", p.GeneralTasks[0].Name)
	assert.True(t, testutil.Day(2).Equal(*p.GeneralTasks[0].EndDate))
}

func TestConvertPlan_IDsAreUniqueAndIncreasing(t *testing.T) {
	plan := validMinimalPlan()
	p, err := ConvertPlan(plan, fixedIDs())
	require.NoError(t, err)

	assert.Equal(t, domain.ItemID(1000), p.ID)
	assert.Equal(t, domain.ItemID(1001), p.Phases[0].ID)
	assert.Equal(t, domain.ItemID(1002), p.Phases[0].Tasks[0].ID)
}

func TestExportDocument_ForestRebuildsDependents(t *testing.T) {
	f := testutil.ChainForest()
	for _, it := range f.Items() {
		it.Sched().Dependents = nil
	}

	out := NewExportDocument(f).Forest()

	idx := domain.NewIndex(out)
	a, _ := idx.Item(10)
	assert.Equal(t, []domain.ItemID{11}, a.Sched().Dependents)
}

func TestDecode_DetectsShape(t *testing.T) {
	export, err := Decode([]byte(`{"version":1,"projects":[]}`))
	require.NoError(t, err)
	require.NotNil(t, export.Export)
	assert.Nil(t, export.Plan)

	plan, err := Decode([]byte(`{"project":{"name":"Launch"}}`))
	require.NoError(t, err)
	require.NotNil(t, plan.Plan)
	assert.Equal(t, "Launch", plan.Plan.Project.Name)

	_, err = Decode([]byte(`{"nodes":[]}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"project":{"name":"Launch"},"phases":[{"ref":"a","name":"A"}]}`), 0o644))

	payload, err := LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, payload.Plan)
	assert.Len(t, payload.Plan.Phases, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestConvertPlan_RejectsDependencyOnOwnPhase(t *testing.T) {
	plan := validMinimalPlan()
	plan.Dependencies = []DependencyImport{{PredecessorRef: "design", SuccessorRef: "mock"}}

	_, err := ConvertPlan(plan, fixedIDs())

	assert.ErrorIs(t, err, domain.ErrCycle)
}
