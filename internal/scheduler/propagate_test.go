package scheduler

import (
	"testing"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPropagate_SinglePassAdvancesOneHop(t *testing.T) {
	f := testutil.ChainForest()
	Rollup(f)

	changed := Propagate(f, domain.NewIndex(f))

	assert.True(t, changed)
	b := phaseByID(t, f, 11)
	c := phaseByID(t, f, 12)
	assert.Equal(t, testutil.Day(10), *b.StartDate)
	// C still reads B's effective end from before B moved.
	assert.Equal(t, testutil.Day(5), *c.StartDate)
}

func TestPropagate_PrefersEffectiveEnd(t *testing.T) {
	pred := testutil.NewTestPhase(10, "Pred", testutil.WithDays(0, 4))
	pred.Tasks = []*domain.Task{testutil.NewTestTask(20, "long", testutil.WithDays(0, 9))}
	succ := testutil.NewTestPhase(11, "Succ", testutil.WithDays(0, 2), testutil.DependsOn(10))
	f := testutil.NewTestForest(testutil.NewTestProject(1, "P", pred, succ))
	Rollup(f)

	Propagate(f, domain.NewIndex(f))

	assert.Equal(t, testutil.Day(9), *succ.StartDate)
	assert.Equal(t, testutil.Day(11), *succ.EndDate)
}

func TestPropagate_FallsBackToEndDate(t *testing.T) {
	pred := testutil.NewTestPhase(10, "Pred", testutil.WithDays(0, 4))
	succ := testutil.NewTestPhase(11, "Succ", testutil.WithDays(0, 2), testutil.DependsOn(10))
	f := testutil.NewTestForest(testutil.NewTestProject(1, "P", pred, succ))

	// No rollup yet, so the predecessor has no effective range.
	Propagate(f, domain.NewIndex(f))

	assert.Equal(t, testutil.Day(4), *succ.StartDate)
}

func TestPropagate_CrossLevelSubtaskOnPhase(t *testing.T) {
	phase := testutil.NewTestPhase(10, "Gate", testutil.WithDays(0, 7))
	task := testutil.NewTestTask(20, "Work")
	sub := testutil.NewTestSubtask(21, "after gate", false, testutil.WithDays(1, 3), testutil.DependsOn(10))
	task.Subtasks = []*domain.Subtask{sub}
	proj := testutil.NewTestProject(1, "P", phase)
	proj.GeneralTasks = []*domain.Task{task}
	f := testutil.NewTestForest(proj)

	RecomputeAll(f)

	assert.Equal(t, testutil.Day(7), *sub.StartDate)
	assert.Equal(t, testutil.Day(9), *sub.EndDate)
	assert.Equal(t, testutil.Day(9), *task.EffectiveEnd)
	assert.Equal(t, "Gate", sub.DriverName)
}

func TestShift(t *testing.T) {
	start, end := shift(testutil.DayPtr(1), testutil.DayPtr(4), testutil.Day(10))
	assert.Equal(t, testutil.Day(10), *start)
	assert.Equal(t, testutil.Day(13), *end)

	start, end = shift(nil, testutil.DayPtr(4), testutil.Day(10))
	assert.Equal(t, testutil.Day(10), *start)
	assert.Equal(t, testutil.Day(4), *end, "end without a start is left alone")
}
