package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/waypoint/internal/scheduler"
	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGanttColumn(t *testing.T) {
	from, to := testutil.Day(0), testutil.Day(10)

	assert.Equal(t, 0, GanttColumn(testutil.Day(0), from, to, 11))
	assert.Equal(t, 5, GanttColumn(testutil.Day(5), from, to, 11))
	assert.Equal(t, 10, GanttColumn(testutil.Day(10), from, to, 11))
	assert.Equal(t, 10, GanttColumn(testutil.Day(30), from, to, 11), "clamped to the last column")
	assert.Equal(t, 0, GanttColumn(testutil.Day(-3), from, to, 11), "clamped to the first column")
	assert.Equal(t, 10, GanttColumn(testutil.Day(5), from, to, 22), "two columns per day, day 5 starts the sixth pair")
	assert.Equal(t, 20, GanttColumn(testutil.Day(10), from, to, 22))
}

func TestGanttRows_UseEffectiveDates(t *testing.T) {
	f := testutil.ChainForest()
	scheduler.RecomputeAll(f)

	rows := GanttRows(f.Projects[0])
	require.Len(t, rows, 3)

	assert.Equal(t, testutil.Day(10), *rows[1].Start)
	assert.Equal(t, testutil.Day(15), *rows[1].End)
	assert.True(t, rows[1].Driven)
	assert.False(t, rows[0].Driven)

	from, to, ok := GanttSpan(rows)
	require.True(t, ok)
	assert.Equal(t, testutil.Day(0), from)
	assert.Equal(t, testutil.Day(18), to)
}

func TestGanttRows_LockedProjectMarksRows(t *testing.T) {
	p := testutil.NewTestProject(1, "Frozen", testutil.NewTestPhase(10, "A", testutil.WithDays(0, 4)))
	p.Locked = true

	rows := GanttRows(p)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Locked)
}

func TestGanttSpan_Undated(t *testing.T) {
	_, _, ok := GanttSpan([]GanttRow{{Label: "x"}})
	assert.False(t, ok)
}

func TestFormatGantt(t *testing.T) {
	f := testutil.ChainForest()
	scheduler.RecomputeAll(f)

	out := plain(FormatGantt(f.Projects[0], 19, testutil.Day(2)))

	assert.Contains(t, out, "LAUNCH")
	assert.Contains(t, out, "2025-01-01")
	assert.Contains(t, out, "2025-01-19")

	var barA string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "A  ") {
			barA = line
			break
		}
	}
	require.NotEmpty(t, barA)
	assert.Equal(t, 11, strings.Count(barA, "█"), "A spans days 0 to 10 on a one-day-per-column scale")
}

func TestFormatGantt_EmptyAndUndated(t *testing.T) {
	empty := testutil.NewTestProject(1, "Empty")
	assert.Contains(t, plain(FormatGantt(empty, 40, testutil.Day(0))), "No phases or tasks yet.")

	undated := testutil.NewTestProject(2, "Loose", testutil.NewTestPhase(10, "A"))
	assert.Contains(t, plain(FormatGantt(undated, 40, testutil.Day(0))), "Nothing is scheduled yet.")

	mixed := testutil.NewTestProject(3, "Mixed",
		testutil.NewTestPhase(10, "A", testutil.WithDays(0, 2)),
		testutil.NewTestPhase(11, "B"),
	)
	assert.Contains(t, plain(FormatGantt(mixed, 40, testutil.Day(0))), "undated")

}
