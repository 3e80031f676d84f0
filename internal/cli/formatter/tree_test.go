package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTree_Connectors(t *testing.T) {
	out := plain(RenderTree([]TreeItem{
		{Title: "Design", Level: 1},
		{Title: "Sketch", Level: 2},
		{Title: "Review", Level: 2, IsLast: true},
		{Title: "Build", Level: 1, IsLast: true},
		{Title: "Wire", Level: 2, IsLast: true},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, "├─ Design", lines[0])
	assert.Equal(t, "│  ├─ Sketch", lines[1])
	assert.Equal(t, "│  └─ Review", lines[2])
	assert.Equal(t, "└─ Build", lines[3])
	assert.Equal(t, "   └─ Wire", lines[4])
}

func TestRenderTree_DoneFlagsAndDetail(t *testing.T) {
	out := plain(RenderTree([]TreeItem{
		{Title: "Ship", ID: 42, Level: 1, IsLast: true, Done: true, Flags: []string{"locked"}, Detail: "d"},
	}))
	assert.Equal(t, "└─ ✔ 42 Ship [locked]  d\n", out)
}

func TestProjectTreeItems(t *testing.T) {
	p := testutil.NewTestProject(1, "Launch",
		testutil.NewTestPhase(10, "A", testutil.WithDays(0, 10)),
	)
	task := testutil.NewTestTask(20, "Write", testutil.WithDays(0, 2))
	task.Delegate = "sam"
	task.Subtasks = []*domain.Subtask{testutil.NewTestSubtask(30, "Outline", true)}
	p.Phases[0].Tasks = []*domain.Task{task}
	p.GeneralTasks = []*domain.Task{testutil.NewTestTask(40, "Misc")}

	items := ProjectTreeItems(p)
	require.Len(t, items, 4)

	assert.Equal(t, "A", items[0].Title)
	assert.Equal(t, 1, items[0].Level)
	assert.False(t, items[0].IsLast, "general tasks follow the last phase")

	assert.Equal(t, 2, items[1].Level)
	assert.True(t, items[1].IsLast)
	assert.Contains(t, items[1].Flags, "@sam")

	assert.Equal(t, 3, items[2].Level)
	assert.True(t, items[2].Done)
	assert.Contains(t, items[2].Detail, "100%")

	assert.Equal(t, "Misc", items[3].Title)
	assert.Equal(t, 1, items[3].Level)
	assert.True(t, items[3].IsLast)
	assert.Contains(t, items[3].Detail, "undated")
}

func TestFormatProjectTree_Empty(t *testing.T) {
	out := plain(FormatProjectTree(testutil.NewTestProject(1, "Empty")))
	assert.Contains(t, out, "Empty")
	assert.Contains(t, out, "No phases or tasks yet.")
}
