package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const punchBody = `# Inbox
- [ ] Book venue @ana due:2025-01-20 #events
  - [ ] Shortlist three
  - [x] Ask for budget
- [x] Already done
- [ ] Order badges
not a checkbox
`

func TestPunch_AppendAndReplace(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	body, err := s.punch.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, body)

	require.NoError(t, s.punch.Append(ctx, "call the printer"))
	require.NoError(t, s.punch.Append(ctx, "  renew domain  "))
	body, err = s.punch.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "- [ ] call the printer\n- [ ] renew domain\n", body)

	assert.ErrorIs(t, s.punch.Append(ctx, "   "), domain.ErrNameRequired)

	require.NoError(t, s.punch.Replace(ctx, punchBody))
	body, err = s.punch.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, punchBody, body)
}

func TestPunch_HandoffToPhase(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.seedChain(t)
	require.NoError(t, s.punch.Replace(ctx, punchBody))

	result, err := s.punch.Handoff(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "A", result.TargetName)
	assert.Equal(t, 2, result.Tasks)
	assert.Equal(t, 2, result.Subtasks)
	require.Len(t, result.Created, 2)

	phase := s.item(t, 1001).(*domain.Phase)
	require.Len(t, phase.Tasks, 2)
	venue := phase.Tasks[0]
	assert.Equal(t, "Book venue", venue.Name)
	assert.Equal(t, "ana", venue.Delegate)
	assert.Equal(t, []string{"events"}, venue.Tags)
	require.Len(t, venue.Subtasks, 2)
	assert.False(t, venue.Subtasks[0].Completed)
	assert.True(t, venue.Subtasks[1].Completed)
	assert.InDelta(t, 50.0, venue.Progress, 0.001)
	assert.Equal(t, "Order badges", phase.Tasks[1].Name)

	body, err := s.punch.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, `# Inbox
- [x] Book venue @ana due:2025-01-20 #events
  - [x] Shortlist three
  - [x] Ask for budget
- [x] Already done
- [x] Order badges
not a checkbox
`, body)
}

func TestPunch_HandoffDueDateBecomesEnd(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	p, err := s.planner.AddProject(ctx, draftProject("Errands"))
	require.NoError(t, err)
	require.NoError(t, s.punch.Append(ctx, "File taxes due:2025-01-20"))

	result, err := s.punch.Handoff(ctx, p.ID)
	require.NoError(t, err)

	task := s.item(t, result.Created[0]).(*domain.Task)
	assert.Equal(t, "File taxes", task.Name)
	assert.Equal(t, testutil.Day(19), *task.EndDate)
}

func TestPunch_SecondHandoffIsNoop(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.seedChain(t)
	require.NoError(t, s.punch.Replace(ctx, punchBody))

	_, err := s.punch.Handoff(ctx, 1000)
	require.NoError(t, err)
	before, err := s.history.Depth(ctx)
	require.NoError(t, err)

	result, err := s.punch.Handoff(ctx, 1000)
	require.NoError(t, err)
	assert.Zero(t, result.Tasks)

	after, err := s.history.Depth(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, s.storedForest(t).Projects[0].GeneralTasks, 2)
}

func TestPunch_HandoffRejectsBadTargets(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.seedChain(t)
	p := s.storedForest(t).Projects[0]
	task, err := s.planner.AddTask(ctx, p.ID, draft("Task"))
	require.NoError(t, err)
	require.NoError(t, s.punch.Replace(ctx, punchBody))

	_, err = s.punch.Handoff(ctx, task)
	assert.ErrorIs(t, err, domain.ErrWrongKind)
	_, err = s.punch.Handoff(ctx, 31337)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	body, err := s.punch.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, punchBody, body)
}

func TestPunch_HandoffUndoRestoresForestOnly(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.seedChain(t)
	require.NoError(t, s.punch.Replace(ctx, punchBody))

	_, err := s.punch.Handoff(ctx, 1000)
	require.NoError(t, err)
	_, err = s.history.Undo(ctx)
	require.NoError(t, err)

	assert.Empty(t, s.storedForest(t).Projects[0].GeneralTasks)
	open, err := s.punch.Get(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, punchBody, open)
}
