package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.seedChain(t)

	require.NoError(t, s.planner.SetDates(ctx, 1001, testutil.DayPtr(0), testutil.DayPtr(20)))
	assert.Equal(t, testutil.Day(25), *s.item(t, 1003).Sched().StartDate)

	label, err := s.history.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "set-dates", label)
	assert.Equal(t, testutil.Day(15), *s.item(t, 1003).Sched().StartDate)

	depth, err := s.history.Depth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, depth.Redo)

	label, err = s.history.Redo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "set-dates", label)
	assert.Equal(t, testutil.Day(25), *s.item(t, 1003).Sched().StartDate)
}

func TestHistory_EmptyStacks(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.history.Undo(ctx)
	assert.ErrorIs(t, err, domain.ErrNothingToUndo)
	_, err = s.history.Redo(ctx)
	assert.ErrorIs(t, err, domain.ErrNothingToRedo)
}

func TestHistory_NewEditClearsRedo(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.seedChain(t)

	_, err := s.history.Undo(ctx)
	require.NoError(t, err)
	require.NoError(t, s.planner.Rename(ctx, 1001, "Alpha"))

	depth, err := s.history.Depth(ctx)
	require.NoError(t, err)
	assert.Zero(t, depth.Redo)
	_, err = s.history.Redo(ctx)
	assert.ErrorIs(t, err, domain.ErrNothingToRedo)
}

func TestHistory_LimitPrunesOldest(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	s.seedChain(t)

	// Six edits with a limit of five: the add-project snapshot is gone, so
	// undo stops with the project still present.
	for range 5 {
		_, err := s.history.Undo(ctx)
		require.NoError(t, err)
	}
	_, err := s.history.Undo(ctx)
	assert.ErrorIs(t, err, domain.ErrNothingToUndo)

	f := s.storedForest(t)
	require.Len(t, f.Projects, 1)
	assert.Empty(t, f.Projects[0].Phases)
}

func TestHistory_UndoAddProjectEmptiesForest(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.planner.AddProject(ctx, draftProject("Solo"))
	require.NoError(t, err)
	_, err = s.history.Undo(ctx)
	require.NoError(t, err)

	assert.Empty(t, s.storedForest(t).Projects)
}
