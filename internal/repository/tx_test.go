package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepos_RollbackDiscardsForestAndHistory(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteForestRepo(tx).Save(ctx, "default", testutil.ChainForest()); err != nil {
			return err
		}
		if err := NewSQLiteHistoryRepo(tx).Push(ctx, &Snapshot{Workspace: "default", Stack: StackUndo, Forest: namedForest("x")}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	f, err := NewSQLiteForestRepo(database).Load(ctx, "default")
	require.NoError(t, err)
	assert.Empty(t, f.Projects)

	n, err := NewSQLiteHistoryRepo(database).Count(ctx, "default", StackUndo)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepos_FailedExecRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	injected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteHistoryRepo(tx).Push(ctx, &Snapshot{Workspace: "default", Stack: StackUndo, Forest: namedForest("x")}); err != nil {
			return err
		}
		return NewSQLiteForestRepo(tx).Save(ctx, "default", testutil.ChainForest())
	})
	assert.ErrorIs(t, err, injected)

	n, err := NewSQLiteHistoryRepo(database).Count(ctx, "default", StackUndo)
	require.NoError(t, err)
	assert.Zero(t, n)
}
