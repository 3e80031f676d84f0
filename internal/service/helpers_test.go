package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/repository"
	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testWorkspace = "test"

type testServices struct {
	db       *sql.DB
	uow      db.UnitOfWork
	ws       Workspace
	observer *recordingObserver
	planner  PlannerService
	history  HistoryService
	review   ReviewService
	export   ExportService
	punch    PunchService
}

// fixedIDs hands out 1000, 1001, ... so tests can name items by id.
func fixedIDs() *domain.IDGenerator {
	return domain.NewIDGeneratorWithClock(func() time.Time { return time.UnixMilli(1000) })
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ws := Workspace{Name: testWorkspace, HistoryLimit: 5, IDs: fixedIDs()}
	obs := &recordingObserver{}
	return &testServices{
		db:       database,
		uow:      uow,
		ws:       ws,
		observer: obs,
		planner:  NewPlannerService(uow, ws, obs),
		history:  NewHistoryService(uow, ws, obs),
		review:   NewReviewService(uow, ws, 5, obs),
		export:   NewExportService(uow, ws, obs),
		punch:    NewPunchService(uow, ws, obs),
	}
}

// storedForest reads the saved forest without recomputing it.
func (s *testServices) storedForest(t *testing.T) *domain.Forest {
	t.Helper()
	f, err := repository.NewSQLiteForestRepo(s.db).Load(context.Background(), testWorkspace)
	require.NoError(t, err)
	return f
}

func (s *testServices) item(t *testing.T, id domain.ItemID) domain.Item {
	t.Helper()
	it, ok := domain.NewIndex(s.storedForest(t)).Item(id)
	require.True(t, ok, "item %d not found", id)
	return it
}

// seedChain stores the A -> B -> C chain: A ends on day 10, B lasts five
// days, C three. Ids are project 1000, phases 1001-1003.
func (s *testServices) seedChain(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	p, err := s.planner.AddProject(ctx, draftProject("Launch"))
	require.NoError(t, err)
	a, err := s.planner.AddPhase(ctx, p.ID, draftDays("A", 0, 10))
	require.NoError(t, err)
	b, err := s.planner.AddPhase(ctx, p.ID, draftDays("B", 0, 5))
	require.NoError(t, err)
	c, err := s.planner.AddPhase(ctx, p.ID, draftDays("C", 0, 3))
	require.NoError(t, err)
	require.NoError(t, s.planner.Link(ctx, b, a))
	require.NoError(t, s.planner.Link(ctx, c, b))
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
