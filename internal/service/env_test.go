package service

import (
	"bytes"
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/workhours/internal/db"
	"github.com/alexanderramin/workhours/internal/repository"
	"github.com/alexanderramin/workhours/internal/testutil"
)

// monday is 2026-10-12; the week of the 12th runs Monday to Sunday the 18th.
var monday = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	db       *sql.DB
	sessions *repository.SQLiteSessionRepo
	clock    *TestClock
	logs     *bytes.Buffer
	observer *recordingObserver
	ledger   LedgerService
	reports  ReportService
	settings SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, testutil.NewTestDB(t), nil)
}

// newTestEnvWith builds services over database. A nil uow uses a real one.
func newTestEnvWith(t *testing.T, database *sql.DB, uow db.UnitOfWork) *testEnv {
	t.Helper()
	if uow == nil {
		uow = testutil.NewTestUoW(database)
	}
	env := &testEnv{
		db:       database,
		sessions: repository.NewSQLiteSessionRepo(database),
		clock:    &TestClock{CurrentTime: monday.Add(9 * time.Hour)},
		logs:     &bytes.Buffer{},
		observer: &recordingObserver{},
	}
	logger := zerolog.New(env.logs)
	env.settings = NewSettingsService(repository.NewSQLiteSettingRepo(database), logger, env.observer)
	env.ledger = NewLedgerService(env.sessions, uow, env.clock, logger, env.observer)
	env.reports = NewReportService(env.sessions, env.settings, env.clock)
	return env
}

func (e *testEnv) at(t time.Time) {
	e.clock.CurrentTime = t
}

func (e *testEnv) openCount(t *testing.T) int {
	t.Helper()
	open, err := e.sessions.ListOpen(context.Background())
	if err != nil {
		t.Fatalf("listing open sessions: %v", err)
	}
	return len(open)
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
