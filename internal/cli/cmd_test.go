package cli

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/workhours/internal/cli/formatter"
	"github.com/alexanderramin/workhours/internal/domain"
	"github.com/alexanderramin/workhours/internal/repository"
	"github.com/alexanderramin/workhours/internal/service"
	"github.com/alexanderramin/workhours/internal/testutil"
)

// monday is 2026-10-12, the first day of a Monday-based week.
var monday = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) (*App, *service.TestClock) {
	t.Helper()
	database := testutil.NewTestDB(t)

	sessions := repository.NewSQLiteSessionRepo(database)
	clock := &service.TestClock{CurrentTime: monday.Add(9 * time.Hour)}
	settings := service.NewSettingsService(repository.NewSQLiteSettingRepo(database), zerolog.Nop())

	return &App{
		Ledger:         service.NewLedgerService(sessions, testutil.NewTestUoW(database), clock, zerolog.Nop()),
		Reports:        service.NewReportService(sessions, settings, clock),
		Settings:       settings,
		Clock:          clock,
		Logger:         zerolog.Nop(),
		StatusInterval: time.Minute,
		IsInteractive:  func() bool { return false },
	}, clock
}

// workDay records a 09:00-17:30 session on monday closed as Logout and
// leaves the clock at 17:45.
func workDay(t *testing.T, app *App, clock *service.TestClock) {
	t.Helper()
	ctx := context.Background()
	clock.CurrentTime = monday.Add(9 * time.Hour)
	_, err := app.Ledger.OpenSession(ctx)
	require.NoError(t, err)
	clock.CurrentTime = monday.Add(17*time.Hour + 30*time.Minute)
	require.NoError(t, app.Ledger.CloseSession(ctx, domain.ReasonLogout))
	clock.CurrentTime = monday.Add(17*time.Hour + 45*time.Minute)
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdContext(context.Background(), t, app, args...)
}

func executeCmdContext(ctx context.Context, t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return stripANSI(buf.String()), err
}

func TestStartStop(t *testing.T) {
	app, clock := testApp(t)
	ctx := context.Background()

	out, err := executeCmd(t, app, "start")
	require.NoError(t, err)
	assert.Contains(t, out, "Started session")
	assert.Contains(t, out, "at 09:00")

	clock.Advance(90 * time.Minute)
	out, err = executeCmd(t, app, "stop", "--reason", "sleep")
	require.NoError(t, err)
	assert.Contains(t, out, "after 1hr 30min")
	assert.Contains(t, out, "Sleep")

	open, err := app.Ledger.GetOpenSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestStart_ClosesPreviousAsRestart(t *testing.T) {
	app, clock := testApp(t)

	_, err := executeCmd(t, app, "start")
	require.NoError(t, err)
	clock.Advance(time.Hour)

	_, err = executeCmd(t, app, "start")
	require.NoError(t, err)

	report, err := app.Reports.Daily(context.Background(), clock.Now())
	require.NoError(t, err)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, domain.ReasonSystemRestart, *report.Entries[0].Session.LogoutReason)
	assert.True(t, report.Entries[1].Session.IsOpen())
}

func TestStartStop_ReportStoredTimesAfterClockSkew(t *testing.T) {
	app, clock := testApp(t)

	_, err := executeCmd(t, app, "start")
	require.NoError(t, err)

	// The clock steps back an hour; the stale session's logout and the new
	// login are both held at 09:00.
	clock.CurrentTime = monday.Add(8 * time.Hour)
	out, err := executeCmd(t, app, "start")
	require.NoError(t, err)
	assert.Contains(t, out, "at 09:00")
	assert.NotContains(t, out, "at 08:00")

	open, err := app.Ledger.GetOpenSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Contains(t, out, formatter.ShortID(open.ID))

	clock.Advance(30 * time.Minute)
	out, err = executeCmd(t, app, "stop")
	require.NoError(t, err)
	assert.Contains(t, out, "after 0min")
}

func TestStop_DefaultsToManual(t *testing.T) {
	app, clock := testApp(t)
	_, err := executeCmd(t, app, "start")
	require.NoError(t, err)
	clock.Advance(time.Hour)

	_, err = executeCmd(t, app, "stop")
	require.NoError(t, err)

	report, err := app.Reports.Daily(context.Background(), clock.Now())
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, domain.ReasonManual, *report.Entries[0].Session.LogoutReason)
}

func TestStop_NoOpenSession(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "stop")
	require.NoError(t, err)
	assert.Contains(t, out, "No open session.")
}

func TestStop_RejectsUnknownReason(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "start")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "stop", "--reason", "coffee")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown logout reason")

	open, err := app.Ledger.GetOpenSession(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, open, "a rejected stop must not close the session")
}

func TestParseReasonFlag(t *testing.T) {
	tests := []struct {
		in   string
		want domain.LogoutReason
		ok   bool
	}{
		{"manual", domain.ReasonManual, true},
		{"System Restart", domain.ReasonSystemRestart, true},
		{"unknown", domain.ReasonUnknown, true},
		{"coffee", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseReasonFlag(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus(t *testing.T) {
	app, clock := testApp(t)
	workDay(t, app, clock)

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily Hours: 8hr 30min")
	assert.Contains(t, out, "Last Login:  09:00")
	assert.Contains(t, out, "IDLE")
}

func TestStatus_LastLoginOnEarlierDay(t *testing.T) {
	app, clock := testApp(t)
	workDay(t, app, clock)
	clock.Advance(24 * time.Hour)

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily Hours: 0min")
	assert.Contains(t, out, "10/12 09:00")
}

func TestReportDay(t *testing.T) {
	app, clock := testApp(t)
	workDay(t, app, clock)

	out, err := executeCmd(t, app, "report", "day")
	require.NoError(t, err)
	assert.Contains(t, out, "MONDAY, 2026-10-12")
	assert.Contains(t, out, "2026-10-12 09:00")
	assert.Contains(t, out, "2026-10-12 17:30")
	assert.Contains(t, out, "Logout")
	assert.Contains(t, out, "Total: 8hr 30min")

	out, err = executeCmd(t, app, "report", "day", "--date", "2026-10-13")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded.")
	assert.Contains(t, out, "Total: 0min")
}

func TestReportDay_ShowsActiveSession(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "start")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "report", "day")
	require.NoError(t, err)
	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Total: 0min")
}

func TestReportDay_InvalidDate(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "report", "day", "--date", "12/10/2026")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestReportWeek_HonoursWeekStartDay(t *testing.T) {
	app, clock := testApp(t)
	workDay(t, app, clock)

	out, err := executeCmd(t, app, "report", "week")
	require.NoError(t, err)
	assert.Contains(t, out, "WEEK OF 2026-10-12 TO 2026-10-18")
	assert.Contains(t, out, "Total: 8hr 30min")

	_, err = executeCmd(t, app, "settings", "week-start", "sunday")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "report", "week")
	require.NoError(t, err)
	assert.Contains(t, out, "WEEK OF 2026-10-11 TO 2026-10-17")
	assert.Contains(t, out, "Total: 8hr 30min")

	out, err = executeCmd(t, app, "report", "week", "--start", "2026-10-13")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 0min")
}

func TestReportMonthAndYear(t *testing.T) {
	app, clock := testApp(t)
	workDay(t, app, clock)

	out, err := executeCmd(t, app, "report", "month")
	require.NoError(t, err)
	assert.Contains(t, out, "OCTOBER 2026")
	assert.Contains(t, out, "Total: 8hr 30min")

	out, err = executeCmd(t, app, "report", "month", "--month", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "SEPTEMBER 2026")
	assert.Contains(t, out, "Total: 0min")

	_, err = executeCmd(t, app, "report", "month", "--month", "13")
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	out, err = executeCmd(t, app, "report", "year")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 8hr 30min")

	out, err = executeCmd(t, app, "report", "year", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 0min")
}

func TestSettingsWeekStart(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "settings", "week-start")
	require.NoError(t, err)
	assert.Contains(t, out, "Weeks start on Monday (0)")

	out, err = executeCmd(t, app, "settings", "week-start", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Week start day set to Sunday")

	day, err := app.Settings.WeekStartDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Sunday, day)

	_, err = executeCmd(t, app, "settings", "week-start", "7")
	assert.ErrorIs(t, err, domain.ErrInvalidWeekStartDay)
}

func TestSettingsShow(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "settings", "week-start", "wed")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "week_start_day")
	assert.Contains(t, out, "2 (Wednesday)")
}

func TestSettingsEdit_RequiresTerminal(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "settings", "edit")
	assert.ErrorIs(t, err, errNotInteractive)
}

func TestStats_RequiresTerminal(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "stats")
	assert.ErrorIs(t, err, errNotInteractive)
}

func TestRun_ClosesSessionAsShutdownOnCancel(t *testing.T) {
	app, _ := testApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	out, err := executeCmdContext(ctx, t, app, "run", "--interval", "20ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily Hours: 0min | Last Login: 09:00")
	assert.Contains(t, out, "Session closed.")

	open, err := app.Ledger.GetOpenSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, open)

	report, err := app.Reports.Daily(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, domain.ReasonShutdown, *report.Entries[0].Session.LogoutReason)
}

func TestWeekStartForm_ListsAllDays(t *testing.T) {
	options := weekStartOptions()
	require.Len(t, options, 7)
	assert.Equal(t, "Monday", options[0].Key)
	assert.Equal(t, domain.Sunday, options[6].Value)

	day := domain.Friday
	assert.NotNil(t, newWeekStartForm(&day))
}

func TestBootstrap_ReceivesPersistentFlags(t *testing.T) {
	app, _ := testApp(t)
	var gotDB string
	app.Bootstrap = func(flags *pflag.FlagSet) error {
		gotDB, _ = flags.GetString("db")
		return nil
	}

	_, err := executeCmd(t, app, "--db", "/tmp/work.db", "status")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/work.db", gotDB)
}

func TestBootstrap_ErrorStopsCommand(t *testing.T) {
	app, _ := testApp(t)
	app.Bootstrap = func(*pflag.FlagSet) error {
		return errors.New("no database")
	}

	out, err := executeCmd(t, app, "start")
	require.EqualError(t, err, "no database")
	assert.NotContains(t, out, "Started session")
}
