package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/workhours/internal/domain"
	"github.com/alexanderramin/workhours/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday9 = time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)

func sessionTestSetup(t *testing.T) *SQLiteSessionRepo {
	t.Helper()
	return NewSQLiteSessionRepo(testutil.NewTestDB(t))
}

func TestSessionRepo_CreateAndGetByID(t *testing.T) {
	repo := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(monday9, testutil.WithDuration(8*time.Hour+30*time.Minute, domain.ReasonLogout))
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, fetched.ID)
	assert.True(t, monday9.Equal(fetched.LoginTime))
	require.NotNil(t, fetched.LogoutTime)
	assert.True(t, monday9.Add(8*time.Hour+30*time.Minute).Equal(*fetched.LogoutTime))
	require.NotNil(t, fetched.LogoutReason)
	assert.Equal(t, domain.ReasonLogout, *fetched.LogoutReason)
}

func TestSessionRepo_CreateOpen(t *testing.T) {
	repo := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(monday9)
	require.NoError(t, repo.Create(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsOpen())
	assert.Nil(t, fetched.LogoutReason)
}

func TestSessionRepo_StoresUTCSeconds(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	local := time.Date(2026, 10, 12, 11, 0, 0, 750_000_000, time.FixedZone("CEST", 2*3600))
	sess := testutil.NewTestSession(local)
	require.NoError(t, repo.Create(ctx, sess))

	var raw string
	require.NoError(t, database.QueryRow(`SELECT login_time FROM work_sessions WHERE id = ?`, sess.ID).Scan(&raw))
	assert.Equal(t, "2026-10-12T09:00:00Z", raw)
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	repo := sessionTestSetup(t)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_Update(t *testing.T) {
	repo := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(monday9)
	require.NoError(t, repo.Create(ctx, sess))

	require.NoError(t, sess.Close(monday9.Add(2*time.Hour), domain.ReasonManual))
	require.NoError(t, repo.Update(ctx, sess))

	fetched, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsOpen())
	assert.Equal(t, 2*time.Hour, fetched.Duration())
	assert.Equal(t, domain.ReasonManual, *fetched.LogoutReason)
}

func TestSessionRepo_Update_NotFound(t *testing.T) {
	repo := sessionTestSetup(t)

	sess := testutil.NewTestSession(monday9, testutil.WithDuration(time.Hour, domain.ReasonManual))
	err := repo.Update(context.Background(), sess)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_ListOpen_NewestFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	// Legacy databases may hold several open rows; drop the guard to model one.
	_, err := database.Exec(`DROP INDEX idx_work_sessions_single_open`)
	require.NoError(t, err)

	older := testutil.NewTestSession(monday9)
	newer := testutil.NewTestSession(monday9.Add(time.Hour))
	closed := testutil.NewTestSession(monday9.Add(-time.Hour), testutil.WithDuration(30*time.Minute, domain.ReasonLogout))
	for _, s := range []*domain.WorkSession{older, newer, closed} {
		require.NoError(t, repo.Create(ctx, s))
	}

	open, err := repo.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, newer.ID, open[0].ID)
	assert.Equal(t, older.ID, open[1].ID)
}

func TestSessionRepo_ListOpen_Empty(t *testing.T) {
	repo := sessionTestSetup(t)

	open, err := repo.ListOpen(context.Background())
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestSessionRepo_ListBetween(t *testing.T) {
	repo := sessionTestSetup(t)
	ctx := context.Background()

	before := testutil.NewTestSession(monday9.Add(-24*time.Hour), testutil.WithDuration(time.Hour, domain.ReasonLogout))
	atStart := testutil.NewTestSession(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), testutil.WithDuration(time.Hour, domain.ReasonLogout))
	afternoon := testutil.NewTestSession(monday9.Add(5*time.Hour), testutil.WithDuration(time.Hour, domain.ReasonSleep))
	morning := testutil.NewTestSession(monday9, testutil.WithDuration(time.Hour, domain.ReasonManual))
	atEnd := testutil.NewTestSession(time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC))
	for _, s := range []*domain.WorkSession{before, atStart, afternoon, morning, atEnd} {
		require.NoError(t, repo.Create(ctx, s))
	}

	got, err := repo.ListBetween(ctx,
		time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, atStart.ID, got[0].ID)
	assert.Equal(t, morning.ID, got[1].ID)
	assert.Equal(t, afternoon.ID, got[2].ID)
}

func TestSessionRepo_ListBetween_ConvertsLocalBounds(t *testing.T) {
	repo := sessionTestSetup(t)
	ctx := context.Background()

	// 23:30 UTC on the 11th is 01:30 on the 12th in UTC+2.
	late := testutil.NewTestSession(time.Date(2026, 10, 11, 23, 30, 0, 0, time.UTC), testutil.WithDuration(time.Hour, domain.ReasonLogout))
	require.NoError(t, repo.Create(ctx, late))

	zone := time.FixedZone("UTC+2", 2*3600)
	got, err := repo.ListBetween(ctx,
		time.Date(2026, 10, 12, 0, 0, 0, 0, zone),
		time.Date(2026, 10, 13, 0, 0, 0, 0, zone))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, late.ID, got[0].ID)
}

func TestSessionRepo_LastLogin(t *testing.T) {
	repo := sessionTestSetup(t)
	ctx := context.Background()

	last, err := repo.LastLogin(ctx)
	require.NoError(t, err)
	assert.Nil(t, last, "empty table has no last login")

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(monday9, testutil.WithDuration(time.Hour, domain.ReasonLogout))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(monday9.Add(3*time.Hour))))

	last, err = repo.LastLogin(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, monday9.Add(3*time.Hour).Equal(*last))
}

func TestSessionRepo_LegacyReasonNormalized(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)

	_, err := database.Exec(`INSERT INTO work_sessions (id, login_time, logout_time, logout_type)
		VALUES ('legacy', '2026-10-12T09:00:00Z', '2026-10-12T10:00:00Z', 'Manual Stop')`)
	require.NoError(t, err)

	s, err := repo.GetByID(context.Background(), "legacy")
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonManual, *s.LogoutReason)
}

func TestSessionRepo_CorruptTimestamp(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)

	_, err := database.Exec(`INSERT INTO work_sessions (id, login_time) VALUES ('bad', 'yesterday')`)
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing login_time")
}
