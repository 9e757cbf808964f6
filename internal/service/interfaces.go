package service

import (
	"context"
	"time"

	"github.com/alexanderramin/workhours/internal/contract"
	"github.com/alexanderramin/workhours/internal/domain"
)

// LedgerService owns the session lifecycle. At most one session is open
// after any call returns.
type LedgerService interface {
	// OpenSession closes every open session as SystemRestart and opens a new
	// one, atomically. It returns the new session's id.
	OpenSession(ctx context.Context) (string, error)
	// CloseSession closes the open session with reason. It is a no-op when
	// nothing is open.
	CloseSession(ctx context.Context, reason domain.LogoutReason) error
	// GetOpenSession returns the most recently opened open session, or nil.
	GetOpenSession(ctx context.Context) (*domain.WorkSession, error)
	// GetSession returns a session by id as stored, open or closed.
	GetSession(ctx context.Context, id string) (*domain.WorkSession, error)
}

type ReportService interface {
	SessionsInPeriod(ctx context.Context, p domain.Period) ([]*domain.WorkSession, error)
	Daily(ctx context.Context, day time.Time) (*contract.PeriodReport, error)
	Weekly(ctx context.Context, weekStart time.Time) (*contract.PeriodReport, error)
	CurrentWeek(ctx context.Context) (*contract.PeriodReport, error)
	Monthly(ctx context.Context, year int, month time.Month) (*contract.PeriodReport, error)
	Yearly(ctx context.Context, year int) (*contract.PeriodReport, error)
	LastLogin(ctx context.Context) (*time.Time, error)
	Status(ctx context.Context) (*contract.StatusSummary, error)
}

type SettingsService interface {
	WeekStartDay(ctx context.Context) (domain.WeekStartDay, error)
	SetWeekStartDay(ctx context.Context, day domain.WeekStartDay) error
	List(ctx context.Context) ([]*domain.Setting, error)
}
