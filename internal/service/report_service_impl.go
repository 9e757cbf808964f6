package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/workhours/internal/contract"
	"github.com/alexanderramin/workhours/internal/domain"
	"github.com/alexanderramin/workhours/internal/repository"
	"github.com/alexanderramin/workhours/internal/timeutil"
)

type reportService struct {
	sessions repository.SessionRepo
	settings SettingsService
	clock    Clock
}

// NewReportService builds reports in the time zone of the clock's readings.
func NewReportService(sessions repository.SessionRepo, settings SettingsService, clock Clock) ReportService {
	return &reportService{sessions: sessions, settings: settings, clock: clock}
}

func (s *reportService) location() *time.Location {
	return s.clock.Now().Location()
}

func (s *reportService) SessionsInPeriod(ctx context.Context, p domain.Period) ([]*domain.WorkSession, error) {
	sessions, err := s.sessions.ListBetween(ctx, p.Start, p.End)
	if err != nil {
		return nil, fmt.Errorf("loading sessions for %s: %w", p.Label(), err)
	}
	return sessions, nil
}

func (s *reportService) Daily(ctx context.Context, day time.Time) (*contract.PeriodReport, error) {
	return s.build(ctx, domain.DayPeriod(day))
}

func (s *reportService) Weekly(ctx context.Context, weekStart time.Time) (*contract.PeriodReport, error) {
	return s.build(ctx, domain.WeekPeriod(weekStart))
}

func (s *reportService) CurrentWeek(ctx context.Context) (*contract.PeriodReport, error) {
	startDay, err := s.settings.WeekStartDay(ctx)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, domain.CurrentWeekPeriod(s.clock.Now(), startDay))
}

func (s *reportService) Monthly(ctx context.Context, year int, month time.Month) (*contract.PeriodReport, error) {
	p, err := domain.MonthPeriod(year, month, s.location())
	if err != nil {
		return nil, err
	}
	return s.build(ctx, p)
}

func (s *reportService) Yearly(ctx context.Context, year int) (*contract.PeriodReport, error) {
	p, err := domain.YearPeriod(year, s.location())
	if err != nil {
		return nil, err
	}
	return s.build(ctx, p)
}

func (s *reportService) LastLogin(ctx context.Context) (*time.Time, error) {
	last, err := s.sessions.LastLogin(ctx)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, nil
	}
	local := last.In(s.location())
	return &local, nil
}

func (s *reportService) Status(ctx context.Context) (*contract.StatusSummary, error) {
	now := s.clock.Now()

	daily, err := s.Daily(ctx, now)
	if err != nil {
		return nil, err
	}
	startDay, err := s.settings.WeekStartDay(ctx)
	if err != nil {
		return nil, err
	}
	week, err := s.build(ctx, domain.CurrentWeekPeriod(now, startDay))
	if err != nil {
		return nil, err
	}
	last, err := s.LastLogin(ctx)
	if err != nil {
		return nil, err
	}
	open, err := s.authoritativeOpen(ctx)
	if err != nil {
		return nil, err
	}

	return &contract.StatusSummary{
		Now:                 now,
		DailyTotal:          daily.Total,
		DailyTotalFormatted: daily.TotalFormatted,
		WeekTotal:           week.Total,
		WeekTotalFormatted:  week.TotalFormatted,
		LastLogin:           last,
		OpenSession:         localize(open, now.Location()),
		WeekStartDay:        startDay,
	}, nil
}

func (s *reportService) authoritativeOpen(ctx context.Context) (*domain.WorkSession, error) {
	open, err := s.sessions.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("finding open session: %w", err)
	}
	if len(open) == 0 {
		return nil, nil
	}
	return open[0], nil
}

func (s *reportService) build(ctx context.Context, p domain.Period) (*contract.PeriodReport, error) {
	sessions, err := s.SessionsInPeriod(ctx, p)
	if err != nil {
		return nil, err
	}
	open, err := s.authoritativeOpen(ctx)
	if err != nil {
		return nil, err
	}

	loc := p.Start.Location()
	report := &contract.PeriodReport{
		Period:  p,
		Entries: make([]contract.SessionEntry, 0, len(sessions)),
	}
	for _, session := range sessions {
		report.Entries = append(report.Entries, contract.SessionEntry{
			Session:   localize(session, loc),
			Duration:  session.Duration(),
			Anomalous: session.IsOpen() && (open == nil || session.ID != open.ID),
		})
	}
	report.Total = domain.TotalDuration(sessions)
	report.TotalFormatted = timeutil.FormatDuration(report.Total)
	return report, nil
}

// localize returns a copy of session with its times in loc.
func localize(session *domain.WorkSession, loc *time.Location) *domain.WorkSession {
	if session == nil {
		return nil
	}
	out := *session
	out.LoginTime = session.LoginTime.In(loc)
	if session.LogoutTime != nil {
		logout := session.LogoutTime.In(loc)
		out.LogoutTime = &logout
	}
	return &out
}
