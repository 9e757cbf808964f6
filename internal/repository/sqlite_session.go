package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/workhours/internal/db"
	"github.com/alexanderramin/workhours/internal/domain"
)

var sessionColumns = []string{"id", "login_time", "logout_time", "logout_type"}

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	query, args, err := ssq.Insert("work_sessions").
		Columns(sessionColumns...).
		Values(s.ID, formatTime(s.LoginTime), nullableTimeToString(s.LogoutTime), nullableReasonToValue(s.LogoutReason)).
		ToSql()
	if err != nil {
		return buildError("insert session", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting work session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.WorkSession, error) {
	query, args, err := ssq.Select(sessionColumns...).
		From("work_sessions").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, buildError("get session", err)
	}
	return r.scanSession(r.db.QueryRowContext(ctx, query, args...))
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.WorkSession) error {
	query, args, err := ssq.Update("work_sessions").
		Set("logout_time", nullableTimeToString(s.LogoutTime)).
		Set("logout_type", nullableReasonToValue(s.LogoutReason)).
		Where(sq.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return buildError("update session", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating work session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("work session %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) ListOpen(ctx context.Context) ([]*domain.WorkSession, error) {
	query, args, err := ssq.Select(sessionColumns...).
		From("work_sessions").
		Where(sq.Eq{"logout_time": nil}).
		OrderBy("login_time DESC", "rowid DESC").
		ToSql()
	if err != nil {
		return nil, buildError("open sessions", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing open sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.WorkSession, error) {
	query, args, err := ssq.Select(sessionColumns...).
		From("work_sessions").
		Where(sq.GtOrEq{"login_time": formatTime(from)}).
		Where(sq.Lt{"login_time": formatTime(to)}).
		OrderBy("login_time ASC", "rowid ASC").
		ToSql()
	if err != nil {
		return nil, buildError("sessions between", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions between %s and %s: %w", formatTime(from), formatTime(to), err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) LastLogin(ctx context.Context) (*time.Time, error) {
	query, args, err := ssq.Select("MAX(login_time)").From("work_sessions").ToSql()
	if err != nil {
		return nil, buildError("last login", err)
	}
	var last sql.NullString
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&last); err != nil {
		return nil, fmt.Errorf("reading last login: %w", err)
	}
	t, err := parseNullableTime(last)
	if err != nil {
		return nil, fmt.Errorf("parsing last login: %w", err)
	}
	return t, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.WorkSession, error) {
	s, err := r.scanInto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work session: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.WorkSession, error) {
	var sessions []*domain.WorkSession
	for rows.Next() {
		s, err := r.scanInto(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) scanInto(sc scanner) (*domain.WorkSession, error) {
	var (
		s          domain.WorkSession
		loginStr   string
		logoutStr  sql.NullString
		logoutType sql.NullString
	)
	if err := sc.Scan(&s.ID, &loginStr, &logoutStr, &logoutType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}

	var err error
	if s.LoginTime, err = parseTime(loginStr); err != nil {
		return nil, fmt.Errorf("parsing login_time of session %s: %w", s.ID, err)
	}
	if s.LogoutTime, err = parseNullableTime(logoutStr); err != nil {
		return nil, fmt.Errorf("parsing logout_time of session %s: %w", s.ID, err)
	}
	s.LogoutReason = nullableReason(logoutType)
	return &s, nil
}
