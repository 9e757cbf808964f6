package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/workhours/internal/db"
	"github.com/alexanderramin/workhours/internal/domain"
)

// SQLiteSettingRepo implements SettingRepo using a SQLite database.
type SQLiteSettingRepo struct {
	db db.DBTX
}

// NewSQLiteSettingRepo creates a new SQLiteSettingRepo.
func NewSQLiteSettingRepo(conn db.DBTX) *SQLiteSettingRepo {
	return &SQLiteSettingRepo{db: conn}
}

func (r *SQLiteSettingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	query, args, err := ssq.Select("id", "key", "value").
		From("settings").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, buildError("get setting", err)
	}

	var s domain.Setting
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Key, &s.Value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("setting %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning setting %q: %w", key, err)
	}
	return &s, nil
}

func (r *SQLiteSettingRepo) Upsert(ctx context.Context, key, value string) error {
	query, args, err := ssq.Insert("settings").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
	if err != nil {
		return buildError("upsert setting", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting setting %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteSettingRepo) List(ctx context.Context) ([]*domain.Setting, error) {
	query, args, err := ssq.Select("id", "key", "value").
		From("settings").
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, buildError("list settings", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	defer rows.Close()

	var settings []*domain.Setting
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("scanning setting row: %w", err)
		}
		settings = append(settings, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}
	return settings, nil
}
