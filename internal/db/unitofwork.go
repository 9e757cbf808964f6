package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

// UnitOfWork runs fn inside a single write transaction. Repositories built
// from the DBTX handed to fn take part in that transaction.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork opens transactions on a SQLite handle. The DSN from
// OpenDB uses _txlock=immediate, so BeginTx takes the write lock up front and
// concurrent writers wait on busy_timeout instead of failing mid-transaction.
type SQLiteUnitOfWork struct {
	db     *sql.DB
	logger zerolog.Logger
	wrap   func(tx *sql.Tx) DBTX
}

// UnitOfWorkOption configures a SQLiteUnitOfWork.
type UnitOfWorkOption func(*SQLiteUnitOfWork)

// WithTxLogger sets the logger used for rollback and commit failures.
func WithTxLogger(logger zerolog.Logger) UnitOfWorkOption {
	return func(u *SQLiteUnitOfWork) {
		u.logger = logger.With().Str("component", "uow").Logger()
	}
}

// WithTxWrapper decorates the transaction before it reaches fn. Tests use it
// to inject write failures.
func WithTxWrapper(wrap func(tx *sql.Tx) DBTX) UnitOfWorkOption {
	return func(u *SQLiteUnitOfWork) {
		u.wrap = wrap
	}
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by db. Without WithTxLogger
// rollback failures are only reported through the returned error.
func NewSQLiteUnitOfWork(db *sql.DB, opts ...UnitOfWorkOption) *SQLiteUnitOfWork {
	u := &SQLiteUnitOfWork{db: db, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// WithinTx commits when fn returns nil and rolls back otherwise. A failed
// rollback is logged and joined to fn's error so both stay visible to
// errors.Is. A panic in fn rolls back and is re-raised.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				u.logger.Error().Err(rbErr).Interface("panic", p).Msg("Rollback after panic failed")
			}
			panic(p)
		}
	}()

	var scoped DBTX = tx
	if u.wrap != nil {
		scoped = u.wrap(tx)
	}

	if err := fn(ctx, scoped); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			u.logger.Error().Err(rbErr).AnErr("cause", err).Msg("Rollback failed")
			return fmt.Errorf("%w (rollback failed: %w)", err, rbErr)
		}
		u.logger.Debug().Err(err).Msg("Transaction rolled back")
		return err
	}

	if err := tx.Commit(); err != nil {
		u.logger.Error().Err(err).Msg("Commit failed")
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
