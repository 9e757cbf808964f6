package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/workhours/internal/db"
	"github.com/rs/zerolog"
)

// FailOnNthExecUoW runs the real unit of work but makes the FailOn-th write
// inside each transaction return Err. Writes are counted from 1; reads are
// not counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
	Logger zerolog.Logger
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	uow := db.NewSQLiteUnitOfWork(u.DB,
		db.WithTxLogger(u.Logger),
		db.WithTxWrapper(func(tx *sql.Tx) db.DBTX {
			return &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
		}),
	)
	return uow.WithinTx(ctx, fn)
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
