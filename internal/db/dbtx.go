package db

import (
	"context"
	"database/sql"
)

// DBTX is what the session and setting repositories query through. A
// repository built on the *sql.DB reads outside any transaction; one built
// inside WithinTx writes under the transaction's lock.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
