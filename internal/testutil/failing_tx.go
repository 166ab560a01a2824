package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/trax/internal/db"
)

// FailingExecTx runs transactions whose FailOn-th ExecContext call (from 1)
// returns Err. Reads go through.
type FailingExecTx struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (f *FailingExecTx) InTx(ctx context.Context, fn func(ctx context.Context, conn db.Conn) error) error {
	return db.NewTransactor(f.DB).InTx(ctx, func(ctx context.Context, conn db.Conn) error {
		return fn(ctx, &failingExec{Conn: conn, failOn: f.FailOn, err: f.Err})
	})
}

type failingExec struct {
	db.Conn
	calls  int
	failOn int
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.calls++
	if f.calls == f.failOn {
		return nil, f.err
	}
	return f.Conn.ExecContext(ctx, query, args...)
}
