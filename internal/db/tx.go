package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Conn is the query surface shared by *sql.DB and *sql.Tx. Row lookups take
// a Conn so the same code serves plain reads and the append transaction.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Conn = (*sql.DB)(nil)
	_ Conn = (*sql.Tx)(nil)
)

// TxRunner runs fn inside a transaction. An append checks the user, picks
// the next sequence number and inserts the row through one TxRunner call.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context, conn Conn) error) error
}

type Transactor struct {
	db *sql.DB
}

func NewTransactor(database *sql.DB) *Transactor {
	return &Transactor{db: database}
}

// InTx commits when fn returns nil and rolls back otherwise, including when
// fn panics.
func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context, conn Conn) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	done = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
