// Package sqlite stores rows in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/trax/internal/db"
	"github.com/alexanderramin/trax/internal/domain"
	"github.com/alexanderramin/trax/internal/rowstore"
	"github.com/google/uuid"
)

var (
	_ rowstore.Store       = (*Store)(nil)
	_ rowstore.Provisioner = (*Store)(nil)
)

// Store implements rowstore.Store using a SQLite database.
type Store struct {
	db *sql.DB
	tx db.TxRunner
}

// Open opens (and migrates) the database at path.
func Open(path string) (*Store, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return New(database, db.NewTransactor(database)), nil
}

// New wraps an already opened database.
func New(database *sql.DB, tx db.TxRunner) *Store {
	return &Store{db: database, tx: tx}
}

// Authenticate is a no-op; a local database has no credentials.
func (s *Store) Authenticate(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: pinging database: %v", domain.ErrIO, err)
	}
	return nil
}

func (s *Store) AddUser(ctx context.Context, user string) error {
	query := `INSERT INTO users (name, created_at) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, user, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("%w: inserting user: %v", domain.ErrIO, err)
	}
	return nil
}

func (s *Store) ListRows(ctx context.Context, user string) ([]domain.RawRow, error) {
	if err := requireUser(ctx, s.db, user); err != nil {
		return nil, err
	}

	query := `SELECT row_date, start_time, end_time, total, description
		FROM tracked_rows WHERE user_name = ? ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, query, user)
	if err != nil {
		return nil, fmt.Errorf("%w: listing rows: %v", domain.ErrIO, err)
	}
	defer rows.Close()

	var out []domain.RawRow
	for rows.Next() {
		var r domain.RawRow
		if err := rows.Scan(&r.Date, &r.Start, &r.End, &r.Total, &r.Description); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", domain.ErrIO, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rows: %v", domain.ErrIO, err)
	}
	return out, nil
}

func (s *Store) AppendRow(ctx context.Context, user string, row domain.RawRow) error {
	err := s.tx.InTx(ctx, func(ctx context.Context, tx db.Conn) error {
		if err := requireUser(ctx, tx, user); err != nil {
			return err
		}

		var seq int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(seq), 0) + 1 FROM tracked_rows WHERE user_name = ?`, user,
		).Scan(&seq); err != nil {
			return fmt.Errorf("%w: allocating row sequence: %v", domain.ErrIO, err)
		}

		query := `INSERT INTO tracked_rows (id, user_name, seq, row_date, start_time, end_time, total, description, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := tx.ExecContext(ctx, query,
			uuid.New().String(),
			user,
			seq,
			row.Date,
			row.Start,
			row.End,
			row.Total,
			row.Description,
			time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("%w: inserting row: %v", domain.ErrIO, err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) && !errors.Is(err, domain.ErrIO) {
		return fmt.Errorf("%w: %v", domain.ErrIO, err)
	}
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

func requireUser(ctx context.Context, conn db.Conn, user string) error {
	var name string
	err := conn.QueryRowContext(ctx, `SELECT name FROM users WHERE name = ?`, user).Scan(&name)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %q", domain.ErrUserNotFound, user)
	}
	if err != nil {
		return fmt.Errorf("%w: looking up user: %v", domain.ErrIO, err)
	}
	return nil
}
