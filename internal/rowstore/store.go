// Package rowstore defines the row store collaborator: a per-user collection
// of rows that trax reads in full and appends to.
package rowstore

import (
	"context"

	"github.com/alexanderramin/trax/internal/domain"
)

// Store is implemented by every backend. ListRows returns rows in the order
// they were appended. Failures wrap domain.ErrAuth, domain.ErrUserNotFound
// or domain.ErrIO.
type Store interface {
	Authenticate(ctx context.Context) error
	ListRows(ctx context.Context, user string) ([]domain.RawRow, error)
	AppendRow(ctx context.Context, user string, row domain.RawRow) error
	Close() error
}

// Provisioner is implemented by stores that can create a user's row collection.
type Provisioner interface {
	AddUser(ctx context.Context, user string) error
}

