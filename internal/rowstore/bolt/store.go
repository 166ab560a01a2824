// Package bolt stores rows in an embedded bbolt file: one nested bucket per
// user, keyed by the bucket sequence so iteration follows append order.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/trax/internal/domain"
	"github.com/alexanderramin/trax/internal/rowstore"
	"go.etcd.io/bbolt"
)

const bucketUsers = "users"

var (
	_ rowstore.Store       = (*Store)(nil)
	_ rowstore.Provisioner = (*Store)(nil)
)

// Store implements rowstore.Store using bbolt.
type Store struct {
	db *bbolt.DB
}

// Open opens a bbolt-backed store, creating the file and its directory.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: creating bolt directory: %v", domain.ErrIO, err)
		}
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: open bolt db: %v", domain.ErrIO, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketUsers))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create users bucket: %v", domain.ErrIO, err)
	}

	return &Store{db: db}, nil
}

// Authenticate is a no-op; the file was already opened.
func (s *Store) Authenticate(context.Context) error { return nil }

func (s *Store) AddUser(ctx context.Context, user string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_, err := tx.Bucket([]byte(bucketUsers)).CreateBucketIfNotExists([]byte(user))
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: create user bucket: %v", domain.ErrIO, err)
	}
	return nil
}

func (s *Store) ListRows(ctx context.Context, user string) ([]domain.RawRow, error) {
	var rows []domain.RawRow
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketUsers)).Bucket([]byte(user))
		if b == nil {
			return fmt.Errorf("%w: %q", domain.ErrUserNotFound, user)
		}
		return b.ForEach(func(_, v []byte) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var r domain.RawRow
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("%w: unmarshal row: %v", domain.ErrMalformedRecord, err)
			}
			rows = append(rows, r)
			return nil
		})
	})
	if err != nil {
		return nil, wrapIO(err)
	}
	return rows, nil
}

func (s *Store) AppendRow(ctx context.Context, user string, row domain.RawRow) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("%w: marshal row: %v", domain.ErrIO, err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b := tx.Bucket([]byte(bucketUsers)).Bucket([]byte(user))
		if b == nil {
			return fmt.Errorf("%w: %q", domain.ErrUserNotFound, user)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), data)
	})
	return wrapIO(err)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func wrapIO(err error) error {
	if err == nil || errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrMalformedRecord) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrIO, err)
}
