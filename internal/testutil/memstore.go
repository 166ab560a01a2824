package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/trax/internal/domain"
)

// MemoryStore is an in-process row store for tests. The *Err fields, when
// set, are returned by the matching method instead of touching data.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string][]domain.RawRow

	AuthErr   error
	ListErr   error
	AppendErr error

	ListCalls   int
	AppendCalls int
}

// NewMemoryStore creates a store with the given users provisioned.
func NewMemoryStore(users ...string) *MemoryStore {
	s := &MemoryStore{users: make(map[string][]domain.RawRow)}
	for _, u := range users {
		s.users[u] = nil
	}
	return s
}

// Seed appends raw rows for user, provisioning the user if needed.
func (s *MemoryStore) Seed(user string, rows ...domain.RawRow) *MemoryStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user] = append(s.users[user], rows...)
	return s
}

// Rows returns a copy of user's stored rows.
func (s *MemoryStore) Rows(user string) []domain.RawRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.RawRow(nil), s.users[user]...)
}

func (s *MemoryStore) Authenticate(context.Context) error {
	return s.AuthErr
}

func (s *MemoryStore) AddUser(_ context.Context, user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user]; !ok {
		s.users[user] = nil
	}
	return nil
}

func (s *MemoryStore) ListRows(_ context.Context, user string) ([]domain.RawRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListCalls++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	rows, ok := s.users[user]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUserNotFound, user)
	}
	return append([]domain.RawRow(nil), rows...), nil
}

func (s *MemoryStore) AppendRow(_ context.Context, user string, row domain.RawRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AppendCalls++
	if s.AppendErr != nil {
		return s.AppendErr
	}
	if _, ok := s.users[user]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrUserNotFound, user)
	}
	s.users[user] = append(s.users[user], row)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
