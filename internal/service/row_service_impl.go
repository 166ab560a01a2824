package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/trax/internal/domain"
	"github.com/alexanderramin/trax/internal/rowstore"
)

type rowService struct {
	store    rowstore.Store
	clock    Clock
	observer UseCaseObserver
}

func NewRowService(store rowstore.Store, clock Clock, observers ...UseCaseObserver) RowService {
	return &rowService{
		store:    store,
		clock:    clockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *rowService) ListRows(ctx context.Context, user string) (rows []domain.Row, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": user}
	defer observe(ctx, s.observer, "list-rows", startedAt, fields, &err)

	rows, err = loadRows(ctx, s.store, user, s.clock().Location())
	if err != nil {
		return nil, err
	}
	fields["rows"] = len(rows)
	return rows, nil
}

type userService struct {
	store    rowstore.Store
	observer UseCaseObserver
}

func NewUserService(store rowstore.Store, observers ...UseCaseObserver) UserService {
	return &userService{store: store, observer: useCaseObserverOrNoop(observers)}
}

// AddUser provisions the user's row collection. Adding an existing user
// leaves its rows untouched.
func (s *userService) AddUser(ctx context.Context, user string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "add-user", startedAt, map[string]any{"user": user}, &err)

	if user == "" {
		return fmt.Errorf("%w: user name must not be empty", domain.ErrInvalidArguments)
	}
	p, ok := s.store.(rowstore.Provisioner)
	if !ok {
		return fmt.Errorf("%w: adding users", domain.ErrUnsupported)
	}
	return p.AddUser(ctx, user)
}
