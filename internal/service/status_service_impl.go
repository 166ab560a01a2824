package service

import (
	"context"
	"time"

	"github.com/alexanderramin/trax/internal/domain"
	"github.com/alexanderramin/trax/internal/rowstore"
)

type statusService struct {
	store    rowstore.Store
	clock    Clock
	observer UseCaseObserver
}

func NewStatusService(store rowstore.Store, clock Clock, observers ...UseCaseObserver) StatusService {
	return &statusService{
		store:    store,
		clock:    clockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *statusService) GetStatus(ctx context.Context, user string) (status *domain.Status, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user": user}
	defer observe(ctx, s.observer, "status", startedAt, fields, &err)

	rows, err := loadRows(ctx, s.store, user, s.clock().Location())
	if err != nil {
		return nil, err
	}
	fields["rows"] = len(rows)
	return domain.ComputeStatus(user, rows)
}
