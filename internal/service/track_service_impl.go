package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/trax/internal/app"
	"github.com/alexanderramin/trax/internal/domain"
	"github.com/alexanderramin/trax/internal/rowstore"
)

type trackService struct {
	store    rowstore.Store
	policy   domain.IntervalPolicy
	clock    Clock
	observer UseCaseObserver
}

func NewTrackService(
	store rowstore.Store,
	policy domain.IntervalPolicy,
	clock Clock,
	observers ...UseCaseObserver,
) TrackService {
	return &trackService{
		store:    store,
		policy:   policy,
		clock:    clockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Track validates req against the user's latest row and appends the
// resulting interval. Malformed requests fail before the store is touched.
func (s *trackService) Track(ctx context.Context, user string, req domain.TrackRequest) (result *app.TrackResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"user": user,
		"mode": string(req.Mode),
	}
	defer observe(ctx, s.observer, "track", startedAt, fields, &err)

	if err = req.Validate(); err != nil {
		return nil, err
	}

	raws, err := s.store.ListRows(ctx, user)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	fields["existing_rows"] = len(raws)

	var latestEnd *time.Time
	if req.Mode != domain.TrackExplicit {
		latestEnd, err = s.latestEnd(raws, now.Location())
		if err != nil {
			return nil, err
		}
	}

	req = inLocation(req, now.Location())
	row, err := s.policy.Resolve(req, latestEnd, now)
	if err != nil {
		return nil, err
	}

	if err = s.store.AppendRow(ctx, user, domain.FormatRecord(row)); err != nil {
		return nil, err
	}
	fields["minutes"] = int(row.Total / time.Minute)

	return &app.TrackResult{User: user, Mode: req.Mode, Row: row}, nil
}

// latestEnd returns nil when there are no rows to continue from.
func (s *trackService) latestEnd(raws []domain.RawRow, loc *time.Location) (*time.Time, error) {
	rows, err := domain.ParseRecords(raws, loc)
	if err != nil {
		return nil, err
	}
	latest, err := domain.LatestRow(rows)
	if errors.Is(err, domain.ErrNoData) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding latest row: %w", err)
	}
	return &latest.End, nil
}

// inLocation moves the request's times into loc so every stored field is
// written in the zone rows are read back in.
func inLocation(req domain.TrackRequest, loc *time.Location) domain.TrackRequest {
	if !req.Start.IsZero() {
		req.Start = req.Start.In(loc)
	}
	if !req.End.IsZero() {
		req.End = req.End.In(loc)
	}
	return req
}
