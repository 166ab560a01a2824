package service

import (
	"context"
	"time"

	"github.com/alexanderramin/trax/internal/domain"
	"github.com/alexanderramin/trax/internal/rowstore"
)

// Clock supplies the current time in the tracking time zone. Stored rows are
// interpreted in the location of the returned time.
type Clock func() time.Time

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

func clockOrSystem(clock Clock) Clock {
	if clock == nil {
		return SystemClock(time.Local)
	}
	return clock
}

// loadRows lists and parses every row of user, in store order.
func loadRows(ctx context.Context, store rowstore.Store, user string, loc *time.Location) ([]domain.Row, error) {
	raws, err := store.ListRows(ctx, user)
	if err != nil {
		return nil, err
	}
	return domain.ParseRecords(raws, loc)
}
