package testutil

import (
	"time"

	"github.com/alexanderramin/trax/internal/domain"
)

// Day is the calendar date fixtures are placed on unless a test says otherwise.
var Day = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

// At returns hour:minute on Day in UTC.
func At(hour, minute int) time.Time {
	return Day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// RowOption adjusts a fixture row.
type RowOption func(*domain.Row)

func WithDescription(desc string) RowOption {
	return func(r *domain.Row) {
		r.Description = desc
	}
}

// WithTotal overrides the stored total, as a hand-edited sheet might.
func WithTotal(d time.Duration) RowOption {
	return func(r *domain.Row) {
		r.Total = d
	}
}

// NewTestRow builds a row from start to end without validating it.
func NewTestRow(start, end time.Time, opts ...RowOption) domain.Row {
	r := domain.Row{
		Start:       start,
		End:         end,
		Total:       end.Sub(start),
		Description: "test work",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// NewTestRawRow is NewTestRow in its stored shape.
func NewTestRawRow(start, end time.Time, opts ...RowOption) domain.RawRow {
	return domain.FormatRecord(NewTestRow(start, end, opts...))
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
