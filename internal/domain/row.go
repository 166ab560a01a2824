package domain

import (
	"fmt"
	"time"
)

// Row is one recorded work interval.
type Row struct {
	Start       time.Time
	End         time.Time
	Total       time.Duration
	Description string
}

// NewRow builds a row for appending. End must be strictly after start and
// both must share a calendar date.
func NewRow(start, end time.Time, description string) (Row, error) {
	if !SameDate(start, end) {
		return Row{}, fmt.Errorf("%w: both dates must be on the same day", ErrInvalidInterval)
	}
	if !end.After(start) {
		return Row{}, fmt.Errorf("%w: second date must come after first date", ErrInvalidInterval)
	}
	return Row{
		Start:       start,
		End:         end,
		Total:       end.Sub(start),
		Description: description,
	}, nil
}

// Date returns midnight of the row's calendar date in the row's location.
func (r Row) Date() time.Time {
	y, m, d := r.Start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.Start.Location())
}

// SameDate reports whether a and b fall on the same calendar date in a's location.
func SameDate(a, b time.Time) bool {
	b = b.In(a.Location())
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TotalTime is an aggregate duration expressed as hours and minutes.
type TotalTime struct {
	Hours   int
	Minutes int
}

// NewTotalTime carries minute overflow into hours.
func NewTotalTime(minutes int) TotalTime {
	return TotalTime{Hours: minutes / 60, Minutes: minutes % 60}
}

func (t TotalTime) String() string {
	return fmt.Sprintf("%dh %02dm", t.Hours, t.Minutes)
}

// Status is the derived summary of a user's rows.
type Status struct {
	User              string
	Total             TotalTime
	LatestDate        time.Time
	LatestDescription string
	RowCount          int
}
