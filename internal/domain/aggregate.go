package domain

import (
	"fmt"
	"time"
)

// LatestRow returns the row with the latest end. Exact ties resolve to the
// row that comes last in rows, i.e. the most recently appended one.
func LatestRow(rows []Row) (Row, error) {
	if len(rows) == 0 {
		return Row{}, fmt.Errorf("%w: cannot pick a latest row", ErrNoData)
	}
	latest := rows[0]
	for _, r := range rows[1:] {
		if !r.End.Before(latest.End) {
			latest = r
		}
	}
	return latest, nil
}

// SumTotal adds the whole minutes of every row's stored total.
func SumTotal(rows []Row) (TotalTime, error) {
	if len(rows) == 0 {
		return TotalTime{}, fmt.Errorf("%w: cannot sum total time", ErrNoData)
	}
	minutes := 0
	for _, r := range rows {
		minutes += int(r.Total / time.Minute)
	}
	return NewTotalTime(minutes), nil
}

// ComputeStatus derives the status summary for a user's rows.
func ComputeStatus(user string, rows []Row) (*Status, error) {
	latest, err := LatestRow(rows)
	if err != nil {
		return nil, err
	}
	total, err := SumTotal(rows)
	if err != nil {
		return nil, err
	}
	return &Status{
		User:              user,
		Total:             total,
		LatestDate:        latest.End,
		LatestDescription: latest.Description,
		RowCount:          len(rows),
	}, nil
}
