package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Column headers of a row collection, in order.
const (
	ColumnDate        = "Date"
	ColumnStart       = "Start"
	ColumnEnd         = "End"
	ColumnTotal       = "Total"
	ColumnDescription = "Description"
)

// Columns is the header row every row collection starts with.
var Columns = []string{ColumnDate, ColumnStart, ColumnEnd, ColumnTotal, ColumnDescription}

// RawRow is the stored shape of a Row. Date is D/M/Y; Start, End and
// Total are H:M:S.
type RawRow struct {
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Total       string `json:"total"`
	Description string `json:"description"`
}

// Values returns the raw row in column order.
func (r RawRow) Values() []string {
	return []string{r.Date, r.Start, r.End, r.Total, r.Description}
}

// RawRowFromValues is the inverse of Values. Missing trailing cells are
// treated as empty strings.
func RawRowFromValues(values []string) RawRow {
	cell := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	return RawRow{
		Date:        cell(0),
		Start:       cell(1),
		End:         cell(2),
		Total:       cell(3),
		Description: cell(4),
	}
}

// FormatRecord renders a row into its stored shape. All fields are written
// in the start time's location.
func FormatRecord(r Row) RawRow {
	return RawRow{
		Date:        r.Start.Format("2/1/2006"),
		Start:       r.Start.Format("15:04:05"),
		End:         r.End.In(r.Start.Location()).Format("15:04:05"),
		Total:       FormatClock(r.Total),
		Description: r.Description,
	}
}

// FormatClock renders a duration as H:M:S with zero-padded fields.
func FormatClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// ParseRecord parses a stored row, interpreting date and times in loc.
func ParseRecord(raw RawRow, loc *time.Location) (Row, error) {
	y, m, d, err := parseDate(raw.Date)
	if err != nil {
		return Row{}, err
	}
	sh, sm, ss, err := parseClock(raw.Start, 23)
	if err != nil {
		return Row{}, err
	}
	eh, em, es, err := parseClock(raw.End, 23)
	if err != nil {
		return Row{}, err
	}
	th, tm, ts, err := parseClock(raw.Total, -1)
	if err != nil {
		return Row{}, err
	}

	return Row{
		Start:       time.Date(y, time.Month(m), d, sh, sm, ss, 0, loc),
		End:         time.Date(y, time.Month(m), d, eh, em, es, 0, loc),
		Total:       time.Duration(th)*time.Hour + time.Duration(tm)*time.Minute + time.Duration(ts)*time.Second,
		Description: raw.Description,
	}, nil
}

// ParseRecords parses every stored row, stopping at the first malformed one.
func ParseRecords(raws []RawRow, loc *time.Location) ([]Row, error) {
	rows := make([]Row, 0, len(raws))
	for i, raw := range raws {
		r, err := ParseRecord(raw, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func parseDate(s string) (year, month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: date %q is not day/month/year", ErrMalformedRecord, s)
	}
	nums, err := atoiAll(parts)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: date %q: %v", ErrMalformedRecord, s, err)
	}
	day, month, year = nums[0], nums[1], nums[2]

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if year < 1 || t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return 0, 0, 0, fmt.Errorf("%w: date %q does not exist", ErrMalformedRecord, s)
	}
	return year, month, day, nil
}

// parseClock parses H:M:S. maxHour < 0 leaves the hour unbounded, which
// is how durations are stored.
func parseClock(s string, maxHour int) (hour, minute, second int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: time %q is not hour:minute:second", ErrMalformedRecord, s)
	}
	nums, err := atoiAll(parts)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: time %q: %v", ErrMalformedRecord, s, err)
	}
	hour, minute, second = nums[0], nums[1], nums[2]

	if hour < 0 || (maxHour >= 0 && hour > maxHour) || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, 0, 0, fmt.Errorf("%w: time %q out of range", ErrMalformedRecord, s)
	}
	return hour, minute, second, nil
}

func atoiAll(parts []string) ([]int, error) {
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}
