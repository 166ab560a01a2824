package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*clockValue)(nil)
	_ pflag.Value = (*dateValue)(nil)
)

// clockValue is a time-of-day flag written as H:MM or HH:MM.
type clockValue struct {
	set          bool
	hour, minute int
}

func (v *clockValue) String() string {
	if !v.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", v.hour, v.minute)
}

func (v *clockValue) Set(s string) error {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(m) != 2 {
		return fmt.Errorf("want HH:MM, got %q", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("hour out of range in %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("minute out of range in %q", s)
	}
	v.set, v.hour, v.minute = true, hour, minute
	return nil
}

func (v *clockValue) Type() string { return "HH:MM" }

// on places the time of day on day's calendar date in day's location.
func (v *clockValue) on(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), v.hour, v.minute, 0, 0, day.Location())
}

// dateValue is a calendar date flag in the stored D/M/Y form.
type dateValue struct {
	set              bool
	year, month, day int
}

func (v *dateValue) String() string {
	if !v.set {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d", v.day, v.month, v.year)
}

func (v *dateValue) Set(s string) error {
	t, err := time.Parse("2/1/2006", strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("want D/M/YYYY, got %q", s)
	}
	v.set, v.year, v.month, v.day = true, t.Year(), int(t.Month()), t.Day()
	return nil
}

func (v *dateValue) Type() string { return "D/M/Y" }

// resolve returns midnight of the flag's date in now's location, or of
// now's own date when the flag was not given.
func (v *dateValue) resolve(now time.Time) time.Time {
	if !v.set {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	return time.Date(v.year, time.Month(v.month), v.day, 0, 0, 0, 0, now.Location())
}
