package domain

import (
	"fmt"
	"time"
)

// TrackMode selects how a track request derives its interval.
type TrackMode string

const (
	// TrackAuto continues from the latest recorded end up to now.
	TrackAuto TrackMode = "auto"
	// TrackFrom runs from an explicit start up to now.
	TrackFrom TrackMode = "from"
	// TrackExplicit records an explicit start and end.
	TrackExplicit TrackMode = "explicit"
)

// DefaultMaxAutoGapHours bounds how far back auto-continue may reach.
const DefaultMaxAutoGapHours = 4

// TrackRequest is a tagged request: Mode decides which of Start and End
// must be set. Build one with AutoTrack, TrackFromStart or TrackBetween.
type TrackRequest struct {
	Mode        TrackMode
	Start       time.Time
	End         time.Time
	Description string
}

func AutoTrack(description string) TrackRequest {
	return TrackRequest{Mode: TrackAuto, Description: description}
}

func TrackFromStart(start time.Time, description string) TrackRequest {
	return TrackRequest{Mode: TrackFrom, Start: start, Description: description}
}

func TrackBetween(start, end time.Time, description string) TrackRequest {
	return TrackRequest{Mode: TrackExplicit, Start: start, End: end, Description: description}
}

// Validate checks that the set fields match the mode.
func (r TrackRequest) Validate() error {
	switch r.Mode {
	case TrackAuto:
		if !r.Start.IsZero() || !r.End.IsZero() {
			return fmt.Errorf("%w: auto tracking takes no times", ErrInvalidArguments)
		}
	case TrackFrom:
		if r.Start.IsZero() {
			return fmt.Errorf("%w: continue-from tracking needs a start time", ErrInvalidArguments)
		}
		if !r.End.IsZero() {
			return fmt.Errorf("%w: continue-from tracking takes no end time", ErrInvalidArguments)
		}
	case TrackExplicit:
		if r.Start.IsZero() || r.End.IsZero() {
			return fmt.Errorf("%w: explicit tracking needs both start and end", ErrInvalidArguments)
		}
	default:
		return fmt.Errorf("%w: unknown track mode %q", ErrInvalidArguments, r.Mode)
	}
	return nil
}

// IntervalPolicy decides whether a track request may be appended.
type IntervalPolicy struct {
	MaxAutoGap time.Duration
}

func DefaultIntervalPolicy() IntervalPolicy {
	return NewIntervalPolicy(DefaultMaxAutoGapHours)
}

// NewIntervalPolicy builds a policy from a gap expressed in hours.
func NewIntervalPolicy(maxAutoGapHours float64) IntervalPolicy {
	return IntervalPolicy{MaxAutoGap: time.Duration(maxAutoGapHours * float64(time.Hour))}
}

// Resolve turns a request into the concrete row to append. latestEnd is the
// end of the latest recorded row, nil when the user has no rows. All times
// are truncated to the minute before checking.
func (p IntervalPolicy) Resolve(req TrackRequest, latestEnd *time.Time, now time.Time) (Row, error) {
	if err := req.Validate(); err != nil {
		return Row{}, err
	}
	now = TruncateMinute(now)

	switch req.Mode {
	case TrackAuto:
		if latestEnd == nil {
			return Row{}, fmt.Errorf("%w: nothing to continue from", ErrNoData)
		}
		gap := now.Sub(*latestEnd)
		if gap < 0 {
			gap = -gap
		}
		if gap > p.MaxAutoGap {
			return Row{}, fmt.Errorf("%w: latest tracked time is more than %s ago", ErrStaleSession, formatGap(p.MaxAutoGap))
		}
		return NewRow(*latestEnd, now, req.Description)

	case TrackFrom:
		start := TruncateMinute(req.Start)
		if latestEnd != nil && latestEnd.After(start) {
			return Row{}, fmt.Errorf("%w: start must be after the latest tracked time (%s)", ErrOutOfOrder, latestEnd.Format("2/1/2006 15:04"))
		}
		if start.After(now) {
			return Row{}, fmt.Errorf("%w: start %s is ahead of the current time", ErrFutureTimestamp, start.Format("15:04"))
		}
		return NewRow(start, now, req.Description)

	default:
		return NewRow(TruncateMinute(req.Start), TruncateMinute(req.End), req.Description)
	}
}

// TruncateMinute drops seconds and sub-second precision in t's own location.
func TruncateMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

func formatGap(d time.Duration) string {
	if d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return d.String()
}
