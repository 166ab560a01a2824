package app

import "github.com/alexanderramin/trax/internal/domain"

// TrackResult is the interval a track call appended.
type TrackResult struct {
	User string
	Mode domain.TrackMode
	Row  domain.Row
}
