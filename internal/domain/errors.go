package domain

import "errors"

var (
	// ErrAuth indicates the row store rejected the configured credentials.
	ErrAuth = errors.New("authentication failed")

	// ErrUserNotFound indicates the row store has no row collection for the user.
	ErrUserNotFound = errors.New("user not found in row store")

	// ErrMalformedRecord indicates a stored date or time string has the wrong shape.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInvalidInterval indicates the interval crosses a calendar date or
	// does not end strictly after it starts.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrOutOfOrder indicates a continue-from start lies before the latest
	// recorded end.
	ErrOutOfOrder = errors.New("interval out of order")

	// ErrFutureTimestamp indicates a continue-from start lies in the future.
	ErrFutureTimestamp = errors.New("timestamp is in the future")

	// ErrStaleSession indicates the latest recorded end is too far from now
	// to auto-continue from it.
	ErrStaleSession = errors.New("stale session")

	// ErrNoData indicates an aggregate was requested over zero rows.
	ErrNoData = errors.New("no tracked rows")

	// ErrIO indicates the row store failed to read or write.
	ErrIO = errors.New("row store i/o failure")

	// ErrInvalidArguments indicates a track request whose fields do not match its mode.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrUnsupported indicates the configured row store cannot perform the operation.
	ErrUnsupported = errors.New("not supported by this row store")
)
