package cli

import (
	"errors"

	"github.com/alexanderramin/trax/internal/domain"
)

// Process exit codes, one per error kind.
const (
	ExitOK = iota
	ExitFailure
	ExitInvalidArguments
	ExitAuth
	ExitUserNotFound
	ExitMalformedRecord
	ExitInvalidInterval
	ExitOutOfOrder
	ExitFutureTimestamp
	ExitStaleSession
	ExitNoData
	ExitIO
	ExitUnsupported
)

var exitCodes = []struct {
	err  error
	code int
}{
	{domain.ErrInvalidArguments, ExitInvalidArguments},
	{domain.ErrAuth, ExitAuth},
	{domain.ErrUserNotFound, ExitUserNotFound},
	{domain.ErrMalformedRecord, ExitMalformedRecord},
	{domain.ErrInvalidInterval, ExitInvalidInterval},
	{domain.ErrOutOfOrder, ExitOutOfOrder},
	{domain.ErrFutureTimestamp, ExitFutureTimestamp},
	{domain.ErrStaleSession, ExitStaleSession},
	{domain.ErrNoData, ExitNoData},
	{domain.ErrIO, ExitIO},
	{domain.ErrUnsupported, ExitUnsupported},
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, e := range exitCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return ExitFailure
}
