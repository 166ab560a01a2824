package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/trax/internal/domain"
	"github.com/alexanderramin/trax/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const user = "Default"

func newTrack(store *testutil.MemoryStore, now time.Time, observers ...UseCaseObserver) TrackService {
	return NewTrackService(store, domain.DefaultIntervalPolicy(), Clock(testutil.FixedClock(now)), observers...)
}

func TestTrack_ExplicitThenAutoWithinGap(t *testing.T) {
	store := testutil.NewMemoryStore(user)
	ctx := context.Background()

	res, err := newTrack(store, testutil.At(10, 5)).Track(ctx, user,
		domain.TrackBetween(testutil.At(8, 0), testutil.At(10, 0), "Starting off my awesome day!"))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, res.Row.Total)

	res, err = newTrack(store, testutil.At(10, 30)).Track(ctx, user, domain.AutoTrack("Doing more cool stuff."))
	require.NoError(t, err)
	assert.Equal(t, domain.TrackAuto, res.Mode)
	assert.Equal(t, testutil.At(10, 0), res.Row.Start)
	assert.Equal(t, testutil.At(10, 30), res.Row.End)

	stored := store.Rows(user)
	require.Len(t, stored, 2)
	assert.Equal(t, domain.RawRow{Date: "10/3/2026", Start: "10:00:00", End: "10:30:00", Total: "00:30:00", Description: "Doing more cool stuff."}, stored[1])
}

func TestTrack_AutoAfterLongGapIsStale(t *testing.T) {
	store := testutil.NewMemoryStore().Seed(user, testutil.NewTestRawRow(testutil.At(8, 0), testutil.At(10, 0)))

	_, err := newTrack(store, testutil.At(15, 0)).Track(context.Background(), user, domain.AutoTrack("late"))
	assert.ErrorIs(t, err, domain.ErrStaleSession)
	assert.Len(t, store.Rows(user), 1, "nothing is appended on failure")
}

func TestTrack_AutoWithoutRows(t *testing.T) {
	store := testutil.NewMemoryStore(user)

	_, err := newTrack(store, testutil.At(9, 0)).Track(context.Background(), user, domain.AutoTrack("x"))
	assert.ErrorIs(t, err, domain.ErrNoData)
	assert.Zero(t, store.AppendCalls)
}

func TestTrack_ContinueFrom(t *testing.T) {
	store := testutil.NewMemoryStore().Seed(user, testutil.NewTestRawRow(testutil.At(8, 0), testutil.At(10, 0)))
	svc := newTrack(store, testutil.At(12, 0))
	ctx := context.Background()

	_, err := svc.Track(ctx, user, domain.TrackFromStart(testutil.At(9, 30), "overlap"))
	assert.ErrorIs(t, err, domain.ErrOutOfOrder)

	_, err = svc.Track(ctx, user, domain.TrackFromStart(testutil.At(12, 30), "future"))
	assert.ErrorIs(t, err, domain.ErrFutureTimestamp)

	res, err := svc.Track(ctx, user, domain.TrackFromStart(testutil.At(11, 0), "Awesome work!"))
	require.NoError(t, err)
	assert.Equal(t, testutil.At(11, 0), res.Row.Start)
	assert.Equal(t, testutil.At(12, 0), res.Row.End)
	assert.Len(t, store.Rows(user), 2)
}

func TestTrack_ExplicitInvalidIntervals(t *testing.T) {
	store := testutil.NewMemoryStore(user)
	svc := newTrack(store, testutil.At(12, 0))
	ctx := context.Background()

	_, err := svc.Track(ctx, user, domain.TrackBetween(testutil.At(10, 0), testutil.At(9, 0), "x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
	assert.Contains(t, err.Error(), "second date must come after first date")

	_, err = svc.Track(ctx, user, domain.TrackBetween(testutil.At(10, 0).AddDate(0, 0, -1), testutil.At(11, 0), "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both dates must be on the same day")
	assert.Zero(t, store.AppendCalls)
}

func TestTrack_InvalidArgumentsBeforeIO(t *testing.T) {
	store := testutil.NewMemoryStore(user)

	_, err := newTrack(store, testutil.At(12, 0)).Track(context.Background(), user,
		domain.TrackRequest{Mode: domain.TrackFrom})
	assert.ErrorIs(t, err, domain.ErrInvalidArguments)
	assert.Zero(t, store.ListCalls)
	assert.Zero(t, store.AppendCalls)
}

func TestTrack_UnknownUser(t *testing.T) {
	store := testutil.NewMemoryStore(user)

	_, err := newTrack(store, testutil.At(12, 0)).Track(context.Background(), "bad_user",
		domain.TrackBetween(testutil.At(8, 0), testutil.At(9, 0), "x"))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTrack_ExplicitIgnoresMalformedRows(t *testing.T) {
	store := testutil.NewMemoryStore().Seed(user, domain.RawRow{Date: "garbage"})
	svc := newTrack(store, testutil.At(12, 0))
	ctx := context.Background()

	_, err := svc.Track(ctx, user, domain.TrackBetween(testutil.At(8, 0), testutil.At(9, 0), "x"))
	assert.NoError(t, err)

	_, err = svc.Track(ctx, user, domain.AutoTrack("x"))
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
}

func TestTrack_AppendFailurePropagates(t *testing.T) {
	store := testutil.NewMemoryStore(user)
	store.AppendErr = errors.Join(domain.ErrIO, errors.New("quota exceeded"))

	_, err := newTrack(store, testutil.At(12, 0)).Track(context.Background(), user,
		domain.TrackBetween(testutil.At(8, 0), testutil.At(9, 0), "x"))
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestTrack_UsesClockLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	store := testutil.NewMemoryStore().Seed(user, domain.RawRow{Date: "10/3/2026", Start: "08:00:00", End: "10:00:00", Total: "02:00:00"})
	now := time.Date(2026, time.March, 10, 10, 30, 0, 0, loc)

	res, err := newTrack(store, now).Track(context.Background(), user, domain.AutoTrack("x"))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, res.Row.Total, "stored times are read in the clock's zone")
}

func TestTrack_RequestTimesInOtherZoneRoundTrip(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	store := testutil.NewMemoryStore(user)
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, loc)
	start := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	res, err := newTrack(store, now).Track(context.Background(), user, domain.TrackFromStart(start, "x"))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, res.Row.Total)

	stored := store.Rows(user)
	require.Len(t, stored, 1)
	assert.Equal(t, domain.RawRow{Date: "10/3/2026", Start: "11:00:00", End: "12:00:00", Total: "01:00:00", Description: "x"}, stored[0])

	rows, err := domain.ParseRecords(stored, loc)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, start.Equal(rows[0].Start))
	assert.Equal(t, rows[0].Total, rows[0].End.Sub(rows[0].Start))
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func TestTrack_ReportsUseCaseEvent(t *testing.T) {
	store := testutil.NewMemoryStore(user)
	obs := &recordingObserver{}
	svc := newTrack(store, testutil.At(14, 0), obs)
	ctx := context.Background()

	_, err := svc.Track(ctx, user, domain.TrackBetween(testutil.At(8, 0), testutil.At(9, 30), "x"))
	require.NoError(t, err)
	_, err = svc.Track(ctx, user, domain.AutoTrack("x"))
	require.Error(t, err)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "track", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 90, obs.events[0].Fields["minutes"])
	assert.Equal(t, "explicit", obs.events[0].Fields["mode"])
	assert.False(t, obs.events[1].Success)
	assert.ErrorIs(t, obs.events[1].Err, domain.ErrStaleSession)
}
