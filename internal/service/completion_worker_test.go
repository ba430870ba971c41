package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocamp/campsite-reservation/internal/model"
)

func TestCompletionWorkerCompletesPastCheckouts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.CreateReservation(ctx, CreateParams{
		GuestID: 9, SiteID: 1, CheckIn: day(time.September, 1), CheckOut: day(time.September, 3), Guests: 2,
	})
	require.NoError(t, err)
	_, err = f.svc.HandlePaymentResult(ctx, res.Reference, true, "")
	require.NoError(t, err)

	// Advance the clock past checkout and run one sweep.
	f.svc.SetClock(func() time.Time {
		return time.Date(2026, time.September, 10, 9, 0, 0, 0, time.UTC)
	})
	f.svc.completeDueReservations(ctx)

	got, err := f.svc.GetReservation(ctx, res.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCompleted, got.Status)
}

func TestCompletionWorkerLeavesFutureAndPendingAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pending, err := f.svc.CreateReservation(ctx, CreateParams{
		GuestID: 9, SiteID: 1, CheckIn: day(time.September, 1), CheckOut: day(time.September, 3), Guests: 2,
	})
	require.NoError(t, err)

	future, err := f.svc.CreateReservation(ctx, CreateParams{
		GuestID: 9, SiteID: 1, CheckIn: day(time.December, 1), CheckOut: day(time.December, 3), Guests: 2,
	})
	require.NoError(t, err)
	_, err = f.svc.HandlePaymentResult(ctx, future.Reference, true, "")
	require.NoError(t, err)

	f.svc.SetClock(func() time.Time {
		return time.Date(2026, time.September, 10, 9, 0, 0, 0, time.UTC)
	})
	f.svc.completeDueReservations(ctx)

	got, err := f.svc.GetReservation(ctx, pending.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationPending, got.Status, "unpaid reservations are not completed")

	got, err = f.svc.GetReservation(ctx, future.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationConfirmed, got.Status, "future stays are untouched")
}

func TestCompletionWorkerStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.svc.RunCompletionWorker(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
