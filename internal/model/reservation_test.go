package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to ReservationStatus
		ok       bool
	}{
		{ReservationPending, ReservationConfirmed, true},
		{ReservationPending, ReservationCancelled, true},
		{ReservationPending, ReservationDeleted, true},
		{ReservationPending, ReservationCompleted, false},
		{ReservationConfirmed, ReservationCompleted, true},
		{ReservationConfirmed, ReservationCancelled, true},
		{ReservationConfirmed, ReservationPending, false},
		{ReservationConfirmed, ReservationDeleted, false},
		{ReservationCancelled, ReservationPending, false},
		{ReservationCancelled, ReservationConfirmed, false},
		{ReservationCompleted, ReservationCancelled, false},
		{ReservationDeleted, ReservationPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestTransition(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	r := Reservation{Status: ReservationPending}

	require.NoError(t, r.Transition(ReservationConfirmed, now))
	assert.Equal(t, ReservationConfirmed, r.Status)
	assert.Equal(t, now, r.UpdatedAt)

	err := r.Transition(ReservationPending, now)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, ReservationConfirmed, r.Status, "failed transition leaves status untouched")
}

func TestMutable(t *testing.T) {
	for status, want := range map[ReservationStatus]bool{
		ReservationPending:   true,
		ReservationConfirmed: false,
		ReservationCancelled: false,
		ReservationCompleted: false,
		ReservationDeleted:   false,
	} {
		r := Reservation{Status: status}
		assert.Equal(t, want, r.Mutable(), "status %s", status)
	}
}

func TestReservationNights(t *testing.T) {
	r := Reservation{
		CheckIn:  time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, r.Nights())
}
