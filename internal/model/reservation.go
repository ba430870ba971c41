package model

import (
	"errors"
	"fmt"
	"time"
)

// ReservationStatus enumerates the lifecycle states of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationDeleted   ReservationStatus = "DELETED"
)

// ErrInvalidTransition is returned when a status change is not allowed
// by the transition table.
var ErrInvalidTransition = errors.New("model: invalid reservation status transition")

// allowedTransitions is the single source of truth for the reservation
// state machine.  CONFIRMED and COMPLETED are terminal with respect to
// date and price mutation; DELETED is a guest-initiated soft delete and
// only reachable from PENDING.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled, ReservationDeleted},
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled},
	ReservationCancelled: {},
	ReservationCompleted: {},
	ReservationDeleted:   {},
}

// CanTransition reports whether moving from one status to another is
// permitted.
func CanTransition(from, to ReservationStatus) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Reservation records a guest's booking of one site for a date range.
// CheckOut is exclusive: a stay [check_in, check_out) of N nights ends
// the morning of check_out, so another reservation starting on that day
// does not conflict.
//
// Fields:
//
//	ID           – primary key identifier.
//	Reference    – external booking reference handed to the payment collaborator.
//	SiteID       – site being reserved.
//	GuestID      – guest who made the reservation.
//	CheckIn      – first night of the stay (UTC date).
//	CheckOut     – exclusive checkout date (UTC date).
//	Guests       – number of guests staying.
//	Status       – state of the reservation (see transition table).
//	TotalAmount  – total price in KRW, always the server-computed value.
//	Breakdown    – immutable pricing snapshot captured at creation.
//	CancelReason – why the reservation was cancelled, if it was.
//	CreatedAt    – creation timestamp.
//	UpdatedAt    – last update timestamp.
type Reservation struct {
	ID           uint64            // reservations.id
	Reference    string            // reservations.reference (UUID)
	SiteID       uint64            // reservations.site_id
	GuestID      uint64            // reservations.guest_id
	CheckIn      time.Time         // reservations.check_in (DATE)
	CheckOut     time.Time         // reservations.check_out (DATE, exclusive)
	Guests       int               // reservations.guest_count
	Status       ReservationStatus // reservations.status
	TotalAmount  int64             // reservations.total_amount
	Breakdown    PriceBreakdown    // reservations.breakdown (JSON snapshot)
	CancelReason *string           // reservations.cancel_reason (nullable)
	CreatedAt    time.Time         // reservations.created_at
	UpdatedAt    time.Time         // reservations.updated_at
}

// Nights returns the number of nights in the stay.
func (r *Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Transition moves the reservation to a new status, rejecting moves not
// present in the transition table.  Illegal transitions (for example
// CONFIRMED back to PENDING) fail here rather than via ad hoc checks in
// callers.
func (r *Reservation) Transition(to ReservationStatus, now time.Time) error {
	if !CanTransition(r.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, to)
	}
	r.Status = to
	r.UpdatedAt = now.UTC()
	return nil
}

// Mutable reports whether the reservation's dates, guest count and
// breakdown may still change through the update path.
func (r *Reservation) Mutable() bool {
	return r.Status == ReservationPending
}
