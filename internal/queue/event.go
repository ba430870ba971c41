// Package queue defines message payloads exchanged over the message broker.
package queue

// Event type values carried in ReservationEvent.Type.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published for every reservation lifecycle change.
// It contains enough information for downstream consumers to notify the
// guest or feed analytics without querying the primary database.
type ReservationEvent struct {
	Type          string `json:"type"`
	ReservationID uint64 `json:"reservation_id"`
	Reference     string `json:"reference"`
	SiteID        uint64 `json:"site_id"`
	SiteName      string `json:"site_name,omitempty"`
	GuestID       uint64 `json:"guest_id"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Guests        int    `json:"guests"`
	TotalAmount   int64  `json:"total_amount"`
	Reason        string `json:"reason,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
