package model

import "time"

// SiteStatus enumerates the operational states of a campsite.  Only
// AVAILABLE sites accept new reservations; MAINTENANCE and UNAVAILABLE
// sites are visible to admins but rejected by the booking flow.
type SiteStatus string

const (
	SiteAvailable   SiteStatus = "AVAILABLE"
	SiteMaintenance SiteStatus = "MAINTENANCE"
	SiteUnavailable SiteStatus = "UNAVAILABLE"
)

// Site represents a single bookable camping unit as stored in the
// `sites` table.  Sites own zero or more pricing rules.  Site status is
// mutated by the management surface only; the booking core treats it as
// read-only.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – human-readable site name (e.g. "A-12 river deck").
//	Capacity    – maximum number of guests the site can hold.
//	Status      – operational state (AVAILABLE, MAINTENANCE, UNAVAILABLE).
//	Description – optional free-form description shown to guests.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type Site struct {
	ID          uint64     // sites.id
	Name        string     // sites.name
	Capacity    int        // sites.capacity
	Status      SiteStatus // sites.status
	Description string     // sites.description
	CreatedAt   time.Time  // sites.created_at
	UpdatedAt   time.Time  // sites.updated_at
}

// Bookable reports whether the site currently accepts new reservations.
func (s *Site) Bookable() bool {
	return s.Status == SiteAvailable
}
