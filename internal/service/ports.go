// Package service contains the reservation orchestrator: it validates
// requests, runs the pricing engine, drives the guarded repositories
// and hands committed reservations off to the cache and queue
// collaborators.  Handlers stay thin; everything bookable happens here.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gocamp/campsite-reservation/internal/model"
	"github.com/gocamp/campsite-reservation/internal/queue"
)

// Validation errors reported before any lock is taken.  Handlers
// translate these into HTTP 400 responses; none of them is retryable
// without changing the request.
var (
	ErrInvalidDateRange = errors.New("service: check-out must be after check-in")
	ErrCheckInPast      = errors.New("service: check-in date is in the past")
	ErrGuestCount       = errors.New("service: guest count out of range for site")
	ErrSiteNotBookable  = errors.New("service: site is not accepting reservations")
	ErrForbidden        = errors.New("service: reservation belongs to another guest")
	ErrNotEditable      = errors.New("service: reservation can no longer be modified")
)

// SiteStore is the site directory consumed by the orchestrator.
type SiteStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Site, error)
}

// RuleStore is the pricing rule store: active rules per site, ordered
// by priority descending with stable tie order.
type RuleStore interface {
	ListActiveForSite(ctx context.Context, siteID uint64) ([]model.PricingRule, error)
}

// ReservationStore persists reservations.  CreateWithGuard and
// UpdateWithGuard run the availability guard (per-site lock + overlap
// check + write) in a single transaction.
type ReservationStore interface {
	CreateWithGuard(ctx context.Context, res *model.Reservation) error
	UpdateWithGuard(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	GetByReference(ctx context.Context, ref string) (*model.Reservation, error)
	ListByGuest(ctx context.Context, guestID uint64) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id uint64, from, to model.ReservationStatus, reason *string) error
	ListConfirmedPastCheckout(ctx context.Context, today time.Time) ([]uint64, error)
}

// EventPublisher delivers a reservation lifecycle event to the message
// broker.  Publishing is best-effort and happens after commit; a nil
// publisher disables eventing.
type EventPublisher func(ctx context.Context, ev queue.ReservationEvent) error
