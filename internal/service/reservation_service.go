package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gocamp/campsite-reservation/internal/cache"
	"github.com/gocamp/campsite-reservation/internal/model"
	"github.com/gocamp/campsite-reservation/internal/pricing"
	"github.com/gocamp/campsite-reservation/internal/queue"
)

// ReservationService orchestrates reservation creation, updates and
// status transitions.  Pricing is computed before the guarded write so
// a conflict never leaves a priced-but-unpersisted reservation behind,
// and the server-computed total is always the one persisted: a client
// estimate only ever produces a logged warning.
type ReservationService struct {
	sites        SiteStore
	rules        RuleStore
	reservations ReservationStore
	engine       *pricing.Engine
	invalidator  *cache.Invalidator
	publish      EventPublisher
	tolerance    int64
	now          func() time.Time
}

// NewReservationService wires the orchestrator.  invalidator and
// publish may be nil; tolerance is the allowed gap (KRW) between a
// client-supplied estimate and the computed total before a warning is
// logged.
func NewReservationService(sites SiteStore, rules RuleStore, reservations ReservationStore, engine *pricing.Engine, invalidator *cache.Invalidator, publish EventPublisher, tolerance int64) *ReservationService {
	if sites == nil || rules == nil || reservations == nil || engine == nil {
		panic("nil dependency passed to NewReservationService")
	}
	return &ReservationService{
		sites:        sites,
		rules:        rules,
		reservations: reservations,
		engine:       engine,
		invalidator:  invalidator,
		publish:      publish,
		tolerance:    tolerance,
		now:          time.Now,
	}
}

// SetClock overrides the service clock.  Tests use this to pin "today".
func (s *ReservationService) SetClock(now func() time.Time) { s.now = now }

// CreateParams carries a reservation request into the orchestrator.
// ExpectedAmount is the client's displayed estimate, if it sent one.
type CreateParams struct {
	GuestID        uint64
	SiteID         uint64
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	ExpectedAmount *int64
}

// UpdateParams carries a date/guest-count change.  Nil fields keep the
// current value.
type UpdateParams struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	Guests   *int
}

// Quote computes a price breakdown for display purposes.  No lock is
// taken and nothing is persisted; calling it twice with identical
// inputs and unchanged rules yields an identical breakdown.
func (s *ReservationService) Quote(ctx context.Context, siteID uint64, checkIn, checkOut time.Time, guests int) (model.PriceBreakdown, error) {
	checkIn, checkOut = pricing.Midnight(checkIn), pricing.Midnight(checkOut)
	site, err := s.sites.GetByID(ctx, siteID)
	if err != nil {
		return model.PriceBreakdown{}, err
	}
	if err := s.validateStay(site, checkIn, checkOut, guests, false); err != nil {
		return model.PriceBreakdown{}, err
	}
	rules, err := s.rules.ListActiveForSite(ctx, siteID)
	if err != nil {
		return model.PriceBreakdown{}, err
	}
	return s.engine.Quote(rules, checkIn, checkOut, guests, s.now())
}

// CreateReservation validates the request, prices the stay, and
// persists it as PENDING under the availability guard.  Side effects
// after the commit (cache invalidation, event publish) are best-effort:
// their failure never rolls back the reservation.
func (s *ReservationService) CreateReservation(ctx context.Context, p CreateParams) (*model.Reservation, error) {
	checkIn, checkOut := pricing.Midnight(p.CheckIn), pricing.Midnight(p.CheckOut)
	site, err := s.sites.GetByID(ctx, p.SiteID)
	if err != nil {
		return nil, err
	}
	if err := s.validateStay(site, checkIn, checkOut, p.Guests, true); err != nil {
		return nil, err
	}
	rules, err := s.rules.ListActiveForSite(ctx, p.SiteID)
	if err != nil {
		return nil, err
	}
	bd, err := s.engine.Quote(rules, checkIn, checkOut, p.Guests, s.now())
	if err != nil {
		return nil, err
	}
	s.checkExpectedAmount(p.ExpectedAmount, bd.TotalAmount, p.SiteID)

	res := &model.Reservation{
		Reference:   uuid.NewString(),
		SiteID:      p.SiteID,
		GuestID:     p.GuestID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      p.Guests,
		Status:      model.ReservationPending,
		TotalAmount: bd.TotalAmount,
		Breakdown:   bd,
	}
	if err := s.reservations.CreateWithGuard(ctx, res); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, res, queue.EventReservationCreated, "")
	return res, nil
}

// UpdateReservation changes dates and/or guest count on a PENDING
// reservation owned by guestID.  The availability guard re-runs with
// the reservation's own row excluded, and the breakdown snapshot is
// replaced with a freshly computed one.
func (s *ReservationService) UpdateReservation(ctx context.Context, id, guestID uint64, p UpdateParams) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.GuestID != guestID {
		return nil, ErrForbidden
	}
	if !res.Mutable() {
		return nil, ErrNotEditable
	}

	checkIn, checkOut, guests := res.CheckIn, res.CheckOut, res.Guests
	if p.CheckIn != nil {
		checkIn = pricing.Midnight(*p.CheckIn)
	}
	if p.CheckOut != nil {
		checkOut = pricing.Midnight(*p.CheckOut)
	}
	if p.Guests != nil {
		guests = *p.Guests
	}

	site, err := s.sites.GetByID(ctx, res.SiteID)
	if err != nil {
		return nil, err
	}
	if err := s.validateStay(site, checkIn, checkOut, guests, true); err != nil {
		return nil, err
	}
	rules, err := s.rules.ListActiveForSite(ctx, res.SiteID)
	if err != nil {
		return nil, err
	}
	bd, err := s.engine.Quote(rules, checkIn, checkOut, guests, s.now())
	if err != nil {
		return nil, err
	}

	res.CheckIn, res.CheckOut, res.Guests = checkIn, checkOut, guests
	res.TotalAmount = bd.TotalAmount
	res.Breakdown = bd
	if err := s.reservations.UpdateWithGuard(ctx, res); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, res, queue.EventReservationUpdated, "")
	return res, nil
}

// CancelReservation cancels a PENDING or CONFIRMED reservation on
// behalf of its guest.  The transition table decides legality; the
// compare-and-set in the store closes the race against a concurrent
// transition.
func (s *ReservationService) CancelReservation(ctx context.Context, id, guestID uint64, reason string) error {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res.GuestID != guestID {
		return ErrForbidden
	}
	if !model.CanTransition(res.Status, model.ReservationCancelled) {
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, res.Status, model.ReservationCancelled)
	}
	if err := s.reservations.UpdateStatus(ctx, id, res.Status, model.ReservationCancelled, &reason); err != nil {
		return err
	}
	res.Status = model.ReservationCancelled
	s.afterWrite(ctx, res, queue.EventReservationCancelled, reason)
	return nil
}

// DeleteReservation soft-deletes a PENDING reservation.  Guests may
// remove bookings they never paid for; anything further along the
// lifecycle must go through cancellation instead.
func (s *ReservationService) DeleteReservation(ctx context.Context, id, guestID uint64) error {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if res.GuestID != guestID {
		return ErrForbidden
	}
	if !model.CanTransition(res.Status, model.ReservationDeleted) {
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, res.Status, model.ReservationDeleted)
	}
	if err := s.reservations.UpdateStatus(ctx, id, res.Status, model.ReservationDeleted, nil); err != nil {
		return err
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateSite(ctx, res.SiteID)
	}
	return nil
}

// HandlePaymentResult is the payment collaborator's callback.  Success
// confirms the PENDING reservation; failure cancels it with the
// gateway's reason.
func (s *ReservationService) HandlePaymentResult(ctx context.Context, reference string, paid bool, reason string) (*model.Reservation, error) {
	res, err := s.reservations.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if paid {
		if err := res.Transition(model.ReservationConfirmed, s.now()); err != nil {
			return nil, err
		}
		if err := s.reservations.UpdateStatus(ctx, res.ID, model.ReservationPending, model.ReservationConfirmed, nil); err != nil {
			return nil, err
		}
		s.afterWrite(ctx, res, queue.EventReservationConfirmed, "")
		return res, nil
	}
	if reason == "" {
		reason = "payment failed"
	}
	if err := res.Transition(model.ReservationCancelled, s.now()); err != nil {
		return nil, err
	}
	if err := s.reservations.UpdateStatus(ctx, res.ID, model.ReservationPending, model.ReservationCancelled, &reason); err != nil {
		return nil, err
	}
	res.CancelReason = &reason
	s.afterWrite(ctx, res, queue.EventReservationCancelled, reason)
	return res, nil
}

// GetReservation loads a reservation, enforcing ownership.
func (s *ReservationService) GetReservation(ctx context.Context, id, guestID uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.GuestID != guestID {
		return nil, ErrForbidden
	}
	return res, nil
}

// ListReservations returns all of a guest's reservations.
func (s *ReservationService) ListReservations(ctx context.Context, guestID uint64) ([]model.Reservation, error) {
	return s.reservations.ListByGuest(ctx, guestID)
}

// validateStay runs all pre-lock validation.  requireFuture is false
// for quotes, which may price past dates for display or audit.
func (s *ReservationService) validateStay(site *model.Site, checkIn, checkOut time.Time, guests int, requireFuture bool) error {
	if !checkIn.Before(checkOut) {
		return ErrInvalidDateRange
	}
	if requireFuture {
		today := pricing.Midnight(s.now())
		if checkIn.Before(today) {
			return ErrCheckInPast
		}
		if !site.Bookable() {
			return ErrSiteNotBookable
		}
	}
	if guests < 1 || guests > site.Capacity {
		return ErrGuestCount
	}
	return nil
}

// checkExpectedAmount logs a warning when the client's displayed
// estimate differs materially from the computed total.  The computed
// value is authoritative either way.
func (s *ReservationService) checkExpectedAmount(expected *int64, computed int64, siteID uint64) {
	if expected == nil {
		return
	}
	diff := *expected - computed
	if diff < 0 {
		diff = -diff
	}
	if diff > s.tolerance {
		log.Printf("price mismatch: site=%d client=%d computed=%d; persisting computed total", siteID, *expected, computed)
	}
}

// afterWrite runs the post-commit collaborators: cache invalidation for
// the site's availability and quote views, and the lifecycle event
// publish.  Failures are logged and swallowed; the reservation is
// already committed.
func (s *ReservationService) afterWrite(ctx context.Context, res *model.Reservation, eventType, reason string) {
	if s.invalidator != nil {
		s.invalidator.InvalidateSite(ctx, res.SiteID)
	}
	if s.publish == nil {
		return
	}
	ev := queue.ReservationEvent{
		Type:          eventType,
		ReservationID: res.ID,
		Reference:     res.Reference,
		SiteID:        res.SiteID,
		GuestID:       res.GuestID,
		CheckIn:       res.CheckIn.Format("2006-01-02"),
		CheckOut:      res.CheckOut.Format("2006-01-02"),
		Guests:        res.Guests,
		TotalAmount:   res.TotalAmount,
		Reason:        reason,
		OccurredAt:    s.now().UTC().Format(time.RFC3339),
	}
	if err := s.publish(ctx, ev); err != nil {
		log.Printf("publish %s for reservation %d failed: %v", eventType, res.ID, err)
	}
}
