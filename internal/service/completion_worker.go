package service

import (
	"context"
	"log"
	"time"

	"github.com/gocamp/campsite-reservation/internal/model"
	"github.com/gocamp/campsite-reservation/internal/pricing"
)

// RunCompletionWorker periodically moves CONFIRMED reservations whose
// checkout date has passed to COMPLETED.  It blocks until ctx is
// cancelled and is intended to run in its own goroutine next to the
// HTTP server.
func (s *ReservationService) RunCompletionWorker(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("completion worker started: checking past-checkout reservations every %s", interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("completion worker stopped")
			return
		case <-ticker.C:
			s.completeDueReservations(ctx)
		}
	}
}

func (s *ReservationService) completeDueReservations(ctx context.Context) {
	today := pricing.Midnight(s.now())
	ids, err := s.reservations.ListConfirmedPastCheckout(ctx, today)
	if err != nil {
		log.Printf("completion worker: listing due reservations failed: %v", err)
		return
	}
	for _, id := range ids {
		if err := s.reservations.UpdateStatus(ctx, id, model.ReservationConfirmed, model.ReservationCompleted, nil); err != nil {
			log.Printf("completion worker: completing reservation %d failed: %v", id, err)
			continue
		}
		log.Printf("reservation %d completed after checkout", id)
	}
}
