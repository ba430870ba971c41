// Package cache holds the Redis-backed view caches that sit in front
// of the read endpoints.  Caching is an optional optimization layer:
// every constructor and method tolerates a nil client and degrades to a
// no-op, so correctness never depends on Redis being up.
package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// Key builders for the per-site cached views.  The booking service
// invalidates exactly these after every successful write.
func AvailabilityKey(siteID uint64) string { return fmt.Sprintf("avail:site:%d", siteID) }
func QuoteKey(siteID uint64) string        { return fmt.Sprintf("quote:site:%d", siteID) }

// Invalidator drops cached per-site views after reservation writes.
type Invalidator struct {
	rdb *redis.Client
}

// NewInvalidator wraps a Redis client; a nil client yields a no-op
// invalidator.
func NewInvalidator(rdb *redis.Client) *Invalidator {
	return &Invalidator{rdb: rdb}
}

// InvalidateSite removes the availability and quote views of one site.
// Failures are logged, not returned: a stale cache entry expires on its
// own TTL and must never fail a committed booking.
func (i *Invalidator) InvalidateSite(ctx context.Context, siteID uint64) {
	if i == nil || i.rdb == nil {
		return
	}
	if err := i.rdb.Del(ctx, AvailabilityKey(siteID), QuoteKey(siteID)).Err(); err != nil {
		log.Printf("cache: invalidating site %d views failed: %v", siteID, err)
	}
}
