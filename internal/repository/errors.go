// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and handlers to distinguish between different failure
// scenarios: a date-range conflict must surface as HTTP 409 and must not
// be retried with the same dates, while a lock wait timeout is safe to
// retry after backoff.
package repository

import "errors"

// ErrSiteNotFound is returned when no site exists with the requested ID.
var ErrSiteNotFound = errors.New("site not found")

// ErrGuestNotFound is returned when no guest account matches the lookup.
var ErrGuestNotFound = errors.New("guest not found")

// ErrReservationNotFound is returned when no reservation exists with the
// requested ID, or it is soft-deleted.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrEmailTaken is returned on registration when the email address is
// already in use.
var ErrEmailTaken = errors.New("email already registered")

// ErrReservationConflict is returned when the requested date range
// overlaps an existing PENDING or CONFIRMED reservation for the same
// site. Retrying the identical request will conflict again; callers
// should pick different dates. Handlers translate this into HTTP 409.
var ErrReservationConflict = errors.New("reservation dates conflict with an existing booking")

// ErrLockWaitTimeout is returned when the per-site booking lock could
// not be acquired within the configured bound (MySQL error 1205) or the
// transaction was chosen as a deadlock victim (1213). The identical
// request is safe to retry after backoff.
var ErrLockWaitTimeout = errors.New("timed out waiting for the site booking lock")
