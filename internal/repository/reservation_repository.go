package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/gocamp/campsite-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations and hosts
// the availability guard.  All date columns are DATE values stored in
// UTC; check_out is exclusive.  The guard serializes overlapping
// booking attempts for one site behind a row-level lock on the parent
// site row, so the conflict check and the insert always observe a
// consistent reservation set.  Non-overlapping stays and stays on other
// sites proceed concurrently.
type ReservationRepo struct {
	db          *sql.DB
	lockWaitSec int
}

// NewReservationRepo returns a new ReservationRepo bound to the given
// database.  lockWaitSec bounds how long a booking transaction waits
// for the per-site lock before failing with ErrLockWaitTimeout.
func NewReservationRepo(db *sql.DB, lockWaitSec int) *ReservationRepo {
	if lockWaitSec < 1 {
		lockWaitSec = 5
	}
	return &ReservationRepo{db: db, lockWaitSec: lockWaitSec}
}

// DB exposes the underlying handle for callers that need to compose
// transactions across repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// Overlaps reports whether two half-open date ranges [aStart, aEnd) and
// [bStart, bEnd) share at least one night.  A checkout date equal to
// another stay's check-in is not a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// CreateWithGuard inserts a new reservation after verifying, under an
// exclusive per-site lock, that no PENDING or CONFIRMED reservation
// overlaps the requested range.  The lock is the site row itself taken
// FOR UPDATE: two concurrent callers for the same site serialize on it,
// the loser re-evaluates against the winner's committed row and fails
// with ErrReservationConflict.  Lock waits beyond the configured bound
// surface as ErrLockWaitTimeout.
//
// On success the generated ID and timestamps are populated on res.
func (r *ReservationRepo) CreateWithGuard(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := r.prepareGuardTx(ctx, tx, res.SiteID); err != nil {
		return err
	}
	if err := r.conflictCheckTx(ctx, tx, res.SiteID, res.CheckIn, res.CheckOut, 0); err != nil {
		return err
	}

	breakdown, err := json.Marshal(res.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}
	const ins = `INSERT INTO reservations
                 (reference, site_id, guest_id, check_in, check_out, guest_count, status, total_amount, breakdown)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, ins,
		res.Reference, res.SiteID, res.GuestID, res.CheckIn, res.CheckOut,
		res.Guests, res.Status, res.TotalAmount, breakdown,
	)
	if err != nil {
		return mapLockErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the row to populate timestamps and defaults
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapLockErr(err)
	}
	committed = true
	return nil
}

// UpdateWithGuard replaces the dates, guest count, total and breakdown
// snapshot of an existing reservation, re-running the availability
// guard with the reservation's own row excluded from the overlap set.
func (r *ReservationRepo) UpdateWithGuard(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := r.prepareGuardTx(ctx, tx, res.SiteID); err != nil {
		return err
	}
	if err := r.conflictCheckTx(ctx, tx, res.SiteID, res.CheckIn, res.CheckOut, res.ID); err != nil {
		return err
	}

	breakdown, err := json.Marshal(res.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}
	const upd = `UPDATE reservations
                 SET check_in = ?, check_out = ?, guest_count = ?, total_amount = ?, breakdown = ?
                 WHERE id = ? AND status = ?`
	result, err := tx.ExecContext(ctx, upd,
		res.CheckIn, res.CheckOut, res.Guests, res.TotalAmount, breakdown,
		res.ID, model.ReservationPending,
	)
	if err != nil {
		return mapLockErr(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// The reservation left PENDING between load and update.
		return fmt.Errorf("%w: reservation no longer pending", model.ErrInvalidTransition)
	}

	if err := tx.Commit(); err != nil {
		return mapLockErr(err)
	}
	committed = true
	return nil
}

// prepareGuardTx bounds the lock wait for this transaction and takes
// the exclusive per-site lock.  The SELECT ... FOR UPDATE on the site
// row is what serializes concurrent bookings: InnoDB blocks the second
// caller here until the first commits or rolls back.
func (r *ReservationRepo) prepareGuardTx(ctx context.Context, tx *sql.Tx, siteID uint64) error {
	if _, err := tx.ExecContext(ctx, `SET innodb_lock_wait_timeout = ?`, r.lockWaitSec); err != nil {
		return err
	}
	var id uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM sites WHERE id = ? FOR UPDATE`, siteID).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrSiteNotFound
	}
	if err != nil {
		return mapLockErr(err)
	}
	return nil
}

// conflictCheckTx runs the half-open overlap predicate against all
// PENDING and CONFIRMED reservations of the site, optionally excluding
// one reservation (the update path excludes its own row).
func (r *ReservationRepo) conflictCheckTx(ctx context.Context, tx *sql.Tx, siteID uint64, checkIn, checkOut time.Time, excludeID uint64) error {
	const q = `SELECT EXISTS(
                   SELECT 1 FROM reservations
                   WHERE site_id = ?
                     AND id <> ?
                     AND status IN (?, ?)
                     AND check_in < ?
                     AND check_out > ?
               )`
	var conflict bool
	err := tx.QueryRowContext(ctx, q,
		siteID, excludeID, model.ReservationPending, model.ReservationConfirmed,
		checkOut, checkIn,
	).Scan(&conflict)
	if err != nil {
		return mapLockErr(err)
	}
	if conflict {
		return ErrReservationConflict
	}
	return nil
}

// GetByID loads one reservation including its breakdown snapshot.
// Soft-deleted reservations are treated as absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, reference, site_id, guest_id, check_in, check_out,
                      guest_count, status, total_amount, breakdown, cancel_reason,
                      created_at, updated_at
               FROM reservations WHERE id = ? AND status <> ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id, model.ReservationDeleted))
}

// GetByReference loads one reservation by its external booking
// reference.  Used by the payment callback.
func (r *ReservationRepo) GetByReference(ctx context.Context, ref string) (*model.Reservation, error) {
	const q = `SELECT id, reference, site_id, guest_id, check_in, check_out,
                      guest_count, status, total_amount, breakdown, cancel_reason,
                      created_at, updated_at
               FROM reservations WHERE reference = ? AND status <> ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, ref, model.ReservationDeleted))
}

// ListByGuest returns all non-deleted reservations of a guest, most
// recent stay first.
func (r *ReservationRepo) ListByGuest(ctx context.Context, guestID uint64) ([]model.Reservation, error) {
	const q = `SELECT id, reference, site_id, guest_id, check_in, check_out,
                      guest_count, status, total_amount, breakdown, cancel_reason,
                      created_at, updated_at
               FROM reservations
               WHERE guest_id = ? AND status <> ?
               ORDER BY check_in DESC`
	rows, err := r.db.QueryContext(ctx, q, guestID, model.ReservationDeleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		res, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// UpdateStatus performs a compare-and-set status change.  The WHERE
// clause repeats the expected current status so a concurrent transition
// cannot be silently overwritten; zero affected rows means the
// reservation moved on and the caller's transition is no longer valid.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.ReservationStatus, reason *string) error {
	const q = `UPDATE reservations SET status = ?, cancel_reason = ? WHERE id = ? AND status = ?`
	result, err := r.db.ExecContext(ctx, q, to, reason, id, from)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, from, to)
	}
	return nil
}

// ListConfirmedPastCheckout returns the IDs of CONFIRMED reservations
// whose checkout date has passed.  The completion worker transitions
// them to COMPLETED.
func (r *ReservationRepo) ListConfirmedPastCheckout(ctx context.Context, today time.Time) ([]uint64, error) {
	const q = `SELECT id FROM reservations WHERE status = ? AND check_out <= ? LIMIT 100`
	rows, err := r.db.QueryContext(ctx, q, model.ReservationConfirmed, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanOne.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ReservationRepo) scanOne(row rowScanner) (*model.Reservation, error) {
	var (
		res       model.Reservation
		breakdown []byte
		reason    sql.NullString
	)
	err := row.Scan(
		&res.ID, &res.Reference, &res.SiteID, &res.GuestID, &res.CheckIn, &res.CheckOut,
		&res.Guests, &res.Status, &res.TotalAmount, &breakdown, &reason,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	if reason.Valid {
		s := reason.String
		res.CancelReason = &s
	}
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &res.Breakdown); err != nil {
			return nil, fmt.Errorf("unmarshal breakdown for reservation %d: %w", res.ID, err)
		}
	}
	return &res, nil
}

// mapLockErr translates InnoDB lock errors into the retryable sentinel.
// 1205 is a lock wait timeout; 1213 is a deadlock rollback.
func mapLockErr(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1205, 1213:
			return ErrLockWaitTimeout
		}
	}
	return err
}
