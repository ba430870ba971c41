package repository

import (
	"context"
	"database/sql"

	"github.com/gocamp/campsite-reservation/internal/model"
)

// SiteRepo provides read access to campsites.  Site rows are owned by
// the management surface; the booking core only reads them, except for
// the FOR UPDATE lock taken by the reservation repository to serialize
// bookings per site.
type SiteRepo struct {
	db *sql.DB
}

// NewSiteRepo returns a new SiteRepo bound to the given database.
func NewSiteRepo(db *sql.DB) *SiteRepo { return &SiteRepo{db: db} }

// GetByID loads a single site.  ErrSiteNotFound is returned when the ID
// does not exist.
func (r *SiteRepo) GetByID(ctx context.Context, id uint64) (*model.Site, error) {
	const q = `SELECT id, name, capacity, status, description, created_at, updated_at
               FROM sites WHERE id = ?`
	var s model.Site
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.Name, &s.Capacity, &s.Status, &desc, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		s.Description = desc.String
	}
	return &s, nil
}

// ListBookable returns all sites currently accepting reservations,
// ordered by name.  Used by the public browse endpoint.
func (r *SiteRepo) ListBookable(ctx context.Context) ([]model.Site, error) {
	const q = `SELECT id, name, capacity, status, description, created_at, updated_at
               FROM sites WHERE status = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, model.SiteAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sites []model.Site
	for rows.Next() {
		var s model.Site
		var desc sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Capacity, &s.Status, &desc, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			s.Description = desc.String
		}
		sites = append(sites, s)
	}
	return sites, rows.Err()
}
