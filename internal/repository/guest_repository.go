package repository

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"

	"github.com/gocamp/campsite-reservation/internal/model"
)

// GuestRepo provides access to guest accounts in the `guests` table.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo returns a new GuestRepo bound to the given database.
func NewGuestRepo(db *sql.DB) *GuestRepo { return &GuestRepo{db: db} }

// Create inserts a new guest account.  A duplicate email surfaces as
// ErrEmailTaken via the unique index on guests.email.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	const q = `INSERT INTO guests (email, password_hash, name, is_member, is_active)
               VALUES (?, ?, ?, ?, 1)`
	result, err := r.db.ExecContext(ctx, q, g.Email, g.PasswordHash, g.Name, g.IsMember)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			return ErrEmailTaken
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM guests WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, g.ID).Scan(&g.CreatedAt, &g.UpdatedAt)
}

// GetByEmail loads an active guest by email for login.
func (r *GuestRepo) GetByEmail(ctx context.Context, email string) (*model.Guest, error) {
	const q = `SELECT id, email, password_hash, name, is_member, is_active, created_at, updated_at
               FROM guests WHERE email = ? AND is_active = 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

// GetByID loads an active guest by ID.
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.Guest, error) {
	const q = `SELECT id, email, password_hash, name, is_member, is_active, created_at, updated_at
               FROM guests WHERE id = ? AND is_active = 1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *GuestRepo) scanOne(row *sql.Row) (*model.Guest, error) {
	var g model.Guest
	err := row.Scan(&g.ID, &g.Email, &g.PasswordHash, &g.Name, &g.IsMember, &g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
