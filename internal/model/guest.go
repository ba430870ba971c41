package model

import "time"

// Guest represents an account in the `guests` table.  Guests create and
// own reservations.  The json tags are omitted because these structs
// are used internally by the repository layer; handlers define separate
// response types with appropriate tags.
//
// Fields:
//
//	ID           – primary key identifier of the guest.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	Name         – display name used on notifications.
//	IsMember     – whether the guest holds a paid membership.
//	IsActive     – whether the account is active.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type Guest struct {
	ID           uint64    // guests.id
	Email        string    // guests.email
	PasswordHash string    // guests.password_hash
	Name         string    // guests.name
	IsMember     bool      // guests.is_member
	IsActive     bool      // guests.is_active
	CreatedAt    time.Time // guests.created_at
	UpdatedAt    time.Time // guests.updated_at
}
