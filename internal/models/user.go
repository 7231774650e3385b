// Package models defines the records stored by UPark and the request and
// response shapes of each endpoint.
package models

import (
	"database/sql"
	"time"
)

// User represents a UPark account. Managers own parking lots.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    *string   `json:"first_name" db:"first_name"`
	LastName     *string   `json:"last_name" db:"last_name"`
	Phone        *string   `json:"phone" db:"phone"`
	Email        string    `json:"email" db:"email"`
	IsManager    bool      `json:"is_manager" db:"is_manager"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// PendingReset is nil when no password reset is waiting for confirmation.
	PendingReset *PendingReset `json:"-"`
}

// Sanitize returns a copy of the user without credentials or reset state.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	sanitized.PendingReset = nil
	return &sanitized
}

// PendingReset is a requested password change awaiting email confirmation.
// The token, expiry and candidate hash are always stored and cleared together.
type PendingReset struct {
	Token        string
	ExpiresAt    time.Time
	PasswordHash string
}

// NewPendingReset builds a PendingReset from the three nullable reset columns.
// It returns nil unless all three are set.
func NewPendingReset(token sql.NullString, expiresAt sql.NullTime, passwordHash sql.NullString) *PendingReset {
	if !token.Valid || !expiresAt.Valid || !passwordHash.Valid {
		return nil
	}
	return &PendingReset{
		Token:        token.String,
		ExpiresAt:    expiresAt.Time,
		PasswordHash: passwordHash.String,
	}
}

// Expired reports whether the reset can no longer be confirmed at now.
func (p *PendingReset) Expired(now time.Time) bool {
	return !p.ExpiresAt.After(now)
}

// UserCreate is the body of POST /api/register and POST /api/users.
// The password is plaintext and is hashed before storage.
type UserCreate struct {
	Username  string  `json:"username" validate:"required"`
	Password  string  `json:"password" validate:"required"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     string  `json:"email" validate:"required"`
	IsManager bool    `json:"is_manager"`
}

// UserUpdate is the body of PUT /api/users/{id}. Every field is overwritten.
type UserUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	IsManager bool    `json:"is_manager"`
}
