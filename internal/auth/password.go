// Package auth provides the credential primitives used by the account and
// password reset flows: bcrypt password hashing and reset token generation.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/upark/upark-api/internal/config"
	"github.com/upark/upark-api/internal/constants"
)

// PasswordHasher hashes and verifies passwords with bcrypt.
// Hashes are salted and compatible with those written by earlier UPark servers.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt work factor.
// Out of range costs fall back to the default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = constants.DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// HasherFromAppConfig creates a password hasher from the application config
func HasherFromAppConfig(cfg *config.AppConfig) *PasswordHasher {
	return NewPasswordHasher(cfg.PasswordHash.Cost)
}

// Cost returns the work factor used for new hashes.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// maxPasswordBytes is the longest input bcrypt reads. Longer passwords are
// truncated, as the hashes already stored in the users table were.
const maxPasswordBytes = 72

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// Hash generates a bcrypt hash of the provided password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordBytes(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares a password with a stored hash.
// A mismatch is reported as (false, nil); only malformed hashes return an error.
func (h *PasswordHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
}
