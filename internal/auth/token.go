package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/upark/upark-api/internal/constants"
)

// TokenIssuer generates opaque password reset tokens.
type TokenIssuer struct {
	random io.Reader
	size   int
}

// NewTokenIssuer creates an issuer that reads from crypto/rand.
func NewTokenIssuer() *TokenIssuer {
	return &TokenIssuer{random: rand.Reader, size: constants.ResetTokenBytes}
}

// NewTokenIssuerWithReader creates an issuer backed by the given source of randomness.
func NewTokenIssuerWithReader(r io.Reader, size int) *TokenIssuer {
	if size <= 0 {
		size = constants.ResetTokenBytes
	}
	return &TokenIssuer{random: r, size: size}
}

// Issue returns a new hex encoded token of 2*size characters.
func (i *TokenIssuer) Issue() (string, error) {
	b := make([]byte, i.size)
	if _, err := io.ReadFull(i.random, b); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
