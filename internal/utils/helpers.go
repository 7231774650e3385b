package utils

import (
	"strconv"
	"strings"

	"github.com/upark/upark-api/internal/constants"
)

// ParseID parses a path identifier into a positive int64.
//
// Parameters:
//   - raw: the path segment to parse
//
// Returns:
//   - the parsed identifier
//   - a bad request error if raw is not a positive integer
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewBadRequestError(constants.MsgInvalidID)
	}
	return id, nil
}

// MaskEmail masks the user part of an email address, showing only the first and last character.
// This keeps addresses out of logs while leaving them recognizable.
//
// For example: "user@example.com" becomes "u**r@example.com"
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	user := []rune(parts[0])
	domain := parts[1]

	if len(user) <= 2 {
		return email
	}

	return string(user[0]) + strings.Repeat("*", len(user)-2) + string(user[len(user)-1]) + "@" + domain
}
