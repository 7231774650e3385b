package models_test

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upark/upark-api/internal/models"
)

func TestNewPendingReset(t *testing.T) {
	expires := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   sql.NullString
		expires sql.NullTime
		hash    sql.NullString
		wantNil bool
	}{
		{
			name:    "All columns set",
			token:   sql.NullString{String: "abc", Valid: true},
			expires: sql.NullTime{Time: expires, Valid: true},
			hash:    sql.NullString{String: "$2a$10$x", Valid: true},
		},
		{
			name:    "No pending reset",
			wantNil: true,
		},
		{
			name:    "Missing candidate hash",
			token:   sql.NullString{String: "abc", Valid: true},
			expires: sql.NullTime{Time: expires, Valid: true},
			wantNil: true,
		},
		{
			name:    "Missing expiry",
			token:   sql.NullString{String: "abc", Valid: true},
			hash:    sql.NullString{String: "$2a$10$x", Valid: true},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pending := models.NewPendingReset(tt.token, tt.expires, tt.hash)

			if tt.wantNil {
				assert.Nil(t, pending)
				return
			}

			require.NotNil(t, pending)
			assert.Equal(t, "abc", pending.Token)
			assert.Equal(t, expires, pending.ExpiresAt)
			assert.Equal(t, "$2a$10$x", pending.PasswordHash)
		})
	}
}

func TestPendingReset_Expired(t *testing.T) {
	now := time.Now()
	pending := &models.PendingReset{ExpiresAt: now}

	assert.True(t, pending.Expired(now), "a reset expiring exactly now is no longer valid")
	assert.True(t, pending.Expired(now.Add(time.Second)))
	assert.False(t, pending.Expired(now.Add(-time.Second)))
}

func TestUser_Sanitize(t *testing.T) {
	user := &models.User{
		ID:           1,
		Username:     "jdoe",
		Email:        "jdoe@example.com",
		PasswordHash: "$2a$10$secret",
		PendingReset: &models.PendingReset{Token: "tok", PasswordHash: "$2a$10$next"},
	}

	sanitized := user.Sanitize()

	assert.Empty(t, sanitized.PasswordHash)
	assert.Nil(t, sanitized.PendingReset)
	assert.Equal(t, user.Username, sanitized.Username)
	assert.Equal(t, "$2a$10$secret", user.PasswordHash, "Sanitize must not modify the original")
}

func TestUser_JSONOmitsCredentials(t *testing.T) {
	user := &models.User{
		ID:           7,
		Username:     "jdoe",
		Email:        "jdoe@example.com",
		PasswordHash: "$2a$10$secret",
		PendingReset: &models.PendingReset{Token: "tok", PasswordHash: "$2a$10$next"},
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)

	body := string(data)
	assert.NotContains(t, body, "secret")
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "tok")
	assert.Contains(t, body, `"is_manager":false`)
	assert.Contains(t, body, `"first_name":null`)
}

func TestParkingInput_ActiveOrDefault(t *testing.T) {
	active, inactive := true, false

	assert.True(t, (&models.ParkingInput{}).ActiveOrDefault())
	assert.True(t, (&models.ParkingInput{IsActive: &active}).ActiveOrDefault())
	assert.False(t, (&models.ParkingInput{IsActive: &inactive}).ActiveOrDefault())
}
