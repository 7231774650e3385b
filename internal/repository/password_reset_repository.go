package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/database"
	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/utils"
)

var (
	// ErrResetTokenInvalid is returned when no user holds an unexpired reset with the given token.
	ErrResetTokenInvalid = errors.New("reset token not found or expired")
)

// PasswordResetRepository stores the pending reset kept on each users row.
type PasswordResetRepository interface {
	FindUserIDByEmail(ctx context.Context, email string) (int64, error)
	SetPending(ctx context.Context, userID int64, pending *models.PendingReset) error
	Confirm(ctx context.Context, token string) (int64, error)
}

// PostgresPasswordResetRepository is a PostgreSQL implementation of PasswordResetRepository
type PostgresPasswordResetRepository struct {
	db *database.Pool
}

// NewPasswordResetRepository creates a new PasswordResetRepository.
func NewPasswordResetRepository(db *database.Pool) PasswordResetRepository {
	return &PostgresPasswordResetRepository{db: db}
}

// FindUserIDByEmail returns the id of the user registered with email.
func (r *PostgresPasswordResetRepository) FindUserIDByEmail(ctx context.Context, email string) (int64, error) {
	startTime := time.Now()

	query := "SELECT id FROM users WHERE email = $1"

	var id int64
	err := r.db.QueryRowContext(ctx, query, email).Scan(&id)

	utils.LogDBQuery(query, []interface{}{utils.MaskEmail(email)}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, utils.New(utils.ErrNotFound, http.StatusNotFound, constants.MsgEmailNotFound)
		}
		return 0, fmt.Errorf("failed to look up user by email: %w", err)
	}

	return id, nil
}

// SetPending stores a pending reset on the user, replacing any earlier one.
func (r *PostgresPasswordResetRepository) SetPending(ctx context.Context, userID int64, pending *models.PendingReset) error {
	startTime := time.Now()

	query := `
        UPDATE users SET
            reset_token = $1,
            reset_token_expires = $2,
            reset_password_hash = $3
        WHERE id = $4
    `

	result, err := r.db.ExecContext(ctx, query, pending.Token, pending.ExpiresAt, pending.PasswordHash, userID)

	utils.LogDBQuery(query, []interface{}{pending.Token, pending.ExpiresAt, pending.PasswordHash, userID}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to store pending reset: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User")
	}

	log.Info().
		Int64("user_id", userID).
		Time("expires_at", pending.ExpiresAt).
		Msg("Pending password reset stored")

	return nil
}

// Confirm applies the pending password of the user holding token and clears the
// pending reset in the same statement. It returns ErrResetTokenInvalid when the
// token is unknown, already used, or expired.
func (r *PostgresPasswordResetRepository) Confirm(ctx context.Context, token string) (int64, error) {
	startTime := time.Now()

	query := `
        UPDATE users SET
            password_hash = reset_password_hash,
            reset_token = NULL,
            reset_token_expires = NULL,
            reset_password_hash = NULL
        WHERE reset_token = $1
          AND reset_token_expires > NOW()
          AND reset_password_hash IS NOT NULL
        RETURNING id
    `

	var id int64
	err := r.db.QueryRowContext(ctx, query, token).Scan(&id)

	utils.LogDBQuery(query, []interface{}{token}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrResetTokenInvalid
		}
		return 0, fmt.Errorf("failed to confirm password reset: %w", err)
	}

	log.Info().Int64("user_id", id).Msg("Password reset confirmed")

	return id, nil
}
