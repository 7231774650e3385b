package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/upark/upark-api/internal/auth"
	"github.com/upark/upark-api/internal/config"
	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/events"
	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/repository"
	"github.com/upark/upark-api/internal/utils"
)

// PasswordResetService runs the email confirmed password reset.
//
// A request stores a token, its expiry and the hash of the new password on the
// user row, then mails a confirmation link. Confirming the link swaps the
// pending hash in and clears all three columns.
type PasswordResetService struct {
	resetRepo repository.PasswordResetRepository
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenIssuer
	mailer    Mailer
	settings  config.ResetSettings
	publisher events.Publisher
	now       func() time.Time
}

// NewPasswordResetService creates a new PasswordResetService
func NewPasswordResetService(
	resetRepo repository.PasswordResetRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenIssuer,
	mailer Mailer,
	settings config.ResetSettings,
	publisher events.Publisher,
) *PasswordResetService {
	if settings.TokenTTL <= 0 {
		settings.TokenTTL = constants.DefaultResetTokenTTL
	}
	return &PasswordResetService{
		resetRepo: resetRepo,
		hasher:    hasher,
		tokens:    tokens,
		mailer:    mailer,
		settings:  settings,
		publisher: publisher,
		now:       time.Now,
	}
}

// RequestReset records a pending reset for the account with req.Email and
// mails the confirmation link.
//
// Mismatched passwords are rejected before the store is touched. An unknown
// email is a not found error. Every other failure is reported as a generic
// reset failure; a failed send leaves the pending reset in place.
func (s *PasswordResetService) RequestReset(ctx context.Context, req *models.RequestResetRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return utils.NewInputMismatchError(constants.MsgPasswordsDoNotMatch)
	}

	userID, err := s.resetRepo.FindUserIDByEmail(ctx, req.Email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return err
		}
		return s.requestFailed(err, "lookup")
	}

	token, err := s.tokens.Issue()
	if err != nil {
		return s.requestFailed(err, "token")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return s.requestFailed(err, "hash")
	}

	pending := &models.PendingReset{
		Token:        token,
		ExpiresAt:    s.now().Add(s.settings.TokenTTL),
		PasswordHash: hash,
	}
	if err := s.resetRepo.SetPending(ctx, userID, pending); err != nil {
		return s.requestFailed(err, "store")
	}

	msg, err := NewResetEmail(req.Email, s.settings.ConfirmURL(token), formatTTL(s.settings.TokenTTL))
	if err != nil {
		return s.requestFailed(err, "render")
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return s.requestFailed(err, "send")
	}

	utils.LogAuth(constants.LogEventResetRequested, strconv.FormatInt(userID, 10), "", true, "")
	publish(ctx, s.publisher, events.NewEvent(constants.EventResetRequested, userID, ""))

	return nil
}

// ConfirmReset applies the pending password held under token.
// It returns repository.ErrResetTokenInvalid for unknown, used or expired tokens.
func (s *PasswordResetService) ConfirmReset(ctx context.Context, token string) error {
	userID, err := s.resetRepo.Confirm(ctx, token)
	if err != nil {
		return err
	}

	utils.LogAuth(constants.LogEventResetConfirmed, strconv.FormatInt(userID, 10), "", true, "")
	publish(ctx, s.publisher, events.NewEvent(constants.EventResetConfirmed, userID, ""))

	return nil
}

func (s *PasswordResetService) requestFailed(err error, stage string) error {
	utils.LogError(err, map[string]interface{}{
		"operation": "request_reset",
		"stage":     stage,
	})

	appErr := utils.New(utils.ErrInternalServer, http.StatusInternalServerError, constants.MsgResetRequestFailed)
	appErr.DevInfo = err.Error()
	return appErr
}

// formatTTL renders a duration the way the reset email states it, e.g. "1 hour".
func formatTTL(d time.Duration) string {
	unit, n := "minute", int64(d/time.Minute)
	if d >= time.Hour && d%time.Hour == 0 {
		unit, n = "hour", int64(d/time.Hour)
	}
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
