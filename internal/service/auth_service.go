// Package service holds the UPark business operations. Handlers decode and
// validate requests, services apply the rules and talk to the repositories.
package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/auth"
	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/events"
	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/repository"
	"github.com/upark/upark-api/internal/utils"
)

// AuthService handles registration, login and direct password changes
type AuthService struct {
	userRepo  repository.UserRepository
	hasher    *auth.PasswordHasher
	publisher events.Publisher
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, publisher events.Publisher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		hasher:    hasher,
		publisher: publisher,
	}
}

// Register creates an account and returns its id.
// A taken username or email is returned as a duplicate error.
func (s *AuthService) Register(ctx context.Context, req *models.UserCreate) (int64, error) {
	user, err := newUserFromRequest(s.hasher, req)
	if err != nil {
		return 0, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if utils.IsDuplicateError(err) {
			utils.LogAuth(constants.LogEventRegister, "", req.Username, false, utils.ParseError(err).Message)
			return 0, err
		}
		return 0, fmt.Errorf("failed to register user: %w", err)
	}

	utils.LogAuth(constants.LogEventRegister, strconv.FormatInt(user.ID, 10), user.Username, true, "")
	publish(ctx, s.publisher, events.NewEvent(constants.EventUserRegistered, user.ID, user.Username))

	return user.ID, nil
}

// Login checks a username and password pair. Unknown users and wrong passwords
// produce the same invalid credentials error.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth(constants.LogEventLogin, "", req.Username, false, "user not found")
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	userID := strconv.FormatInt(user.ID, 10)

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		utils.LogError(err, map[string]interface{}{"operation": "login", "user_id": userID})
		utils.LogAuth(constants.LogEventLogin, userID, user.Username, false, "unreadable password hash")
		return nil, utils.NewInvalidCredentialsError()
	}

	if !match {
		utils.LogAuth(constants.LogEventLogin, userID, user.Username, false, "invalid password")
		return nil, utils.NewInvalidCredentialsError()
	}

	utils.LogAuth(constants.LogEventLogin, userID, user.Username, true, "")
	publish(ctx, s.publisher, events.NewEvent(constants.EventUserLoggedIn, user.ID, user.Username))

	return user.Sanitize(), nil
}

// ChangePassword overwrites the password of the account registered with the
// given email. The current password is not checked.
func (s *AuthService) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	userID, err := s.userRepo.UpdatePasswordByEmail(ctx, req.Email, hash)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return err
		}
		return fmt.Errorf("failed to change password: %w", err)
	}

	utils.LogAuth(constants.LogEventPasswordChange, strconv.FormatInt(userID, 10), "", true, "")
	publish(ctx, s.publisher, events.NewEvent(constants.EventPasswordChanged, userID, ""))

	return nil
}

// newUserFromRequest hashes the plaintext password of req into a new User.
func newUserFromRequest(hasher *auth.PasswordHasher, req *models.UserCreate) (*models.User, error) {
	hash, err := hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Email:        req.Email,
		IsManager:    req.IsManager,
	}, nil
}

// publish sends an audit event. Failures are logged and never returned.
func publish(ctx context.Context, p events.Publisher, event events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		log.Warn().
			Err(err).
			Str("type", event.Type).
			Int64("user_id", event.UserID).
			Msg("Failed to publish audit event")
	}
}
