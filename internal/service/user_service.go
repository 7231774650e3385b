package service

import (
	"context"

	"github.com/upark/upark-api/internal/auth"
	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/repository"
)

// UserService handles the users resource. Every user it returns is sanitized.
type UserService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, hasher *auth.PasswordHasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// ListUsers returns every user
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	sanitized := make([]*models.User, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitize()
	}
	return sanitized, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

// CreateUser hashes the plaintext password and stores the user
func (s *UserService) CreateUser(ctx context.Context, req *models.UserCreate) (*models.User, error) {
	user, err := newUserFromRequest(s.hasher, req)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// UpdateUser overwrites the profile fields of a user
func (s *UserService) UpdateUser(ctx context.Context, id int64, update *models.UserUpdate) (*models.User, error) {
	user, err := s.userRepo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

// DeleteUser removes a user. Their reviews go with them and their parkings lose their manager.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
