// Package handlers provides the HTTP handlers of the UPark API.
package handlers

import (
	"context"

	"github.com/upark/upark-api/internal/models"
)

// AuthServiceInterface defines the account operations used by AuthHandler.
type AuthServiceInterface interface {
	Register(ctx context.Context, req *models.UserCreate) (int64, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error
}

// PasswordResetServiceInterface defines the reset flow used by PasswordResetHandler.
type PasswordResetServiceInterface interface {
	// RequestReset stores a pending reset and mails the confirmation link.
	RequestReset(ctx context.Context, req *models.RequestResetRequest) error

	// ConfirmReset applies the pending password held under token. It returns
	// repository.ErrResetTokenInvalid when the token is unknown, used or expired.
	ConfirmReset(ctx context.Context, token string) error
}

// UserServiceInterface defines the users resource operations.
type UserServiceInterface interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, req *models.UserCreate) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, update *models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ParkingServiceInterface defines the parkings resource operations.
type ParkingServiceInterface interface {
	ListParkings(ctx context.Context) ([]*models.Parking, error)
	GetParking(ctx context.Context, id int64) (*models.Parking, error)
	CreateParking(ctx context.Context, input *models.ParkingInput) (*models.Parking, error)
	UpdateParking(ctx context.Context, id int64, input *models.ParkingInput) (*models.Parking, error)
	DeleteParking(ctx context.Context, id int64) error
}

// ReviewServiceInterface defines the reviews resource operations.
type ReviewServiceInterface interface {
	ListReviews(ctx context.Context) ([]*models.Review, error)
	GetReview(ctx context.Context, id int64) (*models.Review, error)
	CreateReview(ctx context.Context, input *models.ReviewCreate) (*models.Review, error)
	UpdateReview(ctx context.Context, id int64, input *models.ReviewUpdate) (*models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
}
