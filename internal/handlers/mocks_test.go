package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/upark/upark-api/internal/models"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *models.UserCreate) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

type MockPasswordResetService struct {
	mock.Mock
}

func (m *MockPasswordResetService) RequestReset(ctx context.Context, req *models.RequestResetRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockPasswordResetService) ConfirmReset(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req *models.UserCreate) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id int64, update *models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockParkingService struct {
	mock.Mock
}

func (m *MockParkingService) ListParkings(ctx context.Context) ([]*models.Parking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Parking), args.Error(1)
}

func (m *MockParkingService) GetParking(ctx context.Context, id int64) (*models.Parking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Parking), args.Error(1)
}

func (m *MockParkingService) CreateParking(ctx context.Context, input *models.ParkingInput) (*models.Parking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Parking), args.Error(1)
}

func (m *MockParkingService) UpdateParking(ctx context.Context, id int64, input *models.ParkingInput) (*models.Parking, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Parking), args.Error(1)
}

func (m *MockParkingService) DeleteParking(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListReviews(ctx context.Context) ([]*models.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}

func (m *MockReviewService) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) CreateReview(ctx context.Context, input *models.ReviewCreate) (*models.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, id int64, input *models.ReviewUpdate) (*models.Review, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
