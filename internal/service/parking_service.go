package service

import (
	"context"

	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/repository"
)

// ParkingService handles the parkings resource
type ParkingService struct {
	repo repository.ParkingRepository
}

// NewParkingService creates a new ParkingService
func NewParkingService(repo repository.ParkingRepository) *ParkingService {
	return &ParkingService{repo: repo}
}

func (s *ParkingService) ListParkings(ctx context.Context) ([]*models.Parking, error) {
	return s.repo.List(ctx)
}

func (s *ParkingService) GetParking(ctx context.Context, id int64) (*models.Parking, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateParking stores a new lot. is_active defaults to true.
func (s *ParkingService) CreateParking(ctx context.Context, input *models.ParkingInput) (*models.Parking, error) {
	return s.repo.Create(ctx, input)
}

// UpdateParking overwrites a lot. The manager cannot be changed here.
func (s *ParkingService) UpdateParking(ctx context.Context, id int64, input *models.ParkingInput) (*models.Parking, error) {
	return s.repo.Update(ctx, id, input)
}

func (s *ParkingService) DeleteParking(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
