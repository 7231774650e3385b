package service

import (
	"context"

	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/repository"
)

// ReviewService handles the reviews resource
type ReviewService struct {
	repo repository.ReviewRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(repo repository.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

func (s *ReviewService) ListReviews(ctx context.Context) ([]*models.Review, error) {
	return s.repo.List(ctx)
}

func (s *ReviewService) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ReviewService) CreateReview(ctx context.Context, input *models.ReviewCreate) (*models.Review, error) {
	return s.repo.Create(ctx, input)
}

// UpdateReview overwrites rating and comment and stamps created_at with the edit time.
func (s *ReviewService) UpdateReview(ctx context.Context, id int64, input *models.ReviewUpdate) (*models.Review, error) {
	return s.repo.Update(ctx, id, input)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
