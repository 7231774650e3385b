package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/database"
	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/utils"
)

// ReviewRepository defines methods for interacting with parking reviews
type ReviewRepository interface {
	List(ctx context.Context) ([]*models.Review, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	Create(ctx context.Context, input *models.ReviewCreate) (*models.Review, error)
	Update(ctx context.Context, id int64, input *models.ReviewUpdate) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
}

// PostgresReviewRepository is a PostgreSQL implementation of ReviewRepository
type PostgresReviewRepository struct {
	db *database.Pool
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *database.Pool) ReviewRepository {
	return &PostgresReviewRepository{db: db}
}

// List returns every review ordered by id
func (r *PostgresReviewRepository) List(ctx context.Context) ([]*models.Review, error) {
	startTime := time.Now()

	query := `
        SELECT ` + reviewColumns + `
        FROM review
        ORDER BY id
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*models.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}

	return reviews, nil
}

// GetByID retrieves a review by ID
func (r *PostgresReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	startTime := time.Now()

	query := `
        SELECT ` + reviewColumns + `
        FROM review
        WHERE id = $1
    `

	review, err := scanReview(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Review")
		}
		return nil, fmt.Errorf("failed to get review by ID: %w", err)
	}

	return review, nil
}

// Create inserts a review
func (r *PostgresReviewRepository) Create(ctx context.Context, input *models.ReviewCreate) (*models.Review, error) {
	startTime := time.Now()

	query := `
        INSERT INTO review (user_id, parking_id, rating, comment)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + reviewColumns

	args := []interface{}{input.UserID, input.ParkingID, input.Rating, input.Comment}

	review, err := scanReview(r.db.QueryRowContext(ctx, query, args...))

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	log.Info().
		Int64("review_id", review.ID).
		Int64("parking_id", review.ParkingID).
		Msg("Review created")

	return review, nil
}

// Update overwrites rating and comment. created_at doubles as the last edit time.
func (r *PostgresReviewRepository) Update(ctx context.Context, id int64, input *models.ReviewUpdate) (*models.Review, error) {
	startTime := time.Now()

	query := `
        UPDATE review SET
            rating = $1,
            comment = $2,
            created_at = NOW()
        WHERE id = $3
        RETURNING ` + reviewColumns

	args := []interface{}{input.Rating, input.Comment, id}

	review, err := scanReview(r.db.QueryRowContext(ctx, query, args...))

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Review")
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	log.Info().Int64("review_id", id).Msg("Review updated")

	return review, nil
}

// Delete removes a review by ID
func (r *PostgresReviewRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := "DELETE FROM review WHERE id = $1"

	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Review")
	}

	log.Info().Int64("review_id", id).Msg("Review deleted")

	return nil
}
