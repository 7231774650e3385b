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

// ParkingRepository defines methods for interacting with parking lots
type ParkingRepository interface {
	List(ctx context.Context) ([]*models.Parking, error)
	GetByID(ctx context.Context, id int64) (*models.Parking, error)
	Create(ctx context.Context, input *models.ParkingInput) (*models.Parking, error)
	Update(ctx context.Context, id int64, input *models.ParkingInput) (*models.Parking, error)
	Delete(ctx context.Context, id int64) error
}

// PostgresParkingRepository is a PostgreSQL implementation of ParkingRepository
type PostgresParkingRepository struct {
	db *database.Pool
}

// NewParkingRepository creates a new ParkingRepository
func NewParkingRepository(db *database.Pool) ParkingRepository {
	return &PostgresParkingRepository{db: db}
}

// List returns every parking lot ordered by id
func (r *PostgresParkingRepository) List(ctx context.Context) ([]*models.Parking, error) {
	startTime := time.Now()

	query := `
        SELECT ` + parkingColumns + `
        FROM parkings
        ORDER BY id
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list parkings: %w", err)
	}
	defer rows.Close()

	parkings := make([]*models.Parking, 0)
	for rows.Next() {
		parking, err := scanParking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parking row: %w", err)
		}
		parkings = append(parkings, parking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parking rows: %w", err)
	}

	return parkings, nil
}

// GetByID retrieves a parking lot by ID
func (r *PostgresParkingRepository) GetByID(ctx context.Context, id int64) (*models.Parking, error) {
	startTime := time.Now()

	query := `
        SELECT ` + parkingColumns + `
        FROM parkings
        WHERE id = $1
    `

	parking, err := scanParking(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Parking")
		}
		return nil, fmt.Errorf("failed to get parking by ID: %w", err)
	}

	return parking, nil
}

// Create inserts a parking lot. An absent is_active flag is stored as true.
func (r *PostgresParkingRepository) Create(ctx context.Context, input *models.ParkingInput) (*models.Parking, error) {
	startTime := time.Now()

	query := `
        INSERT INTO parkings
            (manager_id, name, description, address, latitude, longitude, total_spaces, hourly_rate, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + parkingColumns

	args := []interface{}{
		input.ManagerID,
		input.Name,
		input.Description,
		input.Address,
		input.Latitude,
		input.Longitude,
		input.TotalSpaces,
		input.HourlyRate,
		input.ActiveOrDefault(),
	}

	parking, err := scanParking(r.db.QueryRowContext(ctx, query, args...))

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to create parking: %w", err)
	}

	log.Info().
		Int64("parking_id", parking.ID).
		Str("name", parking.Name).
		Msg("Parking created")

	return parking, nil
}

// Update overwrites every field except the manager and refreshes updated_at
func (r *PostgresParkingRepository) Update(ctx context.Context, id int64, input *models.ParkingInput) (*models.Parking, error) {
	startTime := time.Now()

	query := `
        UPDATE parkings SET
            name = $1,
            description = $2,
            address = $3,
            latitude = $4,
            longitude = $5,
            total_spaces = $6,
            hourly_rate = $7,
            is_active = $8,
            updated_at = NOW()
        WHERE id = $9
        RETURNING ` + parkingColumns

	args := []interface{}{
		input.Name,
		input.Description,
		input.Address,
		input.Latitude,
		input.Longitude,
		input.TotalSpaces,
		input.HourlyRate,
		input.IsActive,
		id,
	}

	parking, err := scanParking(r.db.QueryRowContext(ctx, query, args...))

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Parking")
		}
		return nil, fmt.Errorf("failed to update parking: %w", err)
	}

	log.Info().Int64("parking_id", id).Msg("Parking updated")

	return parking, nil
}

// Delete removes a parking lot by ID
func (r *PostgresParkingRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := "DELETE FROM parkings WHERE id = $1"

	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete parking: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Parking")
	}

	log.Info().Int64("parking_id", id).Msg("Parking deleted")

	return nil
}
