package repository

import (
	"database/sql"

	"github.com/upark/upark-api/internal/models"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// userColumns lists the users columns in the order scanUser expects.
const userColumns = `id, username, password_hash, first_name, last_name, phone, email,
            is_manager, created_at, updated_at, reset_token, reset_token_expires, reset_password_hash`

// scanUser reads one users row, folding the reset columns into PendingReset.
func scanUser(row rowScanner) (*models.User, error) {
	var (
		user         models.User
		resetToken   sql.NullString
		resetExpires sql.NullTime
		resetHash    sql.NullString
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.Email,
		&user.IsManager,
		&user.CreatedAt,
		&user.UpdatedAt,
		&resetToken,
		&resetExpires,
		&resetHash,
	)
	if err != nil {
		return nil, err
	}

	user.PendingReset = models.NewPendingReset(resetToken, resetExpires, resetHash)
	return &user, nil
}

// parkingColumns lists the parkings columns in the order scanParking expects.
const parkingColumns = `id, manager_id, name, description, address, latitude, longitude,
            total_spaces, hourly_rate, is_active, created_at, updated_at`

func scanParking(row rowScanner) (*models.Parking, error) {
	var p models.Parking
	err := row.Scan(
		&p.ID,
		&p.ManagerID,
		&p.Name,
		&p.Description,
		&p.Address,
		&p.Latitude,
		&p.Longitude,
		&p.TotalSpaces,
		&p.HourlyRate,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// reviewColumns lists the review columns in the order scanReview expects.
const reviewColumns = `id, user_id, parking_id, rating, comment, created_at`

func scanReview(row rowScanner) (*models.Review, error) {
	var r models.Review
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.ParkingID,
		&r.Rating,
		&r.Comment,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
