package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/database"
	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/utils"
)

// UserRepository defines methods for interacting with user data
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id int64, update *models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (int64, error)
}

// PostgresUserRepository is a PostgreSQL implementation of UserRepository
type PostgresUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// Create inserts a new user and fills in the generated id and timestamps.
// A clash on username or email is returned as a duplicate error.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	query := `
        INSERT INTO users (username, password_hash, first_name, last_name, phone, email, is_manager)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Email,
		user.IsManager,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	utils.LogDBQuery(
		query,
		[]interface{}{user.Username, constants.LogRedactedValue, user.FirstName, user.LastName, user.Phone, utils.MaskEmail(user.Email), user.IsManager},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if dup := utils.DuplicateFromPQ(err); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	startTime := time.Now()

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User")
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by exact username
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	startTime := time.Now()

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE username = $1
    `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))

	utils.LogDBQuery(query, []interface{}{username}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User")
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// List returns every user ordered by id
func (r *PostgresUserRepository) List(ctx context.Context) ([]*models.User, error) {
	startTime := time.Now()

	query := `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY id
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(query, nil, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// Update overwrites the profile fields of a user and refreshes updated_at
func (r *PostgresUserRepository) Update(ctx context.Context, id int64, update *models.UserUpdate) (*models.User, error) {
	startTime := time.Now()

	query := `
        UPDATE users SET
            first_name = $1,
            last_name = $2,
            phone = $3,
            email = $4,
            is_manager = $5,
            updated_at = NOW()
        WHERE id = $6
        RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(
		ctx,
		query,
		update.FirstName,
		update.LastName,
		update.Phone,
		update.Email,
		update.IsManager,
		id,
	))

	utils.LogDBQuery(
		query,
		[]interface{}{update.FirstName, update.LastName, update.Phone, constants.LogRedactedValue, update.IsManager, id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User")
		}
		if dup := utils.DuplicateFromPQ(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info().Int64("user_id", id).Msg("User updated")

	return user, nil
}

// Delete removes a user by ID
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := "DELETE FROM users WHERE id = $1"

	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User")
	}

	log.Info().Int64("user_id", id).Msg("User deleted")

	return nil
}

// UpdatePasswordByEmail overwrites the password hash of the user with the given email
// and returns that user's id.
func (r *PostgresUserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (int64, error) {
	startTime := time.Now()

	query := `
        UPDATE users SET password_hash = $1
        WHERE email = $2
        RETURNING id
    `

	var id int64
	err := r.db.QueryRowContext(ctx, query, passwordHash, email).Scan(&id)

	utils.LogDBQuery(query, []interface{}{passwordHash, email}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, utils.NewNotFoundError("User")
		}
		return 0, fmt.Errorf("failed to update password: %w", err)
	}

	log.Info().Int64("user_id", id).Msg("User password changed")

	return id, nil
}
