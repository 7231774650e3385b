package migrations

import (
	"context"
	"database/sql"

	"github.com/upark/upark-api/internal/constants"
)

// execAll runs each statement in order on tx.
func execAll(ctx context.Context, tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// createUsersTable creates the users table together with the pending reset columns.
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   constants.TableUsers,
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx,
				`CREATE TABLE IF NOT EXISTS users (
					id BIGSERIAL PRIMARY KEY,
					username VARCHAR(50) NOT NULL,
					password_hash VARCHAR(255) NOT NULL,
					first_name VARCHAR(100),
					last_name VARCHAR(100),
					phone VARCHAR(30),
					email VARCHAR(255) NOT NULL,
					is_manager BOOLEAN NOT NULL DEFAULT FALSE,
					reset_token VARCHAR(128),
					reset_token_expires TIMESTAMPTZ,
					reset_password_hash VARCHAR(255),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT users_username_key UNIQUE (username),
					CONSTRAINT users_email_key UNIQUE (email)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_users_reset_token ON users(reset_token)`,
			)
		},
	}
}

// createParkingsTable creates the parkings table
func createParkingsTable() Migration {
	return Migration{
		Name:        "create_parkings_table",
		Description: "Creates the parkings table",
		TableName:   constants.TableParkings,
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx,
				`CREATE TABLE IF NOT EXISTS parkings (
					id BIGSERIAL PRIMARY KEY,
					manager_id BIGINT,
					name VARCHAR(255) NOT NULL,
					description TEXT,
					address TEXT,
					latitude DOUBLE PRECISION,
					longitude DOUBLE PRECISION,
					total_spaces INTEGER NOT NULL DEFAULT 0,
					hourly_rate NUMERIC(10, 2) NOT NULL DEFAULT 0,
					is_active BOOLEAN NOT NULL DEFAULT TRUE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT parkings_manager_id_fkey FOREIGN KEY (manager_id) REFERENCES users(id) ON DELETE SET NULL,
					CONSTRAINT parkings_total_spaces_check CHECK (total_spaces >= 0),
					CONSTRAINT parkings_hourly_rate_check CHECK (hourly_rate >= 0)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_parkings_manager_id ON parkings(manager_id)`,
			)
		},
	}
}

// createReviewTable creates the review table
func createReviewTable() Migration {
	return Migration{
		Name:        "create_review_table",
		Description: "Creates the review table",
		TableName:   constants.TableReviews,
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx,
				`CREATE TABLE IF NOT EXISTS review (
					id BIGSERIAL PRIMARY KEY,
					user_id BIGINT NOT NULL,
					parking_id BIGINT NOT NULL,
					rating INTEGER NOT NULL,
					comment TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT review_user_id_fkey FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
					CONSTRAINT review_parking_id_fkey FOREIGN KEY (parking_id) REFERENCES parkings(id) ON DELETE CASCADE,
					CONSTRAINT review_rating_check CHECK (rating BETWEEN 1 AND 5)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_review_parking_id ON review(parking_id)`,
			)
		},
	}
}
