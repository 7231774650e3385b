// Package migrations creates and tracks the UPark schema.
//
// Every migration creates one table and is recorded in the migrations table
// so that it runs exactly once. A table that already exists (for example one
// created by hand from an older SQL script) is recorded without running the
// migration again.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/database"
)

// Migration represents a database migration.
type Migration struct {
	// Name is a unique identifier for the migration
	Name string
	// Description is a human-readable explanation of what the migration does
	Description string
	// TableName is the table created by this migration, used for existence checks
	TableName string
	// RunSQL executes the migration inside a transaction
	RunSQL func(ctx context.Context, tx *sql.Tx) error
}

// Migrator handles database migrations.
type Migrator struct {
	db *database.Pool
}

// NewMigrator creates a new migrator.
func NewMigrator(db *database.Pool) *Migrator {
	return &Migrator{
		db: db,
	}
}

// RunMigrations creates the tracking table, runs every migration that has
// not been recorded yet and finally makes sure the reset columns exist on
// users.
func (m *Migrator) RunMigrations(ctx context.Context) error {
	log.Info().Msg("Running database migrations")
	startTime := time.Now()

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	executedMigrations, err := m.getExecutedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}

	migrations := GetMigrations()
	migrationsRun := 0
	migrationsRecorded := 0

	for _, migration := range migrations {
		if executedMigrations[migration.Name] {
			continue
		}

		exists, err := m.tableExists(ctx, migration.TableName)
		if err != nil {
			return fmt.Errorf("failed to check if table %s exists: %w", migration.TableName, err)
		}

		if exists {
			log.Info().
				Str("migration", migration.Name).
				Str("table", migration.TableName).
				Msg("Table already exists, recording migration as completed")

			if err := m.recordMigration(ctx, migration.Name, migration.Description); err != nil {
				return err
			}
			migrationsRecorded++
			continue
		}

		log.Info().
			Str("migration", migration.Name).
			Str("table", migration.TableName).
			Msg("Running migration")

		if err := m.runMigration(ctx, migration); err != nil {
			return err
		}
		migrationsRun++
	}

	if err := m.ensureResetColumns(ctx); err != nil {
		return fmt.Errorf("failed to ensure reset columns: %w", err)
	}

	log.Info().
		Int("migrations_run", migrationsRun).
		Int("migrations_recorded", migrationsRecorded).
		Int("total_migrations", len(migrations)).
		Dur("duration", time.Since(startTime)).
		Msg("Database migrations completed")

	return nil
}

// createMigrationsTable creates the migrations table if it doesn't exist.
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			name VARCHAR(255) PRIMARY KEY,
			description TEXT,
			executed_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// getExecutedMigrations returns the names of the recorded migrations.
func (m *Migrator) getExecutedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT name FROM migrations`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	migrations := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		migrations[name] = true
	}

	return migrations, rows.Err()
}

// runMigration runs a migration and records it within one transaction.
func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	return m.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := migration.RunSQL(ctx, tx); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}

		query := `INSERT INTO migrations (name, description) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, migration.Name, migration.Description); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}

		return nil
	})
}

// recordMigration records a migration as completed without running the SQL.
func (m *Migrator) recordMigration(ctx context.Context, name, description string) error {
	query := `INSERT INTO migrations (name, description) VALUES ($1, $2)`
	if _, err := m.db.ExecContext(ctx, query, name, description); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// tableExists checks if a table exists in the current schema.
func (m *Migrator) tableExists(ctx context.Context, tableName string) (bool, error) {
	query := `
        SELECT EXISTS(SELECT 1
        FROM information_schema.tables
        WHERE table_schema = current_schema()
        AND table_name = $1)
    `
	var exists bool
	err := m.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	return exists, err
}

// ensureResetColumns adds the pending reset columns to a users table that
// predates them.
func (m *Migrator) ensureResetColumns(ctx context.Context) error {
	query := `
		ALTER TABLE users
			ADD COLUMN IF NOT EXISTS reset_token VARCHAR(128),
			ADD COLUMN IF NOT EXISTS reset_token_expires TIMESTAMPTZ,
			ADD COLUMN IF NOT EXISTS reset_password_hash VARCHAR(255)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

// GetMigrations returns all migrations in the order they must run.
func GetMigrations() []Migration {
	return []Migration{
		createUsersTable(),
		createParkingsTable(),
		createReviewTable(),
	}
}
