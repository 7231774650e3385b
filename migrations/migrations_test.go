package migrations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upark/upark-api/internal/database"
	"github.com/upark/upark-api/migrations"
)

const tableExistsQuery = "SELECT EXISTS\\(SELECT 1 FROM information_schema.tables"

// newMockMigrator creates a migrator over a mock database
func newMockMigrator(t *testing.T) (*migrations.Migrator, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return migrations.NewMigrator(&database.Pool{DB: db}), mock
}

func existsRow(exists bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"exists"}).AddRow(exists)
}

func TestGetMigrations(t *testing.T) {
	list := migrations.GetMigrations()
	require.Len(t, list, 3)

	// Referenced tables must be created first.
	assert.Equal(t, "users", list[0].TableName)
	assert.Equal(t, "parkings", list[1].TableName)
	assert.Equal(t, "review", list[2].TableName)

	for _, migration := range list {
		assert.NotEmpty(t, migration.Name)
		assert.NotEmpty(t, migration.Description)
		assert.NotNil(t, migration.RunSQL)
	}
}

func TestRunMigrations(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(sqlmock.Sqlmock)
		errSubstr string
	}{
		{
			name: "Create migrations table fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnError(errors.New("permission denied"))
			},
			errSubstr: "failed to create migrations table",
		},
		{
			name: "Get executed migrations fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnError(errors.New("relation does not exist"))
			},
			errSubstr: "failed to get executed migrations",
		},
		{
			name: "Table exists check fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))
				mock.ExpectQuery(tableExistsQuery).
					WithArgs("users").
					WillReturnError(errors.New("connection reset"))
			},
			errSubstr: "failed to check if table users exists",
		},
		{
			name: "Existing tables are recorded only",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))

				for _, migration := range migrations.GetMigrations() {
					mock.ExpectQuery(tableExistsQuery).
						WithArgs(migration.TableName).
						WillReturnRows(existsRow(true))
					mock.ExpectExec("INSERT INTO migrations").
						WithArgs(migration.Name, migration.Description).
						WillReturnResult(sqlmock.NewResult(1, 1))
				}

				mock.ExpectExec("ALTER TABLE users ADD COLUMN IF NOT EXISTS reset_token").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "Already executed migrations are skipped",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))

				rows := sqlmock.NewRows([]string{"name"})
				for _, migration := range migrations.GetMigrations() {
					rows.AddRow(migration.Name)
				}
				mock.ExpectQuery("SELECT name FROM migrations").WillReturnRows(rows)

				mock.ExpectExec("ALTER TABLE users ADD COLUMN IF NOT EXISTS reset_token").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "Missing table is created in a transaction",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}).
						AddRow("create_users_table").
						AddRow("create_parkings_table"))

				mock.ExpectQuery(tableExistsQuery).
					WithArgs("review").
					WillReturnRows(existsRow(false))
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS review").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_review_parking_id").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("INSERT INTO migrations").
					WithArgs("create_review_table", "Creates the review table").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()

				mock.ExpectExec("ALTER TABLE users ADD COLUMN IF NOT EXISTS reset_token").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "Failed migration rolls back",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT name FROM migrations").
					WillReturnRows(sqlmock.NewRows([]string{"name"}))

				mock.ExpectQuery(tableExistsQuery).
					WithArgs("users").
					WillReturnRows(existsRow(false))
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").
					WillReturnError(errors.New("syntax error"))
				mock.ExpectRollback()
			},
			errSubstr: "migration create_users_table failed",
		},
		{
			name: "Reset column check fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS migrations").
					WillReturnResult(sqlmock.NewResult(0, 0))

				rows := sqlmock.NewRows([]string{"name"})
				for _, migration := range migrations.GetMigrations() {
					rows.AddRow(migration.Name)
				}
				mock.ExpectQuery("SELECT name FROM migrations").WillReturnRows(rows)

				mock.ExpectExec("ALTER TABLE users").
					WillReturnError(errors.New("lock timeout"))
			},
			errSubstr: "failed to ensure reset columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			migrator, mock := newMockMigrator(t)
			tt.setup(mock)

			err := migrator.RunMigrations(context.Background())

			if tt.errSubstr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
