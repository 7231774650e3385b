package migrations

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createMockDBAndTx opens a mock database with a transaction already begun
func createMockDBAndTx(t *testing.T) (*sql.Tx, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	return tx, mock
}

func TestTableMigrations(t *testing.T) {
	tests := []struct {
		migration  Migration
		name       string
		table      string
		statements []string
	}{
		{
			migration:  createUsersTable(),
			name:       "create_users_table",
			table:      "users",
			statements: []string{"CREATE TABLE IF NOT EXISTS users", "CREATE INDEX IF NOT EXISTS idx_users_reset_token"},
		},
		{
			migration:  createParkingsTable(),
			name:       "create_parkings_table",
			table:      "parkings",
			statements: []string{"CREATE TABLE IF NOT EXISTS parkings", "CREATE INDEX IF NOT EXISTS idx_parkings_manager_id"},
		},
		{
			migration:  createReviewTable(),
			name:       "create_review_table",
			table:      "review",
			statements: []string{"CREATE TABLE IF NOT EXISTS review", "CREATE INDEX IF NOT EXISTS idx_review_parking_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, mock := createMockDBAndTx(t)

			assert.Equal(t, tt.name, tt.migration.Name)
			assert.Equal(t, tt.table, tt.migration.TableName)

			for _, stmt := range tt.statements {
				mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
			}

			err := tt.migration.RunSQL(context.Background(), tx)

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUsersTableConstraintNames(t *testing.T) {
	tx, mock := createMockDBAndTx(t)

	// Duplicate detection maps these constraint names back to the field.
	mock.ExpectExec("CONSTRAINT users_username_key UNIQUE \\(username\\), CONSTRAINT users_email_key UNIQUE \\(email\\)").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, createUsersTable().RunSQL(context.Background(), tx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecAllStopsOnError(t *testing.T) {
	tx, mock := createMockDBAndTx(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS parkings").
		WillReturnError(errors.New("relation users does not exist"))

	err := createParkingsTable().RunSQL(context.Background(), tx)

	assert.EqualError(t, err, "relation users does not exist")
	assert.NoError(t, mock.ExpectationsWereMet())
}
