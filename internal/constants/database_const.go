// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines table, column and constraint names so that
// migrations, repositories and error translation refer to the same schema objects.
package constants

// Table Names define the names of database tables used in the application.
const (
	// TableUsers stores user accounts and any pending password reset.
	TableUsers = "users"

	// TableParkings stores parking lots owned by managers.
	TableParkings = "parkings"

	// TableReviews stores user reviews of parking lots. The singular name is
	// what existing deployments use.
	TableReviews = "review"
)

// Column Names referenced outside of plain SELECT lists.
const (
	ColumnUsername     = "username"
	ColumnEmail        = "email"
	ColumnPasswordHash = "password_hash"
	ColumnResetToken   = "reset_token"
)

// Constraint names on the users table.
const (
	ConstraintUsersUsernameKey = "users_username_key"
	ConstraintUsersEmailKey    = "users_email_key"
)
