// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines user-facing messages and database error codes.
package constants

// User-facing messages.
const (
	MsgInvalidCredentials     = "Invalid username or password"
	MsgPasswordsDoNotMatch    = "Passwords do not match"
	MsgEmailNotFound          = "Email not found"
	MsgUserNotFound           = "User not found"
	MsgParkingNotFound        = "Parking not found"
	MsgReviewNotFound         = "Review not found"
	MsgUserDeleted            = "User deleted"
	MsgParkingDeleted         = "Parking deleted"
	MsgReviewDeleted          = "Review deleted"
	MsgResetEmailSent         = "Please check your email to confirm the password reset"
	MsgResetRequestFailed     = "Server error while requesting password reset"
	MsgEmailAlreadyRegistered = "This email is already registered. Please use another one."
	MsgUsernameTaken          = "This username is already taken. Please choose another one."
	MsgCredentialTaken        = "Username or email already exists"
	MsgInternalServerError    = "Internal server error"
	MsgInvalidID              = "Invalid id"
	MsgRequestBodyTooLarge    = "Request body too large"
	MsgEmptyRequestBody       = "Request body must not be empty"
	MsgMalformedJSON          = "Request body contains malformed JSON"
	MsgResourceNotFound       = "The requested resource could not be found"
	MsgServerRunning          = "Server is running"
	MsgServiceUnhealthy       = "Service is not healthy"
)

// Reset confirmation page copy.
const (
	PageResetSuccessTitle = "Password Reset Successful!"
	PageResetSuccessBody  = "Your password has been updated. You can now close this window and log in with your new password."
	PageResetInvalidTitle = "Invalid or Expired Link"
	PageResetInvalidBody  = "Please request a new password reset."
	PageResetErrorTitle   = "Error"
	PageResetErrorBody    = "An error occurred while resetting your password. Please try again."
)

// Reset email copy.
const (
	ResetEmailSubject = "Confirm Your UPark Password Reset"
)

// PostgreSQL error codes.
const (
	PGErrorDuplicateConstraint  = "23505"
	PGErrorForeignKeyConstraint = "23503"
	PGErrorNotNullConstraint    = "23502"
	PGErrorCheckConstraint      = "23514"
)

// Log categories and auth events.
const (
	LogCategoryAuth        = "auth"
	LogEventLogin          = "login"
	LogEventRegister       = "register"
	LogEventPasswordChange = "password_change"
	LogEventResetRequested = "password_reset_requested"
	LogEventResetConfirmed = "password_reset_confirmed"
)
