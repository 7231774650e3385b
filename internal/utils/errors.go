package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"

	"github.com/upark/upark-api/internal/constants"
)

// Custom error types for the application
var (
	ErrNotFound           = errors.New("resource not found")
	ErrBadRequest         = errors.New("invalid request")
	ErrInternalServer     = errors.New("internal server error")
	ErrValidation         = errors.New("validation error")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInputMismatch      = errors.New("input mismatch")
)

// AppError represents an application error with additional context
type AppError struct {
	Err        error  // The underlying error
	StatusCode int    // HTTP status code
	Message    string // User-friendly error message
	DevInfo    string // Additional information for developers, never sent to clients
	Field      string // Field related to the error (for validation and duplicate errors)
	Details    map[string]any
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the given error and status code
func New(err error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewValidationError creates a new validation error for a specific field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Field:      field,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// NewNotFoundError creates a new not found error such as "Parking not found"
func NewNotFoundError(resourceType string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s not found", resourceType),
	}
}

// NewInternalServerError creates a new internal server error.
// The cause is kept in DevInfo for logging.
func NewInternalServerError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrInternalServer,
		StatusCode: http.StatusInternalServerError,
		Message:    constants.MsgInternalServerError,
		DevInfo:    devInfo,
	}
}

// NewDuplicateError creates a duplicate credential error with a user-facing message
func NewDuplicateError(field, message string) *AppError {
	return &AppError{
		Err:        ErrDuplicate,
		StatusCode: http.StatusConflict,
		Message:    message,
		Field:      field,
	}
}

// NewInvalidCredentialsError creates a new invalid credentials error.
// Unknown usernames and wrong passwords share it.
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Err:        ErrInvalidCredentials,
		StatusCode: http.StatusUnauthorized,
		Message:    constants.MsgInvalidCredentials,
	}
}

// NewInputMismatchError reports that a confirmation field does not match
func NewInputMismatchError(message string) *AppError {
	return &AppError{
		Err:        ErrInputMismatch,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// DuplicateFromPQ converts a unique violation into a duplicate credential error.
// It returns nil when err is not a unique violation.
func DuplicateFromPQ(err error) *AppError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != constants.PGErrorDuplicateConstraint {
		return nil
	}

	var appErr *AppError
	switch {
	case pqErr.Constraint == constants.ConstraintUsersEmailKey || strings.Contains(pqErr.Constraint, constants.ColumnEmail):
		appErr = NewDuplicateError(constants.ColumnEmail, constants.MsgEmailAlreadyRegistered)
	case pqErr.Constraint == constants.ConstraintUsersUsernameKey || strings.Contains(pqErr.Constraint, constants.ColumnUsername):
		appErr = NewDuplicateError(constants.ColumnUsername, constants.MsgUsernameTaken)
	default:
		appErr = NewDuplicateError("", constants.MsgCredentialTaken)
	}
	appErr.DevInfo = pqErr.Error()
	return appErr
}

// ParseError attempts to parse various types of errors into an AppError
func ParseError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return New(ErrNotFound, http.StatusNotFound, constants.MsgResourceNotFound)
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrValidation):
		return NewValidationError("", err.Error())
	case errors.Is(err, ErrDuplicate):
		return NewDuplicateError("", constants.MsgCredentialTaken)
	case errors.Is(err, ErrInvalidCredentials):
		return NewInvalidCredentialsError()
	case errors.Is(err, ErrInputMismatch):
		return NewInputMismatchError(constants.MsgPasswordsDoNotMatch)
	}

	if dup := DuplicateFromPQ(err); dup != nil {
		return dup
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constants.PGErrorForeignKeyConstraint:
			return &AppError{
				Err:        ErrBadRequest,
				StatusCode: http.StatusBadRequest,
				Message:    "This operation references a record that does not exist",
				DevInfo:    pqErr.Error(),
			}
		case constants.PGErrorNotNullConstraint:
			return &AppError{
				Err:        ErrValidation,
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("The %s field cannot be empty", pqErr.Column),
				DevInfo:    pqErr.Error(),
				Field:      pqErr.Column,
			}
		case constants.PGErrorCheckConstraint:
			return &AppError{
				Err:        ErrValidation,
				StatusCode: http.StatusBadRequest,
				Message:    "One or more fields are out of range",
				DevInfo:    pqErr.Error(),
			}
		}
	}

	return NewInternalServerError(err)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if an error is a duplicate resource error
func IsDuplicateError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return errors.Is(appErr.Err, ErrDuplicate)
	}
	return errors.Is(err, ErrDuplicate)
}

// StatusCode returns the HTTP status code for an error
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
