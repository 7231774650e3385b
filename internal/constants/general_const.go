// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines route paths and URL parameter names so that
// the router, handlers and the reset link builder agree on them.
package constants

// Base Routes define the root URL paths for different parts of the API.
const (
	// APIBasePath is the root path prefix for all API endpoints.
	APIBasePath = "/api"

	// HealthPath is the endpoint for health checks and system status.
	HealthPath = "/health"

	// VersionPath reports build information.
	VersionPath = "/version"

	// ConfirmResetPath is the path under APIBasePath that the reset email links to.
	ConfirmResetPath = "/confirm-reset"
)

// URL Parameters define path parameter names used in route definitions.
const (
	// ParamID is the URL parameter for resource identifiers.
	ParamID = "id"

	// ParamToken is the URL parameter carrying a reset token.
	ParamToken = "token"
)

// Context keys used in log fields.
const (
	RequestIDContextKey = "request_id"
	UserIDContextKey    = "user_id"
	UsernameContextKey  = "username"
)

// Audit event types written to the events topic.
const (
	EventUserRegistered  = "user_registered"
	EventUserLoggedIn    = "user_logged_in"
	EventPasswordChanged = "password_changed"
	EventResetRequested  = "password_reset_requested"
	EventResetConfirmed  = "password_reset_confirmed"
)
