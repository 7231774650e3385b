// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines the machine-readable error codes carried in the
// errorCode field of the response envelope, plus HTTP header names and values.
package constants

// Response envelope flags.
const (
	ResponseSuccess = true
	ResponseFailure = false
)

// Error codes returned in the errorCode field.
const (
	CodeBadRequest         = "bad_request"
	CodeNotFound           = "not_found"
	CodeInternalError      = "internal_error"
	CodeValidationError    = "validation_error"
	CodeInvalidCredentials = "invalid_credentials"
	CodeDuplicateResource  = "duplicate_resource"
	CodeInputMismatch      = "input_mismatch"
	CodeServiceUnavailable = "service_unavailable"
)

// HTTP header names.
const (
	HeaderContentType         = "Content-Type"
	HeaderXRequestID          = "X-Request-ID"
	HeaderXContentTypeOptions = "X-Content-Type-Options"
	HeaderXFrameOptions       = "X-Frame-Options"
	HeaderReferrerPolicy      = "Referrer-Policy"
	HeaderAuthorization       = "Authorization"
)

// HTTP header values.
const (
	ContentTypeJSON            = "application/json"
	ContentTypeHTML            = "text/html; charset=utf-8"
	FrameOptionsDeny           = "DENY"
	ContentTypeOptionsNoSniff  = "nosniff"
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
)
