// Package utils provides utility functions and helpers for the application.
// This file implements the response envelope shared by every JSON endpoint.
//
// Every body carries a success flag. Successful responses add either a data
// field or a message, and failures add an error string with a machine-readable
// errorCode. Endpoints with a bespoke shape (register, login) build their own
// struct and hand it to SendJSON.
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/constants"
)

// Response represents a standardized API response.
type Response struct {
	Success   bool              `json:"success"`             // Whether the request was successful
	Data      interface{}       `json:"data,omitempty"`      // The response data
	Message   string            `json:"message,omitempty"`   // Confirmation text for operations without data
	Error     string            `json:"error,omitempty"`     // Human-readable error message
	ErrorCode string            `json:"errorCode,omitempty"` // Machine-readable error code
	Details   map[string]string `json:"details,omitempty"`   // Per-field error details
}

// JSON sends a JSON response with the given status code and data.
// The success flag follows the status code.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	SendJSON(w, statusCode, Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	})
}

// Message sends a successful response that carries only a message.
func Message(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, Response{
		Success: constants.ResponseSuccess,
		Message: message,
	})
}

// Error sends an error response with the given status code and error information.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - code: A machine-readable error code
//   - message: A human-readable error message
//   - details: Additional details about the error (e.g., validation errors)
func Error(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	SendJSON(w, statusCode, Response{
		Success:   constants.ResponseFailure,
		Error:     message,
		ErrorCode: code,
		Details:   details,
	})
}

// ErrorFromAppError sends an error response based on an AppError.
// Server errors are logged with their developer info and answered with a
// generic message.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	errCode := constants.CodeInternalError
	switch err.Err {
	case ErrNotFound:
		errCode = constants.CodeNotFound
	case ErrBadRequest:
		errCode = constants.CodeBadRequest
	case ErrValidation:
		errCode = constants.CodeValidationError
	case ErrDuplicate:
		errCode = constants.CodeDuplicateResource
	case ErrInvalidCredentials:
		errCode = constants.CodeInvalidCredentials
	case ErrInputMismatch:
		errCode = constants.CodeInputMismatch
	}

	if err.StatusCode >= http.StatusInternalServerError {
		log.Error().
			Str("dev_info", err.DevInfo).
			Int("status", err.StatusCode).
			Msg(err.Message)
		Error(w, err.StatusCode, errCode, err.Message, nil)
		return
	}

	var details map[string]string
	if len(err.Details) > 0 {
		details = make(map[string]string, len(err.Details))
		for k, v := range err.Details {
			if s, ok := v.(string); ok {
				details[k] = s
			}
		}
	} else if err.Field != "" && err.Err == ErrValidation {
		details = map[string]string{err.Field: err.Message}
	}

	Error(w, err.StatusCode, errCode, err.Message, details)
}

// SendJSON is a helper function to send JSON data with proper headers.
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"success":false,"error":"Internal server error","errorCode":"internal_error"}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// NotFound sends a 404 Not Found response with the given message.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgResourceNotFound
	}
	Error(w, http.StatusNotFound, constants.CodeNotFound, message, nil)
}

// InternalServerError sends a 500 Internal Server Error response.
// The error is logged but not exposed to the client.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, http.StatusInternalServerError, constants.CodeInternalError, constants.MsgInternalServerError, nil)
}
