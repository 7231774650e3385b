// Package middleware provides the HTTP middleware shared by every UPark route.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/upark/upark-api/internal/constants"
)

type contextKey string

// RequestIDKey is the context key holding the request id.
const RequestIDKey contextKey = constants.RequestIDContextKey

// RequestID tags every request with an id, reusing an incoming X-Request-ID
// header when present, and echoes it on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}

			w.Header().Set(constants.HeaderXRequestID, requestID)

			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID returns the id set by RequestID.
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(RequestIDKey).(string)
	return requestID, ok
}
