package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/upark/upark-api/internal/utils"
)

// RequestLogger logs method, path, status and duration of every request.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			requestID, _ := GetRequestID(r)
			utils.LogHTTPRequest(requestID, r.Method, r.URL.Path, r.RemoteAddr, r.UserAgent(), status, time.Since(start))
		})
	}
}
