package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/utils"
)

// Recovery is a middleware that recovers from panics and returns a 500 Internal Server Error
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					requestID, _ := GetRequestID(r)

					utils.LogPanic(err, debug.Stack(), map[string]string{
						"request_id":  requestID,
						"method":      r.Method,
						"path":        r.URL.Path,
						"remote_addr": r.RemoteAddr,
					})

					utils.Error(
						w,
						http.StatusInternalServerError,
						constants.CodeInternalError,
						constants.MsgInternalServerError,
						nil,
					)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
