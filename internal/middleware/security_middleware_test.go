package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/middleware"
)

func TestSecurityHeaders(t *testing.T) {
	handler := middleware.SecurityHeaders()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, constants.ContentTypeOptionsNoSniff, rr.Header().Get(constants.HeaderXContentTypeOptions))
	assert.Equal(t, constants.FrameOptionsDeny, rr.Header().Get(constants.HeaderXFrameOptions))
	assert.Equal(t, constants.ReferrerPolicyStrictOrigin, rr.Header().Get(constants.HeaderReferrerPolicy))
}
