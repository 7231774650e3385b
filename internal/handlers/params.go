package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/utils"
)

// idParam reads the {id} URL parameter. On failure it writes a 400 response
// and returns false.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, constants.ParamID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return 0, false
	}
	return id, true
}
