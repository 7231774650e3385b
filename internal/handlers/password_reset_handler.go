package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/repository"
	"github.com/upark/upark-api/internal/utils"
)

// PasswordResetHandler serves the two steps of the email confirmed reset.
type PasswordResetHandler struct {
	resetService PasswordResetServiceInterface
}

// NewPasswordResetHandler creates a new PasswordResetHandler
func NewPasswordResetHandler(resetService PasswordResetServiceInterface) *PasswordResetHandler {
	if resetService == nil {
		panic("resetService cannot be nil")
	}
	return &PasswordResetHandler{resetService: resetService}
}

// RequestReset handles POST /api/request-reset.
// The password confirmation is compared before any other field is checked.
func (h *PasswordResetHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req models.RequestResetRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		utils.ErrorFromAppError(w, utils.ParseError(utils.NewInputMismatchError(constants.MsgPasswordsDoNotMatch)))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.resetService.RequestReset(r.Context(), &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, http.StatusOK, constants.MsgResetEmailSent)
}

// ConfirmReset handles GET /api/confirm-reset/{token}, the link opened from the
// email. It answers with an HTML page rather than JSON.
func (h *PasswordResetHandler) ConfirmReset(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, constants.ParamToken)

	err := h.resetService.ConfirmReset(r.Context(), token)
	switch {
	case err == nil:
		renderResultPage(w, http.StatusOK, constants.PageResetSuccessTitle, constants.PageResetSuccessBody)
	case errors.Is(err, repository.ErrResetTokenInvalid):
		renderResultPage(w, http.StatusBadRequest, constants.PageResetInvalidTitle, constants.PageResetInvalidBody)
	default:
		log.Error().Err(err).Msg("Password reset confirmation failed")
		renderResultPage(w, http.StatusInternalServerError, constants.PageResetErrorTitle, constants.PageResetErrorBody)
	}
}
