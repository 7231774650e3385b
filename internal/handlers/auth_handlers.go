package handlers

import (
	"net/http"

	"github.com/upark/upark-api/internal/models"
	"github.com/upark/upark-api/internal/utils"
)

// AuthHandler handles registration, login and password changes
type AuthHandler struct {
	authService AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	userID, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.SendJSON(w, http.StatusOK, models.RegisterResponse{Success: true, UserID: userID})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.SendJSON(w, http.StatusOK, models.LoginResponse{Success: true, User: user})
}

// ChangePassword handles POST /api/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.authService.ChangePassword(r.Context(), &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.SendJSON(w, http.StatusOK, models.ChangePasswordResponse{Success: true})
}
