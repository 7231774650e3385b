package models

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the authenticated user without credentials.
type LoginResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

// RegisterResponse carries the id of the newly registered user.
type RegisterResponse struct {
	Success bool  `json:"success"`
	UserID  int64 `json:"userId"`
}

// ChangePasswordRequest is the body of POST /api/change-password.
type ChangePasswordRequest struct {
	Email       string `json:"email" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ChangePasswordResponse acknowledges a password change.
type ChangePasswordResponse struct {
	Success bool `json:"success"`
}

// RequestResetRequest is the body of POST /api/request-reset.
type RequestResetRequest struct {
	Email           string `json:"email" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}
