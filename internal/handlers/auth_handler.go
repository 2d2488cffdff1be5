package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gyanghar/internal/models"
	"gyanghar/internal/service"
)

// AuthHandler exposes registration, login, and password endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	RoomNumber *string `json:"room_number"`
}

type userResponse struct {
	ID         int64   `json:"id"`
	Email      string  `json:"email"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Role       string  `json:"role"`
	RoomNumber *string `json:"room_number,omitempty"`
	IsApproved bool    `json:"is_approved"`
	IsActive   bool    `json:"is_active"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		RoomNumber: u.RoomNumber,
		IsApproved: u.IsApproved,
		IsActive:   u.IsActive,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		respondWithError(w, http.StatusBadRequest, "Email, password, first name, and last name are required", nil)
		return
	}
	if len(req.Password) < 8 {
		respondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters", nil)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.FirstName, req.LastName, req.RoomNumber)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondWithError(w, http.StatusConflict, "Email already registered", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to register", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration successful. Your account is pending approval.",
		"user":    toUserResponse(user),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", nil)
		case errors.Is(err, service.ErrNotApproved):
			respondWithError(w, http.StatusForbidden, "Account pending approval", nil)
		case errors.Is(err, service.ErrAccountInactive):
			respondWithError(w, http.StatusForbidden, "Account deactivated", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to log in", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  toUserResponse(user),
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /api/auth/forgot-password.
// The response is identical whether or not the email exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Email == "" {
		respondWithError(w, http.StatusBadRequest, "Email is required", nil)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to process reset request", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "If the email is registered, a reset link has been sent.",
	})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Token == "" || len(req.NewPassword) < 8 {
		respondWithError(w, http.StatusBadRequest, "Token and a password of at least 8 characters are required", nil)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			respondWithError(w, http.StatusBadRequest, "Invalid or expired reset token", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to reset password", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.NewPassword) < 8 {
		respondWithError(w, http.StatusBadRequest, "New password must be at least 8 characters", nil)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Current password is incorrect", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to change password", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
