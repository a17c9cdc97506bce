package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/middleware"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/model"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/repository"
	"github.com/SumitGhughtyal/Suraksha-Setu/internal/service"
)

// AuthHandler handles HTTP requests for the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse("Email and password are required."))
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, errorResponse("Email already exists."))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("Server error during registration."))
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully!",
		"user":    user,
	})
}

// HandleLogin handles POST /login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse("Email and password are required."))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorResponse("Invalid credentials."))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("Server error during login."))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Logged in successfully!",
		"token":   token,
	})
}

// HandleProfile handles GET /profile requests. The JWT middleware has
// already verified the token; the claimed user is re-read so a deleted
// account cannot keep using a live token.
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	user, err := h.service.Profile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("User not found."))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error retrieving profile."))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the protected profile route!",
		"user":    user,
	})
}
