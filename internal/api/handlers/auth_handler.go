package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/healthassistant/hub/internal/api/middleware"
	"github.com/healthassistant/hub/internal/api/response"
	"github.com/healthassistant/hub/internal/api/validation"
	"github.com/healthassistant/hub/internal/models"
	"github.com/healthassistant/hub/internal/service"
)

// AuthService defines the login operations the handler needs.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	Logout(token string)
}

// AuthHandler handles login and logout requests.
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		response.RespondBadRequest(w, "Invalid request body")

		return
	}

	if err := validation.ValidateStruct(req); err != nil {
		validation.RespondValidationError(w, err)

		return
	}

	resp, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.RespondUnauthorized(w, "Invalid username or password")

			return
		}

		response.RespondInternalServerError(w, "Login failed")

		return
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// Logout handles POST /v1/auth/logout. The Auth middleware has already
// resolved the session, so the token here is always a live one.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.RespondUnauthorized(w, "Not authenticated")

		return
	}

	h.service.Logout(sess.Token)
	w.WriteHeader(http.StatusNoContent)
}
