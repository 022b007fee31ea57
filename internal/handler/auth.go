package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/docpoint/docpoint-go/internal/model"
	"github.com/docpoint/docpoint-go/internal/repository"
	"github.com/docpoint/docpoint-go/internal/service"
)

// AuthHandler handles patient registration and login requests.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/user/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid request body"))
		return
	}

	token, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrWeakPassword):
			writeJSON(w, http.StatusBadRequest, failure(err.Error()))
		case errors.Is(err, repository.ErrDuplicateEmail):
			writeJSON(w, http.StatusConflict, failure(err.Error()))
		default:
			slog.Error("register failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, failure("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, successToken(token))
}

// HandleLogin handles POST /api/user/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("invalid request body"))
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		// Both failures answer 401; the messages stay distinct for the
		// existing clients.
		case errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, failure(err.Error()))
		default:
			slog.Error("login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, failure("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, successToken(token))
}
