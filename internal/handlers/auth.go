// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/session"
	"inkwell/internal/store"
)

// Auth handles registration, login and logout.
type Auth struct {
	users    *store.UserStore
	sessions *session.Store
	logger   *slog.Logger
}

// NewAuth creates the auth handler group.
func NewAuth(users *store.UserStore, sessions *session.Store, logger *slog.Logger) *Auth {
	return &Auth{users: users, sessions: sessions, logger: logger}
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// Register creates a new reader account.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if msg := validateRegistration(req.Email, req.DisplayName, req.Password); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if existing, err := h.users.FindByEmail(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	} else if existing != nil {
		respondError(w, http.StatusConflict, "email is already registered")
		return
	}
	if existing, err := h.users.FindByDisplayName(r.Context(), strings.TrimSpace(req.DisplayName)); err != nil {
		writeServiceError(w, err)
		return
	} else if existing != nil {
		respondError(w, http.StatusConflict, "display name is taken")
		return
	}

	user, err := h.users.Create(r.Context(), req.Email, req.Password, strings.TrimSpace(req.DisplayName), models.RoleReader)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login verifies credentials and issues a bearer token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if user == nil || !h.users.CheckPassword(user, req.Password) {
		h.logger.Warn("failed login", "email", req.Email)
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.sessions.Create(r.Context(), &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID)
	respondJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout destroys the current session.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if err := h.sessions.Destroy(r.Context(), token); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the profile of the authenticated user.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	user, err := h.users.FindByID(r.Context(), sess.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ListUsers returns every account. Admin only.
func (h *Auth) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
