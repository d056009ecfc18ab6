package api

import (
	"errors"
	"net/http"

	"github.com/vy1216/v4learnease/internal/domain/user"
	"github.com/vy1216/v4learnease/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type UserInfo struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type ValidateTokenRequest struct {
	Token string `json:"token"`
}

type ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /api/register
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	if _, err := h.store.GetUserByEmail(ctx, req.Email); err == nil {
		respondError(w, http.StatusBadRequest, "User already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.logger.Error("failed to check user", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	newUser := &user.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := h.store.CreateUser(ctx, newUser); err != nil {
		h.logger.Error("failed to create user", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// POST /api/login
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !h.auth.CheckPassword(u.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.auth.GenerateToken(u.ID, u.Email)
	if err != nil {
		h.logger.Error("failed to sign token", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User:  UserInfo{ID: u.ID, Email: u.Email, Username: u.Username},
	})
}

// POST /api/validate-token
func (h *Handler) validateToken(w http.ResponseWriter, r *http.Request) {
	var req ValidateTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		respondJSON(w, http.StatusBadRequest, ValidateTokenResponse{Valid: false})
		return
	}
	if _, err := h.auth.ParseToken(req.Token); err != nil {
		respondJSON(w, http.StatusUnauthorized, ValidateTokenResponse{Valid: false})
		return
	}
	respondJSON(w, http.StatusOK, ValidateTokenResponse{Valid: true})
}
