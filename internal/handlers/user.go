package handlers

import (
	"encoding/json"
	"net/http"

	"online-poll-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token string `json:"token"`
}

// Register handles POST /api/v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, "username and password are required", http.StatusBadRequest)
		return
	}
	if len(req.Username) < 3 || len(req.Username) > 50 {
		respondError(w, "username must be 3-50 characters", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 8 {
		respondError(w, "password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(ctx, req.Username, req.Password)
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to register user")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("User registered")

	respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/v1/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	token, err := h.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("Failed login attempt")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{Token: token})
}
