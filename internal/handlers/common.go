package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"online-poll-backend/internal/models"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondServiceError maps the shared sentinel errors onto HTTP statuses.
// Policy errors surface verbatim; anything unrecognized becomes a 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrPollNotFound),
		errors.Is(err, models.ErrOptionNotFound),
		errors.Is(err, models.ErrUserNotFound):
		respondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrPollClosed),
		errors.Is(err, models.ErrDuplicateVote),
		errors.Is(err, models.ErrUsernameTaken):
		respondError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrRateLimitExceeded):
		respondError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrTransientConflict):
		respondError(w, "temporarily unable to process request, retry later", http.StatusServiceUnavailable)
	default:
		respondError(w, "Internal server error", http.StatusInternalServerError)
	}
}
