package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"online-poll-backend/internal/middleware"
	"online-poll-backend/internal/models"
	"online-poll-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PollHandler handles poll-related HTTP requests
type PollHandler struct {
	pollService *services.PollService
}

// NewPollHandler creates a new poll handler
func NewPollHandler(pollService *services.PollService) *PollHandler {
	return &PollHandler{
		pollService: pollService,
	}
}

// CreatePollRequest represents the request body for creating a poll
type CreatePollRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Options     []string   `json:"options"`
}

// PollResponse is a poll with its options. Active is derived from the
// expiry timestamp at response time, never stored.
type PollResponse struct {
	Poll    *models.Poll     `json:"poll"`
	Options []*models.Option `json:"options"`
	Active  bool             `json:"active"`
}

// CreatePoll handles POST /api/v1/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondError(w, "title is required", http.StatusBadRequest)
		return
	}
	if len(req.Options) < 2 {
		respondError(w, "at least 2 options are required", http.StatusBadRequest)
		return
	}
	for _, text := range req.Options {
		if strings.TrimSpace(text) == "" {
			respondError(w, "option text cannot be empty", http.StatusBadRequest)
			return
		}
	}

	poll, options, err := h.pollService.CreatePoll(ctx, userID, req.Title, req.Description, req.ExpiresAt, req.Options)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("title", req.Title).
			Msg("Failed to create poll")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("poll_id", poll.ID).
		Str("user_id", userID).
		Int("options", len(options)).
		Msg("Poll created")

	respondJSON(w, http.StatusCreated, PollResponse{
		Poll:    poll,
		Options: options,
		Active:  h.pollService.IsActive(poll),
	})
}

// GetPoll handles GET /api/v1/polls/{poll_id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pollID := chi.URLParam(r, "poll_id")

	if pollID == "" {
		respondError(w, "poll_id is required", http.StatusBadRequest)
		return
	}

	poll, options, err := h.pollService.GetPoll(ctx, pollID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, PollResponse{
		Poll:    poll,
		Options: options,
		Active:  h.pollService.IsActive(poll),
	})
}

// ListPolls handles GET /api/v1/polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	sort := q.Get("sort")
	if sort == "" {
		sort = models.SortNew
	}
	if sort != models.SortNew && sort != models.SortTop {
		respondError(w, "sort must be 'new' or 'top'", http.StatusBadRequest)
		return
	}

	var active *bool
	if v := q.Get("active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, "active must be a boolean", http.StatusBadRequest)
			return
		}
		active = &parsed
	}

	limit := 20
	offset := 0
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	polls, err := h.pollService.ListPolls(ctx, sort, active, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list polls")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"polls": polls})
}
