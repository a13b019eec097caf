package handlers

import (
	"encoding/json"
	"net/http"

	"online-poll-backend/internal/middleware"
	"online-poll-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// VoteHandler handles vote-related HTTP requests
type VoteHandler struct {
	voteService *services.VoteService
}

// NewVoteHandler creates a new vote handler
func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

// CastVoteRequest represents the request body for casting a vote
type CastVoteRequest struct {
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
}

// CastVoteResponse is the receipt returned for a recorded vote
type CastVoteResponse struct {
	VoteID   string `json:"vote_id"`
	PollID   string `json:"poll_id"`
	OptionID string `json:"option_id"`
	Message  string `json:"message"`
}

// CastVote handles POST /api/v1/votes
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PollID == "" {
		respondError(w, "poll_id is required", http.StatusBadRequest)
		return
	}
	if req.OptionID == "" {
		respondError(w, "option_id is required", http.StatusBadRequest)
		return
	}

	vote, err := h.voteService.CastVote(ctx, userID, req.PollID, req.OptionID)
	if err != nil {
		log.Warn().
			Err(err).
			Str("user_id", userID).
			Str("poll_id", req.PollID).
			Str("option_id", req.OptionID).
			Msg("Failed to cast vote")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("vote_id", vote.ID).
		Str("user_id", userID).
		Str("poll_id", vote.PollID).
		Str("option_id", vote.OptionID).
		Msg("Vote cast")

	respondJSON(w, http.StatusCreated, CastVoteResponse{
		VoteID:   vote.ID,
		PollID:   vote.PollID,
		OptionID: vote.OptionID,
		Message:  "Vote cast successfully",
	})
}
