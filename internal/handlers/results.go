package handlers

import (
	"net/http"

	"online-poll-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ResultsHandler handles result aggregation and counter maintenance
type ResultsHandler struct {
	resultsService *services.ResultsService
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(resultsService *services.ResultsService) *ResultsHandler {
	return &ResultsHandler{
		resultsService: resultsService,
	}
}

// ReconcileResponse reports the outcome of a reconciliation run
type ReconcileResponse struct {
	Repaired int `json:"repaired"`
}

// GetResults handles GET /api/v1/polls/{poll_id}/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pollID := chi.URLParam(r, "poll_id")

	if pollID == "" {
		respondError(w, "poll_id is required", http.StatusBadRequest)
		return
	}

	snapshot, err := h.resultsService.GetResults(ctx, pollID)
	if err != nil {
		log.Error().Err(err).Str("poll_id", pollID).Msg("Failed to aggregate results")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}

// Reconcile handles POST /api/v1/admin/reconcile
func (h *ResultsHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	repaired, err := h.resultsService.Reconcile(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to reconcile counters")
		respondServiceError(w, err)
		return
	}

	log.Info().Int("repaired", repaired).Msg("Counters reconciled")
	respondJSON(w, http.StatusOK, ReconcileResponse{Repaired: repaired})
}
