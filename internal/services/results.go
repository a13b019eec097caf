package services

import (
	"context"
	"fmt"

	"online-poll-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// ResultsService computes authoritative poll results and repairs counter
// drift. Results always recount from vote rows; the denormalized option
// counters are only ever used for bulk listing.
type ResultsService struct {
	pollStore PollStore
	voteStore VoteStore
}

// NewResultsService creates a new results service
func NewResultsService(pollStore PollStore, voteStore VoteStore) *ResultsService {
	return &ResultsService{pollStore: pollStore, voteStore: voteStore}
}

// GetResults returns the aggregated results for a poll. Per-option counts
// and the poll total are both counted from vote rows; the total equals the
// sum of per-option counts by construction of the vote unit.
func (s *ResultsService) GetResults(ctx context.Context, pollID string) (*models.ResultSnapshot, error) {
	poll, err := s.pollStore.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	options, err := s.voteStore.OptionCounts(ctx, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate option counts: %w", err)
	}

	total, err := s.voteStore.CountByPoll(ctx, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count poll votes: %w", err)
	}

	if options == nil {
		options = []models.OptionResult{}
	}
	return &models.ResultSnapshot{
		PollID:     poll.ID,
		Title:      poll.Title,
		TotalVotes: total,
		Options:    options,
	}, nil
}

// Reconcile recomputes every drifted option counter from vote rows and
// overwrites the stored value. Idempotent: a second run with no
// intervening votes repairs nothing. A single row's failure is logged and
// skipped rather than aborting the batch; the repaired-row count is
// returned. Intended as a maintenance action, not expected to run
// concurrently with itself.
func (s *ResultsService) Reconcile(ctx context.Context) (int, error) {
	drift, err := s.voteStore.CounterDrift(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to detect counter drift: %w", err)
	}

	repaired := 0
	for _, d := range drift {
		if err := s.voteStore.SetOptionCount(ctx, d.OptionID, d.Actual); err != nil {
			log.Error().
				Err(err).
				Str("option_id", d.OptionID).
				Int64("stored", d.Stored).
				Int64("actual", d.Actual).
				Msg("Failed to repair option counter")
			continue
		}
		log.Info().
			Str("option_id", d.OptionID).
			Int64("stored", d.Stored).
			Int64("actual", d.Actual).
			Msg("Repaired option counter")
		repaired++
	}
	return repaired, nil
}
