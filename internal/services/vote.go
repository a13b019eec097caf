package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"online-poll-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// VoteService enforces one-vote-per-user-per-poll and records votes.
type VoteService struct {
	pollStore PollStore
	voteStore VoteStore
	retries   int
	now       func() time.Time
}

// NewVoteService creates a new vote service. retries bounds how many times
// a cast is re-run after a transient store conflict.
func NewVoteService(pollStore PollStore, voteStore VoteStore, retries int) *VoteService {
	return &VoteService{
		pollStore: pollStore,
		voteStore: voteStore,
		retries:   retries,
		now:       time.Now,
	}
}

// CastVote records a vote for a user on a poll option.
// Preconditions, checked in order: the poll exists, the option exists and
// belongs to that poll, the poll is still active, and the user has not
// voted on the poll. The last check and the insert are one atomic unit in
// the store; duplicates surface as ErrDuplicateVote regardless of timing.
// Transient conflicts retry the whole operation from the first check.
func (s *VoteService) CastVote(ctx context.Context, userID, pollID, optionID string) (*models.Vote, error) {
	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		vote, err := s.castOnce(ctx, userID, pollID, optionID)
		if err == nil {
			return vote, nil
		}
		if !errors.Is(err, models.ErrTransientConflict) {
			return nil, err
		}
		lastErr = err
		log.Warn().
			Str("user_id", userID).
			Str("poll_id", pollID).
			Int("attempt", attempt+1).
			Msg("Transient conflict while casting vote, retrying")
	}
	return nil, fmt.Errorf("vote retries exhausted: %w", lastErr)
}

func (s *VoteService) castOnce(ctx context.Context, userID, pollID, optionID string) (*models.Vote, error) {
	poll, err := s.pollStore.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	option, err := s.voteStore.GetOption(ctx, optionID)
	if err != nil {
		return nil, err
	}
	if option.PollID != poll.ID {
		return nil, models.ErrOptionNotFound
	}

	if !PollIsActive(poll, s.now()) {
		return nil, models.ErrPollClosed
	}

	vote := &models.Vote{
		ID:        uuid.New().String(),
		PollID:    poll.ID,
		OptionID:  option.ID,
		UserID:    userID,
		CreatedAt: s.now(),
	}
	if err := s.voteStore.Cast(ctx, vote); err != nil {
		return nil, err
	}
	return vote, nil
}
