package services

import (
	"context"
	"fmt"
	"time"

	"online-poll-backend/internal/models"

	"github.com/google/uuid"
)

// PollService handles poll creation and reads
type PollService struct {
	pollStore PollStore
	limiter   *CreationRateLimiter
	now       func() time.Time
}

// NewPollService creates a new poll service
func NewPollService(pollStore PollStore, limiter *CreationRateLimiter) *PollService {
	return &PollService{
		pollStore: pollStore,
		limiter:   limiter,
		now:       time.Now,
	}
}

// CreatePoll creates a poll with its options as one unit, after the daily
// creation quota check. Options are fixed at creation; polls are not
// editable afterwards.
func (s *PollService) CreatePoll(ctx context.Context, creatorID, title, description string, expiresAt *time.Time, optionTexts []string) (*models.Poll, []*models.Option, error) {
	now := s.now()

	if err := s.limiter.Check(ctx, creatorID, now); err != nil {
		return nil, nil, err
	}

	poll := &models.Poll{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		CreatedBy:   creatorID,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}

	options := make([]*models.Option, 0, len(optionTexts))
	for _, text := range optionTexts {
		options = append(options, &models.Option{
			ID:     uuid.New().String(),
			PollID: poll.ID,
			Text:   text,
		})
	}

	if err := s.pollStore.Create(ctx, poll, options); err != nil {
		return nil, nil, fmt.Errorf("failed to create poll: %w", err)
	}
	return poll, options, nil
}

// GetPoll returns a poll with its options
func (s *PollService) GetPoll(ctx context.Context, pollID string) (*models.Poll, []*models.Option, error) {
	poll, err := s.pollStore.GetByID(ctx, pollID)
	if err != nil {
		return nil, nil, err
	}
	options, err := s.pollStore.GetOptions(ctx, poll.ID)
	if err != nil {
		return nil, nil, err
	}
	return poll, options, nil
}

// ListPolls lists polls with fast-path vote totals. The active filter is
// evaluated against the service clock so every row uses the same instant.
func (s *PollService) ListPolls(ctx context.Context, sort string, active *bool, limit, offset int) ([]*models.PollSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	polls, err := s.pollStore.List(ctx, models.PollFilter{
		Sort:   sort,
		Active: active,
		Now:    s.now(),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	if polls == nil {
		polls = []*models.PollSummary{}
	}
	return polls, nil
}

// IsActive reports whether a poll currently accepts votes
func (s *PollService) IsActive(poll *models.Poll) bool {
	return PollIsActive(poll, s.now())
}
