package services

import (
	"context"
	"fmt"
	"time"

	"online-poll-backend/internal/models"
)

// CreationRateLimiter bounds how many polls a creator may open per
// calendar day. Day boundaries are computed in one fixed reference
// location so the window is consistent system-wide.
//
// The check is advisory: it is not transactionally fused with the poll
// insert, so two near-simultaneous creations can both pass and overshoot
// the limit by one. This is an accepted soft limit.
type CreationRateLimiter struct {
	store PollStore
	limit int
	loc   *time.Location
}

// NewCreationRateLimiter creates a rate limiter with the given daily limit
func NewCreationRateLimiter(store PollStore, limit int, loc *time.Location) *CreationRateLimiter {
	return &CreationRateLimiter{store: store, limit: limit, loc: loc}
}

// Check denies creation once the creator has reached the daily limit
func (l *CreationRateLimiter) Check(ctx context.Context, creatorID string, now time.Time) error {
	day := now.In(l.loc)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, l.loc)
	end := start.AddDate(0, 0, 1)

	count, err := l.store.CountCreatedBetween(ctx, creatorID, start, end)
	if err != nil {
		return fmt.Errorf("failed to count today's polls: %w", err)
	}
	if count >= l.limit {
		return models.ErrRateLimitExceeded
	}
	return nil
}
