package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"online-poll-backend/internal/models"
)

func seedCreatedPolls(t *testing.T, store *memStore, creatorID string, times ...time.Time) {
	t.Helper()
	for i, at := range times {
		poll := &models.Poll{
			ID:        fmt.Sprintf("%s-poll-%d", creatorID, i),
			Title:     "seeded",
			CreatedBy: creatorID,
			CreatedAt: at,
		}
		if err := store.createPoll(context.Background(), poll, nil); err != nil {
			t.Fatalf("failed to seed poll: %v", err)
		}
	}
}

func TestRateLimiterBoundary(t *testing.T) {
	store := newMemStore()
	limiter := NewCreationRateLimiter(memPolls{store}, 5, time.UTC)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	// 4 polls today: a 5th is allowed
	seedCreatedPolls(t, store, "creator-4",
		now.Add(-4*time.Hour), now.Add(-3*time.Hour), now.Add(-2*time.Hour), now.Add(-time.Hour))
	if err := limiter.Check(ctx, "creator-4", now); err != nil {
		t.Errorf("expected allow at 4 polls, got %v", err)
	}

	// 5 polls today: a 6th is denied
	seedCreatedPolls(t, store, "creator-5",
		now.Add(-5*time.Hour), now.Add(-4*time.Hour), now.Add(-3*time.Hour),
		now.Add(-2*time.Hour), now.Add(-time.Hour))
	err := limiter.Check(ctx, "creator-5", now)
	if !errors.Is(err, models.ErrRateLimitExceeded) {
		t.Errorf("expected ErrRateLimitExceeded at 5 polls, got %v", err)
	}
}

func TestRateLimiterRollsOverAtMidnight(t *testing.T) {
	store := newMemStore()
	limiter := NewCreationRateLimiter(memPolls{store}, 5, time.UTC)
	ctx := context.Background()

	// Five polls on day D at 00:10, 01:00, 02:00, 03:00, 04:00
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	seedCreatedPolls(t, store, "creator-1",
		day.Add(10*time.Minute),
		day.Add(1*time.Hour),
		day.Add(2*time.Hour),
		day.Add(3*time.Hour),
		day.Add(4*time.Hour),
	)

	// A 6th request at 05:00 on day D is denied
	err := limiter.Check(ctx, "creator-1", day.Add(5*time.Hour))
	if !errors.Is(err, models.ErrRateLimitExceeded) {
		t.Errorf("expected deny on day D, got %v", err)
	}

	// A request at 00:01 on day D+1 is allowed
	if err := limiter.Check(ctx, "creator-1", day.AddDate(0, 0, 1).Add(time.Minute)); err != nil {
		t.Errorf("expected allow on day D+1, got %v", err)
	}
}

// TestRateLimiterUsesReferenceTimezone verifies that the day boundary is
// computed in the configured zone, not in the timestamp's own zone
func TestRateLimiterUsesReferenceTimezone(t *testing.T) {
	store := newMemStore()
	loc := time.FixedZone("UTC+5", 5*3600)
	limiter := NewCreationRateLimiter(memPolls{store}, 1, loc)
	ctx := context.Background()

	// 20:30 UTC is 01:30 the next day in UTC+5
	created := time.Date(2025, 6, 15, 20, 30, 0, 0, time.UTC)
	seedCreatedPolls(t, store, "creator-1", created)

	// 22:00 UTC the same day falls in the same UTC+5 calendar day: denied
	err := limiter.Check(ctx, "creator-1", time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC))
	if !errors.Is(err, models.ErrRateLimitExceeded) {
		t.Errorf("expected deny within same UTC+5 day, got %v", err)
	}

	// 18:00 UTC the same day is still the previous UTC+5 day: allowed
	if err := limiter.Check(ctx, "creator-1", time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)); err != nil {
		t.Errorf("expected allow in previous UTC+5 day, got %v", err)
	}
}
