package services

import (
	"time"

	"online-poll-backend/internal/models"
)

// PollIsActive reports whether a poll accepts votes at the given instant.
// A poll with no expiry is always active; otherwise it is active strictly
// before the expiry timestamp. "Closed" is always derived, never stored,
// so every caller must evaluate against the same injected clock.
func PollIsActive(poll *models.Poll, now time.Time) bool {
	if poll.ExpiresAt == nil {
		return true
	}
	return now.Before(*poll.ExpiresAt)
}
