package models

import "time"

// User represents a registered participant
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Poll represents a question with a fixed set of options.
// ExpiresAt is optional: a poll with no expiry never closes.
// The active/closed state is always derived from ExpiresAt, never stored.
type Poll struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Option represents one selectable choice within a poll.
// VoteCount is a denormalized counter kept for fast listing/sorting;
// it is reconcilable to the number of vote rows for this option but
// is never used as the authoritative answer for a single poll's results.
type Option struct {
	ID        string `json:"id"`
	PollID    string `json:"poll_id"`
	Text      string `json:"text"`
	VoteCount int64  `json:"vote_count"`
}

// Vote binds one user to one option within one poll.
// At most one vote exists per (user, poll); votes are immutable once cast.
type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PollSummary is a poll row in a listing, with the fast-path total
// computed as the sum of denormalized option counters.
type PollSummary struct {
	Poll
	TotalVotes int64 `json:"total_votes"`
}

// OptionResult is one option's authoritative tally in a result snapshot.
type OptionResult struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	VoteCount int64  `json:"vote_count"`
}

// ResultSnapshot holds a poll's aggregated results, recounted from
// vote rows rather than read from the denormalized counters.
type ResultSnapshot struct {
	PollID     string         `json:"poll_id"`
	Title      string         `json:"title"`
	TotalVotes int64          `json:"total_votes"`
	Options    []OptionResult `json:"options"`
}
