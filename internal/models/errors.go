package models

import "errors"

// Sentinel errors shared between repositories, services and handlers.
// Repositories map store-level failures (constraint violations,
// serialization conflicts) onto these; handlers map them to HTTP codes.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("option not found")

	// ErrPollClosed means the poll's expiry timestamp has passed.
	ErrPollClosed = errors.New("poll is closed")

	// ErrDuplicateVote means a vote for this (user, poll) already exists.
	ErrDuplicateVote = errors.New("user has already voted on this poll")

	// ErrRateLimitExceeded means the creator hit the daily poll quota.
	ErrRateLimitExceeded = errors.New("daily poll creation limit reached")

	// ErrTransientConflict marks a store-level conflict (serialization
	// failure, deadlock) that is safe to retry from scratch.
	ErrTransientConflict = errors.New("transient store conflict")
)
