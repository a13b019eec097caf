package services

import (
	"context"
	"time"

	"online-poll-backend/internal/models"
)

// Store interfaces are declared on the consumer side; the pgx-backed
// repositories satisfy them and tests substitute in-memory fakes.

// UserStore persists users
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// PollStore persists polls and their options
type PollStore interface {
	Create(ctx context.Context, poll *models.Poll, options []*models.Option) error
	GetByID(ctx context.Context, id string) (*models.Poll, error)
	GetOptions(ctx context.Context, pollID string) ([]*models.Option, error)
	List(ctx context.Context, f models.PollFilter) ([]*models.PollSummary, error)
	CountCreatedBetween(ctx context.Context, creatorID string, from, to time.Time) (int, error)
}

// VoteStore persists votes and maintains the option counters.
// Cast must be atomic: the vote insert and the counter increment either
// both commit or both roll back, and the (user, poll) uniqueness check is
// part of the same transactional unit.
type VoteStore interface {
	GetOption(ctx context.Context, id string) (*models.Option, error)
	Cast(ctx context.Context, vote *models.Vote) error
	OptionCounts(ctx context.Context, pollID string) ([]models.OptionResult, error)
	CountByPoll(ctx context.Context, pollID string) (int64, error)
	CounterDrift(ctx context.Context) ([]models.CounterDrift, error)
	SetOptionCount(ctx context.Context, optionID string, count int64) error
}
