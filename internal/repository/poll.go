package repository

import (
	"context"
	"fmt"
	"time"

	"online-poll-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PollRepository handles database operations for polls and their options
type PollRepository struct {
	db *pgxpool.Pool
}

// NewPollRepository creates a new poll repository
func NewPollRepository(db *pgxpool.Pool) *PollRepository {
	return &PollRepository{db: db}
}

// Create persists a poll together with its options as one unit.
// Options are fixed at creation time; there is no later addition or removal.
func (r *PollRepository) Create(ctx context.Context, poll *models.Poll, options []*models.Option) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO polls (id, title, description, created_by, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.Exec(ctx, query,
		poll.ID, poll.Title, poll.Description, poll.CreatedBy, poll.CreatedAt, poll.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create poll: %w", translateError(err))
	}

	for _, opt := range options {
		_, err = tx.Exec(ctx, `
			INSERT INTO options (id, poll_id, text, vote_count)
			VALUES ($1, $2, $3, 0)
		`, opt.ID, opt.PollID, opt.Text)
		if err != nil {
			return fmt.Errorf("failed to create option: %w", translateError(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit poll creation: %w", translateError(err))
	}
	return nil
}

// GetByID retrieves a poll by ID
func (r *PollRepository) GetByID(ctx context.Context, id string) (*models.Poll, error) {
	query := `
		SELECT id, title, description, created_by, created_at, expires_at
		FROM polls
		WHERE id = $1
	`
	var poll models.Poll
	err := r.db.QueryRow(ctx, query, id).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.CreatedBy, &poll.CreatedAt, &poll.ExpiresAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", translateError(err))
	}
	return &poll, nil
}

// GetOptions retrieves all options of a poll
func (r *PollRepository) GetOptions(ctx context.Context, pollID string) ([]*models.Option, error) {
	query := `
		SELECT id, poll_id, text, vote_count
		FROM options
		WHERE poll_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", translateError(err))
	}
	defer rows.Close()

	var options []*models.Option
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, &opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}

// List retrieves polls with their fast-path vote totals.
// Totals come from the denormalized option counters, which is what they
// exist for; precise per-poll results go through the aggregation queries.
func (r *PollRepository) List(ctx context.Context, f models.PollFilter) ([]*models.PollSummary, error) {
	query := `
		SELECT p.id, p.title, p.description, p.created_by, p.created_at, p.expires_at,
		       COALESCE(SUM(o.vote_count), 0) AS total_votes
		FROM polls p
		LEFT JOIN options o ON o.poll_id = p.id
	`
	args := []any{}
	if f.Active != nil {
		args = append(args, f.Now)
		if *f.Active {
			query += ` WHERE p.expires_at IS NULL OR p.expires_at > $1`
		} else {
			query += ` WHERE p.expires_at IS NOT NULL AND p.expires_at <= $1`
		}
	}
	query += ` GROUP BY p.id`

	if f.Sort == models.SortTop {
		query += ` ORDER BY total_votes DESC, p.created_at DESC`
	} else {
		query += ` ORDER BY p.created_at DESC`
	}

	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", translateError(err))
	}
	defer rows.Close()

	var polls []*models.PollSummary
	for rows.Next() {
		var p models.PollSummary
		err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.ExpiresAt,
			&p.TotalVotes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	return polls, nil
}

// CountCreatedBetween counts polls a creator opened within [from, to).
// Used by the creation rate limiter; the window is a calendar day in the
// configured reference timezone.
func (r *PollRepository) CountCreatedBetween(ctx context.Context, creatorID string, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM polls
		WHERE created_by = $1 AND created_at >= $2 AND created_at < $3
	`
	var count int
	err := r.db.QueryRow(ctx, query, creatorID, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count polls: %w", translateError(err))
	}
	return count, nil
}
