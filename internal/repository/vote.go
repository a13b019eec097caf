package repository

import (
	"context"
	"fmt"

	"online-poll-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Name of the UNIQUE (user_id, poll_id) constraint on votes.
const voteUniqueConstraint = "votes_user_id_poll_id_key"

// VoteRepository handles database operations for votes and option counters
type VoteRepository struct {
	db *pgxpool.Pool
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{db: db}
}

// GetOption retrieves an option by ID
func (r *VoteRepository) GetOption(ctx context.Context, id string) (*models.Option, error) {
	query := `
		SELECT id, poll_id, text, vote_count
		FROM options
		WHERE id = $1
	`
	var opt models.Option
	err := r.db.QueryRow(ctx, query, id).Scan(&opt.ID, &opt.PollID, &opt.Text, &opt.VoteCount)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, models.ErrOptionNotFound
		}
		return nil, fmt.Errorf("failed to get option: %w", translateError(err))
	}
	return &opt, nil
}

// Cast records a vote and increments the chosen option's counter as one
// atomic unit. Uniqueness of (user, poll) is enforced by the votes table
// constraint inside the same transaction, not by a prior application-level
// check: of two concurrent casts for the same pair, exactly one commits and
// the other gets ErrDuplicateVote. The counter update is a relative
// adjustment so concurrent votes on the same option never lose increments.
// On any failure the transaction rolls back and no partial state remains.
func (r *VoteRepository) Cast(ctx context.Context, vote *models.Vote) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", translateError(err))
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO votes (id, poll_id, option_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vote.ID, vote.PollID, vote.OptionID, vote.UserID, vote.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, voteUniqueConstraint) {
			return models.ErrDuplicateVote
		}
		// Poll or option deleted between the precondition checks and here
		if isForeignKeyViolation(err, "votes_poll_id_fkey") {
			return models.ErrPollNotFound
		}
		if isForeignKeyViolation(err, "votes_option_id_fkey") {
			return models.ErrOptionNotFound
		}
		return fmt.Errorf("failed to insert vote: %w", translateError(err))
	}

	tag, err := tx.Exec(ctx, `
		UPDATE options SET vote_count = vote_count + 1
		WHERE id = $1 AND poll_id = $2
	`, vote.OptionID, vote.PollID)
	if err != nil {
		return fmt.Errorf("failed to increment vote count: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return models.ErrOptionNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit vote: %w", translateError(err))
	}
	return nil
}

// OptionCounts returns the authoritative tally for every option of a poll,
// counted directly from vote rows. The denormalized counters are
// deliberately ignored so results are immune to counter drift.
func (r *VoteRepository) OptionCounts(ctx context.Context, pollID string) ([]models.OptionResult, error) {
	query := `
		SELECT o.id, o.text, COUNT(v.id)
		FROM options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.text
		ORDER BY o.id
	`
	rows, err := r.db.Query(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count option votes: %w", translateError(err))
	}
	defer rows.Close()

	var results []models.OptionResult
	for rows.Next() {
		var res models.OptionResult
		if err := rows.Scan(&res.ID, &res.Text, &res.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan option count: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating option counts: %w", err)
	}
	return results, nil
}

// CountByPoll counts vote rows for a poll
func (r *VoteRepository) CountByPoll(ctx context.Context, pollID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM votes WHERE poll_id = $1`, pollID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", translateError(err))
	}
	return count, nil
}

// CounterDrift finds options whose stored counter disagrees with the
// count of their vote rows.
func (r *VoteRepository) CounterDrift(ctx context.Context) ([]models.CounterDrift, error) {
	query := `
		SELECT o.id, o.vote_count, COUNT(v.id)
		FROM options o
		LEFT JOIN votes v ON v.option_id = o.id
		GROUP BY o.id, o.vote_count
		HAVING o.vote_count <> COUNT(v.id)
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find counter drift: %w", translateError(err))
	}
	defer rows.Close()

	var drift []models.CounterDrift
	for rows.Next() {
		var d models.CounterDrift
		if err := rows.Scan(&d.OptionID, &d.Stored, &d.Actual); err != nil {
			return nil, fmt.Errorf("failed to scan drift row: %w", err)
		}
		drift = append(drift, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drift rows: %w", err)
	}
	return drift, nil
}

// SetOptionCount overwrites an option's stored counter. Reserved for the
// reconciliation pass; every other counter mutation goes through the
// relative adjustment in Cast.
func (r *VoteRepository) SetOptionCount(ctx context.Context, optionID string, count int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE options SET vote_count = $1 WHERE id = $2`, count, optionID)
	if err != nil {
		return fmt.Errorf("failed to set vote count: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return models.ErrOptionNotFound
	}
	return nil
}
