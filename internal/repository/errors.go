package repository

import (
	"errors"

	"online-poll-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgSerializationFail   = "40001"
	pgDeadlockDetected    = "40P01"
)

// translateError maps PostgreSQL failures onto the shared sentinel errors.
// Serialization failures and deadlocks surface as ErrTransientConflict so
// callers can retry the whole operation from scratch.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgSerializationFail, pgDeadlockDetected:
		return models.ErrTransientConflict
	default:
		return err
	}
}

// isUniqueViolation reports whether err is a violation of the named
// unique constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
}

// isForeignKeyViolation reports whether err is a violation of the named
// foreign key constraint.
func isForeignKeyViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == constraint
}
