package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories react to.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == UniqueViolation && pgErr.ConstraintName == constraintName
}

// IsDuplicateKeyError reports any unique violation regardless of constraint.
func IsDuplicateKeyError(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == UniqueViolation
}

// IsForeignKeyError reports a foreign key violation, e.g. a career or
// organization id that does not exist.
func IsForeignKeyError(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == ForeignKeyViolation
}

// IsCheckConstraintError checks for a violated CHECK constraint by name.
func IsCheckConstraintError(err error, constraintName string) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == CheckViolation && pgErr.ConstraintName == constraintName
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
