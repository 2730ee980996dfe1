package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error code for unique_violation.
const uniqueViolationCode = "23505"

// UniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation and, if so, returns the violated constraint name so callers can
// map it to a domain error.
func UniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}
