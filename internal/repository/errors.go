package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// IsDuplicate - signals that the error is a duplicate key violation.
func IsDuplicate(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsForeignKey - signals that the error is a foreign key violation.
func IsForeignKey(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

// IsCheckViolation - signals that a CHECK constraint rejected the row.
func IsCheckViolation(err error) bool {
	return hasCode(err, codeCheckViolation)
}

// IsNotFound - signals that the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func hasCode(err error, code string) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == code
}
