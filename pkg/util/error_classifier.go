package util

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store error kinds returned by ClassifyDBError.
const (
	DBErrNone             = ""
	DBErrNotFound         = "not_found"
	DBErrUniqueViolation  = "unique_violation"
	DBErrForeignKey       = "foreign_key_violation"
	DBErrCheckViolation   = "check_violation"
	DBErrTimeout          = "timeout"
	DBErrCanceled         = "context_canceled"
	DBErrUnknown          = "unknown_error"
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// ClassifyDBError maps a pgx error onto a coarse kind.
func ClassifyDBError(err error) string {
	if err == nil {
		return DBErrNone
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return DBErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			// 唯一约束冲突
			return DBErrUniqueViolation
		case pgForeignKeyViolation:
			return DBErrForeignKey
		case pgCheckViolation, pgNotNullViolation:
			return DBErrCheckViolation
		}
		return DBErrUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return DBErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return DBErrCanceled
	}

	return DBErrUnknown
}
