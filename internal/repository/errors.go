package repository

import (
	"fmt"

	"minitweet/internal/apperr"
	"minitweet/pkg/util"
)

// translate wraps store errors with the matching apperr kind so services
// and handlers can branch with errors.Is.
func translate(op string, err error) error {
	switch util.ClassifyDBError(err) {
	case util.DBErrNone:
		return nil
	case util.DBErrNotFound, util.DBErrForeignKey:
		return fmt.Errorf("%s: %w: %w", op, apperr.ErrNotFound, err)
	case util.DBErrUniqueViolation:
		return fmt.Errorf("%s: %w: %w", op, apperr.ErrConflict, err)
	case util.DBErrCheckViolation:
		return fmt.Errorf("%s: %w: %w", op, apperr.ErrValidation, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
