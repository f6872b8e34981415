// Package apperr defines the error kinds surfaced by the API.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrAuth covers missing or invalid credentials and tokens.
	ErrAuth = errors.New("unauthorized")
	// ErrNotFound is returned when a referenced user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks a malformed or rejected request payload.
	ErrValidation = errors.New("invalid request")
	// ErrConflict marks a uniqueness violation such as a taken email.
	ErrConflict = errors.New("conflict")
)

// HTTPStatus maps err onto a response status. Unknown errors are 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
