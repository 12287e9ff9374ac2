// Package apperr defines the error taxonomy shared by the services and
// mapped to HTTP status codes at the handler boundary.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
)

// Error carries a user-facing message while still matching its sentinel
// through errors.Is.
type Error struct {
	sentinel error
	msg      string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.sentinel }

// WithMessage attaches a user-facing message to one of the sentinels.
func WithMessage(sentinel error, msg string) error {
	return &Error{sentinel: sentinel, msg: msg}
}

// Status maps a service error to its HTTP status code. Anything outside
// the taxonomy is an internal error.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
