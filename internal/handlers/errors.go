package handlers

import (
	"errors"
	"net/http"

	"github.com/confessly-dev/confessly/internal/authz"
	"github.com/confessly-dev/confessly/internal/store"
)

// ErrorResponse maps a core error to the status and user-facing message both
// surfaces present. Messages never reveal whether an email is registered or
// who owns a confession.
func ErrorResponse(err error) (int, string) {
	var validationErr *store.ValidationError

	switch {
	case errors.Is(err, store.ErrDuplicateIdentity):
		return http.StatusBadRequest, "Username or email already exists"
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid email or password"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "Confession not found"
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden, "You are not authorized to modify this confession"
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "The " + validationErr.Field + " " + validationErr.Reason
	}

	return http.StatusInternalServerError, "Internal server error"
}
