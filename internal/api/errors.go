package api

import (
	"errors"
	"net/http"

	"github.com/placewise/places-api/internal/domain"
	"github.com/placewise/places-api/internal/service"
	"github.com/placewise/places-api/internal/service/auth"
	"github.com/placewise/places-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type, so handlers never leak internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Duplicate email is a semantic failure of the signup input, not a
	// resource conflict
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusUnprocessableEntity

	// Semantic validation errors
	case isDomainValidationError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the user-facing message for an error. These
// strings are part of the client contract; clients display them verbatim.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unknown error occurred."
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials, please try again."

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired."

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token."

	case errors.Is(err, service.ErrNotOwned):
		return "You are not allowed to modify this place."

	case errors.Is(err, store.ErrUserNotFound):
		return "Could not find user for provided id."

	case errors.Is(err, store.ErrPlaceNotFound):
		return "Could not find place for provided id."

	case errors.Is(err, store.ErrEmailExists):
		return "User already exists, please login instead."

	case isDomainValidationError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid inputs passed, please check your data."

	default:
		return "An unknown error occurred."
	}
}

// isDomainValidationError reports whether err is one of the domain's
// field-validation sentinels.
func isDomainValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrValidation,
		domain.ErrEmptyName,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyPassword,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
		domain.ErrEmptyTitle,
		domain.ErrDescriptionTooShort,
		domain.ErrEmptyAddress,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
