package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/placewise/places-api/internal/domain"
	"github.com/placewise/places-api/internal/service"
	"github.com/placewise/places-api/internal/service/auth"
	"github.com/placewise/places-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"place not found", store.ErrPlaceNotFound, http.StatusNotFound},
		{"duplicate email", store.ErrEmailExists, http.StatusUnprocessableEntity},
		{"domain validation", domain.ErrDescriptionTooShort, http.StatusUnprocessableEntity},
		{"invalid entity", store.ErrInvalidEntity, http.StatusUnprocessableEntity},
		{"transaction failure", store.ErrTransactionFailed, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{
			"wrapped sentinel",
			fmt.Errorf("delete place: %w", store.ErrPlaceNotFound),
			http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"invalid credentials",
			service.ErrInvalidCredentials,
			"Invalid credentials, please try again.",
		},
		{
			"duplicate email",
			store.ErrEmailExists,
			"User already exists, please login instead.",
		},
		{"place not found", store.ErrPlaceNotFound, "Could not find place for provided id."},
		{"user not found", store.ErrUserNotFound, "Could not find user for provided id."},
		{"not owned", service.ErrNotOwned, "You are not allowed to modify this place."},
		{
			"domain validation",
			domain.ErrEmptyTitle,
			"Invalid inputs passed, please check your data.",
		},
		{"nil error", nil, "An unknown error occurred."},
		{
			"internal detail never leaks",
			errors.New("pq: duplicate key value violates users_email_key"),
			"An unknown error occurred.",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}
