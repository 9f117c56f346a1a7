package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/placewise/places-api/internal/domain"
	"github.com/placewise/places-api/internal/mocks"
)

func seedUser(t *testing.T, userStore *mocks.MockUserStore) *domain.User {
	t.Helper()

	user, err := domain.NewUser("Ben", "ben@example.com", "secret2", "")
	require.NoError(t, err)
	user.Password = ""
	user.HashedPassword = "$2a$12$hash"
	userStore.Users[user.Email] = user
	return user
}

func seedPlace(t *testing.T, placeStore *mocks.MockPlaceStore, ownerID uuid.UUID) *domain.Place {
	t.Helper()

	place, err := domain.NewPlace(
		"Empire State Building",
		"Famous sky scraper",
		"20 W 34th St, New York",
		"uploads/images/esb.png",
		ownerID,
	)
	require.NoError(t, err)
	placeStore.Places[place.ID] = place
	return place
}
