package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placewise/places-api/internal/domain"
)

func TestNewPlace(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("valid place", func(t *testing.T) {
		t.Parallel()
		place, err := domain.NewPlace(
			"Empire State Building",
			"One of the most famous sky scrapers in the world",
			"20 W 34th St, New York, NY 10001",
			"uploads/images/esb.png",
			ownerID,
		)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, place.ID)
		assert.Equal(t, ownerID, place.OwnerID)
		assert.Zero(t, place.Latitude)
		assert.Zero(t, place.Longitude)
		assert.False(t, place.CreatedAt.IsZero())
	})

	tests := []struct {
		name        string
		title       string
		description string
		address     string
		ownerID     uuid.UUID
		wantErr     error
	}{
		{
			name:        "empty title",
			title:       " ",
			description: "long enough description",
			address:     "somewhere",
			ownerID:     ownerID,
			wantErr:     domain.ErrEmptyTitle,
		},
		{
			name:        "short description",
			title:       "Title",
			description: "abcd",
			address:     "somewhere",
			ownerID:     ownerID,
			wantErr:     domain.ErrDescriptionTooShort,
		},
		{
			name:        "empty address",
			title:       "Title",
			description: "long enough description",
			address:     "",
			ownerID:     ownerID,
			wantErr:     domain.ErrEmptyAddress,
		},
		{
			name:        "missing owner",
			title:       "Title",
			description: "long enough description",
			address:     "somewhere",
			ownerID:     uuid.Nil,
			wantErr:     domain.ErrEmptyOwnerID,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := domain.NewPlace(tc.title, tc.description, tc.address, "", tc.ownerID)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestPlaceApplyUpdate(t *testing.T) {
	t.Parallel()

	place, err := domain.NewPlace(
		"Old title",
		"old description text",
		"10 Main St",
		"uploads/images/p.png",
		uuid.New(),
	)
	require.NoError(t, err)

	before := place.UpdatedAt
	place.ApplyUpdate("New title", "new description text")

	assert.Equal(t, "New title", place.Title)
	assert.Equal(t, "new description text", place.Description)
	assert.Equal(t, "10 Main St", place.Address)
	assert.False(t, place.UpdatedAt.Before(before))
}
