package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placewise/places-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()
		user, err := domain.NewUser("Ana", "a@x.com", "secret1", "uploads/images/ana.png")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "Ana", user.Name)
		assert.Equal(t, "a@x.com", user.Email)
		assert.Equal(t, "uploads/images/ana.png", user.ImageKey)
		assert.Empty(t, user.PlaceIDs)
		assert.False(t, user.CreatedAt.IsZero())
	})

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "empty name",
			userName: "  ",
			email:    "a@x.com",
			password: "secret1",
			wantErr:  domain.ErrEmptyName,
		},
		{
			name:     "empty email",
			userName: "Ana",
			email:    "",
			password: "secret1",
			wantErr:  domain.ErrEmptyEmail,
		},
		{
			name:     "email without domain",
			userName: "Ana",
			email:    "a@",
			password: "secret1",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "email without at sign",
			userName: "Ana",
			email:    "a.x.com",
			password: "secret1",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "four character password too short",
			userName: "Ana",
			email:    "a@x.com",
			password: "abcd",
			wantErr:  domain.ErrPasswordTooShort,
		},
		{
			name:     "five character password allowed",
			userName: "Ana",
			email:    "a@x.com",
			password: "abcde",
			wantErr:  nil,
		},
		{
			name:     "password over bcrypt limit",
			userName: "Ana",
			email:    "a@x.com",
			password: string(make([]byte, 73)),
			wantErr:  domain.ErrPasswordTooLong,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := domain.NewUser(tc.userName, tc.email, tc.password, "")
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("Ana", "a@x.com", "secret1", "")
	require.NoError(t, err)

	// A stored user carries only the hash.
	user.Password = ""
	user.HashedPassword = "$2a$12$somethinghashed"
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyPassword)
}

func TestUserOwnsPlace(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("Ana", "a@x.com", "secret1", "")
	require.NoError(t, err)

	placeID := uuid.New()
	assert.False(t, user.OwnsPlace(placeID))

	user.PlaceIDs = append(user.PlaceIDs, placeID)
	assert.True(t, user.OwnsPlace(placeID))
	assert.False(t, user.OwnsPlace(uuid.New()))
}
