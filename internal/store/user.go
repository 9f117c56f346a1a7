package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/placewise/places-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password; plaintext never reaches the store.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, including the IDs of the
	// places they own.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users. Credential material (the password hash) is
	// populated; callers decide what to expose.
	List(ctx context.Context) ([]*domain.User, error)

	// AddPlace appends a place ID to the user's place list.
	// Returns ErrUserNotFound if the user does not exist.
	AddPlace(ctx context.Context, userID, placeID uuid.UUID) error

	// RemovePlace removes a place ID from the user's place list.
	// Removing an ID that is not present is a no-op.
	RemovePlace(ctx context.Context, userID, placeID uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
