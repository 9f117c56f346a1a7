package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/placewise/places-api/internal/domain"
)

// PlaceStore defines the interface for place data persistence.
type PlaceStore interface {
	// Create saves a new place to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, place *domain.Place) error

	// GetByID retrieves a place by its unique ID.
	// Returns ErrPlaceNotFound if the place does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error)

	// ListByOwner retrieves all places owned by the given user, newest
	// first. An owner with no places yields an empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Place, error)

	// Update persists changes to an existing place.
	// Returns ErrPlaceNotFound if the place does not exist.
	Update(ctx context.Context, place *domain.Place) error

	// Delete removes a place from the store by its ID.
	// Returns ErrPlaceNotFound if the place does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new PlaceStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) PlaceStore
}
