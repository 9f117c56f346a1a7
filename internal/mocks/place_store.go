package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/placewise/places-api/internal/domain"
	"github.com/placewise/places-api/internal/store"
)

// MockPlaceStore implements store.PlaceStore for testing.
type MockPlaceStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, place *domain.Place) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Place, error)
	ListByOwnerFn func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Place, error)
	UpdateFn      func(ctx context.Context, place *domain.Place) error
	DeleteFn      func(ctx context.Context, id uuid.UUID) error

	// Places holds the default in-memory state, keyed by place ID.
	Places map[uuid.UUID]*domain.Place
}

// NewMockPlaceStore creates a new mock store with initialized defaults.
func NewMockPlaceStore() *MockPlaceStore {
	return &MockPlaceStore{
		Places: make(map[uuid.UUID]*domain.Place),
	}
}

// Ensure MockPlaceStore implements store.PlaceStore interface
var _ store.PlaceStore = (*MockPlaceStore)(nil)

// Create implements the PlaceStore interface.
func (m *MockPlaceStore) Create(ctx context.Context, place *domain.Place) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, place)
	}

	m.Places[place.ID] = place
	return nil
}

// GetByID implements the PlaceStore interface.
func (m *MockPlaceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	place, exists := m.Places[id]
	if !exists {
		return nil, store.ErrPlaceNotFound
	}
	return place, nil
}

// ListByOwner implements the PlaceStore interface.
func (m *MockPlaceStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Place, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	places := make([]*domain.Place, 0)
	for _, place := range m.Places {
		if place.OwnerID == ownerID {
			places = append(places, place)
		}
	}
	sort.Slice(places, func(i, j int) bool {
		return places[i].CreatedAt.After(places[j].CreatedAt)
	})
	return places, nil
}

// Update implements the PlaceStore interface.
func (m *MockPlaceStore) Update(ctx context.Context, place *domain.Place) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, place)
	}

	if _, exists := m.Places[place.ID]; !exists {
		return store.ErrPlaceNotFound
	}
	m.Places[place.ID] = place
	return nil
}

// Delete implements the PlaceStore interface.
func (m *MockPlaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Places[id]; !exists {
		return store.ErrPlaceNotFound
	}
	delete(m.Places, id)
	return nil
}

// WithTx implements the PlaceStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockPlaceStore) WithTx(tx *sql.Tx) store.PlaceStore {
	return m
}
