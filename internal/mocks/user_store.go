package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/placewise/places-api/internal/domain"
	"github.com/placewise/places-api/internal/store"
)

// MockUserStore implements store.UserStore for testing.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, user *domain.User) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn  func(ctx context.Context, email string) (*domain.User, error)
	ListFn        func(ctx context.Context) ([]*domain.User, error)
	AddPlaceFn    func(ctx context.Context, userID, placeID uuid.UUID) error
	RemovePlaceFn func(ctx context.Context, userID, placeID uuid.UUID) error

	// Users holds the default in-memory state, keyed by email.
	Users map[string]*domain.User
}

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}

	m.Users[user.Email] = user
	return nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// List implements the UserStore interface.
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	users := make([]*domain.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	return users, nil
}

// AddPlace implements the UserStore interface.
func (m *MockUserStore) AddPlace(ctx context.Context, userID, placeID uuid.UUID) error {
	if m.AddPlaceFn != nil {
		return m.AddPlaceFn(ctx, userID, placeID)
	}

	for _, user := range m.Users {
		if user.ID == userID {
			user.PlaceIDs = append(user.PlaceIDs, placeID)
			return nil
		}
	}
	return store.ErrUserNotFound
}

// RemovePlace implements the UserStore interface.
func (m *MockUserStore) RemovePlace(ctx context.Context, userID, placeID uuid.UUID) error {
	if m.RemovePlaceFn != nil {
		return m.RemovePlaceFn(ctx, userID, placeID)
	}

	for _, user := range m.Users {
		if user.ID == userID {
			kept := user.PlaceIDs[:0]
			for _, id := range user.PlaceIDs {
				if id != placeID {
					kept = append(kept, id)
				}
			}
			user.PlaceIDs = kept
			return nil
		}
	}
	return store.ErrUserNotFound
}

// WithTx implements the UserStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
