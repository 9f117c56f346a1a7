package mocks

import (
	"context"
	"io"
)

// MockImageStore implements the image save/delete interfaces used by the
// API handlers and the place service.
type MockImageStore struct {
	SaveFn   func(ctx context.Context, r io.Reader, filename, contentType string) (string, error)
	DeleteFn func(ctx context.Context, key string) error

	// Saved records keys returned from Save; Deleted records keys passed
	// to Delete.
	Saved   []string
	Deleted []string
}

// NewMockImageStore creates a new mock image store.
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{}
}

// Save implements the handler-side image saving interface.
func (m *MockImageStore) Save(
	ctx context.Context,
	r io.Reader,
	filename, contentType string,
) (string, error) {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r, filename, contentType)
	}

	key := "uploads/images/" + filename
	m.Saved = append(m.Saved, key)
	return key, nil
}

// Delete implements service.ImageDeleter.
func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}

	m.Deleted = append(m.Deleted, key)
	return nil
}
