package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/placewise/places-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID, email string) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Token is returned by the default GenerateToken implementation.
	Token string
}

// NewMockJWTService creates a new mock JWT service.
func NewMockJWTService() *MockJWTService {
	return &MockJWTService{Token: "test-token"}
}

// Ensure MockJWTService implements auth.JWTService interface
var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the JWTService interface.
func (m *MockJWTService) GenerateToken(
	ctx context.Context,
	userID uuid.UUID,
	email string,
) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID, email)
	}
	return m.Token, nil
}

// ValidateToken implements the JWTService interface.
func (m *MockJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if tokenString == "" {
		return nil, auth.ErrMissingToken
	}
	return &auth.Claims{
		UserID:    uuid.Nil,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}
