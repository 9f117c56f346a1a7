package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placewise/places-api/internal/mocks"
	"github.com/placewise/places-api/internal/service/auth"
)

// protectedProbe records whether the wrapped handler ran and with which
// user ID.
type protectedProbe struct {
	called bool
	userID uuid.UUID
}

func (p *protectedProbe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.userID, _ = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["message"]
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	validJWT := mocks.NewMockJWTService()
	validJWT.ValidateTokenFn = func(ctx context.Context, token string) (*auth.Claims, error) {
		if token != "good-token" {
			return nil, auth.ErrInvalidToken
		}
		return &auth.Claims{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil
	}

	t.Run("valid token reaches the handler with the user ID", func(t *testing.T) {
		t.Parallel()
		probe := &protectedProbe{}
		mw := NewAuthMiddleware(validJWT)

		r := httptest.NewRequest(http.MethodPost, "/api/places", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		mw.Authenticate(probe.handler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, probe.called)
		assert.Equal(t, userID, probe.userID)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		t.Parallel()
		probe := &protectedProbe{}
		mw := NewAuthMiddleware(validJWT)

		r := httptest.NewRequest(http.MethodPost, "/api/places", nil)
		w := httptest.NewRecorder()

		mw.Authenticate(probe.handler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, probe.called)
		assert.Equal(t, "Authentication required.", errorMessage(t, w))
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		t.Parallel()
		probe := &protectedProbe{}
		mw := NewAuthMiddleware(validJWT)

		for _, header := range []string{"good-token", "Basic good-token", "Bearer"} {
			r := httptest.NewRequest(http.MethodPost, "/api/places", nil)
			r.Header.Set("Authorization", header)
			w := httptest.NewRecorder()

			mw.Authenticate(probe.handler()).ServeHTTP(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
			assert.False(t, probe.called)
		}
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		t.Parallel()
		probe := &protectedProbe{}
		mw := NewAuthMiddleware(validJWT)

		r := httptest.NewRequest(http.MethodDelete, "/api/places/123", nil)
		r.Header.Set("Authorization", "Bearer tampered-token")
		w := httptest.NewRecorder()

		mw.Authenticate(probe.handler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, probe.called)
		assert.Equal(t, "Invalid token.", errorMessage(t, w))
	})

	t.Run("expired token gets its own message", func(t *testing.T) {
		t.Parallel()
		jwt := mocks.NewMockJWTService()
		jwt.ValidateTokenFn = func(ctx context.Context, token string) (*auth.Claims, error) {
			return nil, auth.ErrExpiredToken
		}
		probe := &protectedProbe{}
		mw := NewAuthMiddleware(jwt)

		r := httptest.NewRequest(http.MethodPatch, "/api/places/123", nil)
		r.Header.Set("Authorization", "Bearer stale-token")
		w := httptest.NewRecorder()

		mw.Authenticate(probe.handler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token expired.", errorMessage(t, w))
	})

	t.Run("unexpected validation failure is a server error", func(t *testing.T) {
		t.Parallel()
		jwt := mocks.NewMockJWTService()
		jwt.ValidateTokenFn = func(ctx context.Context, token string) (*auth.Claims, error) {
			return nil, errors.New("keystore unavailable")
		}
		probe := &protectedProbe{}
		mw := NewAuthMiddleware(jwt)

		r := httptest.NewRequest(http.MethodPost, "/api/places", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		mw.Authenticate(probe.handler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, probe.called)
	})
}
