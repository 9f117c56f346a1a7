package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/placewise/places-api/internal/api/shared"
	"github.com/placewise/places-api/internal/domain"
	"github.com/placewise/places-api/internal/service"
)

// stubUserService implements service.UserService with function fields.
type stubUserService struct {
	RegisterFn     func(ctx context.Context, name, email, password, imageKey string) (*domain.User, string, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*domain.User, string, error)
	ListUsersFn    func(ctx context.Context) ([]*domain.User, error)
}

var _ service.UserService = (*stubUserService)(nil)

func (s *stubUserService) Register(
	ctx context.Context,
	name, email, password, imageKey string,
) (*domain.User, string, error) {
	return s.RegisterFn(ctx, name, email, password, imageKey)
}

func (s *stubUserService) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, string, error) {
	return s.AuthenticateFn(ctx, email, password)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.ListUsersFn(ctx)
}

// stubPlaceService implements service.PlaceService with function fields.
type stubPlaceService struct {
	GetPlaceFn          func(ctx context.Context, placeID uuid.UUID) (*domain.Place, error)
	ListPlacesByOwnerFn func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Place, error)
	CreatePlaceFn       func(ctx context.Context, ownerID uuid.UUID, in service.CreatePlaceInput) (*domain.Place, error)
	UpdatePlaceFn       func(ctx context.Context, placeID, requesterID uuid.UUID, title, description string) (*domain.Place, error)
	DeletePlaceFn       func(ctx context.Context, placeID, requesterID uuid.UUID) error
}

var _ service.PlaceService = (*stubPlaceService)(nil)

func (s *stubPlaceService) GetPlace(
	ctx context.Context,
	placeID uuid.UUID,
) (*domain.Place, error) {
	return s.GetPlaceFn(ctx, placeID)
}

func (s *stubPlaceService) ListPlacesByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Place, error) {
	return s.ListPlacesByOwnerFn(ctx, ownerID)
}

func (s *stubPlaceService) CreatePlace(
	ctx context.Context,
	ownerID uuid.UUID,
	in service.CreatePlaceInput,
) (*domain.Place, error) {
	return s.CreatePlaceFn(ctx, ownerID, in)
}

func (s *stubPlaceService) UpdatePlace(
	ctx context.Context,
	placeID, requesterID uuid.UUID,
	title, description string,
) (*domain.Place, error) {
	return s.UpdatePlaceFn(ctx, placeID, requesterID, title, description)
}

func (s *stubPlaceService) DeletePlace(ctx context.Context, placeID, requesterID uuid.UUID) error {
	return s.DeletePlaceFn(ctx, placeID, requesterID)
}

// fakeAuth injects a fixed user ID into the request context, standing in
// for the JWT middleware in handler tests.
func fakeAuth(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// newTestRouter mounts the handlers on the production route layout, with
// fakeAuth replacing the JWT middleware on the protected routes.
func newTestRouter(users *UserHandler, places *PlaceHandler, authedUser uuid.UUID) chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/places", func(r chi.Router) {
			r.Get("/{placeId}", places.Get)
			r.Get("/user/{userId}", places.ListByUser)
			r.Group(func(r chi.Router) {
				r.Use(fakeAuth(authedUser))
				r.Post("/", places.Create)
				r.Patch("/{placeId}", places.Update)
				r.Delete("/{placeId}", places.Delete)
			})
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", users.List)
			r.Post("/signup", users.Signup)
			r.Post("/login", users.Login)
		})
	})
	return r
}

// multipartBody builds a multipart form with the given fields and, when
// imageName is non-empty, an image file part.
func multipartBody(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if imageName != "" {
		part, err := mw.CreateFormFile(imageFormField, imageName)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader([]byte("fake image bytes")))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Ana", "ana@example.com", "secret1", "uploads/images/ana.png")
	require.NoError(t, err)
	user.Password = ""
	user.HashedPassword = "$2a$12$hash"
	return user
}

func testPlace(t *testing.T, ownerID uuid.UUID) *domain.Place {
	t.Helper()
	place, err := domain.NewPlace(
		"Empire State Building",
		"Famous sky scraper",
		"20 W 34th St, New York",
		"uploads/images/esb.png",
		ownerID,
	)
	require.NoError(t, err)
	return place
}
