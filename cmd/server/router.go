package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/placewise/places-api/internal/api"
	"github.com/placewise/places-api/internal/api/middleware"
)

// buildRouter assembles the route tree. Public routes are simply not
// wrapped by the auth middleware; the split is explicit here rather than
// decided inside the middleware.
func buildRouter(
	users *api.UserHandler,
	places *api.PlaceHandler,
	authMiddleware *middleware.AuthMiddleware,
) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/places", func(r chi.Router) {
			// Public reads
			r.Get("/{placeId}", places.Get)
			r.Get("/user/{userId}", places.ListByUser)

			// Authenticated writes
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
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
