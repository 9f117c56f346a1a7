package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/placewise/places-api/internal/api"
	"github.com/placewise/places-api/internal/api/middleware"
	"github.com/placewise/places-api/internal/config"
	"github.com/placewise/places-api/internal/platform/blobstore"
	"github.com/placewise/places-api/internal/platform/postgres"
	"github.com/placewise/places-api/internal/service"
	"github.com/placewise/places-api/internal/service/auth"
)

// application holds the fully wired handler graph.
type application struct {
	router chi.Router
}

// buildApplication wires stores, services, handlers and routes.
func buildApplication(
	cfg *config.Config,
	db *sql.DB,
	images *blobstore.ImageStore,
	log *slog.Logger,
) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, log)
	placeStore := postgres.NewPostgresPlaceStore(db, log)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	hasher := auth.NewBcryptHasher()

	userService, err := service.NewUserService(userStore, hasher, hasher, jwtService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	placeService, err := service.NewPlaceService(placeStore, userStore, images, db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create place service: %w", err)
	}

	userHandler := api.NewUserHandler(userService, images)
	placeHandler := api.NewPlaceHandler(placeService, images)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	return &application{
		router: buildRouter(userHandler, placeHandler, authMiddleware),
	}, nil
}
