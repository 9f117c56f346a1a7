package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/placewise/places-api/internal/domain"
	"github.com/placewise/places-api/internal/store"
)

// PostgresPlaceStore implements the store.PlaceStore interface using a
// PostgreSQL database.
type PostgresPlaceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.PlaceStore = (*PostgresPlaceStore)(nil)

// NewPostgresPlaceStore creates a new PostgresPlaceStore with the given
// database connection or transaction.
func NewPostgresPlaceStore(db store.DBTX, logger *slog.Logger) *PostgresPlaceStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPlaceStore{
		db:     db,
		logger: logger.With(slog.String("component", "place_store")),
	}
}

// WithTx implements store.PlaceStore.WithTx.
func (s *PostgresPlaceStore) WithTx(tx *sql.Tx) store.PlaceStore {
	return &PostgresPlaceStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.PlaceStore.Create.
func (s *PostgresPlaceStore) Create(ctx context.Context, place *domain.Place) error {
	log := s.logger.With(slog.String("method", "Create"))

	if err := place.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO places
			(id, title, description, address, latitude, longitude, image_key,
			 owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		place.ID,
		place.Title,
		place.Description,
		place.Address,
		place.Latitude,
		place.Longitude,
		place.ImageKey,
		place.OwnerID,
		place.CreatedAt,
		place.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.DebugContext(ctx, "owner does not exist",
				slog.String("owner_id", place.OwnerID.String()))
			return fmt.Errorf("%w: owner does not exist", store.ErrInvalidEntity)
		}
		log.ErrorContext(ctx, "failed to insert place", slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.PlaceStore.GetByID.
func (s *PostgresPlaceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	query := `
		SELECT id, title, description, address, latitude, longitude, image_key,
		       owner_id, created_at, updated_at
		FROM places
		WHERE id = $1
	`

	place, err := scanPlace(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPlaceNotFound
		}
		return nil, MapError(err)
	}
	return place, nil
}

// ListByOwner implements store.PlaceStore.ListByOwner.
func (s *PostgresPlaceStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Place, error) {
	query := `
		SELECT id, title, description, address, latitude, longitude, image_key,
		       owner_id, created_at, updated_at
		FROM places
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	places := []*domain.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, MapError(err)
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return places, nil
}

// Update implements store.PlaceStore.Update. Only the mutable columns are
// written; identity and ownership never change after creation.
func (s *PostgresPlaceStore) Update(ctx context.Context, place *domain.Place) error {
	if err := place.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE places
		SET title = $2, description = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		place.ID,
		place.Title,
		place.Description,
		place.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrPlaceNotFound
	}

	return nil
}

// Delete implements store.PlaceStore.Delete.
func (s *PostgresPlaceStore) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM places WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrPlaceNotFound
	}

	return nil
}

func scanPlace(row rowScanner) (*domain.Place, error) {
	var place domain.Place
	err := row.Scan(
		&place.ID,
		&place.Title,
		&place.Description,
		&place.Address,
		&place.Latitude,
		&place.Longitude,
		&place.ImageKey,
		&place.OwnerID,
		&place.CreatedAt,
		&place.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &place, nil
}
