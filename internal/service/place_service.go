package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/placewise/places-api/internal/domain"
	"github.com/placewise/places-api/internal/platform/logger"
	"github.com/placewise/places-api/internal/store"
)

// PlaceServiceError wraps errors from the place service with context.
type PlaceServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for PlaceServiceError.
func (e *PlaceServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("place service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("place service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PlaceServiceError) Unwrap() error {
	return e.Err
}

// NewPlaceServiceError creates a new PlaceServiceError.
func NewPlaceServiceError(operation, message string, err error) *PlaceServiceError {
	return &PlaceServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// ImageDeleter removes a stored image by its key. Deleting a key that no
// longer exists is not an error.
type ImageDeleter interface {
	Delete(ctx context.Context, key string) error
}

// CreatePlaceInput carries the caller-supplied fields for a new place.
type CreatePlaceInput struct {
	Title       string
	Description string
	Address     string
	ImageKey    string
}

// PlaceService provides place CRUD operations. Create and delete keep the
// place row and the owner's place list consistent inside one database
// transaction.
type PlaceService interface {
	// GetPlace retrieves a place by its ID.
	// Returns store.ErrPlaceNotFound if it does not exist.
	GetPlace(ctx context.Context, placeID uuid.UUID) (*domain.Place, error)

	// ListPlacesByOwner retrieves all places owned by the given user.
	// An owner with no places yields an empty slice.
	ListPlacesByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Place, error)

	// CreatePlace creates a place owned by ownerID and appends its ID to
	// the owner's place list, atomically.
	// Returns store.ErrUserNotFound if the owner does not exist.
	CreatePlace(ctx context.Context, ownerID uuid.UUID, in CreatePlaceInput) (*domain.Place, error)

	// UpdatePlace changes a place's title and description. Ownership is
	// checked before anything is written.
	// Returns ErrNotOwned if requesterID is not the owner.
	UpdatePlace(
		ctx context.Context,
		placeID, requesterID uuid.UUID,
		title, description string,
	) (*domain.Place, error)

	// DeletePlace removes a place and its entry in the owner's place list,
	// atomically, then best-effort-deletes the stored image.
	// Returns ErrNotOwned if requesterID is not the owner.
	DeletePlace(ctx context.Context, placeID, requesterID uuid.UUID) error
}

// placeServiceImpl implements the PlaceService interface.
type placeServiceImpl struct {
	placeStore store.PlaceStore
	userStore  store.UserStore
	images     ImageDeleter
	db         *sql.DB
	logger     *slog.Logger

	// runTx wraps store.RunInTransaction; injectable so unit tests can
	// exercise the workflows without a live database.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewPlaceService creates a new PlaceService.
// It returns an error if any of the required dependencies are nil.
func NewPlaceService(
	placeStore store.PlaceStore,
	userStore store.UserStore,
	images ImageDeleter,
	db *sql.DB,
	log *slog.Logger,
) (PlaceService, error) {
	if placeStore == nil {
		return nil, domain.NewValidationError("placeStore", "cannot be nil", domain.ErrValidation)
	}
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if images == nil {
		return nil, domain.NewValidationError("images", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &placeServiceImpl{
		placeStore: placeStore,
		userStore:  userStore,
		images:     images,
		db:         db,
		logger:     log.With(slog.String("component", "place_service")),
		runTx:      store.RunInTransaction,
	}, nil
}

// GetPlace implements PlaceService.GetPlace.
func (s *placeServiceImpl) GetPlace(ctx context.Context, placeID uuid.UUID) (*domain.Place, error) {
	place, err := s.placeStore.GetByID(ctx, placeID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewPlaceServiceError("get_place", "failed to load place", err)
	}
	return place, nil
}

// ListPlacesByOwner implements PlaceService.ListPlacesByOwner.
func (s *placeServiceImpl) ListPlacesByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Place, error) {
	places, err := s.placeStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewPlaceServiceError("list_places", "failed to list places", err)
	}
	return places, nil
}

// CreatePlace implements PlaceService.CreatePlace.
// The place row and the owner's place list entry are written in a single
// transaction: either both become visible or neither does.
func (s *placeServiceImpl) CreatePlace(
	ctx context.Context,
	ownerID uuid.UUID,
	in CreatePlaceInput,
) (*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The owner must exist before we start the transaction; a missing
	// owner is a 404, not a transaction failure.
	if _, err := s.userStore.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		return nil, NewPlaceServiceError("create_place", "failed to load owner", err)
	}

	place, err := domain.NewPlace(in.Title, in.Description, in.Address, in.ImageKey, ownerID)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txPlaces := s.placeStore.WithTx(tx)
		txUsers := s.userStore.WithTx(tx)

		if err := txPlaces.Create(ctx, place); err != nil {
			return NewPlaceServiceError("create_place", "failed to save place", err)
		}
		if err := txUsers.AddPlace(ctx, ownerID, place.ID); err != nil {
			return NewPlaceServiceError("create_place", "failed to update owner place list", err)
		}
		return nil
	})
	if err != nil {
		log.Error("create place transaction failed",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}

	log.Info("place created",
		slog.String("place_id", place.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return place, nil
}

// UpdatePlace implements PlaceService.UpdatePlace.
// Ownership is verified before the write. The observed behavior in earlier
// versions of this workflow applied the update first and checked the owner
// afterwards; that ordering could persist a non-owner's edit and is not
// reproduced here.
func (s *placeServiceImpl) UpdatePlace(
	ctx context.Context,
	placeID, requesterID uuid.UUID,
	title, description string,
) (*domain.Place, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	place, err := s.placeStore.GetByID(ctx, placeID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewPlaceServiceError("update_place", "failed to load place", err)
	}

	if place.OwnerID != requesterID {
		log.Warn("update rejected: requester does not own place",
			slog.String("place_id", placeID.String()),
			slog.String("requester_id", requesterID.String()))
		return nil, ErrNotOwned
	}

	place.ApplyUpdate(title, description)
	if err := place.Validate(); err != nil {
		return nil, err
	}

	if err := s.placeStore.Update(ctx, place); err != nil {
		log.Error("failed to update place",
			slog.String("error", err.Error()),
			slog.String("place_id", placeID.String()))
		return nil, NewPlaceServiceError("update_place", "failed to save place", err)
	}

	log.Info("place updated", slog.String("place_id", placeID.String()))
	return place, nil
}

// DeletePlace implements PlaceService.DeletePlace.
// The place row and the owner's place list entry are removed in a single
// transaction. Only after a successful commit is the stored image deleted;
// an image deletion failure is logged and never surfaced, since the
// database change already stands.
func (s *placeServiceImpl) DeletePlace(
	ctx context.Context,
	placeID, requesterID uuid.UUID,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	place, err := s.placeStore.GetByID(ctx, placeID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return NewPlaceServiceError("delete_place", "failed to load place", err)
	}

	if place.OwnerID != requesterID {
		log.Warn("delete rejected: requester does not own place",
			slog.String("place_id", placeID.String()),
			slog.String("requester_id", requesterID.String()))
		return ErrNotOwned
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txPlaces := s.placeStore.WithTx(tx)
		txUsers := s.userStore.WithTx(tx)

		// The list entry references the place row, so it must go first or
		// the place delete trips the foreign key.
		if err := txUsers.RemovePlace(ctx, place.OwnerID, placeID); err != nil {
			return NewPlaceServiceError("delete_place", "failed to update owner place list", err)
		}
		if err := txPlaces.Delete(ctx, placeID); err != nil {
			return NewPlaceServiceError("delete_place", "failed to delete place", err)
		}
		return nil
	})
	if err != nil {
		log.Error("delete place transaction failed",
			slog.String("error", err.Error()),
			slog.String("place_id", placeID.String()))
		return err
	}

	if place.ImageKey != "" {
		if err := s.images.Delete(ctx, place.ImageKey); err != nil {
			log.Warn("failed to delete place image after commit",
				slog.String("error", err.Error()),
				slog.String("place_id", placeID.String()),
				slog.String("image_key", place.ImageKey))
		}
	}

	log.Info("place deleted", slog.String("place_id", placeID.String()))
	return nil
}
