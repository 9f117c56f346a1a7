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

// PostgresUserStore implements the store.UserStore interface using a
// PostgreSQL database. The user's place list lives in the user_places
// relation and is loaded alongside the user row.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a new PostgresUserStore with the given
// database connection or transaction.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// WithTx implements store.UserStore.WithTx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.UserStore.Create.
// It returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := s.logger.With(slog.String("method", "Create"))

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if user.HashedPassword == "" {
		return fmt.Errorf("%w: user must carry a hashed password", store.ErrInvalidEntity)
	}

	query := `
		INSERT INTO users (id, name, email, hashed_password, image_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.HashedPassword,
		user.ImageKey,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.DebugContext(ctx, "email already registered",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		log.ErrorContext(ctx, "failed to insert user", slog.String("error", err.Error()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, name, email, hashed_password, image_key, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	if err := s.loadPlaceIDs(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, hashed_password, image_key, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	user, err := s.scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	if err := s.loadPlaceIDs(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List implements store.UserStore.List. Users come back newest first with
// their place lists populated.
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, name, email, hashed_password, image_key, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	users := []*domain.User{}
	byID := map[uuid.UUID]*domain.User{}
	for rows.Next() {
		user, err := s.scanUser(rows)
		if err != nil {
			return nil, MapError(err)
		}
		users = append(users, user)
		byID[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	if len(users) == 0 {
		return users, nil
	}

	// One pass over user_places instead of a query per user.
	listQuery := `
		SELECT user_id, place_id
		FROM user_places
		ORDER BY ordinal ASC
	`
	listRows, err := s.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = listRows.Close() }()

	for listRows.Next() {
		var userID, placeID uuid.UUID
		if err := listRows.Scan(&userID, &placeID); err != nil {
			return nil, MapError(err)
		}
		if user, ok := byID[userID]; ok {
			user.PlaceIDs = append(user.PlaceIDs, placeID)
		}
	}
	if err := listRows.Err(); err != nil {
		return nil, MapError(err)
	}

	return users, nil
}

// AddPlace implements store.UserStore.AddPlace. The ordinal column keeps
// the list in insertion order.
func (s *PostgresUserStore) AddPlace(ctx context.Context, userID, placeID uuid.UUID) error {
	query := `
		INSERT INTO user_places (user_id, place_id)
		VALUES ($1, $2)
	`

	_, err := s.db.ExecContext(ctx, query, userID, placeID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			// The FK on user_id trips when the user row is gone; the FK on
			// place_id cannot trip because the place is inserted in the same
			// transaction.
			return store.ErrUserNotFound
		}
		return MapError(err)
	}

	return nil
}

// RemovePlace implements store.UserStore.RemovePlace. Removing an absent
// entry is a no-op.
func (s *PostgresUserStore) RemovePlace(ctx context.Context, userID, placeID uuid.UUID) error {
	query := `
		DELETE FROM user_places
		WHERE user_id = $1 AND place_id = $2
	`

	if _, err := s.db.ExecContext(ctx, query, userID, placeID); err != nil {
		return MapError(err)
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanUser.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresUserStore) scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.HashedPassword,
		&user.ImageKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.PlaceIDs = []uuid.UUID{}
	return &user, nil
}

func (s *PostgresUserStore) loadPlaceIDs(ctx context.Context, user *domain.User) error {
	query := `
		SELECT place_id
		FROM user_places
		WHERE user_id = $1
		ORDER BY ordinal ASC
	`

	rows, err := s.db.QueryContext(ctx, query, user.ID)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var placeID uuid.UUID
		if err := rows.Scan(&placeID); err != nil {
			return MapError(err)
		}
		user.PlaceIDs = append(user.PlaceIDs, placeID)
	}
	return MapError(rows.Err())
}
