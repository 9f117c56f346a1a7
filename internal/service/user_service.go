package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/placewise/places-api/internal/domain"
	"github.com/placewise/places-api/internal/platform/logger"
	"github.com/placewise/places-api/internal/service/auth"
	"github.com/placewise/places-api/internal/store"
)

// UserServiceError wraps errors from the user service with context.
type UserServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for UserServiceError.
func (e *UserServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("user service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("user service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *UserServiceError) Unwrap() error {
	return e.Err
}

// NewUserServiceError creates a new UserServiceError.
func NewUserServiceError(operation, message string, err error) *UserServiceError {
	return &UserServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// UserService provides signup, login and user listing operations.
type UserService interface {
	// Register creates a new user account. The plaintext password is
	// hashed before anything is persisted. Returns the created user and a
	// signed auth token.
	// Returns store.ErrEmailExists if the email is already registered.
	Register(ctx context.Context, name, email, password, imageKey string) (*domain.User, string, error)

	// Authenticate verifies the credentials and issues an auth token.
	// Unknown email and wrong password both yield ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, string, error)

	// ListUsers returns all registered users.
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore  store.UserStore
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	log *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, domain.NewValidationError("userStore", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if jwtService == nil {
		return nil, domain.NewValidationError("jwtService", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &userServiceImpl{
		userStore:  userStore,
		hasher:     hasher,
		verifier:   verifier,
		jwtService: jwtService,
		logger:     log.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register.
func (s *userServiceImpl) Register(
	ctx context.Context,
	name, email, password, imageKey string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, password, imageKey)
	if err != nil {
		return nil, "", err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, "", NewUserServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("signup rejected: email already registered",
				slog.String("email", email))
			return nil, "", err
		}
		log.Error("failed to persist user",
			slog.String("error", err.Error()),
			slog.String("email", email))
		return nil, "", NewUserServiceError("register", "failed to save user", err)
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		log.Error("failed to generate token after signup",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, "", NewUserServiceError("register", "failed to generate token", err)
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()))
	return user, token, nil
}

// Authenticate implements UserService.Authenticate.
func (s *userServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same error as a wrong password so callers cannot probe for
			// registered emails.
			return nil, "", ErrInvalidCredentials
		}
		log.Error("failed to look up user by email",
			slog.String("error", err.Error()))
		return nil, "", NewUserServiceError("authenticate", "failed to look up user", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		log.Error("failed to generate token after login",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, "", NewUserServiceError("authenticate", "failed to generate token", err)
	}

	log.Info("user authenticated",
		slog.String("user_id", user.ID.String()))
	return user, token, nil
}

// ListUsers implements UserService.ListUsers.
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	users, err := s.userStore.List(ctx)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, NewUserServiceError("list_users", "failed to list users", err)
	}

	return users, nil
}
