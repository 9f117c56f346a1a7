package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common user validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 5 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// minPasswordLen matches the API-level validation rule so a password that
// passed request validation can never fail domain validation.
const minPasswordLen = 5

// User represents a registered user of the places application.
// PlaceIDs is the ordered list of places the user owns; it is kept
// consistent with the places table inside the same transaction that
// creates or deletes a place.
type User struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Password       string      `json:"-"` // Plaintext password, only set during signup
	HashedPassword string      `json:"-"` // Never expose the hash in JSON
	ImageKey       string      `json:"image"`
	PlaceIDs       []uuid.UUID `json:"places"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// NewUser creates a new User with the given name, email, password and
// profile image key. It generates a new UUID for the user ID and sets the
// creation/update timestamps. Returns an error if validation fails.
//
// NOTE: the plaintext password is carried only until it is hashed; the
// caller is responsible for hashing it before the user is stored.
func NewUser(name, email, password, imageKey string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  password,
		ImageKey:  imageKey,
		PlaceIDs:  []uuid.UUID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// During signup the plaintext password is validated; stored users carry
	// only the hash.
	if u.Password != "" {
		if len(u.Password) < minPasswordLen {
			return ErrPasswordTooShort
		}
		// bcrypt silently truncates beyond 72 bytes
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// OwnsPlace reports whether the given place ID is in the user's place list.
func (u *User) OwnsPlace(placeID uuid.UUID) bool {
	for _, id := range u.PlaceIDs {
		if id == placeID {
			return true
		}
	}
	return false
}

// validEmailFormat performs basic validation of email format: a single '@'
// with a dotted domain after it. Anything stricter belongs to the HTTP
// request validator.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}

	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
