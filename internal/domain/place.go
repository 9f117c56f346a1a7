package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common place validation errors
var (
	ErrEmptyPlaceID        = errors.New("place ID cannot be empty")
	ErrEmptyTitle          = errors.New("title cannot be empty")
	ErrDescriptionTooShort = errors.New("description must be at least 5 characters long")
	ErrEmptyAddress        = errors.New("address cannot be empty")
	ErrEmptyOwnerID        = errors.New("owner ID cannot be empty")
)

// minDescriptionLen matches the API-level validation rule so a place that
// passed request validation can never fail domain validation on the same
// field.
const minDescriptionLen = 5

// Place represents a shared place listing. Every place has exactly one
// owner; the owner's PlaceIDs list and the place row are updated together
// inside a single transaction.
type Place struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	// Latitude/Longitude are populated when the address has been geocoded.
	// Zero values mean "not resolved"; this core never geocodes itself.
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	ImageKey  string    `json:"image"`
	OwnerID   uuid.UUID `json:"creator"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlace creates a new Place owned by ownerID. It generates a new UUID
// for the place ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewPlace(title, description, address, imageKey string, ownerID uuid.UUID) (*Place, error) {
	now := time.Now().UTC()
	place := &Place{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Address:     address,
		ImageKey:    imageKey,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := place.Validate(); err != nil {
		return nil, err
	}

	return place, nil
}

// Validate checks if the Place has valid data.
// Returns an error if any field fails validation.
func (p *Place) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPlaceID
	}

	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}

	if len(p.Description) < minDescriptionLen {
		return ErrDescriptionTooShort
	}

	if strings.TrimSpace(p.Address) == "" {
		return ErrEmptyAddress
	}

	if p.OwnerID == uuid.Nil {
		return ErrEmptyOwnerID
	}

	return nil
}

// ApplyUpdate sets the mutable fields of the place and bumps the update
// timestamp. Only title and description may change after creation.
func (p *Place) ApplyUpdate(title, description string) {
	p.Title = title
	p.Description = description
	p.UpdatedAt = time.Now().UTC()
}
