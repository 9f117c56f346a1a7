package api

import (
	"github.com/google/uuid"

	"github.com/placewise/places-api/internal/domain"
)

// SignupRequest holds the form fields of the multipart signup request.
// The profile image arrives as the "image" file part alongside these.
type SignupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=72"`
}

// LoginRequest is the JSON body of the login request.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned from signup and login.
type AuthResponse struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

// CreatePlaceRequest holds the form fields of the multipart create-place
// request. The place image arrives as the "image" file part.
type CreatePlaceRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
	Address     string `json:"address"     validate:"required"`
}

// UpdatePlaceRequest is the JSON body of the update-place request. Only
// title and description may change after creation.
type UpdatePlaceRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required,min=5"`
}

// UserResponse is the public representation of a user. Credential material
// never appears here.
type UserResponse struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	ImageKey string      `json:"image"`
	PlaceIDs []uuid.UUID `json:"places"`
}

// NewUserResponse converts a domain user to its API representation.
func NewUserResponse(user *domain.User) UserResponse {
	placeIDs := user.PlaceIDs
	if placeIDs == nil {
		placeIDs = []uuid.UUID{}
	}
	return UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		ImageKey: user.ImageKey,
		PlaceIDs: placeIDs,
	}
}

// NewUserListResponse converts a list of domain users.
func NewUserListResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, NewUserResponse(user))
	}
	return out
}

// Location is the coordinate pair attached to a place.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceResponse is the public representation of a place.
type PlaceResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Location    Location  `json:"location"`
	ImageKey    string    `json:"image"`
	CreatorID   uuid.UUID `json:"creator"`
}

// NewPlaceResponse converts a domain place to its API representation.
func NewPlaceResponse(place *domain.Place) PlaceResponse {
	return PlaceResponse{
		ID:          place.ID,
		Title:       place.Title,
		Description: place.Description,
		Address:     place.Address,
		Location: Location{
			Lat: place.Latitude,
			Lng: place.Longitude,
		},
		ImageKey: place.ImageKey,
		CreatorID: place.OwnerID,
	}
}

// NewPlaceListResponse converts a list of domain places.
func NewPlaceListResponse(places []*domain.Place) []PlaceResponse {
	out := make([]PlaceResponse, 0, len(places))
	for _, place := range places {
		out = append(out, NewPlaceResponse(place))
	}
	return out
}
