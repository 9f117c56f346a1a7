package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/placewise/places-api/internal/api/middleware"
	"github.com/placewise/places-api/internal/api/shared"
	"github.com/placewise/places-api/internal/redact"
	"github.com/placewise/places-api/internal/service"
)

// PlaceHandler handles place CRUD requests.
type PlaceHandler struct {
	placeService service.PlaceService
	images       ImageStore
	validator    *validator.Validate
}

// NewPlaceHandler creates a new PlaceHandler with the given dependencies.
func NewPlaceHandler(placeService service.PlaceService, images ImageStore) *PlaceHandler {
	return &PlaceHandler{
		placeService: placeService,
		images:       images,
		validator:    validator.New(),
	}
}

// Get handles GET /api/places/{placeId}.
func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	placeID, err := URLParamUUID(r, "placeId")
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Could not find place for provided id.")
		return
	}

	place, err := h.placeService.GetPlace(r.Context(), placeID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewPlaceResponse(place))
}

// ListByUser handles GET /api/places/user/{userId}. A user with no places
// gets an empty list, not a 404.
func (h *PlaceHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := URLParamUUID(r, "userId")
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Could not find user for provided id.")
		return
	}

	places, err := h.placeService.ListPlacesByOwner(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewPlaceListResponse(places))
}

// Create handles POST /api/places. The request is multipart: the place
// image file plus title, description and address fields. The caller's
// identity comes from the auth middleware, never from the body.
func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required.")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format.")
		return
	}

	req := CreatePlaceRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusUnprocessableEntity,
			"Invalid inputs passed, please check your data.")
		return
	}

	imageKey, err := saveUploadedImage(r.Context(), h.images, r)
	if err != nil {
		if errors.Is(err, ErrMissingImage) {
			RespondWithError(w, r, http.StatusUnprocessableEntity,
				"Invalid inputs passed, please check your data.")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Creating place failed, please try again.", err)
		return
	}

	place, err := h.placeService.CreatePlace(r.Context(), ownerID, service.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		ImageKey:    imageKey,
	})
	if err != nil {
		h.cleanupImage(r, imageKey)
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, NewPlaceResponse(place))
}

// Update handles PATCH /api/places/{placeId}.
func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required.")
		return
	}

	placeID, err := URLParamUUID(r, "placeId")
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Could not find place for provided id.")
		return
	}

	var req UpdatePlaceRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format.")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusUnprocessableEntity,
			"Invalid inputs passed, please check your data.")
		return
	}

	place, err := h.placeService.UpdatePlace(
		r.Context(), placeID, requesterID, req.Title, req.Description)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewPlaceResponse(place))
}

// Delete handles DELETE /api/places/{placeId}.
func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required.")
		return
	}

	placeID, err := URLParamUUID(r, "placeId")
	if err != nil {
		RespondWithError(w, r, http.StatusNotFound, "Could not find place for provided id.")
		return
	}

	if err := h.placeService.DeletePlace(r.Context(), placeID, requesterID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "Deleted place."})
}

// cleanupImage removes an image that was stored for a request that then
// failed. The request already has its error; this failure is only logged.
func (h *PlaceHandler) cleanupImage(r *http.Request, key string) {
	if err := h.images.Delete(r.Context(), key); err != nil {
		slog.Warn("failed to clean up uploaded image",
			slog.String("error", redact.Error(err)),
			slog.String("image_key", key),
			slog.String("path", r.URL.Path))
	}
}
