package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/placewise/places-api/internal/api/shared"
	"github.com/placewise/places-api/internal/redact"
	"github.com/placewise/places-api/internal/service"
)

// UserHandler handles user listing, signup and login requests.
type UserHandler struct {
	userService service.UserService
	images      ImageStore
	validator   *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService, images ImageStore) *UserHandler {
	return &UserHandler{
		userService: userService,
		images:      images,
		validator:   validator.New(),
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, NewUserListResponse(users))
}

// Signup handles POST /api/users/signup. The request is multipart: the
// profile image file plus name, email and password fields. If anything
// fails after the image was stored, the stored image is best-effort
// deleted before responding.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format.")
		return
	}

	req := SignupRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
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
			"Signing up failed, please try again later.", err)
		return
	}

	user, token, err := h.userService.Register(
		r.Context(), req.Name, req.Email, req.Password, imageKey)
	if err != nil {
		h.cleanupImage(r, imageKey)
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	})
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format.")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusUnprocessableEntity,
			"Invalid inputs passed, please check your data.")
		return
	}

	user, token, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	})
}

// cleanupImage removes an image that was stored for a request that then
// failed. The request already has its error; this failure is only logged.
func (h *UserHandler) cleanupImage(r *http.Request, key string) {
	if err := h.images.Delete(r.Context(), key); err != nil {
		slog.Warn("failed to clean up uploaded image",
			slog.String("error", redact.Error(err)),
			slog.String("image_key", key),
			slog.String("path", r.URL.Path))
	}
}
