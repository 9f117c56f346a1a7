package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/placewise/places-api/internal/api/shared"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger uploads spill to temp files.
const maxMultipartMemory = 8 << 20

// imageFormField is the file field name used by both upload endpoints.
const imageFormField = "image"

// ErrMissingImage is returned when a multipart request has no image part.
var ErrMissingImage = errors.New("image file is required")

// ImageStore is the handler-side interface for image uploads. Save returns
// the storage key to persist on the created record; Delete is used to
// clean up the upload when the rest of the request fails.
type ImageStore interface {
	Save(ctx context.Context, r io.Reader, filename, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// RespondWithJSON is a convenience wrapper around shared.RespondWithJSON.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	shared.RespondWithJSON(w, r, status, data)
}

// RespondWithError is a convenience wrapper around shared.RespondWithError.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	shared.RespondWithError(w, r, status, message)
}

// RespondWithMappedError maps err to its status code and safe message and
// writes the response, logging the underlying error.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// URLParamUUID parses the named chi URL parameter as a UUID.
func URLParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// saveUploadedImage stores the request's image part under a fresh unique
// key and returns that key. The original filename only contributes its
// extension; the key itself is a generated UUID so uploads cannot collide
// or traverse paths.
func saveUploadedImage(ctx context.Context, images ImageStore, r *http.Request) (string, error) {
	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", ErrMissingImage
		}
		return "", fmt.Errorf("failed to read image part: %w", err)
	}
	defer func() { _ = file.Close() }()

	key, err := images.Save(ctx, file, uniqueImageName(header), imageContentType(header))
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return key, nil
}

func uniqueImageName(header *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	return uuid.New().String() + ext
}

func imageContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
