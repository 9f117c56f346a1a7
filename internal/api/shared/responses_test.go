package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/places", nil)

	RespondWithJSON(w, r, http.StatusCreated, map[string]string{"title": "Empire State Building"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Empire State Building", body["title"])
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)

	RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials, please try again.")

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid credentials, please try again.", body["message"])
	// The body carries the message and nothing else.
	assert.Len(t, body, 1)
}

func TestRespondWithErrorAndLogHidesInternalError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/places/abc", nil)

	internal := errors.New("pq: connection refused at db.internal:5432")
	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Something went wrong.", internal)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db.internal")

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Something went wrong.", body["message"])
}
