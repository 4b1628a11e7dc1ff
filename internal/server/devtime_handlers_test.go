package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevelopmentTimeEndpoint(t *testing.T) {
	_, app, _ := newTestServer(t)

	t.Run("KnownCombination", func(t *testing.T) {
		body := map[string]any{"film": "Tri-X 400", "developer": "HC-110", "iso": 400}
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/development-time", body, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var entry struct {
			Time     float64 `json:"time"`
			Dilution string  `json:"dilution"`
		}
		decodeBody(t, resp, &entry)
		assert.Greater(t, entry.Time, 0.0)
		assert.NotEmpty(t, entry.Dilution)
	})

	t.Run("UnknownFilm", func(t *testing.T) {
		body := map[string]any{"film": "Ektachrome", "developer": "HC-110", "iso": 400}
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/development-time", body, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownDeveloper", func(t *testing.T) {
		body := map[string]any{"film": "Tri-X 400", "developer": "Caffenol", "iso": 400}
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/development-time", body, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Uncharted", func(t *testing.T) {
		body := map[string]any{"film": "Tri-X 400", "developer": "HC-110", "iso": 25}
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/development-time", body, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
