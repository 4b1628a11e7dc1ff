package server

import (
	"net/http"
	"testing"

	"darkroom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchUsersEndpoint(t *testing.T) {
	s, app, _ := newTestServer(t)
	signupTestUser(t, s, "danielle")
	signupTestUser(t, s, "daniel")
	_, token := signupTestUser(t, s, "seeker")

	t.Run("FindsByPrefix", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/search?q=dani", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Users []models.PublicUser `json:"users"`
		}
		decodeBody(t, resp, &body)
		assert.Len(t, body.Users, 2)
	})

	t.Run("QueryTooShort", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/search?q=d", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("NoMatches", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/search?q=zzzz", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Users []models.PublicUser `json:"users"`
		}
		decodeBody(t, resp, &body)
		assert.Empty(t, body.Users)
	})
}
