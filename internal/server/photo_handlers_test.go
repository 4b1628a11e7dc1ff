package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"darkroom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, filename, kind, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("title", "uploaded via test"))
	if kind != "" {
		require.NoError(t, w.WriteField("kind", kind))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/photos/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadPhotoEndpoint(t *testing.T) {
	s, app, db := newTestServer(t)
	user, token := signupTestUser(t, s, "uploader")

	t.Run("Success", func(t *testing.T) {
		resp, err := app.Test(multipartUpload(t, "roll1-frame7.jpg", "", token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var photo models.Photo
		decodeBody(t, resp, &photo)
		assert.Equal(t, "https://cdn.test/photos/roll1-frame7.jpg", photo.URL)
		assert.Equal(t, user.ID, photo.UserID)

		var stored models.Photo
		require.NoError(t, db.First(&stored, photo.ID).Error)
		assert.Equal(t, photo.URL, stored.URL)
	})

	t.Run("ProfileImage", func(t *testing.T) {
		resp, err := app.Test(multipartUpload(t, "portrait.png", "profile", token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.Equal(t, "https://cdn.test/photos/portrait.png", stored.ProfileImage)
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		resp, err := app.Test(multipartUpload(t, "notes.txt", "", token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		resp, err := app.Test(multipartUpload(t, "frame.jpg", "", "invalid"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestToggleLikeEndpoint(t *testing.T) {
	s, app, db := newTestServer(t)
	owner, _ := signupTestUser(t, s, "owner")
	_, token := signupTestUser(t, s, "liker")
	photo := createServerPhoto(t, db, owner)

	t.Run("LikeThenUnlike", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/photos/1/like", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var state struct {
			Liked bool `json:"liked"`
			Likes int  `json:"likes"`
		}
		decodeBody(t, resp, &state)
		assert.True(t, state.Liked)
		assert.Equal(t, 1, state.Likes)

		resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/photos/1/like", nil, token))
		require.NoError(t, err)
		decodeBody(t, resp, &state)
		assert.False(t, state.Liked)
		assert.Equal(t, 0, state.Likes)
	})

	t.Run("MissingPhoto", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/photos/999/like", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("BadID", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/photos/abc/like", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/photos/1/like", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		// Failed toggles leave the counter untouched.
		var stored models.Photo
		require.NoError(t, db.First(&stored, photo.ID).Error)
		assert.Equal(t, 0, stored.Likes)
	})
}

func TestGetPhotosEndpoint(t *testing.T) {
	s, app, db := newTestServer(t)
	owner, _ := signupTestUser(t, s, "owner")
	_, token := signupTestUser(t, s, "viewer")

	first := createServerPhoto(t, db, owner)
	second := createServerPhoto(t, db, owner)
	require.NoError(t, db.Model(first).UpdateColumn("created_at", "2024-01-01 10:00:00").Error)
	require.NoError(t, db.Model(second).UpdateColumn("created_at", "2024-06-01 10:00:00").Error)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/photos/2/like", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("AnonymousFeed", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/photos", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Photos []models.Photo `json:"photos"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Photos, 2)
		assert.Equal(t, second.ID, body.Photos[0].ID) // newest first
		assert.False(t, body.Photos[0].IsLiked)
	})

	t.Run("PersonalizedFeed", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/photos", nil, token))
		require.NoError(t, err)

		var body struct {
			Photos []models.Photo `json:"photos"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Photos, 2)
		assert.True(t, body.Photos[0].IsLiked)
		assert.False(t, body.Photos[1].IsLiked)
	})

	t.Run("SinglePhoto", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/photos/2", nil, token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var photo models.Photo
		decodeBody(t, resp, &photo)
		assert.True(t, photo.IsLiked)
		assert.Equal(t, owner.ID, photo.User.ID)
	})

	t.Run("MissingPhoto", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/photos/999", nil, ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeletePhotoEndpoint(t *testing.T) {
	s, app, db := newTestServer(t)
	owner, ownerToken := signupTestUser(t, s, "owner")
	_, strangerToken := signupTestUser(t, s, "stranger")
	photo := createServerPhoto(t, db, owner)

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/photos/1", nil, strangerToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Photo{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("OwnerDeletes", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/photos/1", nil, ownerToken))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var count int64
		require.NoError(t, db.Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&count).Error)
		assert.Zero(t, count)

		// The stored object was removed as well.
		store := s.store.(*stubStore)
		require.Len(t, store.deleted, 1)
		assert.Equal(t, photo.URL, store.deleted[0])
	})
}
