package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"darkroom/internal/auth"
	"darkroom/internal/config"
	"darkroom/internal/middleware"
	"darkroom/internal/models"
	"darkroom/internal/repository"
	"darkroom/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubStore is an in-memory storage.Store for handler tests.
type stubStore struct {
	uploaded []string
	deleted  []string
	fail     bool
}

func (s *stubStore) Upload(_ context.Context, _ io.Reader, filename, _ string) (string, error) {
	if s.fail {
		return "", io.ErrUnexpectedEOF
	}
	url := "https://cdn.test/photos/" + filename
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *stubStore) Delete(_ context.Context, objectURL string) error {
	s.deleted = append(s.deleted, objectURL)
	return nil
}

func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Photo{}, &models.Like{}, &models.Comment{},
	))

	cfg := &config.Config{
		JWTSecret: "test_secret_long_enough_for_hmac_use",
		Env:       "test",
	}
	middleware.InitMiddleware(cfg)

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		tokens:      tokens,
		store:       &stubStore{},
		userRepo:    userRepo,
		photoRepo:   photoRepo,
		commentRepo: commentRepo,
	}
	s.userService = service.NewUserService(userRepo)
	s.engagementService = service.NewEngagementService(photoRepo, commentRepo)
	s.profileService = service.NewProfileService(userRepo, photoRepo)

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db
}

// signupTestUser creates an account through the service layer and returns the
// user together with a valid bearer token.
func signupTestUser(t *testing.T, s *Server, username string) (*models.User, string) {
	t.Helper()

	user, err := s.userService.CreateAccount(context.Background(), service.CreateAccountInput{
		FirstName:   "Test",
		LastName:    "User",
		Email:       username + "@example.com",
		DateOfBirth: "1990-04-01",
		Password:    "password123",
		Username:    username,
	})
	require.NoError(t, err)

	token, err := s.tokens.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func createServerPhoto(t *testing.T, db *gorm.DB, owner *models.User) *models.Photo {
	t.Helper()
	photo := &models.Photo{
		URL:    "https://cdn.test/photos/seeded.jpg",
		Title:  "seeded",
		UserID: owner.ID,
	}
	require.NoError(t, db.Create(photo).Error)
	return photo
}

func jsonRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
