package service

import (
	"context"
	"testing"

	"darkroom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("StatsFoldOverCounters", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		photoRepo := new(MockPhotoRepository)
		svc := NewProfileService(userRepo, photoRepo)

		userRepo.On("GetByUsernameWithPhotos", mock.Anything, "shooter").Return(&models.User{
			ID: 1, Username: "shooter", FirstName: "Sam", Password: "hash",
			Bio: "Pushing HP5 since 2009", Email: "sam@example.com",
			Photos: []models.Photo{
				{ID: 1, Likes: 3, CommentsCount: 2},
				{ID: 2, Likes: 1, CommentsCount: 0},
				{ID: 3, Likes: 0, CommentsCount: 5},
			},
		}, nil)

		profile, err := svc.GetProfile(ctx, "shooter")
		require.NoError(t, err)
		assert.Equal(t, 3, profile.Stats.TotalPhotos)
		assert.Equal(t, 4, profile.Stats.TotalLikes)
		assert.Equal(t, 7, profile.Stats.TotalComments)
		assert.Equal(t, "shooter", profile.User.Username)
		assert.Equal(t, "Pushing HP5 since 2009", profile.User.Bio)
		assert.Equal(t, "sam@example.com", profile.User.Email)
		assert.Empty(t, profile.User.Photos, "photos ride in their own field")
		assert.Len(t, profile.Photos, 3)
	})

	t.Run("NoPhotos", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		photoRepo := new(MockPhotoRepository)
		svc := NewProfileService(userRepo, photoRepo)

		userRepo.On("GetByUsernameWithPhotos", mock.Anything, "fresh").Return(&models.User{
			ID: 2, Username: "fresh",
		}, nil)

		profile, err := svc.GetProfile(ctx, "fresh")
		require.NoError(t, err)
		assert.Zero(t, profile.Stats.TotalPhotos)
		assert.NotNil(t, profile.Photos)
		assert.Empty(t, profile.Photos)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		photoRepo := new(MockPhotoRepository)
		svc := NewProfileService(userRepo, photoRepo)

		userRepo.On("GetByUsernameWithPhotos", mock.Anything, "ghost").
			Return(nil, models.NewNotFoundError("User", "ghost"))

		_, err := svc.GetProfile(ctx, "ghost")
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, err.(*models.AppError).Code)
	})
}

func TestGetPhoto(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	photoRepo := new(MockPhotoRepository)
	svc := NewProfileService(userRepo, photoRepo)

	photoRepo.On("GetByID", mock.Anything, uint(10), uint(5)).
		Return(&models.Photo{ID: 10, IsLiked: true}, nil)

	photo, err := svc.GetPhoto(ctx, 10, 5)
	require.NoError(t, err)
	assert.True(t, photo.IsLiked)
}
