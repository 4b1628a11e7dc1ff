package service

import (
	"context"

	"darkroom/internal/cache"
	"darkroom/internal/models"
	"darkroom/internal/repository"
)

// ProfileService assembles read-side views: profile pages and single photos.
type ProfileService struct {
	userRepo  repository.UserRepository
	photoRepo repository.PhotoRepository
}

// ProfileStats summarizes a user's footprint, folded over the per-photo
// counters rather than recounted from the likes and comments tables.
type ProfileStats struct {
	TotalPhotos   int `json:"totalPhotos"`
	TotalLikes    int `json:"totalLikes"`
	TotalComments int `json:"totalComments"`
}

// Profile is the profile page payload. User carries the full record minus the
// password (excluded by its json tag); photos ride in their own field.
type Profile struct {
	User   models.User    `json:"user"`
	Photos []models.Photo `json:"photos"`
	Stats  ProfileStats   `json:"stats"`
}

func NewProfileService(userRepo repository.UserRepository, photoRepo repository.PhotoRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo, photoRepo: photoRepo}
}

// GetProfile returns a user's public profile with their photos newest-first
// and aggregate stats. Served through the cache; invalidated on mutation.
func (s *ProfileService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	var profile Profile
	err := cache.Aside(ctx, cache.ProfileKey(username), &profile, cache.ProfileTTL, func() error {
		user, err := s.userRepo.GetByUsernameWithPhotos(ctx, username)
		if err != nil {
			return err
		}

		stats := ProfileStats{TotalPhotos: len(user.Photos)}
		for i := range user.Photos {
			stats.TotalLikes += user.Photos[i].Likes
			stats.TotalComments += user.Photos[i].CommentsCount
		}

		photos := user.Photos
		if photos == nil {
			photos = []models.Photo{}
		}
		owner := *user
		owner.Photos = nil
		profile = Profile{
			User:   owner,
			Photos: photos,
			Stats:  stats,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetPhoto returns a single photo with isLiked resolved for the viewer.
// viewerID zero means anonymous. Only the anonymous read is cached: the
// personalized isLiked flag cannot share a cache entry across viewers.
func (s *ProfileService) GetPhoto(ctx context.Context, photoID, viewerID uint) (*models.Photo, error) {
	if viewerID != 0 {
		return s.photoRepo.GetByID(ctx, photoID, viewerID)
	}

	var photo models.Photo
	err := cache.Aside(ctx, cache.PhotoKey(photoID), &photo, cache.PhotoTTL, func() error {
		p, err := s.photoRepo.GetByID(ctx, photoID, 0)
		if err != nil {
			return err
		}
		photo = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetFeed returns the global photo feed, newest first.
func (s *ProfileService) GetFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Photo, error) {
	return s.photoRepo.ListFeed(ctx, viewerID, limit, offset)
}
