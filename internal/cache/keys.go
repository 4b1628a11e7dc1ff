package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	photoKeyPrefix   = "photo:%d"
	profileKeyPrefix = "profile:%s"
)

const (
	PhotoTTL   = 2 * time.Minute
	ProfileTTL = 1 * time.Minute
)

func PhotoKey(photoID uint) string {
	return fmt.Sprintf(photoKeyPrefix, photoID)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(profileKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePhoto drops the cached photo. The owner's cached profile also
// carries the photo's counters, but like and comment paths only know the photo
// id, so that entry is left to age out within ProfileTTL.
func InvalidatePhoto(ctx context.Context, photoID uint) {
	Invalidate(ctx, PhotoKey(photoID))
}

func InvalidateProfile(ctx context.Context, username string) {
	Invalidate(ctx, ProfileKey(username))
}
