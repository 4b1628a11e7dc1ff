package repository

import (
	"context"
	"errors"

	"darkroom/internal/cache"
	"darkroom/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeState is the outcome of a like toggle: the new liked flag and the
// authoritative counter value read back inside the same transaction.
type LikeState struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// PhotoRepository defines persistence operations for photos and likes.
type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Photo, error)
	ListFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Photo, error)
	ToggleLike(ctx context.Context, userID, photoID uint) (*LikeState, error)
	IsLiked(ctx context.Context, userID, photoID uint) (bool, error)
	DeleteCascade(ctx context.Context, id uint) error
}

type photoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *models.Photo) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *photoRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Photo, error) {
	var photo models.Photo
	if err := r.db.WithContext(ctx).Preload("User").First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Photo", id)
		}
		return nil, models.NewInternalError(err)
	}

	if viewerID != 0 {
		liked, err := r.IsLiked(ctx, viewerID, id)
		if err != nil {
			return nil, err
		}
		photo.IsLiked = liked
	}
	return &photo, nil
}

func (r *photoRepository) ListFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Photo, error) {
	var photos []*models.Photo
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&photos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if viewerID != 0 && len(photos) > 0 {
		ids := make([]uint, 0, len(photos))
		for _, p := range photos {
			ids = append(ids, p.ID)
		}
		var likedIDs []uint
		if err := r.db.WithContext(ctx).
			Model(&models.Like{}).
			Where("user_id = ? AND photo_id IN ?", viewerID, ids).
			Pluck("photo_id", &likedIDs).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		liked := make(map[uint]bool, len(likedIDs))
		for _, id := range likedIDs {
			liked[id] = true
		}
		for _, p := range photos {
			p.IsLiked = liked[p.ID]
		}
	}
	return photos, nil
}

// ToggleLike atomically flips the like state for (userID, photoID) and keeps
// the denormalized photos.likes counter in step, all in one transaction.
//
// The unique (user_id, photo_id) index is the arbiter for concurrent toggles:
// the insert uses ON CONFLICT DO NOTHING, so exactly one of two racing likers
// observes RowsAffected == 1 and increments; the loser falls through to the
// delete branch. The decrement is clamped at zero to defend against drift.
func (r *photoRepository) ToggleLike(ctx context.Context, userID, photoID uint) (*LikeState, error) {
	state := &LikeState{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		if err := tx.Select("id").First(&photo, photoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Photo", photoID)
			}
			return err
		}

		like := models.Like{UserID: userID, PhotoID: photoID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "photo_id"}},
			DoNothing: true,
		}).Create(&like)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 1 {
			state.Liked = true
			if err := tx.Model(&models.Photo{}).
				Where("id = ?", photoID).
				UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
				return err
			}
		} else {
			del := tx.Where("user_id = ? AND photo_id = ?", userID, photoID).Delete(&models.Like{})
			if del.Error != nil {
				return del.Error
			}
			state.Liked = false
			if del.RowsAffected == 1 {
				if err := tx.Model(&models.Photo{}).
					Where("id = ?", photoID).
					UpdateColumn("likes", gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")).Error; err != nil {
					return err
				}
			}
		}

		// Read back the post-mutation counter so the response reflects the
		// committed state, not a client-side computation.
		return tx.Model(&models.Photo{}).
			Select("likes").
			Where("id = ?", photoID).
			Scan(&state.Likes).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}

	cache.InvalidatePhoto(ctx, photoID)
	return state, nil
}

func (r *photoRepository) IsLiked(ctx context.Context, userID, photoID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND photo_id = ?", userID, photoID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// DeleteCascade removes the photo together with its likes and comments.
func (r *photoRepository) DeleteCascade(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		if err := tx.Select("id").First(&photo, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Photo", id)
			}
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Photo{}, id).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}

	cache.InvalidatePhoto(ctx, id)
	return nil
}
