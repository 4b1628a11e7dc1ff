package service

import (
	"context"
	"strings"

	"darkroom/internal/cache"
	"darkroom/internal/middleware"
	"darkroom/internal/models"
	"darkroom/internal/observability"
	"darkroom/internal/repository"
)

// EngagementService owns likes and comments and keeps the photo counters in
// step with the underlying rows.
type EngagementService struct {
	photoRepo   repository.PhotoRepository
	commentRepo repository.CommentRepository
}

func NewEngagementService(photoRepo repository.PhotoRepository, commentRepo repository.CommentRepository) *EngagementService {
	return &EngagementService{photoRepo: photoRepo, commentRepo: commentRepo}
}

// ToggleLike flips the caller's like on a photo and returns the resulting
// state together with the counter value observed in the same transaction.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, photoID uint) (*repository.LikeState, error) {
	state, err := s.photoRepo.ToggleLike(ctx, userID, photoID)
	if err != nil {
		return nil, err
	}

	if state.Liked {
		observability.LikeToggles.WithLabelValues("liked").Inc()
	} else {
		observability.LikeToggles.WithLabelValues("unliked").Inc()
	}
	cache.InvalidatePhoto(ctx, photoID)

	return state, nil
}

// AddComment attaches a comment to a photo and bumps its comment counter.
func (s *EngagementService) AddComment(ctx context.Context, userID, photoID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content cannot be empty")
	}
	const maxCommentLen = 1000
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}

	comment := &models.Comment{
		Content: content,
		UserID:  userID,
		PhotoID: photoID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.CommentMutations.WithLabelValues("create").Inc()
	cache.InvalidatePhoto(ctx, photoID)

	// Reload to pick up the author for the response payload.
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes a comment. The comment's author may delete it, and so
// may the owner of the photo it sits on; everyone else is refused.
func (s *EngagementService) DeleteComment(ctx context.Context, userID, photoID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.PhotoID != photoID {
		return models.NewNotFoundError("Comment", commentID)
	}

	if comment.UserID != userID {
		photo, err := s.photoRepo.GetByID(ctx, photoID, 0)
		if err != nil {
			return err
		}
		if photo.UserID != userID {
			return models.NewUnauthorizedError("You cannot delete this comment")
		}
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}
	observability.CommentMutations.WithLabelValues("delete").Inc()
	cache.InvalidatePhoto(ctx, photoID)
	return nil
}

// ListComments returns a photo's comments, newest first.
func (s *EngagementService) ListComments(ctx context.Context, photoID uint) ([]*models.Comment, error) {
	// Existence check so a missing photo is a 404, not an empty list.
	if _, err := s.photoRepo.GetByID(ctx, photoID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPhoto(ctx, photoID)
}

// DeletePhoto removes a photo the caller owns, along with its likes and
// comments. The remover is called after the database cascade succeeds so the
// stored object is only dropped once the rows are gone.
func (s *EngagementService) DeletePhoto(ctx context.Context, userID, photoID uint, remove func(ctx context.Context, url string) error) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID, 0)
	if err != nil {
		return err
	}
	if photo.UserID != userID {
		return models.NewUnauthorizedError("You cannot delete this photo")
	}

	if err := s.photoRepo.DeleteCascade(ctx, photoID); err != nil {
		return err
	}
	cache.InvalidatePhoto(ctx, photoID)

	if remove != nil {
		if err := remove(ctx, photo.URL); err != nil {
			// The rows are gone; an orphaned object is not worth a 500.
			middleware.Logger.WarnContext(ctx, "failed to remove stored object",
				"photo_id", photoID, "error", err)
		}
	}
	return nil
}
