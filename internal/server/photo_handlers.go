package server

import (
	"path/filepath"
	"strings"

	"darkroom/internal/cache"
	"darkroom/internal/models"

	"github.com/gofiber/fiber/v2"
)

// allowedPhotoTypes maps accepted upload extensions to their content type.
var allowedPhotoTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// GetPhotos handles GET /api/photos: the global feed, newest first.
func (s *Server) GetPhotos(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	photos, err := s.profileService.GetFeed(c.Context(), viewerID(c), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"photos": photos,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// GetPhoto handles GET /api/photos/:id
func (s *Server) GetPhoto(c *fiber.Ctx) error {
	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	photo, err := s.profileService.GetPhoto(c.Context(), photoID, viewerID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(photo)
}

// UploadPhoto handles POST /api/photos/upload. The multipart "file" field is
// streamed to object storage; "kind" selects between a feed photo (default)
// and replacing the caller's profile image.
func (s *Server) UploadPhoto(c *fiber.Ctx) error {
	userID := principal(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A file is required"))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedPhotoTypes[ext]
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unsupported file type (jpg, png or webp)"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	defer file.Close()

	url, err := s.store.Upload(c.Context(), file, fileHeader.Filename, contentType)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	if c.FormValue("kind") == "profile" {
		user, err := s.userService.UpdateProfileImage(c.Context(), userID, url)
		if err != nil {
			return respondError(c, err)
		}
		cache.InvalidateProfile(c.Context(), user.Username)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
	}

	photo := &models.Photo{
		URL:    url,
		Title:  c.FormValue("title"),
		UserID: userID,
	}
	if err := s.photoRepo.Create(c.Context(), photo); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(photo)
}

// DeletePhoto handles DELETE /api/photos/:id, owner-only cascade delete.
func (s *Server) DeletePhoto(c *fiber.Ctx) error {
	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.engagementService.DeletePhoto(c.Context(), principal(c), photoID, s.store.Delete); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Photo deleted"})
}

// ToggleLike handles POST /api/photos/:id/like. The same endpoint likes and
// unlikes; the response reports the resulting state and counter.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, err := s.engagementService.ToggleLike(c.Context(), principal(c), photoID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(state)
}
