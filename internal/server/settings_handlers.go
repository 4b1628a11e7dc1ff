package server

import (
	"darkroom/internal/cache"
	"darkroom/internal/models"
	"darkroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateSettings handles PUT /api/settings. All fields are optional; a new
// password requires the current one.
func (s *Server) UpdateSettings(c *fiber.Ctx) error {
	var req struct {
		FirstName       string `json:"firstName"`
		LastName        string `json:"lastName"`
		Username        string `json:"username"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := principal(c)
	before, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	oldUsername := before.Username

	user, err := s.userService.UpdateSettings(c.Context(), service.UpdateSettingsInput{
		UserID:          userID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Username:        req.Username,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return respondError(c, err)
	}

	cache.InvalidateProfile(c.Context(), oldUsername)
	if user.Username != oldUsername {
		cache.InvalidateProfile(c.Context(), user.Username)
	}

	return c.JSON(fiber.Map{"user": user})
}

// DeleteAccount handles DELETE /api/settings: the principal deletes their own
// account, cascading to photos, likes and comments.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := principal(c)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	if err := s.userService.DeleteAccount(c.Context(), userID); err != nil {
		return respondError(c, err)
	}

	cache.InvalidateProfile(c.Context(), user.Username)
	return c.JSON(fiber.Map{"success": true})
}
