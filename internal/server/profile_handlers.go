package server

import (
	"darkroom/internal/cache"
	"darkroom/internal/models"
	"darkroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile/:username
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	profile, err := s.profileService.GetProfile(c.Context(), username)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/profile for the authenticated principal.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req struct {
		Bio          string `json:"bio"`
		ProfileImage string `json:"profileImage"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateBio(c.Context(), service.UpdateBioInput{
		UserID:       principal(c),
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return respondError(c, err)
	}

	cache.InvalidateProfile(c.Context(), user.Username)
	return c.JSON(fiber.Map{"user": user})
}
