package server

import (
	"darkroom/internal/devchart"
	"darkroom/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DevelopmentTime handles POST /api/development-time: film, developer and ISO
// in, development time and dilution out.
func (s *Server) DevelopmentTime(c *fiber.Ctx) error {
	var req struct {
		Film      string `json:"film"`
		Developer string `json:"developer"`
		ISO       int    `json:"iso"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := devchart.Lookup(req.Film, req.Developer, req.ISO)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(entry)
}
