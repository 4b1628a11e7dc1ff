package server

import (
	"github.com/gofiber/fiber/v2"
)

// SearchUsers handles GET /api/users/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	results, err := s.userService.SearchUsers(c.Context(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"users": results})
}
