package server

import (
	"darkroom/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/photos/:id/comments, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.engagementService.ListComments(c.Context(), photoID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"comments": comments})
}

// CreateComment handles POST /api/photos/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.engagementService.AddComment(c.Context(), principal(c), photoID, req.Content)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment handles DELETE /api/photos/:id/comments with {commentId} in
// the body. The comment's author and the photo's owner may delete it.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	photoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		CommentID uint `json:"commentId"`
	}
	if err := c.BodyParser(&req); err != nil || req.CommentID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid comment ID"))
	}

	if err := s.engagementService.DeleteComment(c.Context(), principal(c), photoID, req.CommentID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
