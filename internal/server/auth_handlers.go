package server

import (
	"darkroom/internal/models"
	"darkroom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /api/auth
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		Email       string `json:"email"`
		DateOfBirth string `json:"dateOfBirth"`
		Password    string `json:"password"`
		Username    string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateAccount(c.Context(), service.CreateAccountInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Password:    req.Password,
		Username:    req.Username,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user,
	})
}

// Login handles POST /api/session
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Refresh handles POST /api/session/refresh. The bearer token must still be
// valid; a fresh token with a full lifetime is issued for the same principal.
func (s *Server) Refresh(c *fiber.Ctx) error {
	userID := principal(c)

	// The account may have been deleted since the token was issued.
	if _, err := s.userRepo.GetByID(c.Context(), userID); err != nil {
		return respondError(c, models.NewAuthError("Invalid or expired token"))
	}

	token, err := s.tokens.Issue(userID)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}
