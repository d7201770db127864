package server

import (
	"github.com/MayankPrasher/draftly-backend/internal/models"
	"github.com/MayankPrasher/draftly-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/v1/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	email := validation.NormalizeEmail(req.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Username is case-sensitive, email is compared lowercase.
	existing, err := s.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if existing == nil {
		if existing, err = s.userRepo.GetByUsername(c.Context(), req.Username); err != nil {
			return models.RespondWithAppError(c, err)
		}
	}
	if existing != nil {
		return models.RespondWithAppError(c,
			models.NewConflictError("User with this email or username already exists."))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username:       req.Username,
		Email:          email,
		Password:       string(hashedPassword),
		ProfilePicture: models.DefaultProfilePicture,
	}

	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithAppError(c, createErr)
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"msg":     "User registered successfully",
		"token":   tok,
		"user":    user.Identity(),
	})
}

// Login handles POST /api/v1/auth/login. Unknown email and bad password
// return the identical generic message.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), validation.NormalizeEmail(req.Email))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid email or password."))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid email or password."))
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"msg":     "Login successful",
		"token":   tok,
		"user":    user.Identity(),
	})
}
