package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/dto"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/models"
	"github.com/ahmetcoskunkizilkaya/taskcatalog/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService    *services.AuthService
	profileService *services.ProfileService
}

func NewAuthHandler(authService *services.AuthService, profileService *services.ProfileService) *AuthHandler {
	return &AuthHandler{authService: authService, profileService: profileService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) LoginAnonymous(c *fiber.Ctx) error {
	resp, err := h.authService.LoginAnonymous()
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Me answers from the profile store, except for anonymous subjects which only
// exist inside their token.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	subject, ok := middleware.GetSubject(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Unauthorized"})
	}

	if subject.IsAnonymous {
		return c.JSON(dto.ProfileResponse{
			UID:         subject.UID,
			Email:       models.AnonymousEmail,
			DisplayName: models.AnonymousDisplayName,
			Admin:       false,
			IsAnonymous: true,
			Preferences: map[string]interface{}{},
		})
	}

	profile, err := h.profileService.Get(c.UserContext(), subject.UID)
	if err != nil {
		return writeError(c, err)
	}

	createdAt := profile.CreatedAt.UTC().Format(time.RFC3339Nano)
	lastLogin := profile.LastLogin.UTC().Format(time.RFC3339Nano)
	return c.JSON(dto.ProfileResponse{
		UID:         profile.UID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		Admin:       profile.Admin,
		IsAnonymous: profile.IsAnonymous,
		Preferences: profile.Preferences.Data(),
		CreatedAt:   &createdAt,
		LastLogin:   &lastLogin,
	})
}

// Logout is acknowledged only; tokens are discarded client-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}
