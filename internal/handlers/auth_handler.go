package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"moviedeck/internal/dto"
	"moviedeck/internal/models"
	"moviedeck/internal/services"
	"moviedeck/internal/storage"
)

type AuthHandler struct {
	sessions *services.SessionService
}

func NewAuthHandler(sessions *services.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, token, err := h.sessions.Register(c.UserContext(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrPasswordMismatch) || errors.Is(err, services.ErrPasswordTooShort) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return storageErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, token, err := h.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return storageErrorResponse(c, err)
	}

	return c.JSON(dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to logout",
		})
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.sessions.CurrentUser()
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "No active session",
		})
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user, err := h.sessions.UpdateUser(c.UserContext(), models.UserUpdate{
		Name:          req.Name,
		Notifications: req.Notifications,
		DarkMode:      req.DarkMode,
		Language:      req.Language,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoActiveSession) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "No active session",
			})
		}
		return storageErrorResponse(c, err)
	}

	return c.JSON(dto.NewUserResponse(user))
}

func (h *AuthHandler) WipeData(c *fiber.Ctx) error {
	if err := h.sessions.WipeAll(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to wipe data",
		})
	}
	return c.JSON(fiber.Map{"message": "All data wiped"})
}

// storageErrorResponse maps storage failures to a recoverable 503 and keeps
// everything else a generic 500.
func storageErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, storage.ErrRead) || errors.Is(err, storage.ErrWrite) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Storage unavailable, please try again",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
