package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"moviedeck/internal/dto"
	"moviedeck/internal/storage"
)

var validThemes = map[string]bool{
	"light": true,
	"dark":  true,
	"auto":  true,
}

// PreferenceHandler serves the theme_preference key. Reads are public so the
// client can style itself before login.
type PreferenceHandler struct {
	store storage.Store
}

func NewPreferenceHandler(store storage.Store) *PreferenceHandler {
	return &PreferenceHandler{store: store}
}

func (h *PreferenceHandler) GetTheme(c *fiber.Ctx) error {
	theme, err := h.store.Get(c.UserContext(), storage.KeyThemePreference)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && !validThemes[theme]) {
		return c.JSON(dto.ThemeResponse{Theme: "auto"})
	}
	if err != nil {
		return storageErrorResponse(c, err)
	}
	return c.JSON(dto.ThemeResponse{Theme: theme})
}

func (h *PreferenceHandler) SetTheme(c *fiber.Ctx) error {
	var req dto.ThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if !validThemes[req.Theme] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "theme must be one of light, dark, auto",
		})
	}

	if err := h.store.Set(c.UserContext(), storage.KeyThemePreference, req.Theme); err != nil {
		return storageErrorResponse(c, err)
	}
	return c.JSON(dto.ThemeResponse{Theme: req.Theme})
}
