package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"moviedeck/internal/dto"
	"moviedeck/internal/models"
	"moviedeck/internal/services"
)

type WatchlistHandler struct {
	watchlists *services.WatchlistService
}

func NewWatchlistHandler(watchlists *services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlists: watchlists}
}

func (h *WatchlistHandler) List(c *fiber.Ctx) error {
	scope := c.Query("scope", services.ScopeAll)

	items, err := h.watchlists.List(c.UserContext(), scope)
	if err != nil {
		if errors.Is(err, services.ErrUnknownScope) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return storageErrorResponse(c, err)
	}

	if items == nil {
		items = []models.WatchlistEntry{}
	}
	return c.JSON(dto.WatchlistResponse{Items: items, Count: len(items)})
}

func (h *WatchlistHandler) Toggle(c *fiber.Ctx) error {
	var req dto.ToggleWatchlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	mediaType, err := models.ParseMediaType(req.MediaType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	inWatchlist, err := h.watchlists.Toggle(c.UserContext(), req.Entry(), mediaType)
	if err != nil {
		if errors.Is(err, services.ErrUpdateFailed) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to update watchlist, please try again",
			})
		}
		return storageErrorResponse(c, err)
	}

	return c.JSON(dto.ToggleWatchlistResponse{InWatchlist: inWatchlist})
}

func (h *WatchlistHandler) Contains(c *fiber.Ctx) error {
	mediaType, err := models.ParseMediaType(c.Params("type"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid id",
		})
	}

	member, err := h.watchlists.IsMember(c.UserContext(), id, mediaType)
	if err != nil {
		return storageErrorResponse(c, err)
	}
	return c.JSON(dto.ContainsResponse{InWatchlist: member})
}

func (h *WatchlistHandler) Remove(c *fiber.Ctx) error {
	mediaType, err := models.ParseMediaType(c.Params("type"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid id",
		})
	}

	if err := h.watchlists.Remove(c.UserContext(), id, mediaType); err != nil {
		return storageErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Removed"})
}

func (h *WatchlistHandler) Clear(c *fiber.Ctx) error {
	scope := c.Query("scope", services.ScopeAll)

	if err := h.watchlists.Clear(c.UserContext(), scope); err != nil {
		if errors.Is(err, services.ErrUnknownScope) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return storageErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cleared"})
}
