package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"moviedeck/internal/dto"
	"moviedeck/internal/services"
)

// CatalogHandler proxies the content API so the mobile client talks to a
// single origin. It adds no state: failures pass through to the caller.
type CatalogHandler struct {
	catalog *services.CatalogClient
}

func NewCatalogHandler(catalog *services.CatalogClient) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) MovieCategory(c *fiber.Ctx) error {
	page, err := h.catalog.MovieCategory(c.UserContext(), c.Params("category"), c.QueryInt("page", 1))
	return h.respond(c, page, err)
}

func (h *CatalogHandler) TVCategory(c *fiber.Ctx) error {
	page, err := h.catalog.TVCategory(c.UserContext(), c.Params("category"), c.QueryInt("page", 1))
	return h.respond(c, page, err)
}

func (h *CatalogHandler) MovieDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid id",
		})
	}
	detail, err := h.catalog.MovieDetail(c.UserContext(), id)
	return h.respond(c, detail, err)
}

func (h *CatalogHandler) TVDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid id",
		})
	}
	detail, err := h.catalog.TVDetail(c.UserContext(), id)
	return h.respond(c, detail, err)
}

func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "query parameter is required",
		})
	}
	page, err := h.catalog.Search(c.UserContext(), query, c.QueryInt("page", 1))
	return h.respond(c, page, err)
}

func (h *CatalogHandler) Discover(c *fiber.Ctx) error {
	genreID := c.QueryInt("genre", 0)
	if genreID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "genre parameter is required",
		})
	}
	page, err := h.catalog.DiscoverByGenre(c.UserContext(), int64(genreID), c.QueryInt("page", 1))
	return h.respond(c, page, err)
}

func (h *CatalogHandler) respond(c *fiber.Ctx, payload interface{}, err error) error {
	if err != nil {
		if errors.Is(err, services.ErrUnknownCategory) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("content API call failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Content service unavailable",
		})
	}
	return c.JSON(payload)
}
