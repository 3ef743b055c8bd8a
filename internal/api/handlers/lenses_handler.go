package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/archlens/backend/internal/catalog"
	"github.com/archlens/backend/internal/metrics"
	"github.com/archlens/backend/internal/storage/models"
)

type LensHandler struct {
	service *catalog.Service
}

func NewLensHandler(service *catalog.Service) *LensHandler {
	return &LensHandler{service: service}
}

func (h *LensHandler) List(c *fiber.Ctx) error {
	lenses, err := h.service.ListLenses()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"lenses": lenses})
}

func (h *LensHandler) Create(c *fiber.Ctx) error {
	var lens models.Lens
	if err := c.BodyParser(&lens); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if lens.Key == "" || lens.Label == "" {
		return badRequest(c, "key and label are required")
	}

	created, err := h.service.CreateLens(&lens)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("lenses", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *LensHandler) Update(c *fiber.Ctx) error {
	var lens models.Lens
	if err := c.BodyParser(&lens); err != nil {
		return badRequest(c, "Invalid request body")
	}
	lens.Key = c.Params("key")

	updated, err := h.service.UpdateLens(&lens)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("lenses", "update").Inc()
	return c.JSON(updated)
}

// Delete cascades: the lens's items and relationships go with it.
func (h *LensHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteLens(c.Params("key")); err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("lenses", "delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}
