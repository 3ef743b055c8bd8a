package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/archlens/backend/internal/catalog"
	"github.com/archlens/backend/internal/metrics"
	"github.com/archlens/backend/internal/storage/models"
)

type ItemHandler struct {
	service *catalog.Service
}

func NewItemHandler(service *catalog.Service) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.Query("lens"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"items": items})
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid item id")
	}

	item, err := h.service.GetItem(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(item)
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if item.Lens == "" || item.Name == "" {
		return badRequest(c, "lens and name are required")
	}

	created, err := h.service.CreateItem(&item)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("items", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid item id")
	}

	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		return badRequest(c, "Invalid request body")
	}
	item.ID = id

	updated, err := h.service.UpdateItem(&item)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("items", "update").Inc()
	return c.JSON(updated)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid item id")
	}

	if err := h.service.DeleteItem(id); err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("items", "delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}
