package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/archlens/backend/internal/catalog"
	"github.com/archlens/backend/internal/metrics"
)

type RelationshipHandler struct {
	service *catalog.Service
}

func NewRelationshipHandler(service *catalog.Service) *RelationshipHandler {
	return &RelationshipHandler{service: service}
}

type relationshipRequest struct {
	FromItemID       int64  `json:"from_item_id"`
	ToItemID         int64  `json:"to_item_id"`
	RelationshipType string `json:"relationship_type"`
	LifecycleStatus  string `json:"lifecycle_status"`
	Note             string `json:"note"`
}

func (h *RelationshipHandler) List(c *fiber.Ctx) error {
	var itemID int64
	if raw := c.Query("item_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequest(c, "Invalid item_id")
		}
		itemID = parsed
	}

	rels, err := h.service.ListRelationships(itemID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"relationships": rels})
}

func (h *RelationshipHandler) Create(c *fiber.Ctx) error {
	var req relationshipRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FromItemID == 0 || req.ToItemID == 0 {
		return badRequest(c, "from_item_id and to_item_id are required")
	}

	rel, err := h.service.AddRelationship(req.FromItemID, req.ToItemID,
		req.RelationshipType, req.LifecycleStatus, req.Note)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("relationships", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(rel)
}

func (h *RelationshipHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid relationship id")
	}

	var req relationshipRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	rel, err := h.service.UpdateRelationship(id, req.RelationshipType,
		req.LifecycleStatus, req.Note)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("relationships", "update").Inc()
	return c.JSON(rel)
}

func (h *RelationshipHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid relationship id")
	}

	if err := h.service.RemoveRelationship(id); err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("relationships", "delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}
