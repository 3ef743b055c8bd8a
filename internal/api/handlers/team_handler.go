package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/archlens/backend/internal/catalog"
	"github.com/archlens/backend/internal/metrics"
	"github.com/archlens/backend/internal/storage/models"
)

type TeamHandler struct {
	service *catalog.Service
}

func NewTeamHandler(service *catalog.Service) *TeamHandler {
	return &TeamHandler{service: service}
}

func (h *TeamHandler) List(c *fiber.Ctx) error {
	members, err := h.service.ListTeamMembers()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"members": members})
}

func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var member models.TeamMember
	if err := c.BodyParser(&member); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if member.Name == "" {
		return badRequest(c, "name is required")
	}

	created, err := h.service.CreateTeamMember(&member)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("team", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *TeamHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid member id")
	}

	var member models.TeamMember
	if err := c.BodyParser(&member); err != nil {
		return badRequest(c, "Invalid request body")
	}
	member.ID = id

	updated, err := h.service.UpdateTeamMember(&member)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("team", "update").Inc()
	return c.JSON(updated)
}

func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid member id")
	}

	if err := h.service.DeleteTeamMember(id); err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("team", "delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TeamHandler) Coverage(c *fiber.Ctx) error {
	rows, err := h.service.CoverageReport()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"coverage": rows})
}
