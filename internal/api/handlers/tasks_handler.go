package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/archlens/backend/internal/catalog"
	"github.com/archlens/backend/internal/metrics"
	"github.com/archlens/backend/internal/storage/models"
)

type TaskHandler struct {
	service *catalog.Service
}

func NewTaskHandler(service *catalog.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.service.ListTasks()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"tasks": tasks})
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid task id")
	}

	task, err := h.service.GetTask(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(task)
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var task models.Task
	if err := c.BodyParser(&task); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if task.Description == "" {
		return badRequest(c, "description is required")
	}

	created, err := h.service.CreateTask(&task)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("tasks", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid task id")
	}

	var task models.Task
	if err := c.BodyParser(&task); err != nil {
		return badRequest(c, "Invalid request body")
	}
	task.ID = id

	updated, err := h.service.UpdateTask(&task)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("tasks", "update").Inc()
	return c.JSON(updated)
}

// ToggleComplete sets the completion timestamp when clear and clears it
// when set.
func (h *TaskHandler) ToggleComplete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid task id")
	}

	task, err := h.service.ToggleTaskComplete(id)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("tasks", "toggle").Inc()
	return c.JSON(task)
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid task id")
	}

	if err := h.service.DeleteTask(id); err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("tasks", "delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}
