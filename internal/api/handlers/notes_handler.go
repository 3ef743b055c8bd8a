package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/archlens/backend/internal/catalog"
	"github.com/archlens/backend/internal/metrics"
	"github.com/archlens/backend/internal/storage/models"
)

type NoteHandler struct {
	service *catalog.Service
}

func NewNoteHandler(service *catalog.Service) *NoteHandler {
	return &NoteHandler{service: service}
}

func (h *NoteHandler) List(c *fiber.Ctx) error {
	notes, err := h.service.ListMeetingNotes()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"notes": notes})
}

func (h *NoteHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid note id")
	}

	note, err := h.service.GetMeetingNote(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(note)
}

func (h *NoteHandler) Create(c *fiber.Ctx) error {
	var note models.MeetingNote
	if err := c.BodyParser(&note); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if note.Title == "" {
		return badRequest(c, "title is required")
	}

	created, err := h.service.CreateMeetingNote(&note)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("notes", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *NoteHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid note id")
	}

	var note models.MeetingNote
	if err := c.BodyParser(&note); err != nil {
		return badRequest(c, "Invalid request body")
	}
	note.ID = id

	updated, err := h.service.UpdateMeetingNote(&note)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("notes", "update").Inc()
	return c.JSON(updated)
}

func (h *NoteHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid note id")
	}

	if err := h.service.DeleteMeetingNote(id); err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("notes", "delete").Inc()
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateTask creates a task pre-linked to the note, inheriting its related
// items.
func (h *NoteHandler) CreateTask(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid note id")
	}

	var req struct {
		Description string `json:"description"`
		AssignedTo  string `json:"assigned_to"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Description == "" {
		return badRequest(c, "description is required")
	}

	task, err := h.service.CreateTaskFromNote(id, req.Description, req.AssignedTo)
	if err != nil {
		return respondError(c, err)
	}

	metrics.CatalogWrites.WithLabelValues("tasks", "create").Inc()
	return c.Status(fiber.StatusCreated).JSON(task)
}
