package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/archlens/backend/internal/catalog"
	"github.com/archlens/backend/internal/storage/sqlite"
	"github.com/archlens/backend/pkg/logger"
)

// respondError maps service errors onto HTTP statuses. Unexpected errors
// are logged and reported as opaque 500s.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, sqlite.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	case errors.Is(err, catalog.ErrDuplicateName), errors.Is(err, catalog.ErrDuplicateKey):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, catalog.ErrUnknownLens):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		logger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal error",
		})
	}
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
