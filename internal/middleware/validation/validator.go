package validation

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/archlens/backend/internal/rollup"
	"github.com/archlens/backend/internal/storage/models"
)

type Config struct {
	MaxNameLength    int
	MaxContentLength int
}

// Middleware rejects structurally invalid catalog payloads before they
// reach a handler: wrong content types on writes, oversized names and
// note bodies, and enum values outside the known lifecycle sets.
func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxNameLength == 0 {
		cfg.MaxNameLength = 200
	}
	if cfg.MaxContentLength == 0 {
		cfg.MaxContentLength = 512 * 1024
	}

	return func(c *fiber.Ctx) error {
		if c.Method() == "POST" || c.Method() == "PUT" {
			contentType := c.Get("Content-Type")
			if contentType != "" && !strings.Contains(contentType, "application/json") {
				return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
					"error": "Unsupported content type",
				})
			}

			var req map[string]interface{}
			if len(c.Body()) > 0 {
				if err := c.BodyParser(&req); err != nil {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
						"error": "Invalid JSON format",
					})
				}
			}

			if name, ok := req["name"].(string); ok && len(name) > cfg.MaxNameLength {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Name exceeds maximum length",
				})
			}
			if content, ok := req["content"].(string); ok && len(content) > cfg.MaxContentLength {
				return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
					"error": "Content exceeds maximum size",
				})
			}
			if status, ok := req["lifecycle_status"].(string); ok && !validStatus(c.Path(), status) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Unknown lifecycle status",
				})
			}
		}

		if strings.HasSuffix(c.Path(), "/analysis") || strings.Contains(c.Path(), "/analysis/") {
			if mode := c.Query("rollup_mode"); mode != "" &&
				mode != rollup.RollupModeLens && mode != rollup.RollupModeParent {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "rollup_mode must be lens or parent",
				})
			}
			if display := c.Query("display"); display != "" &&
				display != rollup.DisplayOnlyRelated && display != rollup.DisplayShowSecondary {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "display must be only-related or show-secondary",
				})
			}
		}

		return c.Next()
	}
}

func validStatus(path, status string) bool {
	allowed := models.ItemStatuses
	if strings.Contains(path, "/relationships") {
		allowed = models.RelStatuses
	}

	for _, candidate := range allowed {
		if status == candidate {
			return true
		}
	}
	return false
}
