package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "crm/internal/log"
)

const friendlyMessage = "Something went wrong. Please try again."

// ErrorHandler logs the cause and answers with a generic message. Fiber
// errors below 500 keep their own status and text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		applog.Info(c, "request.rejected", map[string]any{"code": fe.Code})
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": friendlyMessage})
}

func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}
