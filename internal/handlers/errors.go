package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/services"
)

// ErrorHandler renders errors that escape a handler as {"error", "code"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// analysisStatus maps an analyzer error to an HTTP status and a message safe
// to show to the caller.
func analysisStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidPath):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrDocumentNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrAccessDenied):
		return fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrUnreadableDocument):
		return fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "analysis timed out"
	case errors.Is(err, services.ErrStorageUnavailable):
		return fiber.StatusBadGateway, services.ErrStorageUnavailable.Error()
	default:
		return fiber.StatusInternalServerError, "failed to analyze document"
	}
}
