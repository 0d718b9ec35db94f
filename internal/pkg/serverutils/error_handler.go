package serverutils

import (
	"errors"

	"docassist/internal/dto"
	"docassist/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler renders every error as {"error": "..."} with the fiber status, or 500.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("Server", "request failed", map[string]interface{}{
				"method": ctx.Method(), "path": ctx.Path(), "error": err.Error(),
			})
		}
		return ctx.Status(code).JSON(dto.ErrorResponse{Error: err.Error()})
	}
}
