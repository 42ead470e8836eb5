package serverutils

import (
	"errors"

	"ai-search-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorRule maps a sentinel error (matched with errors.Is) onto a response.
type ErrorRule struct {
	Target  error
	Status  int
	Message string
}

func MapError(target error, status int, message string) ErrorRule {
	return ErrorRule{Target: target, Status: status, Message: message}
}

// ErrorHandlerMiddleware turns handler errors into JSON error envelopes.
// Rules are checked in order; validation and fiber errors are handled after them.
func ErrorHandlerMiddleware(log logger.ILogger, fallback string, rules ...ErrorRule) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, body := Resolve(err, fallback, rules...)
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": status,
				"error":  err.Error(),
			})
		}
		return ctx.Status(status).JSON(body)
	}
}

// Resolve picks the status and body for err.
func Resolve(err error, fallback string, rules ...ErrorRule) (int, *ErrorBody) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			return rule.Status, ErrorResponse(rule.Status, rule.Message)
		}
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest, ErrorResponse(fiber.StatusBadRequest, "invalid request", validationErr.Fields...)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, ErrorResponse(fiberErr.Code, fiberErr.Message)
	}

	return fiber.StatusInternalServerError, ErrorResponse(fiber.StatusInternalServerError, fallback)
}
