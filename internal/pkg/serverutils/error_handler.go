package serverutils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrUpstreamNotConfigured is returned by services when neither BACKEND_URL
// nor the embedded backend can serve a request. Mapped to 501 here.
var ErrUpstreamNotConfigured = errors.New("backend not configured")

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// shared JSON envelope. fiber.Error keeps its code; everything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if errors.Is(err, ErrUpstreamNotConfigured) {
			return ctx.Status(fiber.StatusNotImplemented).
				JSON(ErrorResponse(fiber.StatusNotImplemented, "backend not configured"))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Printf("[ERROR] unhandled: %v", err)
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
