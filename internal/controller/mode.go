package controller

import (
	"mathclicks-be/internal/pkg/serverutils"
	"mathclicks-be/pkg/upstream"

	"github.com/gofiber/fiber/v2"
)

// relayOrLocal decides how an AI/classroom route is served: relay the request
// body verbatim to the configured backend, run the embedded implementation,
// or report that no backend exists. Validation happens before this is called,
// so a bad request never reaches the backend.
func relayOrLocal(ctx *fiber.Ctx, up *upstream.Client, embedded bool, path string, local func() error) error {
	if up.Configured() {
		return relayJSON(ctx, up, path)
	}
	if embedded {
		return local()
	}
	return serverutils.ErrUpstreamNotConfigured
}

// relayJSON forwards the request body and sends the backend's reply back
// unchanged, status code included.
func relayJSON(ctx *fiber.Ctx, up *upstream.Client, path string) error {
	res, err := up.ForwardJSON(ctx.Context(), path, ctx.Body())
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "backend unreachable")
	}
	if res.ContentType != "" {
		ctx.Set(fiber.HeaderContentType, res.ContentType)
	}
	return ctx.Status(res.StatusCode).Send(res.Body)
}
