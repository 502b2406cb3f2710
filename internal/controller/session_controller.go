package controller

import (
	"mathclicks-be/internal/pkg/serverutils"
	"mathclicks-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Session routes are always served locally: sessions live in this service's
// store even when the AI routes are relayed to a backend.
type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Current(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Review(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("sessions")
	h.Get("", c.List)
	h.Get("current", c.Current)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Post(":id/review", c.Review)
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	studentId := ctx.Query("student_id")
	if studentId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "student_id is required")
	}

	res, err := c.sessionService.List(ctx.Context(), studentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.sessionService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) Current(ctx *fiber.Ctx) error {
	studentId := ctx.Query("student_id")
	if studentId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "student_id is required")
	}

	res, err := c.sessionService.Current(ctx.Context(), studentId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "no current session")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show current session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	if err := c.sessionService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete session", fiber.Map{"deleted": true}))
}

func (c *sessionController) Review(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	count := ctx.QueryInt("count", 0)

	res, err := c.sessionService.ReviewProblems(ctx.Context(), id, count)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success build review set", res))
}
