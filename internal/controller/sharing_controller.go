package controller

import (
	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/pkg/serverutils"
	"mathclicks-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISharingController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Stop(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
}

type sharingController struct {
	sharingService service.ISharingService
}

func NewSharingController(sharingService service.ISharingService) ISharingController {
	return &sharingController{
		sharingService: sharingService,
	}
}

func (c *sharingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("sharing")
	h.Post("start", c.Start)
	h.Post("stop", c.Stop)
	h.Get("state", c.State)
}

func (c *sharingController) Start(ctx *fiber.Ctx) error {
	var req dto.StartSharingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.sharingService.Start(ctx.Context(), req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success start sharing", fiber.Map{"sharing": true}))
}

func (c *sharingController) Stop(ctx *fiber.Ctx) error {
	var req dto.StopSharingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.sharingService.Stop(ctx.Context(), req.StudentId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success stop sharing", fiber.Map{"sharing": false}))
}

func (c *sharingController) State(ctx *fiber.Ctx) error {
	studentId := ctx.Query("student_id")
	if studentId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "student_id is required")
	}

	res, err := c.sharingService.State(ctx.Context(), studentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show sharing state", res))
}
