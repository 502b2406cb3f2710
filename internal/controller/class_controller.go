package controller

import (
	"strings"

	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/pkg/serverutils"
	"mathclicks-be/internal/service"
	"mathclicks-be/pkg/upstream"

	"github.com/gofiber/fiber/v2"
)

type IClassController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Achievement(ctx *fiber.Ctx) error
	Token(ctx *fiber.Ctx) error
	Progress(ctx *fiber.Ctx) error
}

type classController struct {
	classService service.IClassService
	upstream     *upstream.Client
	embedded     bool
}

func NewClassController(classService service.IClassService, upstreamClient *upstream.Client, embedded bool) IClassController {
	return &classController{
		classService: classService,
		upstream:     upstreamClient,
		embedded:     embedded,
	}
}

func (c *classController) RegisterRoutes(r fiber.Router) {
	h := r.Group("class")
	h.Post("create", c.Create)
	h.Post("update", c.Update)
	h.Post("achievement", c.Achievement)
	h.Post("token", c.Token)
	h.Get(":code/progress", c.progressGate, c.Progress)
}

func (c *classController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return relayOrLocal(ctx, c.upstream, c.embedded, "/api/class/create", func() error {
		res, err := c.classService.Create(ctx.Context(), req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success create class", res))
	})
}

func (c *classController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateClassRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return relayOrLocal(ctx, c.upstream, c.embedded, "/api/class/update", func() error {
		if err := c.classService.Update(ctx.Context(), req); err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success update class progress", fiber.Map{"updated": true}))
	})
}

func (c *classController) Achievement(ctx *fiber.Ctx) error {
	var req dto.ClassAchievementRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return relayOrLocal(ctx, c.upstream, c.embedded, "/api/class/achievement", func() error {
		if err := c.classService.RecordAchievement(ctx.Context(), req); err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success record achievement", fiber.Map{"recorded": true}))
	})
}

func (c *classController) Token(ctx *fiber.Ctx) error {
	var req dto.TeacherTokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return relayOrLocal(ctx, c.upstream, c.embedded, "/api/class/token", func() error {
		res, err := c.classService.IssueTeacherToken(ctx.Context(), req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success issue monitor token", res))
	})
}

// progressGate routes the monitor view. In proxy mode the request is relayed
// upstream with its Authorization header intact, so the backend that minted
// the token also validates it. Otherwise the local JWT middleware runs.
func (c *classController) progressGate(ctx *fiber.Ctx) error {
	if c.upstream.Configured() {
		code := strings.ToUpper(strings.TrimSpace(ctx.Params("code")))
		res, err := c.upstream.ForwardGet(ctx.Context(), "/api/class/"+code+"/progress", map[string]string{
			fiber.HeaderAuthorization: ctx.Get(fiber.HeaderAuthorization),
		})
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "backend unreachable")
		}
		if res.ContentType != "" {
			ctx.Set(fiber.HeaderContentType, res.ContentType)
		}
		return ctx.Status(res.StatusCode).Send(res.Body)
	}
	return serverutils.JwtMiddleware(ctx)
}

// Progress serves the monitor view locally. The JWT must carry the class code
// it asks for; a token for another class gets 403.
func (c *classController) Progress(ctx *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(ctx.Params("code")))
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid class code")
	}

	tokenCode, _ := ctx.Locals("class_code").(string)
	if !strings.EqualFold(tokenCode, code) {
		return fiber.NewError(fiber.StatusForbidden, "token is not valid for this class")
	}

	if !c.embedded {
		return serverutils.ErrUpstreamNotConfigured
	}

	res, err := c.classService.Progress(ctx.Context(), code)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show class progress", res))
}
