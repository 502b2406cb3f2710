package controller

import (
	"io"
	"strings"

	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/pkg/serverutils"
	"mathclicks-be/internal/service"
	"mathclicks-be/pkg/upstream"

	"github.com/gofiber/fiber/v2"
)

// maxImageBytes caps uploaded work photos at 10MB.
const maxImageBytes = 10 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type IPracticeController interface {
	RegisterRoutes(r fiber.Router)
	ProcessImage(ctx *fiber.Ctx) error
	CheckAnswer(ctx *fiber.Ctx) error
	GenerateProblems(ctx *fiber.Ctx) error
	GenerateFromStandard(ctx *fiber.Ctx) error
	AnalyzeWork(ctx *fiber.Ctx) error
	AnalyzeIncorrectWork(ctx *fiber.Ctx) error
	EvaluateResponse(ctx *fiber.Ctx) error
}

type practiceController struct {
	extractionService service.IExtractionService
	practiceService   service.IPracticeService
	analysisService   service.IAnalysisService
	upstream          *upstream.Client
	embedded          bool
}

func NewPracticeController(
	extractionService service.IExtractionService,
	practiceService service.IPracticeService,
	analysisService service.IAnalysisService,
	upstreamClient *upstream.Client,
	embedded bool,
) IPracticeController {
	return &practiceController{
		extractionService: extractionService,
		practiceService:   practiceService,
		analysisService:   analysisService,
		upstream:          upstreamClient,
		embedded:          embedded,
	}
}

func (c *practiceController) RegisterRoutes(r fiber.Router) {
	r.Post("process-image", c.ProcessImage)
	r.Post("check-answer", c.CheckAnswer)
	r.Post("generate-problems", c.GenerateProblems)
	r.Post("generate-from-standard", c.GenerateFromStandard)
	r.Post("analyze-work", c.AnalyzeWork)
	r.Post("analyze-incorrect-work", c.AnalyzeIncorrectWork)
	r.Post("evaluate-response", c.EvaluateResponse)
}

func (c *practiceController) ProcessImage(ctx *fiber.Ctx) error {
	studentId := ctx.FormValue("student_id")
	if studentId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "student_id is required")
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "image file is required")
	}
	if fileHeader.Size > maxImageBytes {
		return fiber.NewError(fiber.StatusBadRequest, "image is larger than 10MB")
	}
	mimeType := strings.ToLower(fileHeader.Header.Get("Content-Type"))
	if !allowedImageTypes[mimeType] {
		return fiber.NewError(fiber.StatusBadRequest, "image must be jpeg, png, webp or gif")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	if c.upstream.Configured() {
		res, err := c.upstream.ForwardMultipart(ctx.Context(), "/api/process-image",
			map[string]string{"student_id": studentId}, "image", fileHeader.Filename, file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "backend unreachable")
		}
		if res.ContentType != "" {
			ctx.Set(fiber.HeaderContentType, res.ContentType)
		}
		return ctx.Status(res.StatusCode).Send(res.Body)
	}
	if !c.embedded {
		return serverutils.ErrUpstreamNotConfigured
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.extractionService.ProcessImage(ctx.Context(), studentId, imageData, mimeType)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success process image", res))
}

func (c *practiceController) CheckAnswer(ctx *fiber.Ctx) error {
	var req dto.CheckAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return relayOrLocal(ctx, c.upstream, c.embedded, "/api/check-answer", func() error {
		res, err := c.practiceService.CheckAnswer(ctx.Context(), req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success check answer", res))
	})
}

func (c *practiceController) GenerateProblems(ctx *fiber.Ctx) error {
	var req dto.GenerateProblemsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return relayOrLocal(ctx, c.upstream, c.embedded, "/api/generate-problems", func() error {
		res, err := c.practiceService.GenerateProblems(ctx.Context(), req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success generate problems", res))
	})
}

func (c *practiceController) GenerateFromStandard(ctx *fiber.Ctx) error {
	var req dto.GenerateFromStandardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return relayOrLocal(ctx, c.upstream, c.embedded, "/api/generate-from-standard", func() error {
		res, err := c.practiceService.GenerateFromStandard(ctx.Context(), req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success generate problems", res))
	})
}

func (c *practiceController) AnalyzeWork(ctx *fiber.Ctx) error {
	var req dto.AnalyzeWorkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return relayOrLocal(ctx, c.upstream, c.embedded, "/api/analyze-work", func() error {
		res, err := c.analysisService.AnalyzeWork(ctx.Context(), req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success analyze work", res))
	})
}

func (c *practiceController) AnalyzeIncorrectWork(ctx *fiber.Ctx) error {
	var req dto.AnalyzeIncorrectWorkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return relayOrLocal(ctx, c.upstream, c.embedded, "/api/analyze-incorrect-work", func() error {
		res, err := c.analysisService.AnalyzeIncorrectWork(ctx.Context(), req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success analyze work", res))
	})
}

func (c *practiceController) EvaluateResponse(ctx *fiber.Ctx) error {
	var req dto.EvaluateResponseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return relayOrLocal(ctx, c.upstream, c.embedded, "/api/evaluate-response", func() error {
		res, err := c.analysisService.EvaluateResponse(ctx.Context(), req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success evaluate response", res))
	})
}
