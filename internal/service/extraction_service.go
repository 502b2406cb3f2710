package service

import (
	"context"
	"strconv"
	"strings"

	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/pkg/logger"
	"mathclicks-be/pkg/vision"

	"github.com/gofiber/fiber/v2"
)

type IExtractionService interface {
	ProcessImage(ctx context.Context, studentId string, imageData []byte, mimeType string) (*dto.ProcessImageResponse, error)
}

type extractionService struct {
	vision   vision.Provider
	practice IPracticeService
	sessions ISessionService
	logger   logger.ILogger
}

func NewExtractionService(visionProvider vision.Provider, practice IPracticeService, sessions ISessionService, log logger.ILogger) IExtractionService {
	return &extractionService{
		vision:   visionProvider,
		practice: practice,
		sessions: sessions,
		logger:   log,
	}
}

// ProcessImage runs the whole photo-to-practice pipeline: extract the lesson
// from the image, generate a problem set for its topic, and open a session
// holding both.
func (s *extractionService) ProcessImage(ctx context.Context, studentId string, imageData []byte, mimeType string) (*dto.ProcessImageResponse, error) {
	if s.vision == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "vision provider not configured")
	}

	extracted, err := s.vision.ExtractLesson(ctx, imageData, mimeType)
	if err != nil {
		s.logger.Error("ExtractionService", "Lesson extraction failed", map[string]interface{}{
			"student_id": studentId,
			"error":      err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusBadGateway, "could not read the lesson from the image")
	}

	extraction := entity.Extraction{
		Topic:      extracted.Topic,
		GradeLevel: extracted.GradeLevel,
		Concepts:   extracted.Concepts,
		Summary:    extracted.Summary,
	}
	tier := tierForGrade(extraction.GradeLevel)

	generated, err := s.practice.GenerateProblems(ctx, dto.GenerateProblemsRequest{
		Topic: extraction.Topic,
		Tier:  tier,
		Count: 5,
	})
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create(ctx, studentId, extraction.Topic, tier, extraction, generated.Problems)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ExtractionService", "Image processed into session", map[string]interface{}{
		"student_id": studentId,
		"session_id": session.Id,
		"topic":      extraction.Topic,
	})

	return &dto.ProcessImageResponse{
		SessionId:  session.Id,
		Extraction: extraction,
		Problems:   session.Problems,
	}, nil
}

// tierForGrade maps a free-form grade label ("3rd grade", "Grade 5", "K") to
// a drill tier. Unrecognized labels land in the middle.
func tierForGrade(grade string) int {
	lower := strings.ToLower(strings.TrimSpace(grade))
	if lower == "" {
		return 3
	}
	if strings.HasPrefix(lower, "k") {
		return 1
	}

	digits := strings.Builder{}
	for _, r := range lower {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 3
	}

	switch {
	case n <= 1:
		return 1
	case n <= 3:
		return 2
	case n <= 5:
		return 3
	case n <= 7:
		return 4
	default:
		return 5
	}
}
