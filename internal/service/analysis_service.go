package service

import (
	"context"
	"fmt"

	"mathclicks-be/internal/constant"
	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/pkg/logger"
	"mathclicks-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisService interface {
	AnalyzeWork(ctx context.Context, req dto.AnalyzeWorkRequest) (*dto.AnalyzeWorkResponse, error)
	AnalyzeIncorrectWork(ctx context.Context, req dto.AnalyzeIncorrectWorkRequest) (*dto.AnalyzeWorkResponse, error)
	EvaluateResponse(ctx context.Context, req dto.EvaluateResponseRequest) (*dto.EvaluateResponseResponse, error)
}

type analysisService struct {
	provider llm.Provider
	logger   logger.ILogger
}

func NewAnalysisService(provider llm.Provider, log logger.ILogger) IAnalysisService {
	return &analysisService{provider: provider, logger: log}
}

func (s *analysisService) AnalyzeWork(ctx context.Context, req dto.AnalyzeWorkRequest) (*dto.AnalyzeWorkResponse, error) {
	topic := req.Topic
	if topic == "" {
		topic = "general math"
	}

	prompt := fmt.Sprintf(constant.AnalyzeWorkPrompt, topic, req.WorkText)

	var resp dto.AnalyzeWorkResponse
	if err := s.ask(ctx, "AnalyzeWork", prompt, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *analysisService) AnalyzeIncorrectWork(ctx context.Context, req dto.AnalyzeIncorrectWorkRequest) (*dto.AnalyzeWorkResponse, error) {
	prompt := fmt.Sprintf(constant.AnalyzeIncorrectWorkPrompt,
		req.ProblemText, req.CorrectAnswer, req.StudentAnswer, req.WorkText)

	var resp dto.AnalyzeWorkResponse
	if err := s.ask(ctx, "AnalyzeIncorrectWork", prompt, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *analysisService) EvaluateResponse(ctx context.Context, req dto.EvaluateResponseRequest) (*dto.EvaluateResponseResponse, error) {
	prompt := fmt.Sprintf(constant.EvaluateResponsePrompt, req.Question, req.Response)

	var resp dto.EvaluateResponseResponse
	if err := s.ask(ctx, "EvaluateResponse", prompt, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *analysisService) ask(ctx context.Context, op, prompt string, out interface{}) error {
	if s.provider == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "language model not configured")
	}

	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("AnalysisService", "Model call failed", map[string]interface{}{
			"operation": op,
			"error":     err.Error(),
		})
		return fiber.NewError(fiber.StatusBadGateway, "analysis is temporarily unavailable")
	}

	if err := decodeModelReply(raw, out); err != nil {
		s.logger.Warn("AnalysisService", "Model reply was not valid JSON", map[string]interface{}{
			"operation": op,
			"error":     err.Error(),
		})
		return fiber.NewError(fiber.StatusBadGateway, "analysis returned an unreadable result")
	}

	return nil
}
