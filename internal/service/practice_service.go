package service

import (
	"context"
	"fmt"

	"mathclicks-be/internal/constant"
	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/pkg/logger"
	"mathclicks-be/pkg/drill"
	"mathclicks-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPracticeService interface {
	CheckAnswer(ctx context.Context, req dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error)
	GenerateProblems(ctx context.Context, req dto.GenerateProblemsRequest) (*dto.GenerateProblemsResponse, error)
	GenerateFromStandard(ctx context.Context, req dto.GenerateFromStandardRequest) (*dto.GenerateProblemsResponse, error)
}

type practiceService struct {
	sessions  ISessionService
	provider  llm.Provider
	publisher IPublisherService
	generator *drill.Generator
	logger    logger.ILogger
}

func NewPracticeService(sessions ISessionService, provider llm.Provider, publisher IPublisherService, log logger.ILogger) IPracticeService {
	return &practiceService{
		sessions:  sessions,
		provider:  provider,
		publisher: publisher,
		generator: drill.NewGenerator(),
		logger:    log,
	}
}

// CheckAnswer grades one submission against a session problem. A problem is
// resolved once answered correctly or after the attempt limit; resolving the
// problem at the cursor advances it, and resolving the last open problem
// completes the session.
func (s *practiceService) CheckAnswer(ctx context.Context, req dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error) {
	session, err := s.sessions.Get(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	problem := session.ProblemById(req.ProblemId)
	if problem == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "problem not found in session")
	}

	if _, resolved := session.Results[req.ProblemId]; resolved {
		return &dto.CheckAnswerResponse{
			Correct:       session.Results[req.ProblemId],
			Attempts:      session.Attempts[req.ProblemId],
			CurrentIndex:  session.CurrentIndex,
			SessionStatus: session.Status,
		}, nil
	}

	if session.Attempts == nil {
		session.Attempts = map[string]int{}
	}
	if session.Results == nil {
		session.Results = map[string]bool{}
	}
	if session.ProblemAttempts == nil {
		session.ProblemAttempts = map[string][]string{}
	}

	attempts := session.Attempts[req.ProblemId] + 1
	session.Attempts[req.ProblemId] = attempts
	session.ProblemAttempts[req.ProblemId] = append(session.ProblemAttempts[req.ProblemId], req.Answer)

	correct := drill.CheckAnswer(req.Answer, problem.Answer)

	resp := &dto.CheckAnswerResponse{
		Correct:  correct,
		Attempts: attempts,
	}

	if correct || attempts >= drill.MaxAttempts {
		session.Results[req.ProblemId] = correct

		// Advance past every resolved problem at the cursor, not just one:
		// problems can be answered out of order.
		for session.CurrentIndex < len(session.Problems) {
			if _, ok := session.Results[session.Problems[session.CurrentIndex].Id]; !ok {
				break
			}
			session.CurrentIndex++
		}

		if session.Complete() {
			session.Status = entity.SessionStatusComplete
		}
	}

	if !correct {
		if attempts >= drill.MaxAttempts {
			resp.SolutionSteps = problem.SolutionSteps
		} else if attempts <= len(problem.Hints) {
			resp.Hint = problem.Hints[attempts-1]
		}
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	resp.CurrentIndex = session.CurrentIndex
	resp.SessionStatus = session.Status

	s.emit(dto.PublishPracticeEventMessage{
		Type:      dto.PracticeEventAnswerSubmitted,
		SessionId: session.Id,
		StudentId: session.StudentId,
		ProblemId: req.ProblemId,
		Correct:   correct,
	})
	if session.Status == entity.SessionStatusComplete {
		s.emit(dto.PublishPracticeEventMessage{
			Type:      dto.PracticeEventSessionCompleted,
			SessionId: session.Id,
			StudentId: session.StudentId,
		})
	}

	return resp, nil
}

// GenerateProblems asks the LLM for a topical problem set, falling back to the
// local arithmetic generator when the model is unavailable or replies garbage.
func (s *practiceService) GenerateProblems(ctx context.Context, req dto.GenerateProblemsRequest) (*dto.GenerateProblemsResponse, error) {
	tier := req.Tier
	if tier == 0 {
		tier = 1
	}
	count := req.Count
	if count == 0 {
		count = 5
	}

	prompt := fmt.Sprintf(constant.GenerateProblemsPrompt, req.Topic, tier, count)
	problems := s.generateViaModel(ctx, prompt, tier, count, "GenerateProblems")
	return &dto.GenerateProblemsResponse{Problems: problems}, nil
}

func (s *practiceService) GenerateFromStandard(ctx context.Context, req dto.GenerateFromStandardRequest) (*dto.GenerateProblemsResponse, error) {
	count := req.Count
	if count == 0 {
		count = 5
	}

	prompt := fmt.Sprintf(constant.GenerateFromStandardPrompt, req.Standard, count)
	problems := s.generateViaModel(ctx, prompt, 3, count, "GenerateFromStandard")
	return &dto.GenerateProblemsResponse{Problems: problems}, nil
}

// modelProblem is the shape the generation prompts demand from the model.
type modelProblem struct {
	Text          string   `json:"text"`
	Answer        string   `json:"answer"`
	AnswerType    string   `json:"answer_type"`
	Hints         []string `json:"hints"`
	SolutionSteps []string `json:"solution_steps"`
}

func (s *practiceService) generateViaModel(ctx context.Context, prompt string, tier, count int, op string) []drill.Problem {
	if s.provider == nil {
		return s.generator.Generate(tier, count)
	}

	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("PracticeService", "Model generation failed, using local generator", map[string]interface{}{
			"operation": op,
			"error":     err.Error(),
		})
		return s.generator.Generate(tier, count)
	}

	var parsed []modelProblem
	if err := decodeModelReply(raw, &parsed); err != nil || len(parsed) == 0 {
		s.logger.Warn("PracticeService", "Model reply was not a usable problem set", map[string]interface{}{
			"operation": op,
		})
		return s.generator.Generate(tier, count)
	}

	problems := make([]drill.Problem, 0, len(parsed))
	for _, p := range parsed {
		if p.Text == "" || p.Answer == "" {
			continue
		}
		answerType := p.AnswerType
		if answerType != drill.AnswerTypeText {
			answerType = drill.AnswerTypeNumber
		}
		problems = append(problems, drill.Problem{
			Id:            uuid.New().String(),
			Tier:          tier,
			Text:          p.Text,
			Answer:        p.Answer,
			AnswerType:    answerType,
			Hints:         p.Hints,
			SolutionSteps: p.SolutionSteps,
		})
	}
	if len(problems) == 0 {
		return s.generator.Generate(tier, count)
	}
	return problems
}

func (s *practiceService) emit(msg dto.PublishPracticeEventMessage) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishPracticeEvent(msg); err != nil {
		s.logger.Warn("PracticeService", "Practice event not published", map[string]interface{}{
			"type":  msg.Type,
			"error": err.Error(),
		})
	}
}
