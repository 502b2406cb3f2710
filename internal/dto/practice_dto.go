package dto

import (
	"mathclicks-be/internal/entity"
	"mathclicks-be/pkg/drill"

	"github.com/google/uuid"
)

type ProcessImageResponse struct {
	SessionId  uuid.UUID         `json:"session_id"`
	Extraction entity.Extraction `json:"extraction"`
	Problems   []drill.Problem   `json:"problems"`
}

type CheckAnswerRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	ProblemId string    `json:"problem_id" validate:"required"`
	Answer    string    `json:"answer" validate:"required"`
}

type CheckAnswerResponse struct {
	Correct       bool     `json:"correct"`
	Attempts      int      `json:"attempts"`
	Hint          string   `json:"hint,omitempty"`
	SolutionSteps []string `json:"solution_steps,omitempty"`
	CurrentIndex  int      `json:"current_index"`
	SessionStatus string   `json:"session_status"`
}

type GenerateProblemsRequest struct {
	Topic string `json:"topic" validate:"required"`
	Tier  int    `json:"tier" validate:"omitempty,min=1,max=5"`
	Count int    `json:"count" validate:"omitempty,min=1,max=20"`
}

type GenerateProblemsResponse struct {
	Problems []drill.Problem `json:"problems"`
}

type GenerateFromStandardRequest struct {
	Standard string `json:"standard" validate:"required"`
	Count    int    `json:"count" validate:"omitempty,min=1,max=20"`
}

type AnalyzeWorkRequest struct {
	WorkText string `json:"work_text" validate:"required"`
	Topic    string `json:"topic"`
}

type AnalyzeWorkResponse struct {
	Feedback  string   `json:"feedback"`
	Strengths []string `json:"strengths,omitempty"`
	Issues    []string `json:"issues,omitempty"`
}

type AnalyzeIncorrectWorkRequest struct {
	ProblemText   string `json:"problem_text" validate:"required"`
	CorrectAnswer string `json:"correct_answer" validate:"required"`
	StudentAnswer string `json:"student_answer" validate:"required"`
	WorkText      string `json:"work_text"`
}

type EvaluateResponseRequest struct {
	Question string `json:"question" validate:"required"`
	Response string `json:"response" validate:"required"`
}

type EvaluateResponseResponse struct {
	Acceptable bool   `json:"acceptable"`
	Feedback   string `json:"feedback"`
}

// PublishPracticeEventMessage rides the in-process progress pipeline from
// PracticeService to the consumer.
type PublishPracticeEventMessage struct {
	Type      string    `json:"type"` // "ANSWER_SUBMITTED" | "SESSION_COMPLETED"
	SessionId uuid.UUID `json:"session_id"`
	StudentId string    `json:"student_id"`
	ProblemId string    `json:"problem_id,omitempty"`
	Correct   bool      `json:"correct"`
}

const (
	PracticeEventAnswerSubmitted  = "ANSWER_SUBMITTED"
	PracticeEventSessionCompleted = "SESSION_COMPLETED"
)
