package dto

import (
	"time"

	"mathclicks-be/internal/entity"
	"mathclicks-be/pkg/drill"

	"github.com/google/uuid"
)

type SessionSummary struct {
	Id           uuid.UUID  `json:"id"`
	Topic        string     `json:"topic"`
	Tier         int        `json:"tier"`
	Status       string     `json:"status"`
	TotalCount   int        `json:"total_count"`
	CorrectCount int        `json:"correct_count"`
	Current      bool       `json:"current"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type ShowSessionResponse struct {
	Id              uuid.UUID           `json:"id"`
	StudentId       string              `json:"student_id"`
	Topic           string              `json:"topic"`
	Tier            int                 `json:"tier"`
	Status          string              `json:"status"`
	Extraction      entity.Extraction   `json:"extraction"`
	Problems        []drill.Problem     `json:"problems"`
	CurrentIndex    int                 `json:"current_index"`
	Attempts        map[string]int      `json:"attempts"`
	Results         map[string]bool     `json:"results"`
	ProblemAttempts map[string][]string `json:"problem_attempts,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       *time.Time          `json:"updated_at"`
}

type ListSessionsResponse struct {
	Sessions []SessionSummary `json:"sessions"`
}

type ReviewProblemsResponse struct {
	Problems []drill.Problem `json:"problems"`
}
