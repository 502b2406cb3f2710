package entity

import (
	"time"

	"mathclicks-be/pkg/drill"

	"github.com/google/uuid"
)

// Session status lifecycle: loading -> active -> complete. No other transitions.
const (
	SessionStatusLoading  = "loading"
	SessionStatusActive   = "active"
	SessionStatusComplete = "complete"
)

// SessionTTL is how long an untouched session survives. Sessions whose
// UpdatedAt is older than this are swept on listing.
const SessionTTL = 7 * 24 * time.Hour

// Extraction is the AI-derived description of a photographed lesson.
type Extraction struct {
	Topic      string   `json:"topic"`
	GradeLevel string   `json:"grade_level"`
	Concepts   []string `json:"concepts"`
	Summary    string   `json:"summary,omitempty"`
}

// PracticeSession is one student's run through a generated problem set.
type PracticeSession struct {
	Id              uuid.UUID
	StudentId       string
	Topic           string
	Tier            int
	Status          string
	Extraction      Extraction
	Problems        []drill.Problem
	CurrentIndex    int
	Attempts        map[string]int      // problem id -> attempt count
	Results         map[string]bool     // problem id -> solved correctly
	ProblemAttempts map[string][]string // problem id -> raw answers given
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Expired reports whether the session has outlived SessionTTL, measured
// against UpdatedAt when present and CreatedAt otherwise.
func (s *PracticeSession) Expired(now time.Time) bool {
	ref := s.CreatedAt
	if s.UpdatedAt != nil {
		ref = *s.UpdatedAt
	}
	return now.Sub(ref) > SessionTTL
}

// Complete reports whether every problem has a recorded result.
func (s *PracticeSession) Complete() bool {
	if len(s.Problems) == 0 {
		return false
	}
	for _, p := range s.Problems {
		if _, ok := s.Results[p.Id]; !ok {
			return false
		}
	}
	return true
}

// ProblemById finds a problem in the set, or nil.
func (s *PracticeSession) ProblemById(id string) *drill.Problem {
	for i := range s.Problems {
		if s.Problems[i].Id == id {
			return &s.Problems[i]
		}
	}
	return nil
}
