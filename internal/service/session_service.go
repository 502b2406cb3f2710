package service

import (
	"context"
	"sort"
	"time"

	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/pkg/logger"
	"mathclicks-be/internal/repository/contract"
	"mathclicks-be/pkg/drill"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, studentId, topic string, tier int, extraction entity.Extraction, problems []drill.Problem) (*entity.PracticeSession, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.PracticeSession, error)
	Save(ctx context.Context, session *entity.PracticeSession) error
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowSessionResponse, error)
	List(ctx context.Context, studentId string) (*dto.ListSessionsResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Current(ctx context.Context, studentId string) (*dto.ShowSessionResponse, error)
	ReviewProblems(ctx context.Context, id uuid.UUID, count int) (*dto.ReviewProblemsResponse, error)
}

type sessionService struct {
	store     contract.SessionStore
	generator *drill.Generator
	logger    logger.ILogger
}

func NewSessionService(store contract.SessionStore, log logger.ILogger) ISessionService {
	return &sessionService{
		store:     store,
		generator: drill.NewGenerator(),
		logger:    log,
	}
}

// Create stores a new session and always makes it the student's current one.
func (s *sessionService) Create(ctx context.Context, studentId, topic string, tier int, extraction entity.Extraction, problems []drill.Problem) (*entity.PracticeSession, error) {
	status := entity.SessionStatusLoading
	if len(problems) > 0 {
		status = entity.SessionStatusActive
	}

	now := time.Now()
	session := &entity.PracticeSession{
		Id:              uuid.New(),
		StudentId:       studentId,
		Topic:           topic,
		Tier:            tier,
		Status:          status,
		Extraction:      extraction,
		Problems:        problems,
		CurrentIndex:    0,
		Attempts:        map[string]int{},
		Results:         map[string]bool{},
		ProblemAttempts: map[string][]string{},
		CreatedAt:       now,
		UpdatedAt:       &now,
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	if err := s.store.SetCurrent(ctx, studentId, session.Id); err != nil {
		return nil, err
	}

	s.logger.Info("SessionService", "Session created", map[string]interface{}{
		"session_id": session.Id,
		"student_id": studentId,
		"topic":      topic,
	})

	return session, nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*entity.PracticeSession, error) {
	return s.store.FindById(ctx, id)
}

func (s *sessionService) Save(ctx context.Context, session *entity.PracticeSession) error {
	now := time.Now()
	session.UpdatedAt = &now
	return s.store.Save(ctx, session)
}

func (s *sessionService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowSessionResponse, error) {
	session, err := s.store.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return toShowResponse(session), nil
}

// List returns the student's sessions newest first. Expired sessions are
// swept here: this is the opportunistic cleanup trigger, so a session older
// than the TTL is never visible in a listing.
func (s *sessionService) List(ctx context.Context, studentId string) (*dto.ListSessionsResponse, error) {
	sessions, err := s.store.FindByStudent(ctx, studentId)
	if err != nil {
		return nil, err
	}

	currentId, hasCurrent, err := s.store.GetCurrent(ctx, studentId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	alive := make([]*entity.PracticeSession, 0, len(sessions))
	for _, session := range sessions {
		if session.Expired(now) {
			if err := s.store.Delete(ctx, session.Id); err != nil {
				s.logger.Warn("SessionService", "Failed to sweep expired session", map[string]interface{}{
					"session_id": session.Id,
					"error":      err.Error(),
				})
				continue
			}
			if hasCurrent && currentId == session.Id {
				_ = s.store.ClearCurrent(ctx, studentId)
				hasCurrent = false
			}
			continue
		}
		alive = append(alive, session)
	}

	sort.Slice(alive, func(i, j int) bool {
		return lastTouched(alive[i]).After(lastTouched(alive[j]))
	})

	summaries := make([]dto.SessionSummary, 0, len(alive))
	for _, session := range alive {
		correct := 0
		for _, ok := range session.Results {
			if ok {
				correct++
			}
		}
		summaries = append(summaries, dto.SessionSummary{
			Id:           session.Id,
			Topic:        session.Topic,
			Tier:         session.Tier,
			Status:       session.Status,
			TotalCount:   len(session.Problems),
			CorrectCount: correct,
			Current:      hasCurrent && currentId == session.Id,
			CreatedAt:    session.CreatedAt,
			UpdatedAt:    session.UpdatedAt,
		})
	}

	return &dto.ListSessionsResponse{Sessions: summaries}, nil
}

// Delete removes a session; deleting the current session clears the pointer.
func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	session, err := s.store.FindById(ctx, id)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	currentId, hasCurrent, err := s.store.GetCurrent(ctx, session.StudentId)
	if err != nil {
		return err
	}
	if hasCurrent && currentId == id {
		return s.store.ClearCurrent(ctx, session.StudentId)
	}
	return nil
}

func (s *sessionService) Current(ctx context.Context, studentId string) (*dto.ShowSessionResponse, error) {
	currentId, hasCurrent, err := s.store.GetCurrent(ctx, studentId)
	if err != nil {
		return nil, err
	}
	if !hasCurrent {
		return nil, nil
	}

	session, err := s.store.FindById(ctx, currentId)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired(time.Now()) {
		// Dangling or stale pointer: clear it rather than resurrect.
		_ = s.store.ClearCurrent(ctx, studentId)
		return nil, nil
	}

	return toShowResponse(session), nil
}

// ReviewProblems rebuilds an ephemeral drill set from a stored session's
// problems. Nothing is persisted.
func (s *sessionService) ReviewProblems(ctx context.Context, id uuid.UUID, count int) (*dto.ReviewProblemsResponse, error) {
	session, err := s.store.FindById(ctx, id)
	if err != nil {
		return nil, err
	}

	var problems []drill.Problem
	if session != nil && len(session.Problems) > 0 {
		problems = s.generator.FromProblems(session.Problems, count)
	} else {
		tier := 1
		if session != nil {
			tier = session.Tier
		}
		problems = s.generator.Generate(tier, count)
	}

	return &dto.ReviewProblemsResponse{Problems: problems}, nil
}

func lastTouched(s *entity.PracticeSession) time.Time {
	if s.UpdatedAt != nil {
		return *s.UpdatedAt
	}
	return s.CreatedAt
}

func toShowResponse(session *entity.PracticeSession) *dto.ShowSessionResponse {
	return &dto.ShowSessionResponse{
		Id:              session.Id,
		StudentId:       session.StudentId,
		Topic:           session.Topic,
		Tier:            session.Tier,
		Status:          session.Status,
		Extraction:      session.Extraction,
		Problems:        session.Problems,
		CurrentIndex:    session.CurrentIndex,
		Attempts:        session.Attempts,
		Results:         session.Results,
		ProblemAttempts: session.ProblemAttempts,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}
