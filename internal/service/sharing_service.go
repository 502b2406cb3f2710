package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/pkg/logger"
	"mathclicks-be/pkg/upstream"

	gocache "github.com/patrickmn/go-cache"
)

// sharingKeyPrefix matches the key shape the web client used for its local
// sharing flag, kept for continuity in logs and dumps.
const sharingKeyPrefix = "mathclicks-teacher-sharing:"

const sharingPushInterval = 30 * time.Second

type ISharingService interface {
	Start(ctx context.Context, req dto.StartSharingRequest) error
	Stop(ctx context.Context, studentId string) error
	State(ctx context.Context, studentId string) (*dto.SharingStateResponse, error)

	// PushNow pushes one student's snapshot immediately, outside the ticker.
	PushNow(ctx context.Context, studentId string)

	// Run drives the periodic push loop until ctx is cancelled.
	Run(ctx context.Context)
}

// sharingState is the cached record for one sharing student.
type sharingState struct {
	StudentId   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	ClassCode   string    `json:"class_code"`
	StartedAt   time.Time `json:"started_at"`
}

type sharingService struct {
	cache    *gocache.Cache
	sessions ISessionService
	classes  IClassService
	upstream *upstream.Client
	logger   logger.ILogger
}

func NewSharingService(sessions ISessionService, classes IClassService, upstreamClient *upstream.Client, log logger.ILogger) ISharingService {
	return &sharingService{
		cache:    gocache.New(gocache.NoExpiration, 10*time.Minute),
		sessions: sessions,
		classes:  classes,
		upstream: upstreamClient,
		logger:   log,
	}
}

// Start turns sharing on for a student and pushes a first snapshot right away
// so the monitor doesn't wait a full tick.
func (s *sharingService) Start(ctx context.Context, req dto.StartSharingRequest) error {
	state := sharingState{
		StudentId:   req.StudentId,
		StudentName: req.StudentName,
		ClassCode:   req.ClassCode,
		StartedAt:   time.Now(),
	}
	s.cache.Set(sharingKeyPrefix+req.StudentId, state, gocache.NoExpiration)

	s.logger.Info("SharingService", "Sharing started", map[string]interface{}{
		"student_id": req.StudentId,
		"class_code": req.ClassCode,
	})

	s.PushNow(ctx, req.StudentId)
	return nil
}

func (s *sharingService) Stop(ctx context.Context, studentId string) error {
	s.cache.Delete(sharingKeyPrefix + studentId)
	s.logger.Info("SharingService", "Sharing stopped", map[string]interface{}{
		"student_id": studentId,
	})
	return nil
}

func (s *sharingService) State(ctx context.Context, studentId string) (*dto.SharingStateResponse, error) {
	raw, found := s.cache.Get(sharingKeyPrefix + studentId)
	if !found {
		return &dto.SharingStateResponse{Sharing: false}, nil
	}
	state := raw.(sharingState)
	return &dto.SharingStateResponse{
		Sharing:     true,
		ClassCode:   state.ClassCode,
		StudentName: state.StudentName,
		StartedAt:   &state.StartedAt,
	}, nil
}

func (s *sharingService) PushNow(ctx context.Context, studentId string) {
	raw, found := s.cache.Get(sharingKeyPrefix + studentId)
	if !found {
		return
	}
	s.push(ctx, raw.(sharingState))
}

// Run pushes every sharing student's snapshot on a fixed interval. Push
// failures are logged and retried next tick, never fatal.
func (s *sharingService) Run(ctx context.Context) {
	ticker := time.NewTicker(sharingPushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for key, item := range s.cache.Items() {
				if !strings.HasPrefix(key, sharingKeyPrefix) {
					continue
				}
				s.push(ctx, item.Object.(sharingState))
			}
		}
	}
}

func (s *sharingService) push(ctx context.Context, state sharingState) {
	if state.ClassCode == "" {
		return
	}

	session, err := s.sessions.Current(ctx, state.StudentId)
	if err != nil {
		s.logger.Warn("SharingService", "Could not load current session for push", map[string]interface{}{
			"student_id": state.StudentId,
			"error":      err.Error(),
		})
		return
	}
	if session == nil {
		return
	}

	update := dto.UpdateClassRequest{
		ClassCode:   state.ClassCode,
		StudentId:   state.StudentId,
		StudentName: state.StudentName,
		Snapshot:    snapshotOf(session),
	}

	switch {
	case s.upstream.Configured():
		body, err := json.Marshal(update)
		if err != nil {
			return
		}
		if _, err := s.upstream.ForwardJSON(ctx, "/api/class/update", body); err != nil {
			s.logger.Warn("SharingService", "Snapshot push to backend failed", map[string]interface{}{
				"student_id": state.StudentId,
				"error":      err.Error(),
			})
		}
	case s.classes != nil:
		if err := s.classes.Update(ctx, update); err != nil {
			s.logger.Warn("SharingService", "Snapshot update failed", map[string]interface{}{
				"student_id": state.StudentId,
				"error":      err.Error(),
			})
		}
	}
}

func snapshotOf(session *dto.ShowSessionResponse) entity.ProgressSnapshot {
	correct := 0
	for _, ok := range session.Results {
		if ok {
			correct++
		}
	}
	attempts := 0
	for _, n := range session.Attempts {
		attempts += n
	}

	return entity.ProgressSnapshot{
		Topic:        session.Topic,
		Status:       session.Status,
		CurrentIndex: session.CurrentIndex,
		TotalCount:   len(session.Problems),
		CorrectCount: correct,
		AttemptCount: attempts,
		LastActiveAt: session.UpdatedAt,
	}
}
