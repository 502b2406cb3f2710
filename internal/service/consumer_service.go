package service

import (
	"context"
	"encoding/json"

	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/pkg/logger"
	"mathclicks-be/pkg/upstream"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Achievement labels shown on the class monitor.
var achievementLabels = map[string]string{
	entity.AchievementFirstCorrect:    "First correct answer!",
	entity.AchievementThreeStreak:     "Three in a row!",
	entity.AchievementSessionComplete: "Finished the whole set!",
}

// IConsumerService drains the in-process progress topic: each practice event
// refreshes the student's shared snapshot and may earn an achievement.
type IConsumerService interface {
	Start(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topic      string
	sessions   ISessionService
	sharing    ISharingService
	classes    IClassService
	upstream   *upstream.Client
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topic string,
	sessions ISessionService,
	sharing ISharingService,
	classes IClassService,
	upstreamClient *upstream.Client,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topic:      topic,
		sessions:   sessions,
		sharing:    sharing,
		classes:    classes,
		upstream:   upstreamClient,
		logger:     log,
	}
}

func (s *consumerService) Start(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.process(ctx, msg)
			msg.Ack()
		}
	}()

	s.logger.Info("ConsumerService", "Progress consumer started", map[string]interface{}{
		"topic": s.topic,
	})
	return nil
}

func (s *consumerService) process(ctx context.Context, msg *message.Message) {
	var event dto.PublishPracticeEventMessage
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		s.logger.Warn("ConsumerService", "Dropping malformed practice event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	state, err := s.sharing.State(ctx, event.StudentId)
	if err != nil || !state.Sharing {
		// Nothing to do for students who aren't sharing.
		return
	}

	s.sharing.PushNow(ctx, event.StudentId)

	switch event.Type {
	case dto.PracticeEventAnswerSubmitted:
		if event.Correct {
			s.checkAnswerAchievements(ctx, event, state.ClassCode)
		}
	case dto.PracticeEventSessionCompleted:
		s.award(ctx, state.ClassCode, event.StudentId, entity.AchievementSessionComplete)
	}
}

// checkAnswerAchievements inspects the session after a correct answer and
// awards FIRST_CORRECT on the first one and THREE_STREAK when the last three
// resolved problems in set order were all correct.
func (s *consumerService) checkAnswerAchievements(ctx context.Context, event dto.PublishPracticeEventMessage, classCode string) {
	session, err := s.sessions.Get(ctx, event.SessionId)
	if err != nil || session == nil {
		return
	}

	correctCount := 0
	for _, ok := range session.Results {
		if ok {
			correctCount++
		}
	}
	if correctCount == 1 {
		s.award(ctx, classCode, event.StudentId, entity.AchievementFirstCorrect)
	}

	if trailingStreak(session) == 3 {
		s.award(ctx, classCode, event.StudentId, entity.AchievementThreeStreak)
	}
}

// trailingStreak counts consecutive correct results at the end of the resolved
// prefix of the problem set.
func trailingStreak(session *entity.PracticeSession) int {
	streak := 0
	for _, p := range session.Problems {
		correct, resolved := session.Results[p.Id]
		if !resolved {
			break
		}
		if correct {
			streak++
		} else {
			streak = 0
		}
	}
	return streak
}

// award records an achievement locally or relays it to the configured backend,
// mirroring how snapshot pushes choose their leg.
func (s *consumerService) award(ctx context.Context, classCode, studentId, code string) {
	req := dto.ClassAchievementRequest{
		ClassCode: classCode,
		StudentId: studentId,
		Code:      code,
		Label:     achievementLabels[code],
	}

	switch {
	case s.upstream.Configured():
		body, err := json.Marshal(req)
		if err != nil {
			return
		}
		if _, err := s.upstream.ForwardJSON(ctx, "/api/class/achievement", body); err != nil {
			s.logger.Warn("ConsumerService", "Achievement relay failed", map[string]interface{}{
				"student_id": studentId,
				"code":       code,
				"error":      err.Error(),
			})
		}
	case s.classes != nil:
		if err := s.classes.RecordAchievement(ctx, req); err != nil {
			s.logger.Warn("ConsumerService", "Achievement not recorded", map[string]interface{}{
				"student_id": studentId,
				"code":       code,
				"error":      err.Error(),
			})
		}
	}
}
