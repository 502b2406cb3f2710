package service

import (
	"context"
	"testing"

	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/repository/memory"
	"mathclicks-be/pkg/drill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events []dto.PublishPracticeEventMessage
}

func (p *recordingPublisher) PublishPracticeEvent(msg dto.PublishPracticeEventMessage) error {
	p.events = append(p.events, msg)
	return nil
}

func fixedProblems() []drill.Problem {
	return []drill.Problem{
		{
			Id: "p1", Tier: 1, Text: "2 + 3 = ?", Answer: "5", AnswerType: drill.AnswerTypeNumber,
			Hints:         []string{"hint one", "hint two", "hint three"},
			SolutionSteps: []string{"step one", "step two"},
		},
		{
			Id: "p2", Tier: 1, Text: "4 + 4 = ?", Answer: "8", AnswerType: drill.AnswerTypeNumber,
			Hints:         []string{"hint one", "hint two", "hint three"},
			SolutionSteps: []string{"step one", "step two"},
		},
	}
}

func newPracticeFixture(t *testing.T) (IPracticeService, *entity.PracticeSession, *recordingPublisher) {
	t.Helper()
	ctx := context.Background()

	sessions := NewSessionService(memory.NewSessionStore(), nopLogger{})
	publisher := &recordingPublisher{}
	practice := NewPracticeService(sessions, nil, publisher, nopLogger{})

	session, err := sessions.Create(ctx, "student-1", "Addition", 1, entity.Extraction{}, fixedProblems())
	require.NoError(t, err)
	return practice, session, publisher
}

func TestCheckAnswerCorrectAdvances(t *testing.T) {
	ctx := context.Background()
	practice, session, publisher := newPracticeFixture(t)

	res, err := practice.CheckAnswer(ctx, dto.CheckAnswerRequest{
		SessionId: session.Id, ProblemId: "p1", Answer: "5",
	})
	require.NoError(t, err)

	assert.True(t, res.Correct)
	assert.Equal(t, 1, res.Attempts)
	assert.Empty(t, res.Hint)
	assert.Equal(t, 1, res.CurrentIndex)
	assert.Equal(t, entity.SessionStatusActive, res.SessionStatus)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, dto.PracticeEventAnswerSubmitted, publisher.events[0].Type)
	assert.True(t, publisher.events[0].Correct)
}

func TestCheckAnswerHintProgression(t *testing.T) {
	ctx := context.Background()
	practice, session, _ := newPracticeFixture(t)

	req := dto.CheckAnswerRequest{SessionId: session.Id, ProblemId: "p1", Answer: "99"}

	res, err := practice.CheckAnswer(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "hint one", res.Hint)
	assert.Empty(t, res.SolutionSteps)
	assert.Equal(t, 0, res.CurrentIndex)

	res, err = practice.CheckAnswer(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "hint two", res.Hint)

	// Third miss reveals the solution and moves on.
	res, err = practice.CheckAnswer(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, drill.MaxAttempts, res.Attempts)
	assert.Empty(t, res.Hint)
	assert.NotEmpty(t, res.SolutionSteps)
	assert.Equal(t, 1, res.CurrentIndex)
}

func TestCheckAnswerNumericTolerance(t *testing.T) {
	ctx := context.Background()
	practice, session, _ := newPracticeFixture(t)

	res, err := practice.CheckAnswer(ctx, dto.CheckAnswerRequest{
		SessionId: session.Id, ProblemId: "p1", Answer: "5.001",
	})
	require.NoError(t, err)
	assert.True(t, res.Correct)
}

func TestCheckAnswerCompletesSession(t *testing.T) {
	ctx := context.Background()
	practice, session, publisher := newPracticeFixture(t)

	_, err := practice.CheckAnswer(ctx, dto.CheckAnswerRequest{
		SessionId: session.Id, ProblemId: "p1", Answer: "5",
	})
	require.NoError(t, err)

	res, err := practice.CheckAnswer(ctx, dto.CheckAnswerRequest{
		SessionId: session.Id, ProblemId: "p2", Answer: "8",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SessionStatusComplete, res.SessionStatus)
	assert.Equal(t, 2, res.CurrentIndex)

	var types []string
	for _, e := range publisher.events {
		types = append(types, e.Type)
	}
	assert.Contains(t, types, dto.PracticeEventSessionCompleted)
}

func TestCheckAnswerResolvedProblemIsFrozen(t *testing.T) {
	ctx := context.Background()
	practice, session, _ := newPracticeFixture(t)

	_, err := practice.CheckAnswer(ctx, dto.CheckAnswerRequest{
		SessionId: session.Id, ProblemId: "p1", Answer: "5",
	})
	require.NoError(t, err)

	// Re-answering doesn't add attempts or change the result.
	res, err := practice.CheckAnswer(ctx, dto.CheckAnswerRequest{
		SessionId: session.Id, ProblemId: "p1", Answer: "99",
	})
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 1, res.Attempts)
}

func TestGenerateProblemsFallsBackWithoutModel(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionService(memory.NewSessionStore(), nopLogger{})
	practice := NewPracticeService(sessions, nil, nil, nopLogger{})

	res, err := practice.GenerateProblems(ctx, dto.GenerateProblemsRequest{Topic: "Multiplication", Tier: 4, Count: 7})
	require.NoError(t, err)
	require.Len(t, res.Problems, 7)
	for _, p := range res.Problems {
		assert.Equal(t, 4, p.Tier)
		assert.NotEmpty(t, p.Answer)
		assert.Len(t, p.Hints, drill.MaxAttempts)
	}
}
