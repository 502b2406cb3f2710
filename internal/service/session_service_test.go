package service

import (
	"context"
	"testing"
	"time"

	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/repository/memory"
	"mathclicks-be/pkg/drill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func testProblems(count int) []drill.Problem {
	return drill.NewSeededGenerator(42).Generate(2, count)
}

func TestCreateSetsCurrentSession(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(memory.NewSessionStore(), nopLogger{})

	session, err := svc.Create(ctx, "student-1", "Addition", 2, entity.Extraction{Topic: "Addition"}, testProblems(5))
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusActive, session.Status)

	current, err := svc.Current(ctx, "student-1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, session.Id, current.Id)

	// A second session replaces the pointer.
	second, err := svc.Create(ctx, "student-1", "Subtraction", 2, entity.Extraction{}, testProblems(5))
	require.NoError(t, err)

	current, err = svc.Current(ctx, "student-1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, second.Id, current.Id)
}

func TestDeleteClearsCurrentPointer(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(memory.NewSessionStore(), nopLogger{})

	first, err := svc.Create(ctx, "student-1", "Addition", 1, entity.Extraction{}, testProblems(3))
	require.NoError(t, err)
	second, err := svc.Create(ctx, "student-1", "Subtraction", 1, entity.Extraction{}, testProblems(3))
	require.NoError(t, err)

	// Deleting a non-current session leaves the pointer alone.
	require.NoError(t, svc.Delete(ctx, first.Id))
	current, err := svc.Current(ctx, "student-1")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, second.Id, current.Id)

	// Deleting the current session clears it.
	require.NoError(t, svc.Delete(ctx, second.Id))
	current, err = svc.Current(ctx, "student-1")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestListSweepsExpiredSessions(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	svc := NewSessionService(store, nopLogger{})

	fresh, err := svc.Create(ctx, "student-1", "Addition", 1, entity.Extraction{}, testProblems(3))
	require.NoError(t, err)

	stale, err := svc.Create(ctx, "student-1", "Subtraction", 1, entity.Extraction{}, testProblems(3))
	require.NoError(t, err)

	// Age the second session past the TTL.
	old := time.Now().Add(-entity.SessionTTL - time.Hour)
	stale.CreatedAt = old
	stale.UpdatedAt = &old
	require.NoError(t, store.Save(ctx, stale))

	list, err := svc.List(ctx, "student-1")
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, fresh.Id, list.Sessions[0].Id)

	// The swept session is gone from the store, not just hidden.
	got, err := store.FindById(ctx, stale.Id)
	require.NoError(t, err)
	assert.Nil(t, got)

	// The stale session was current; the sweep must clear the pointer too.
	current, err := svc.Current(ctx, "student-1")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestListMarksCurrentAndCountsCorrect(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(memory.NewSessionStore(), nopLogger{})

	session, err := svc.Create(ctx, "student-1", "Addition", 1, entity.Extraction{}, testProblems(4))
	require.NoError(t, err)

	session.Results[session.Problems[0].Id] = true
	session.Results[session.Problems[1].Id] = false
	require.NoError(t, svc.Save(ctx, session))

	list, err := svc.List(ctx, "student-1")
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)

	summary := list.Sessions[0]
	assert.True(t, summary.Current)
	assert.Equal(t, 4, summary.TotalCount)
	assert.Equal(t, 1, summary.CorrectCount)
}

func TestReviewProblemsUsesStoredSet(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(memory.NewSessionStore(), nopLogger{})

	problems := testProblems(5)
	session, err := svc.Create(ctx, "student-1", "Addition", 1, entity.Extraction{}, problems)
	require.NoError(t, err)

	stored := map[string]bool{}
	for _, p := range problems {
		stored[p.Text] = true
	}

	review, err := svc.ReviewProblems(ctx, session.Id, 3)
	require.NoError(t, err)
	require.Len(t, review.Problems, 3)
	for _, p := range review.Problems {
		assert.True(t, stored[p.Text], "review problem %q should come from the stored set", p.Text)
	}
}
