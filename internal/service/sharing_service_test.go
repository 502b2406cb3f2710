package service

import (
	"context"
	"testing"

	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/repository/memory"
	"mathclicks-be/pkg/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClassService struct {
	IClassService
	updates []dto.UpdateClassRequest
}

func (c *recordingClassService) Update(_ context.Context, req dto.UpdateClassRequest) error {
	c.updates = append(c.updates, req)
	return nil
}

func TestSharingLifecycle(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionService(memory.NewSessionStore(), nopLogger{})
	classes := &recordingClassService{}
	sharing := NewSharingService(sessions, classes, upstream.NewClient(""), nopLogger{})

	state, err := sharing.State(ctx, "student-1")
	require.NoError(t, err)
	assert.False(t, state.Sharing)

	session, err := sessions.Create(ctx, "student-1", "Addition", 2, entity.Extraction{}, fixedProblems())
	require.NoError(t, err)

	require.NoError(t, sharing.Start(ctx, dto.StartSharingRequest{
		StudentId: "student-1", StudentName: "Sam", ClassCode: "ABC234",
	}))

	// Starting pushes the current session right away.
	require.Len(t, classes.updates, 1)
	push := classes.updates[0]
	assert.Equal(t, "ABC234", push.ClassCode)
	assert.Equal(t, "Sam", push.StudentName)
	assert.Equal(t, session.Topic, push.Snapshot.Topic)
	assert.Equal(t, len(session.Problems), push.Snapshot.TotalCount)

	state, err = sharing.State(ctx, "student-1")
	require.NoError(t, err)
	assert.True(t, state.Sharing)
	assert.Equal(t, "ABC234", state.ClassCode)

	require.NoError(t, sharing.Stop(ctx, "student-1"))
	state, err = sharing.State(ctx, "student-1")
	require.NoError(t, err)
	assert.False(t, state.Sharing)

	// Pushes after stop are no-ops.
	sharing.PushNow(ctx, "student-1")
	assert.Len(t, classes.updates, 1)
}
