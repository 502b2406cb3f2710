package contract

import (
	"context"

	"mathclicks-be/internal/entity"

	"github.com/google/uuid"
)

// SessionStore holds practice sessions plus the per-student current-session
// pointer. Two implementations exist: a GORM/Postgres store and a go-cache
// in-memory store used when no database is configured (and by tests).
//
// The pointer invariant (at most one current session per student; deleting
// the current session clears the pointer) is enforced by SessionService, not
// here. The store only provides the primitives.
type SessionStore interface {
	Save(ctx context.Context, session *entity.PracticeSession) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.PracticeSession, error)
	FindByStudent(ctx context.Context, studentId string) ([]*entity.PracticeSession, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SetCurrent(ctx context.Context, studentId string, sessionId uuid.UUID) error
	GetCurrent(ctx context.Context, studentId string) (uuid.UUID, bool, error)
	ClearCurrent(ctx context.Context, studentId string) error
}
