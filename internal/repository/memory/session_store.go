package memory

import (
	"context"
	"time"

	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Cache key prefixes, carried over from the browser-storage keys this store
// replaces.
const (
	sessionKeyPrefix = "mathclicks_sessions:"
	currentKeyPrefix = "mathclicks_current_session:"
	studentKeyPrefix = "mathclicks_student_index:"
)

// SessionStore is the in-memory fallback used when no database is
// configured. Entries ride go-cache's own expiration as a backstop; the
// 7-day listing sweep in SessionService is authoritative.
type SessionStore struct {
	cache *cache.Cache
}

func NewSessionStore() *SessionStore {
	c := cache.New(entity.SessionTTL, 6*time.Hour)
	return &SessionStore{cache: c}
}

var _ contract.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) Save(_ context.Context, session *entity.PracticeSession) error {
	cp := *session
	s.cache.Set(sessionKeyPrefix+session.Id.String(), &cp, cache.DefaultExpiration)
	s.indexStudent(session.StudentId, session.Id)
	return nil
}

func (s *SessionStore) FindById(_ context.Context, id uuid.UUID) (*entity.PracticeSession, error) {
	if x, found := s.cache.Get(sessionKeyPrefix + id.String()); found {
		cp := *(x.(*entity.PracticeSession))
		return &cp, nil
	}
	return nil, nil
}

func (s *SessionStore) FindByStudent(_ context.Context, studentId string) ([]*entity.PracticeSession, error) {
	ids := s.studentIndex(studentId)
	sessions := make([]*entity.PracticeSession, 0, len(ids))
	for _, id := range ids {
		if x, found := s.cache.Get(sessionKeyPrefix + id.String()); found {
			cp := *(x.(*entity.PracticeSession))
			sessions = append(sessions, &cp)
		}
	}
	return sessions, nil
}

func (s *SessionStore) Delete(_ context.Context, id uuid.UUID) error {
	if x, found := s.cache.Get(sessionKeyPrefix + id.String()); found {
		session := x.(*entity.PracticeSession)
		s.unindexStudent(session.StudentId, id)
	}
	s.cache.Delete(sessionKeyPrefix + id.String())
	return nil
}

func (s *SessionStore) SetCurrent(_ context.Context, studentId string, sessionId uuid.UUID) error {
	s.cache.Set(currentKeyPrefix+studentId, sessionId, cache.NoExpiration)
	return nil
}

func (s *SessionStore) GetCurrent(_ context.Context, studentId string) (uuid.UUID, bool, error) {
	if x, found := s.cache.Get(currentKeyPrefix + studentId); found {
		return x.(uuid.UUID), true, nil
	}
	return uuid.Nil, false, nil
}

func (s *SessionStore) ClearCurrent(_ context.Context, studentId string) error {
	s.cache.Delete(currentKeyPrefix + studentId)
	return nil
}

// studentIndex maps a student to their session ids. Single-writer per
// student in practice (one device per student id), so no extra locking
// beyond go-cache's own.

func (s *SessionStore) studentIndex(studentId string) []uuid.UUID {
	if x, found := s.cache.Get(studentKeyPrefix + studentId); found {
		return x.([]uuid.UUID)
	}
	return nil
}

func (s *SessionStore) indexStudent(studentId string, id uuid.UUID) {
	ids := s.studentIndex(studentId)
	for _, existing := range ids {
		if existing == id {
			return
		}
	}
	s.cache.Set(studentKeyPrefix+studentId, append(ids, id), cache.NoExpiration)
}

func (s *SessionStore) unindexStudent(studentId string, id uuid.UUID) {
	ids := s.studentIndex(studentId)
	for i, existing := range ids {
		if existing == id {
			s.cache.Set(studentKeyPrefix+studentId, append(ids[:i:i], ids[i+1:]...), cache.NoExpiration)
			return
		}
	}
}
