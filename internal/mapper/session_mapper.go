package mapper

import (
	"encoding/json"
	"time"

	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/model"

	"gorm.io/datatypes"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.PracticeSession) *entity.PracticeSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	e := &entity.PracticeSession{
		Id:              s.Id,
		StudentId:       s.StudentId,
		Topic:           s.Topic,
		Tier:            s.Tier,
		Status:          s.Status,
		CurrentIndex:    s.CurrentIndex,
		Attempts:        map[string]int{},
		Results:         map[string]bool{},
		ProblemAttempts: map[string][]string{},
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       updatedAt,
	}

	// JSONB columns round-trip through encoding/json; a corrupt column
	// degrades to the zero value rather than failing the read.
	_ = json.Unmarshal(s.Extraction, &e.Extraction)
	_ = json.Unmarshal(s.Problems, &e.Problems)
	_ = json.Unmarshal(s.Attempts, &e.Attempts)
	_ = json.Unmarshal(s.Results, &e.Results)
	_ = json.Unmarshal(s.ProblemAttempts, &e.ProblemAttempts)

	return e
}

func (m *SessionMapper) ToModel(e *entity.PracticeSession) *model.PracticeSession {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.PracticeSession{
		Id:              e.Id,
		StudentId:       e.StudentId,
		Topic:           e.Topic,
		Tier:            e.Tier,
		Status:          e.Status,
		Extraction:      marshalJSON(e.Extraction),
		Problems:        marshalJSON(e.Problems),
		CurrentIndex:    e.CurrentIndex,
		Attempts:        marshalJSON(e.Attempts),
		Results:         marshalJSON(e.Results),
		ProblemAttempts: marshalJSON(e.ProblemAttempts),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *SessionMapper) ToEntities(sessions []*model.PracticeSession) []*entity.PracticeSession {
	entities := make([]*entity.PracticeSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func marshalJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(data)
}
