package mapper

import (
	"encoding/json"
	"time"

	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/model"
)

type ClassMapper struct{}

func NewClassMapper() *ClassMapper {
	return &ClassMapper{}
}

func (m *ClassMapper) ToEntity(c *model.Class) *entity.Class {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Class{
		Id:           c.Id,
		Code:         c.Code,
		Name:         c.Name,
		TeacherName:  c.TeacherName,
		TeacherEmail: c.TeacherEmail,
		PinHash:      c.PinHash,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ClassMapper) ToModel(c *entity.Class) *model.Class {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Class{
		Id:           c.Id,
		Code:         c.Code,
		Name:         c.Name,
		TeacherName:  c.TeacherName,
		TeacherEmail: c.TeacherEmail,
		PinHash:      c.PinHash,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ClassMapper) MemberToEntity(c *model.ClassMember) *entity.ClassMember {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	e := &entity.ClassMember{
		Id:          c.Id,
		ClassId:     c.ClassId,
		StudentId:   c.StudentId,
		StudentName: c.StudentName,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
	}
	_ = json.Unmarshal(c.Snapshot, &e.Snapshot)

	return e
}

func (m *ClassMapper) MemberToModel(e *entity.ClassMember) *model.ClassMember {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.ClassMember{
		Id:          e.Id,
		ClassId:     e.ClassId,
		StudentId:   e.StudentId,
		StudentName: e.StudentName,
		Snapshot:    marshalJSON(e.Snapshot),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ClassMapper) MembersToEntities(members []*model.ClassMember) []*entity.ClassMember {
	entities := make([]*entity.ClassMember, len(members))
	for i, c := range members {
		entities[i] = m.MemberToEntity(c)
	}
	return entities
}

func (m *ClassMapper) AchievementToEntity(a *model.Achievement) *entity.Achievement {
	if a == nil {
		return nil
	}
	return &entity.Achievement{
		Id:        a.Id,
		ClassId:   a.ClassId,
		StudentId: a.StudentId,
		Code:      a.Code,
		Label:     a.Label,
		EarnedAt:  a.EarnedAt,
	}
}

func (m *ClassMapper) AchievementToModel(a *entity.Achievement) *model.Achievement {
	if a == nil {
		return nil
	}
	return &model.Achievement{
		Id:        a.Id,
		ClassId:   a.ClassId,
		StudentId: a.StudentId,
		Code:      a.Code,
		Label:     a.Label,
		EarnedAt:  a.EarnedAt,
	}
}

func (m *ClassMapper) AchievementsToEntities(achievements []*model.Achievement) []*entity.Achievement {
	entities := make([]*entity.Achievement, len(achievements))
	for i, a := range achievements {
		entities[i] = m.AchievementToEntity(a)
	}
	return entities
}
