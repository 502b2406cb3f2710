package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCode filters classes by their join code.
type ByCode struct {
	Code string
}

func (s ByCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

// ByClassId scopes members and achievements to one class.
type ByClassId struct {
	ClassId uuid.UUID
}

func (s ByClassId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("class_id = ?", s.ClassId)
}

// ByStudentId scopes rows to one student.
type ByStudentId struct {
	StudentId string
}

func (s ByStudentId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("student_id = ?", s.StudentId)
}
