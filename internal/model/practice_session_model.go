package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PracticeSession struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentId       string         `gorm:"type:varchar(64);not null;index"`
	Topic           string         `gorm:"type:varchar(255)"`
	Tier            int            `gorm:"not null;default:1"`
	Status          string         `gorm:"type:varchar(16);not null;default:'loading'"`
	Extraction      datatypes.JSON `gorm:"type:jsonb"`
	Problems        datatypes.JSON `gorm:"type:jsonb"`
	CurrentIndex    int            `gorm:"not null;default:0"`
	Attempts        datatypes.JSON `gorm:"type:jsonb"`
	Results         datatypes.JSON `gorm:"type:jsonb"`
	ProblemAttempts datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}

// CurrentSession is the per-student pointer to the active session. Kept as
// its own row rather than a flag so at most one can exist per student.
type CurrentSession struct {
	StudentId string    `gorm:"type:varchar(64);primaryKey"`
	SessionId uuid.UUID `gorm:"type:uuid;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CurrentSession) TableName() string {
	return "current_sessions"
}
