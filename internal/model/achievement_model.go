package model

import (
	"time"

	"github.com/google/uuid"
)

type Achievement struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClassId   uuid.UUID `gorm:"type:uuid;not null;index"`
	StudentId string    `gorm:"type:varchar(64);not null;index"`
	Code      string    `gorm:"type:varchar(32);not null"`
	Label     string    `gorm:"type:varchar(255);not null"`
	EarnedAt  time.Time `gorm:"autoCreateTime"`
}

func (Achievement) TableName() string {
	return "achievements"
}
