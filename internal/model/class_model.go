package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Class struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code         string         `gorm:"type:varchar(8);not null;uniqueIndex"`
	Name         string         `gorm:"type:varchar(255);not null"`
	TeacherName  string         `gorm:"type:varchar(255);not null"`
	TeacherEmail string         `gorm:"type:varchar(255)"`
	PinHash      string         `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Class) TableName() string {
	return "classes"
}

type ClassMember struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClassId     uuid.UUID      `gorm:"type:uuid;not null;index:idx_class_student,unique"`
	StudentId   string         `gorm:"type:varchar(64);not null;index:idx_class_student,unique"`
	StudentName string         `gorm:"type:varchar(255);not null"`
	Snapshot    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (ClassMember) TableName() string {
	return "class_members"
}
