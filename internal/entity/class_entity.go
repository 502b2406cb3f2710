package entity

import (
	"time"

	"github.com/google/uuid"
)

// Class is a teacher-created monitoring group. Students attach to it with
// the short join code; the PIN (stored hashed) gates the monitor view.
type Class struct {
	Id           uuid.UUID
	Code         string
	Name         string
	TeacherName  string
	TeacherEmail string
	PinHash      string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// ProgressSnapshot is the per-student state pushed by the sharing loop and
// shown on the class monitor.
type ProgressSnapshot struct {
	Topic        string     `json:"topic"`
	Status       string     `json:"status"`
	CurrentIndex int        `json:"current_index"`
	TotalCount   int        `json:"total_count"`
	CorrectCount int        `json:"correct_count"`
	AttemptCount int        `json:"attempt_count"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}

// ClassMember is one sharing student's latest snapshot within a class.
type ClassMember struct {
	Id          uuid.UUID
	ClassId     uuid.UUID
	StudentId   string
	StudentName string
	Snapshot    ProgressSnapshot
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
