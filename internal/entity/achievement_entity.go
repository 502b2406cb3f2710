package entity

import (
	"time"

	"github.com/google/uuid"
)

// Achievement codes detected by the progress consumer.
const (
	AchievementFirstCorrect    = "FIRST_CORRECT"
	AchievementThreeStreak     = "THREE_STREAK"
	AchievementSessionComplete = "SESSION_COMPLETE"
)

// Achievement is a badge earned by a student, surfaced on the class monitor.
type Achievement struct {
	Id        uuid.UUID
	ClassId   uuid.UUID
	StudentId string
	Code      string
	Label     string
	EarnedAt  time.Time
}
