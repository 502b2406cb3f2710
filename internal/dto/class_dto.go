package dto

import (
	"time"

	"mathclicks-be/internal/entity"
)

type CreateClassRequest struct {
	TeacherName  string `json:"teacher_name" validate:"required"`
	ClassName    string `json:"class_name" validate:"required"`
	Pin          string `json:"pin" validate:"required,min=4"`
	TeacherEmail string `json:"teacher_email" validate:"omitempty,email"`
}

type CreateClassResponse struct {
	ClassCode string `json:"class_code"`
}

type UpdateClassRequest struct {
	ClassCode   string                  `json:"class_code" validate:"required"`
	StudentId   string                  `json:"student_id" validate:"required"`
	StudentName string                  `json:"student_name" validate:"required"`
	Snapshot    entity.ProgressSnapshot `json:"snapshot"`
}

type ClassAchievementRequest struct {
	ClassCode string `json:"class_code" validate:"required"`
	StudentId string `json:"student_id" validate:"required"`
	Code      string `json:"code" validate:"required"`
	Label     string `json:"label"`
}

type TeacherTokenRequest struct {
	ClassCode string `json:"class_code" validate:"required"`
	Pin       string `json:"pin" validate:"required"`
}

type TeacherTokenResponse struct {
	Token string `json:"token"`
}

type MemberProgress struct {
	StudentId   string                  `json:"student_id"`
	StudentName string                  `json:"student_name"`
	Snapshot    entity.ProgressSnapshot `json:"snapshot"`
	UpdatedAt   *time.Time              `json:"updated_at"`
}

type EarnedAchievement struct {
	StudentId string    `json:"student_id"`
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	EarnedAt  time.Time `json:"earned_at"`
}

type ClassProgressResponse struct {
	ClassName    string              `json:"class_name"`
	Members      []MemberProgress    `json:"members"`
	Achievements []EarnedAchievement `json:"achievements"`
}
