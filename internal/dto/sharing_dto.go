package dto

import "time"

type StartSharingRequest struct {
	StudentId   string `json:"student_id" validate:"required"`
	StudentName string `json:"student_name" validate:"required"`
	ClassCode   string `json:"class_code" validate:"required"`
}

type StopSharingRequest struct {
	StudentId string `json:"student_id" validate:"required"`
}

type SharingStateResponse struct {
	Sharing     bool       `json:"sharing"`
	ClassCode   string     `json:"class_code,omitempty"`
	StudentName string     `json:"student_name,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
}
