package dto

import "time"

type CreateExamResultRequest struct {
	PatientID      string `json:"patient_id" validate:"required,uuid"`
	ExamType       string `json:"exam_type" validate:"required,max=100"`
	ExamDate       string `json:"exam_date" validate:"required,datetime=2006-01-02"`
	Result         string `json:"result"`
	ReferenceRange string `json:"reference_range"`
	Status         string `json:"status" validate:"omitempty,oneof=pending completed reviewed"`
	Notes          string `json:"notes"`
	FileURL        string `json:"file_url" validate:"omitempty,url"`
}

type UpdateExamResultRequest struct {
	ExamType       *string `json:"exam_type" validate:"omitempty,max=100"`
	ExamDate       *string `json:"exam_date" validate:"omitempty,datetime=2006-01-02"`
	Result         *string `json:"result"`
	ReferenceRange *string `json:"reference_range"`
	Status         *string `json:"status" validate:"omitempty,oneof=pending completed reviewed"`
	Notes          *string `json:"notes"`
	FileURL        *string `json:"file_url" validate:"omitempty,url"`
}

type ExamResultResponse struct {
	ID             string    `json:"id"`
	PatientID      string    `json:"patient_id"`
	ProfessionalID string    `json:"professional_id"`
	ExamType       string    `json:"exam_type"`
	ExamDate       string    `json:"exam_date"`
	Result         string    `json:"result,omitempty"`
	ReferenceRange string    `json:"reference_range,omitempty"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	FileURL        string    `json:"file_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
