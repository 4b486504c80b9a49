package entity

import "time"

type ExamStatus string

const (
	ExamStatusPending   ExamStatus = "pending"
	ExamStatusCompleted ExamStatus = "completed"
	ExamStatusReviewed  ExamStatus = "reviewed"
)

// ExamResult is a lab or imaging result kept in the document store
type ExamResult struct {
	ID             string     `firestore:"-" json:"id"`
	PatientID      string     `firestore:"patient_id" json:"patient_id"`
	ProfessionalID string     `firestore:"professional_id" json:"professional_id"`
	ExamType       string     `firestore:"exam_type" json:"exam_type"`
	ExamDate       time.Time  `firestore:"exam_date" json:"exam_date"`
	Result         string     `firestore:"result" json:"result,omitempty"`
	ReferenceRange string     `firestore:"reference_range" json:"reference_range,omitempty"`
	Status         ExamStatus `firestore:"status" json:"status"`
	Notes          string     `firestore:"notes" json:"notes,omitempty"`
	FileURL        string     `firestore:"file_url" json:"file_url,omitempty"`
	CreatedAt      time.Time  `firestore:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `firestore:"updated_at" json:"updated_at"`
}

type ExamResultFilter struct {
	PatientID string
}
