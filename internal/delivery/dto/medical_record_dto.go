package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMedicalRecordRequest struct {
	PatientID     string `json:"patient_id" validate:"required,uuid"`
	AppointmentID string `json:"appointment_id" validate:"omitempty,uuid"`
	RecordDate    string `json:"record_date" validate:"required,datetime=2006-01-02"`
	Diagnosis     string `json:"diagnosis" validate:"required"`
	Symptoms      string `json:"symptoms"`
	Treatment     string `json:"treatment"`
	Prescription  string `json:"prescription"`
	Notes         string `json:"notes"`
}

type UpdateMedicalRecordRequest struct {
	RecordDate   *string `json:"record_date" validate:"omitempty,datetime=2006-01-02"`
	Diagnosis    *string `json:"diagnosis" validate:"omitempty,min=1"`
	Symptoms     *string `json:"symptoms"`
	Treatment    *string `json:"treatment"`
	Prescription *string `json:"prescription"`
	Notes        *string `json:"notes"`
}

type MedicalRecordResponse struct {
	ID            uuid.UUID   `json:"id"`
	Patient       UserSummary `json:"patient"`
	Professional  UserSummary `json:"professional"`
	AppointmentID *uuid.UUID  `json:"appointment_id,omitempty"`
	RecordDate    string      `json:"record_date"`
	Diagnosis     string      `json:"diagnosis"`
	Symptoms      string      `json:"symptoms,omitempty"`
	Treatment     string      `json:"treatment,omitempty"`
	Prescription  string      `json:"prescription,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
