package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	ProfessionalID  string    `json:"professional_id" validate:"required,uuid"`
	HospitalID      string    `json:"hospital_id" validate:"omitempty,uuid"`
	SpecialtyID     string    `json:"specialty_id" validate:"omitempty,uuid"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=10,max=240"`
	Type            string    `json:"type" validate:"required,oneof=in_person online"`
	Reason          string    `json:"reason" validate:"omitempty,max=1000"`
	Notes           string    `json:"notes"`
}

// UpdateAppointmentRequest - nil fields are left unchanged
type UpdateAppointmentRequest struct {
	ScheduledAt     *time.Time `json:"scheduled_at"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,min=10,max=240"`
	Type            *string    `json:"type" validate:"omitempty,oneof=in_person online"`
	Reason          *string    `json:"reason" validate:"omitempty,max=1000"`
	Notes           *string    `json:"notes"`
}

type UpdateAppointmentStatusRequest struct {
	Status       string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
	CancelReason string `json:"cancel_reason" validate:"omitempty,max=1000"`
}

type AppointmentListQuery struct {
	Statuses []string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID          `json:"id"`
	Patient         UserSummary        `json:"patient"`
	Professional    UserSummary        `json:"professional"`
	Hospital        *HospitalResponse  `json:"hospital,omitempty"`
	Specialty       *SpecialtyResponse `json:"specialty,omitempty"`
	ScheduledAt     time.Time          `json:"scheduled_at"`
	DurationMinutes int                `json:"duration_minutes"`
	Type            string             `json:"type"`
	Status          string             `json:"status"`
	Reason          string             `json:"reason,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	CancelReason    string             `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
