package dto

import (
	"time"

	"github.com/google/uuid"
)

// BookingStepRequest carries the fields of one wizard step. Only the fields
// belonging to the step being saved are read.
type BookingStepRequest struct {
	SpecialtyID     string     `json:"specialty_id" validate:"omitempty,uuid"`
	ProfessionalID  string     `json:"professional_id" validate:"omitempty,uuid"`
	HospitalID      string     `json:"hospital_id" validate:"omitempty,uuid"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	DurationMinutes int        `json:"duration_minutes" validate:"omitempty,min=10,max=240"`
	Type            string     `json:"type" validate:"omitempty,oneof=in_person online"`
	Reason          string     `json:"reason" validate:"omitempty,max=1000"`
	Notes           string     `json:"notes"`
}

type BookingDraftResponse struct {
	CurrentStep     string     `json:"current_step"`
	NextStep        string     `json:"next_step,omitempty"`
	SpecialtyID     *uuid.UUID `json:"specialty_id,omitempty"`
	ProfessionalID  *uuid.UUID `json:"professional_id,omitempty"`
	HospitalID      *uuid.UUID `json:"hospital_id,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Type            string     `json:"type,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
