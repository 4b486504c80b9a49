package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStep names one page of the appointment booking wizard
type BookingStep string

const (
	BookingStepSpecialty    BookingStep = "specialty"
	BookingStepProfessional BookingStep = "professional"
	BookingStepSchedule     BookingStep = "schedule"
	BookingStepDetails      BookingStep = "details"
	BookingStepConfirm      BookingStep = "confirm"
)

// BookingSteps lists the wizard steps in the order they must be completed
var BookingSteps = []BookingStep{
	BookingStepSpecialty,
	BookingStepProfessional,
	BookingStepSchedule,
	BookingStepDetails,
	BookingStepConfirm,
}

// StepIndex returns the position of step in BookingSteps, or -1.
func StepIndex(step BookingStep) int {
	for i, s := range BookingSteps {
		if s == step {
			return i
		}
	}
	return -1
}

// BookingDraft is the in-progress state of a patient's booking wizard
type BookingDraft struct {
	PatientID       uuid.UUID       `json:"patient_id"`
	CurrentStep     BookingStep     `json:"current_step"`
	SpecialtyID     *uuid.UUID      `json:"specialty_id,omitempty"`
	ProfessionalID  *uuid.UUID      `json:"professional_id,omitempty"`
	HospitalID      *uuid.UUID      `json:"hospital_id,omitempty"`
	ScheduledAt     *time.Time      `json:"scheduled_at,omitempty"`
	DurationMinutes int             `json:"duration_minutes,omitempty"`
	Type            AppointmentType `json:"type,omitempty"`
	Reason          string          `json:"reason,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// StepFilled reports whether the fields of step have been set.
func (d *BookingDraft) StepFilled(step BookingStep) bool {
	switch step {
	case BookingStepSpecialty:
		return d.SpecialtyID != nil
	case BookingStepProfessional:
		return d.ProfessionalID != nil
	case BookingStepSchedule:
		return d.ScheduledAt != nil
	case BookingStepDetails:
		return d.Type != ""
	}
	return false
}

// ClearAfter resets every step that comes after step.
func (d *BookingDraft) ClearAfter(step BookingStep) {
	idx := StepIndex(step)
	for _, s := range BookingSteps[idx+1:] {
		switch s {
		case BookingStepProfessional:
			d.ProfessionalID = nil
			d.HospitalID = nil
		case BookingStepSchedule:
			d.ScheduledAt = nil
			d.DurationMinutes = 0
		case BookingStepDetails:
			d.Type = ""
			d.Reason = ""
			d.Notes = ""
		}
	}
}
