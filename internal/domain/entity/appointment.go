package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentType distinguishes on-site visits from teleconsultations
type AppointmentType string

const (
	AppointmentTypeInPerson AppointmentType = "in_person"
	AppointmentTypeOnline   AppointmentType = "online"
)

// DefaultAppointmentDuration is used when the client does not send one
const DefaultAppointmentDuration = 30

// Appointment represents a scheduled patient/professional encounter
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	ProfessionalID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"professional_id"`
	HospitalID      *uuid.UUID        `gorm:"type:uuid;index" json:"hospital_id,omitempty"`
	SpecialtyID     *uuid.UUID        `gorm:"type:uuid;index" json:"specialty_id,omitempty"`
	ScheduledAt     time.Time         `gorm:"not null;index" json:"scheduled_at"`
	DurationMinutes int               `gorm:"not null" json:"duration_minutes"`
	Type            AppointmentType   `gorm:"type:varchar(20);not null" json:"type"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CancelReason    string            `gorm:"type:text" json:"cancel_reason,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      User       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Professional User       `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Hospital     *Hospital  `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Specialty    *Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsEditable reports whether the schedule or details may still change
func (a *Appointment) IsEditable() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// HasParticipant reports whether userID is the patient or the professional
func (a *Appointment) HasParticipant(userID uuid.UUID) bool {
	return a.PatientID == userID || a.ProfessionalID == userID
}

// CanTransitionTo reports whether moving to next is an allowed status change.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch next {
	case AppointmentStatusConfirmed:
		return a.Status == AppointmentStatusPending
	case AppointmentStatusCancelled:
		return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
	case AppointmentStatusCompleted:
		return a.Status == AppointmentStatusConfirmed
	}
	return false
}

// AppointmentFilter narrows appointment listings. Zero values are ignored.
type AppointmentFilter struct {
	PatientID      *uuid.UUID
	ProfessionalID *uuid.UUID
	Statuses       []AppointmentStatus
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

// StatusCount is one row of an appointments-per-status aggregate
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
