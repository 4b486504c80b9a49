package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfessionalProfile holds clinician-specific data for users with the professional role
type ProfessionalProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	SpecialtyID     *uuid.UUID      `gorm:"type:uuid;index" json:"specialty_id,omitempty"`
	HospitalID      *uuid.UUID      `gorm:"type:uuid;index" json:"hospital_id,omitempty"`
	Biography       string          `gorm:"type:text" json:"biography,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consultation_fee"`
	YearsExperience int             `gorm:"not null" json:"years_experience"`

	// Relationships
	User      User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Specialty *Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
	Hospital  *Hospital  `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (ProfessionalProfile) TableName() string {
	return "professional_profiles"
}

// ProfessionalFilter is a domain-level filter for querying professionals.
// Used by repository layer to avoid coupling with delivery DTOs.
type ProfessionalFilter struct {
	SpecialtyID *uuid.UUID
	HospitalID  *uuid.UUID
	Name        string // ILIKE on users.full_name
	OnlyActive  bool
	Limit       int
	Offset      int
}

// RatingSummary aggregates reviews for one professional
type RatingSummary struct {
	ProfessionalID uuid.UUID `json:"professional_id"`
	Average        float64   `json:"average"`
	Count          int64     `json:"count"`
}
