package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProfessionalProfileResponse struct {
	LicenseNumber   string          `json:"license_number"`
	SpecialtyID     *uuid.UUID      `json:"specialty_id,omitempty"`
	HospitalID      *uuid.UUID      `json:"hospital_id,omitempty"`
	Biography       string          `json:"biography,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	YearsExperience int             `json:"years_experience"`
}

type ProfessionalResponse struct {
	ID              uuid.UUID          `json:"id"`
	FullName        string             `json:"full_name"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone,omitempty"`
	AvatarURL       string             `json:"avatar_url,omitempty"`
	IsActive        bool               `json:"is_active"`
	LicenseNumber   string             `json:"license_number"`
	Specialty       *SpecialtyResponse `json:"specialty,omitempty"`
	Hospital        *HospitalResponse  `json:"hospital,omitempty"`
	Biography       string             `json:"biography,omitempty"`
	ConsultationFee decimal.Decimal    `json:"consultation_fee"`
	YearsExperience int                `json:"years_experience"`
	AverageRating   float64            `json:"average_rating"`
	ReviewCount     int64              `json:"review_count"`
}

type ProfessionalListQuery struct {
	SpecialtyID *uuid.UUID
	HospitalID  *uuid.UUID
	Name        string
	Page        int
	Limit       int
}

// UpdateProfessionalProfileRequest is sent by professionals editing their own profile.
// Nil fields are left unchanged.
type UpdateProfessionalProfileRequest struct {
	SpecialtyID     *string          `json:"specialty_id" validate:"omitempty,uuid"`
	HospitalID      *string          `json:"hospital_id" validate:"omitempty,uuid"`
	Biography       *string          `json:"biography"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee"`
	YearsExperience *int             `json:"years_experience" validate:"omitempty,min=0,max=80"`
}

type UpdateProfessionalStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
