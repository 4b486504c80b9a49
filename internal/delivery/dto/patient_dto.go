package dto

import (
	"github.com/google/uuid"
)

type PatientProfileResponse struct {
	DateOfBirth      string `json:"date_of_birth,omitempty"`
	Gender           string `json:"gender,omitempty"`
	BloodType        string `json:"blood_type,omitempty"`
	Address          string `json:"address,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
	Allergies        string `json:"allergies,omitempty"`
}

type PatientResponse struct {
	ID        uuid.UUID               `json:"id"`
	FullName  string                  `json:"full_name"`
	Email     string                  `json:"email"`
	Phone     string                  `json:"phone,omitempty"`
	AvatarURL string                  `json:"avatar_url,omitempty"`
	IsActive  bool                    `json:"is_active"`
	Profile   *PatientProfileResponse `json:"profile"`
}

// UpdatePatientProfileRequest - nil fields are left unchanged
type UpdatePatientProfileRequest struct {
	DateOfBirth      *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender           *string `json:"gender" validate:"omitempty,oneof=M F O"`
	BloodType        *string `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergency_contact" validate:"omitempty,max=255"`
	Allergies        *string `json:"allergies"`
}

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"
