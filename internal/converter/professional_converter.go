package converter

import (
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
)

func ProfessionalProfileToResponse(profile *entity.ProfessionalProfile) *dto.ProfessionalProfileResponse {
	if profile == nil {
		return nil
	}
	return &dto.ProfessionalProfileResponse{
		LicenseNumber:   profile.LicenseNumber,
		SpecialtyID:     profile.SpecialtyID,
		HospitalID:      profile.HospitalID,
		Biography:       profile.Biography,
		ConsultationFee: profile.ConsultationFee,
		YearsExperience: profile.YearsExperience,
	}
}

// ProfessionalToResponse flattens the profile and its account. rating may be nil
// when the professional has no reviews yet.
func ProfessionalToResponse(profile *entity.ProfessionalProfile, rating *entity.RatingSummary) *dto.ProfessionalResponse {
	if profile == nil {
		return nil
	}

	response := &dto.ProfessionalResponse{
		ID:              profile.UserID,
		FullName:        profile.User.FullName,
		Email:           profile.User.Email,
		Phone:           profile.User.Phone,
		AvatarURL:       profile.User.AvatarURL,
		IsActive:        profile.User.IsActive,
		LicenseNumber:   profile.LicenseNumber,
		Specialty:       SpecialtyToResponse(profile.Specialty),
		Hospital:        HospitalToResponse(profile.Hospital),
		Biography:       profile.Biography,
		ConsultationFee: profile.ConsultationFee,
		YearsExperience: profile.YearsExperience,
	}
	if rating != nil {
		response.AverageRating = rating.Average
		response.ReviewCount = rating.Count
	}
	return response
}

func ProfessionalsToResponses(profiles []entity.ProfessionalProfile, ratings map[uuid.UUID]entity.RatingSummary) []dto.ProfessionalResponse {
	responses := make([]dto.ProfessionalResponse, len(profiles))
	for i := range profiles {
		var rating *entity.RatingSummary
		if r, ok := ratings[profiles[i].UserID]; ok {
			rating = &r
		}
		responses[i] = *ProfessionalToResponse(&profiles[i], rating)
	}
	return responses
}
