package converter

import (
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
)

func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.PatientProfileResponse{
		Gender:           profile.Gender,
		BloodType:        profile.BloodType,
		Address:          profile.Address,
		EmergencyContact: profile.EmergencyContact,
		Allergies:        profile.Allergies,
	}
	if profile.DateOfBirth != nil {
		response.DateOfBirth = profile.DateOfBirth.Format(dto.DateLayout)
	}
	return response
}

// PatientToResponse expects profile.User to be loaded
func PatientToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	if profile == nil {
		return nil
	}
	return &dto.PatientResponse{
		ID:        profile.UserID,
		FullName:  profile.User.FullName,
		Email:     profile.User.Email,
		Phone:     profile.User.Phone,
		AvatarURL: profile.User.AvatarURL,
		IsActive:  profile.User.IsActive,
		Profile:   PatientProfileToResponse(profile),
	}
}

func PatientsToResponses(profiles []entity.PatientProfile) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(profiles))
	for i := range profiles {
		responses[i] = *PatientToResponse(&profiles[i])
	}
	return responses
}
