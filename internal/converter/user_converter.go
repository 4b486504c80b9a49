package converter

import (
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Profiles are included when they are loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	role := user.Role.RoleName
	if role == "" {
		role = entity.RoleNameByID(user.RoleID)
	}

	return &dto.UserResponse{
		ID:                  user.ID,
		Email:               user.Email,
		FullName:            user.FullName,
		Phone:               user.Phone,
		AvatarURL:           user.AvatarURL,
		Role:                role,
		IsActive:            user.IsActive,
		ProfessionalProfile: ProfessionalProfileToResponse(user.ProfessionalProfile),
		PatientProfile:      PatientProfileToResponse(user.PatientProfile),
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
}

func UserToSummary(user *entity.User) dto.UserSummary {
	return dto.UserSummary{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
}
