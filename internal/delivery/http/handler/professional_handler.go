package handler

import (
	"net/http"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/usecase"
	"medconnect/pkg/response"
	"medconnect/pkg/validator"
)

type ProfessionalHandler struct {
	professionalUsecase usecase.ProfessionalUsecase
	reviewUsecase       usecase.ReviewUsecase
	validator           *validator.CustomValidator
}

func NewProfessionalHandler(professionalUsecase usecase.ProfessionalUsecase, reviewUsecase usecase.ReviewUsecase, validator *validator.CustomValidator) *ProfessionalHandler {
	return &ProfessionalHandler{
		professionalUsecase: professionalUsecase,
		reviewUsecase:       reviewUsecase,
		validator:           validator,
	}
}

// List returns active professionals
// @Summary List professionals
// @Tags Professionals
// @Param specialty_id query string false "Specialty ID"
// @Param hospital_id query string false "Hospital ID"
// @Param name query string false "Name contains"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Router /professionals [get]
func (h *ProfessionalHandler) List(w http.ResponseWriter, r *http.Request) {
	specialtyID, err := queryUUID(r, "specialty_id")
	if err != nil {
		response.BadRequest(w, "Invalid specialty ID")
		return
	}
	hospitalID, err := queryUUID(r, "hospital_id")
	if err != nil {
		response.BadRequest(w, "Invalid hospital ID")
		return
	}
	page, limit := pageParams(r)

	professionals, total, err := h.professionalUsecase.List(r.Context(), &dto.ProfessionalListQuery{
		SpecialtyID: specialtyID,
		HospitalID:  hospitalID,
		Name:        r.URL.Query().Get("name"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		response.InternalServerError(w, "Failed to get professionals")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Professionals retrieved successfully", professionals, response.NewMeta(page, limit, total))
}

func (h *ProfessionalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "professional")
	if !ok {
		return
	}

	professional, err := h.professionalUsecase.Get(r.Context(), id)
	if err != nil {
		if err == usecase.ErrProfessionalNotFound {
			response.NotFound(w, "Professional not found")
			return
		}
		response.InternalServerError(w, "Failed to get professional")
		return
	}

	response.Success(w, http.StatusOK, "Professional retrieved successfully", professional)
}

func (h *ProfessionalHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfessionalProfileRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	professional, err := h.professionalUsecase.UpdateMe(r.Context(), &req)
	if err != nil {
		if handleAccessError(w, err) {
			return
		}
		switch err {
		case usecase.ErrProfessionalNotFound:
			response.NotFound(w, "Professional not found")
		case usecase.ErrSpecialtyNotFound, usecase.ErrHospitalNotFound, usecase.ErrInvalidAmount:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", professional)
}

// UpdateStatus activates or deactivates a professional account
// @Summary Set professional status
// @Tags Admin
// @Security BearerAuth
// @Router /admin/professionals/{id}/status [put]
func (h *ProfessionalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "professional")
	if !ok {
		return
	}

	var req dto.UpdateProfessionalStatusRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	professional, err := h.professionalUsecase.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		if handleAccessError(w, err) {
			return
		}
		if err == usecase.ErrProfessionalNotFound {
			response.NotFound(w, "Professional not found")
			return
		}
		response.InternalServerError(w, "Failed to update professional status")
		return
	}

	response.Success(w, http.StatusOK, "Professional status updated successfully", professional)
}

// Reviews lists a professional's reviews with the rating summary
// @Summary List professional reviews
// @Tags Reviews
// @Router /professionals/{id}/reviews [get]
func (h *ProfessionalHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "professional")
	if !ok {
		return
	}

	reviews, err := h.reviewUsecase.ListForProfessional(r.Context(), id)
	if err != nil {
		if err == usecase.ErrProfessionalNotFound {
			response.NotFound(w, "Professional not found")
			return
		}
		response.InternalServerError(w, "Failed to get reviews")
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}
