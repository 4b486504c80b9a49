package handler

import (
	"net/http"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/usecase"
	"medconnect/pkg/response"
	"medconnect/pkg/validator"
)

// HospitalHandler serves hospitals and medical specialties, the two
// reference directories the booking flow reads from.
type HospitalHandler struct {
	hospitalUsecase usecase.HospitalUsecase
	validator       *validator.CustomValidator
}

func NewHospitalHandler(hospitalUsecase usecase.HospitalUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase: hospitalUsecase,
		validator:       validator,
	}
}

func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	hospitals, err := h.hospitalUsecase.ListHospitals(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		response.InternalServerError(w, "Failed to get hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved successfully", hospitals)
}

func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "hospital")
	if !ok {
		return
	}

	hospital, err := h.hospitalUsecase.GetHospital(r.Context(), id)
	if err != nil {
		if err == usecase.ErrHospitalNotFound {
			response.NotFound(w, "Hospital not found")
			return
		}
		response.InternalServerError(w, "Failed to get hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital retrieved successfully", hospital)
}

func (h *HospitalHandler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var req dto.HospitalRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	hospital, err := h.hospitalUsecase.CreateHospital(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create hospital")
		return
	}

	response.Success(w, http.StatusCreated, "Hospital created successfully", hospital)
}

func (h *HospitalHandler) UpdateHospital(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "hospital")
	if !ok {
		return
	}

	var req dto.HospitalRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	hospital, err := h.hospitalUsecase.UpdateHospital(r.Context(), id, &req)
	if err != nil {
		if err == usecase.ErrHospitalNotFound {
			response.NotFound(w, "Hospital not found")
			return
		}
		response.InternalServerError(w, "Failed to update hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital updated successfully", hospital)
}

func (h *HospitalHandler) DeleteHospital(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "hospital")
	if !ok {
		return
	}

	if err := h.hospitalUsecase.DeleteHospital(r.Context(), id); err != nil {
		if err == usecase.ErrHospitalNotFound {
			response.NotFound(w, "Hospital not found")
			return
		}
		response.InternalServerError(w, "Failed to delete hospital")
		return
	}

	response.Success(w, http.StatusOK, "Hospital deleted successfully", nil)
}

func (h *HospitalHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.hospitalUsecase.ListSpecialties(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *HospitalHandler) GetSpecialty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "specialty")
	if !ok {
		return
	}

	specialty, err := h.hospitalUsecase.GetSpecialty(r.Context(), id)
	if err != nil {
		if err == usecase.ErrSpecialtyNotFound {
			response.NotFound(w, "Specialty not found")
			return
		}
		response.InternalServerError(w, "Failed to get specialty")
		return
	}

	response.Success(w, http.StatusOK, "Specialty retrieved successfully", specialty)
}

func (h *HospitalHandler) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req dto.SpecialtyRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	specialty, err := h.hospitalUsecase.CreateSpecialty(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrSpecialtyAlreadyExists {
			response.Conflict(w, "Specialty name already exists")
			return
		}
		response.InternalServerError(w, "Failed to create specialty")
		return
	}

	response.Success(w, http.StatusCreated, "Specialty created successfully", specialty)
}

func (h *HospitalHandler) UpdateSpecialty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "specialty")
	if !ok {
		return
	}

	var req dto.SpecialtyRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	specialty, err := h.hospitalUsecase.UpdateSpecialty(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrSpecialtyAlreadyExists:
			response.Conflict(w, "Specialty name already exists")
		default:
			response.InternalServerError(w, "Failed to update specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty updated successfully", specialty)
}

func (h *HospitalHandler) DeleteSpecialty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "specialty")
	if !ok {
		return
	}

	if err := h.hospitalUsecase.DeleteSpecialty(r.Context(), id); err != nil {
		if err == usecase.ErrSpecialtyNotFound {
			response.NotFound(w, "Specialty not found")
			return
		}
		response.InternalServerError(w, "Failed to delete specialty")
		return
	}

	response.Success(w, http.StatusOK, "Specialty deleted successfully", nil)
}
