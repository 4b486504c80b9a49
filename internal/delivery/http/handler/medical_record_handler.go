package handler

import (
	"net/http"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/usecase"
	"medconnect/pkg/response"
	"medconnect/pkg/validator"

	"github.com/gorilla/mux"
)

// MedicalRecordHandler serves clinical history: medical records kept in the
// relational store and exam results kept in the document store.
type MedicalRecordHandler struct {
	medicalRecordUsecase usecase.MedicalRecordUsecase
	examResultUsecase    usecase.ExamResultUsecase
	validator            *validator.CustomValidator
}

func NewMedicalRecordHandler(medicalRecordUsecase usecase.MedicalRecordUsecase, examResultUsecase usecase.ExamResultUsecase, validator *validator.CustomValidator) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		medicalRecordUsecase: medicalRecordUsecase,
		examResultUsecase:    examResultUsecase,
		validator:            validator,
	}
}

func writeClinicalError(w http.ResponseWriter, err error, fallback string) {
	if handleAccessError(w, err) {
		return
	}
	switch err {
	case usecase.ErrMedicalRecordNotFound:
		response.NotFound(w, "Medical record not found")
	case usecase.ErrExamResultNotFound:
		response.NotFound(w, "Exam result not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrPatientIDRequired, usecase.ErrAppointmentMismatch:
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

func (h *MedicalRecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicalRecordRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	record, err := h.medicalRecordUsecase.Create(r.Context(), &req)
	if err != nil {
		writeClinicalError(w, err, "Failed to create medical record")
		return
	}

	response.Success(w, http.StatusCreated, "Medical record created successfully", record)
}

// ListRecords returns medical records
// @Summary List medical records
// @Tags Medical Records
// @Security BearerAuth
// @Param patient_id query string false "Patient ID (required for professionals)"
// @Router /medical-records [get]
func (h *MedicalRecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	patientID, err := queryUUID(r, "patient_id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	records, err := h.medicalRecordUsecase.List(r.Context(), patientID)
	if err != nil {
		writeClinicalError(w, err, "Failed to get medical records")
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}

func (h *MedicalRecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "medical record")
	if !ok {
		return
	}

	record, err := h.medicalRecordUsecase.Get(r.Context(), id)
	if err != nil {
		writeClinicalError(w, err, "Failed to get medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record retrieved successfully", record)
}

func (h *MedicalRecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "medical record")
	if !ok {
		return
	}

	var req dto.UpdateMedicalRecordRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	record, err := h.medicalRecordUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeClinicalError(w, err, "Failed to update medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record updated successfully", record)
}

func (h *MedicalRecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "medical record")
	if !ok {
		return
	}

	if err := h.medicalRecordUsecase.Delete(r.Context(), id); err != nil {
		writeClinicalError(w, err, "Failed to delete medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record deleted successfully", nil)
}

func (h *MedicalRecordHandler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExamResultRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	exam, err := h.examResultUsecase.Create(r.Context(), &req)
	if err != nil {
		writeClinicalError(w, err, "Failed to create exam result")
		return
	}

	response.Success(w, http.StatusCreated, "Exam result created successfully", exam)
}

func (h *MedicalRecordHandler) ListExams(w http.ResponseWriter, r *http.Request) {
	patientID, err := queryUUID(r, "patient_id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	exams, err := h.examResultUsecase.List(r.Context(), patientID)
	if err != nil {
		writeClinicalError(w, err, "Failed to get exam results")
		return
	}

	response.Success(w, http.StatusOK, "Exam results retrieved successfully", exams)
}

// Exam result ids are document ids, not UUIDs.
func (h *MedicalRecordHandler) GetExam(w http.ResponseWriter, r *http.Request) {
	exam, err := h.examResultUsecase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeClinicalError(w, err, "Failed to get exam result")
		return
	}

	response.Success(w, http.StatusOK, "Exam result retrieved successfully", exam)
}

func (h *MedicalRecordHandler) UpdateExam(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateExamResultRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	exam, err := h.examResultUsecase.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeClinicalError(w, err, "Failed to update exam result")
		return
	}

	response.Success(w, http.StatusOK, "Exam result updated successfully", exam)
}

func (h *MedicalRecordHandler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	if err := h.examResultUsecase.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeClinicalError(w, err, "Failed to delete exam result")
		return
	}

	response.Success(w, http.StatusOK, "Exam result deleted successfully", nil)
}
