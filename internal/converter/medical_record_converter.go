package converter

import (
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
)

func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	patient := UserToSummary(&record.Patient)
	patient.ID = record.PatientID
	professional := UserToSummary(&record.Professional)
	professional.ID = record.ProfessionalID

	return &dto.MedicalRecordResponse{
		ID:            record.ID,
		Patient:       patient,
		Professional:  professional,
		AppointmentID: record.AppointmentID,
		RecordDate:    record.RecordDate.Format(dto.DateLayout),
		Diagnosis:     record.Diagnosis,
		Symptoms:      record.Symptoms,
		Treatment:     record.Treatment,
		Prescription:  record.Prescription,
		Notes:         record.Notes,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}

func ExamResultToResponse(result *entity.ExamResult) *dto.ExamResultResponse {
	if result == nil {
		return nil
	}
	return &dto.ExamResultResponse{
		ID:             result.ID,
		PatientID:      result.PatientID,
		ProfessionalID: result.ProfessionalID,
		ExamType:       result.ExamType,
		ExamDate:       result.ExamDate.Format(dto.DateLayout),
		Result:         result.Result,
		ReferenceRange: result.ReferenceRange,
		Status:         string(result.Status),
		Notes:          result.Notes,
		FileURL:        result.FileURL,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}
}

func ExamResultsToResponses(results []entity.ExamResult) []dto.ExamResultResponse {
	responses := make([]dto.ExamResultResponse, len(results))
	for i := range results {
		responses[i] = *ExamResultToResponse(&results[i])
	}
	return responses
}
