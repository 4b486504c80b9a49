package converter

import (
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity with its relations preloaded
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	patient := UserToSummary(&appointment.Patient)
	patient.ID = appointment.PatientID
	professional := UserToSummary(&appointment.Professional)
	professional.ID = appointment.ProfessionalID

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		Patient:         patient,
		Professional:    professional,
		Hospital:        HospitalToResponse(appointment.Hospital),
		Specialty:       SpecialtyToResponse(appointment.Specialty),
		ScheduledAt:     appointment.ScheduledAt,
		DurationMinutes: appointment.DurationMinutes,
		Type:            string(appointment.Type),
		Status:          string(appointment.Status),
		Reason:          appointment.Reason,
		Notes:           appointment.Notes,
		CancelReason:    appointment.CancelReason,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

func BookingDraftToResponse(draft *entity.BookingDraft) *dto.BookingDraftResponse {
	if draft == nil {
		return nil
	}

	response := &dto.BookingDraftResponse{
		CurrentStep:     string(draft.CurrentStep),
		SpecialtyID:     draft.SpecialtyID,
		ProfessionalID:  draft.ProfessionalID,
		HospitalID:      draft.HospitalID,
		ScheduledAt:     draft.ScheduledAt,
		DurationMinutes: draft.DurationMinutes,
		Type:            string(draft.Type),
		Reason:          draft.Reason,
		Notes:           draft.Notes,
		UpdatedAt:       draft.UpdatedAt,
	}
	if idx := entity.StepIndex(draft.CurrentStep); idx >= 0 && idx+1 < len(entity.BookingSteps) {
		response.NextStep = string(entity.BookingSteps[idx+1])
	}
	return response
}
