package handler

import (
	"net/http"
	"strconv"
	"strings"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/usecase"
	"medconnect/pkg/response"
	"medconnect/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase   usecase.AppointmentUsecase
	bookingWizardUsecase usecase.BookingWizardUsecase
	validator            *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, bookingWizardUsecase usecase.BookingWizardUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase:   appointmentUsecase,
		bookingWizardUsecase: bookingWizardUsecase,
		validator:            validator,
	}
}

// writeAppointmentError maps appointment and booking errors shared by every
// endpoint of this handler.
func writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	if handleAccessError(w, err) {
		return
	}
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrProfessionalNotFound:
		response.NotFound(w, "Professional not found")
	case usecase.ErrSpecialtyNotFound:
		response.NotFound(w, "Specialty not found")
	case usecase.ErrDraftNotFound:
		response.NotFound(w, "No booking in progress")
	case usecase.ErrInvalidTransition, usecase.ErrAppointmentNotEditable:
		response.Conflict(w, err.Error())
	case usecase.ErrAppointmentInPast, usecase.ErrProfessionalInactive, usecase.ErrInvalidStatus,
		usecase.ErrInvalidStep, usecase.ErrStepOutOfOrder, usecase.ErrStepIncomplete, usecase.ErrProfessionalSpecialty:
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

// Create books an appointment for the calling patient
// @Summary Create appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Appointment"
// @Success 201 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

// List returns the caller's appointments
// @Summary List appointments
// @Tags Appointments
// @Security BearerAuth
// @Param status query string false "Comma separated statuses"
// @Param from query string false "From (YYYY-MM-DD or RFC3339)"
// @Param to query string false "To (YYYY-MM-DD or RFC3339)"
// @Router /appointments [get]
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "from")
	if err != nil {
		response.BadRequest(w, "Invalid from date")
		return
	}
	to, err := queryEndTime(r, "to")
	if err != nil {
		response.BadRequest(w, "Invalid to date")
		return
	}
	page, limit := pageParams(r)

	var statuses []string
	for _, raw := range r.URL.Query()["status"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}

	appointments, total, err := h.appointmentUsecase.List(r.Context(), &dto.AppointmentListQuery{
		Statuses: statuses,
		From:     from,
		To:       to,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments, response.NewMeta(page, limit, total))
}

func (h *AppointmentHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	appointments, err := h.appointmentUsecase.Upcoming(r.Context(), limit)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get upcoming appointments")
		return
	}

	response.Success(w, http.StatusOK, "Upcoming appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), id)
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

// UpdateStatus moves an appointment through its lifecycle
// @Summary Change appointment status
// @Tags Appointments
// @Security BearerAuth
// @Param request body dto.UpdateAppointmentStatusRequest true "Status"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		writeAppointmentError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.bookingWizardUsecase.GetDraft(r.Context())
	if err != nil {
		writeAppointmentError(w, err, "Failed to get booking draft")
		return
	}

	response.Success(w, http.StatusOK, "Booking draft retrieved successfully", draft)
}

// SaveDraftStep stores one step of the booking wizard
// @Summary Save booking step
// @Tags Appointments
// @Security BearerAuth
// @Param step path string true "specialty, professional, schedule or details"
// @Router /appointments/draft/{step} [put]
func (h *AppointmentHandler) SaveDraftStep(w http.ResponseWriter, r *http.Request) {
	var req dto.BookingStepRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	draft, err := h.bookingWizardUsecase.SaveStep(r.Context(), mux.Vars(r)["step"], &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to save booking step")
		return
	}

	response.Success(w, http.StatusOK, "Booking step saved successfully", draft)
}

func (h *AppointmentHandler) ConfirmDraft(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.bookingWizardUsecase.Confirm(r.Context())
	if err != nil {
		writeAppointmentError(w, err, "Failed to confirm booking")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.bookingWizardUsecase.Discard(r.Context()); err != nil {
		writeAppointmentError(w, err, "Failed to discard booking draft")
		return
	}

	response.Success(w, http.StatusOK, "Booking draft discarded", nil)
}
