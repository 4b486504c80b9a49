package handler

import (
	"net/http"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/usecase"
	"medconnect/pkg/response"
	"medconnect/pkg/validator"
)

// EngagementHandler groups the patient-facing side channels: reviews,
// support tickets, in-app notifications and reminders.
type EngagementHandler struct {
	reviewUsecase        usecase.ReviewUsecase
	supportTicketUsecase usecase.SupportTicketUsecase
	notificationUsecase  usecase.NotificationUsecase
	reminderUsecase      usecase.ReminderUsecase
	validator            *validator.CustomValidator
}

func NewEngagementHandler(
	reviewUsecase usecase.ReviewUsecase,
	supportTicketUsecase usecase.SupportTicketUsecase,
	notificationUsecase usecase.NotificationUsecase,
	reminderUsecase usecase.ReminderUsecase,
	validator *validator.CustomValidator,
) *EngagementHandler {
	return &EngagementHandler{
		reviewUsecase:        reviewUsecase,
		supportTicketUsecase: supportTicketUsecase,
		notificationUsecase:  notificationUsecase,
		reminderUsecase:      reminderUsecase,
		validator:            validator,
	}
}

func writeEngagementError(w http.ResponseWriter, err error, fallback string) {
	if handleAccessError(w, err) {
		return
	}
	switch err {
	case usecase.ErrReviewNotFound:
		response.NotFound(w, "Review not found")
	case usecase.ErrTicketNotFound:
		response.NotFound(w, "Support ticket not found")
	case usecase.ErrNotificationNotFound:
		response.NotFound(w, "Notification not found")
	case usecase.ErrReminderNotFound:
		response.NotFound(w, "Reminder not found")
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrProfessionalNotFound:
		response.NotFound(w, "Professional not found")
	case usecase.ErrUserNotFound:
		response.NotFound(w, "User not found")
	case usecase.ErrAlreadyReviewed, usecase.ErrTicketClosed:
		response.Conflict(w, err.Error())
	case usecase.ErrInvalidRating, usecase.ErrAppointmentNotCompleted, usecase.ErrInvalidTicketState:
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

// CreateReview records a patient's review of a professional
// @Summary Create review
// @Tags Reviews
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Review"
// @Router /reviews [post]
func (h *EngagementHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReviewRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	review, err := h.reviewUsecase.Create(r.Context(), &req)
	if err != nil {
		writeEngagementError(w, err, "Failed to create review")
		return
	}

	response.Success(w, http.StatusCreated, "Review created successfully", review)
}

func (h *EngagementHandler) MyReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewUsecase.ListMine(r.Context())
	if err != nil {
		writeEngagementError(w, err, "Failed to get reviews")
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}

func (h *EngagementHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "review")
	if !ok {
		return
	}

	if err := h.reviewUsecase.Delete(r.Context(), id); err != nil {
		writeEngagementError(w, err, "Failed to delete review")
		return
	}

	response.Success(w, http.StatusOK, "Review deleted successfully", nil)
}

func (h *EngagementHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSupportTicketRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	ticket, err := h.supportTicketUsecase.Create(r.Context(), &req)
	if err != nil {
		writeEngagementError(w, err, "Failed to create support ticket")
		return
	}

	response.Success(w, http.StatusCreated, "Support ticket created successfully", ticket)
}

func (h *EngagementHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.supportTicketUsecase.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeEngagementError(w, err, "Failed to get support tickets")
		return
	}

	response.Success(w, http.StatusOK, "Support tickets retrieved successfully", tickets)
}

func (h *EngagementHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "support ticket")
	if !ok {
		return
	}

	ticket, err := h.supportTicketUsecase.Get(r.Context(), id)
	if err != nil {
		writeEngagementError(w, err, "Failed to get support ticket")
		return
	}

	response.Success(w, http.StatusOK, "Support ticket retrieved successfully", ticket)
}

// UpdateTicket is the admin triage endpoint
// @Summary Update support ticket
// @Tags Support
// @Security BearerAuth
// @Param request body dto.UpdateSupportTicketRequest true "Ticket update"
// @Router /support/tickets/{id} [patch]
func (h *EngagementHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "support ticket")
	if !ok {
		return
	}

	var req dto.UpdateSupportTicketRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	ticket, err := h.supportTicketUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeEngagementError(w, err, "Failed to update support ticket")
		return
	}

	response.Success(w, http.StatusOK, "Support ticket updated successfully", ticket)
}

func (h *EngagementHandler) CloseTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "support ticket")
	if !ok {
		return
	}

	ticket, err := h.supportTicketUsecase.Close(r.Context(), id)
	if err != nil {
		writeEngagementError(w, err, "Failed to close support ticket")
		return
	}

	response.Success(w, http.StatusOK, "Support ticket closed successfully", ticket)
}

func (h *EngagementHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.notificationUsecase.List(r.Context(), unreadOnly)
	if err != nil {
		writeEngagementError(w, err, "Failed to get notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func (h *EngagementHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationUsecase.UnreadCount(r.Context())
	if err != nil {
		writeEngagementError(w, err, "Failed to count notifications")
		return
	}

	response.Success(w, http.StatusOK, "Unread count retrieved successfully", count)
}

func (h *EngagementHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "notification")
	if !ok {
		return
	}

	if err := h.notificationUsecase.MarkRead(r.Context(), id); err != nil {
		writeEngagementError(w, err, "Failed to mark notification read")
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", nil)
}

func (h *EngagementHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.notificationUsecase.MarkAllRead(r.Context())
	if err != nil {
		writeEngagementError(w, err, "Failed to mark notifications read")
		return
	}

	response.Success(w, http.StatusOK, "Notifications marked as read", map[string]int64{"updated": updated})
}

func (h *EngagementHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "notification")
	if !ok {
		return
	}

	if err := h.notificationUsecase.Delete(r.Context(), id); err != nil {
		writeEngagementError(w, err, "Failed to delete notification")
		return
	}

	response.Success(w, http.StatusOK, "Notification deleted successfully", nil)
}

func (h *EngagementHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNotificationRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	notification, err := h.notificationUsecase.CreateSystem(r.Context(), &req)
	if err != nil {
		writeEngagementError(w, err, "Failed to create notification")
		return
	}

	response.Success(w, http.StatusCreated, "Notification created successfully", notification)
}

func (h *EngagementHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminderUsecase.List(r.Context())
	if err != nil {
		writeEngagementError(w, err, "Failed to get reminders")
		return
	}

	response.Success(w, http.StatusOK, "Reminders retrieved successfully", reminders)
}

func (h *EngagementHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var req dto.ReminderRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	reminder, err := h.reminderUsecase.Create(r.Context(), &req)
	if err != nil {
		writeEngagementError(w, err, "Failed to create reminder")
		return
	}

	response.Success(w, http.StatusCreated, "Reminder created successfully", reminder)
}

func (h *EngagementHandler) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "reminder")
	if !ok {
		return
	}

	var req dto.ReminderRequest
	if !bindJSON(w, r, h.validator, &req) {
		return
	}

	reminder, err := h.reminderUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeEngagementError(w, err, "Failed to update reminder")
		return
	}

	response.Success(w, http.StatusOK, "Reminder updated successfully", reminder)
}

func (h *EngagementHandler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id", "reminder")
	if !ok {
		return
	}

	if err := h.reminderUsecase.Delete(r.Context(), id); err != nil {
		writeEngagementError(w, err, "Failed to delete reminder")
		return
	}

	response.Success(w, http.StatusOK, "Reminder deleted successfully", nil)
}
