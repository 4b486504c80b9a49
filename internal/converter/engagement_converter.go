package converter

import (
	"medconnect/internal/delivery/dto"
	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
)

func ReviewToResponse(review *entity.Review) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	response := &dto.ReviewResponse{
		ID:             review.ID,
		ProfessionalID: review.ProfessionalID,
		AppointmentID:  review.AppointmentID,
		Rating:         review.Rating,
		Comment:        review.Comment,
		CreatedAt:      review.CreatedAt,
	}
	if review.Patient.ID != uuid.Nil {
		patient := UserToSummary(&review.Patient)
		patient.Email = ""
		response.Patient = &patient
	}
	return response
}

func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *ReviewToResponse(&reviews[i])
	}
	return responses
}

func SupportTicketToResponse(ticket *entity.SupportTicket) *dto.SupportTicketResponse {
	if ticket == nil {
		return nil
	}

	user := UserToSummary(&ticket.User)
	user.ID = ticket.UserID

	return &dto.SupportTicketResponse{
		ID:          ticket.ID,
		User:        user,
		Subject:     ticket.Subject,
		Description: ticket.Description,
		Category:    ticket.Category,
		Priority:    string(ticket.Priority),
		Status:      string(ticket.Status),
		Response:    ticket.Response,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

func SupportTicketsToResponses(tickets []entity.SupportTicket) []dto.SupportTicketResponse {
	responses := make([]dto.SupportTicketResponse, len(tickets))
	for i := range tickets {
		responses[i] = *SupportTicketToResponse(&tickets[i])
	}
	return responses
}

func NotificationToResponse(n *entity.Notification) *dto.NotificationResponse {
	if n == nil {
		return nil
	}
	return &dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		IsRead:    n.IsRead,
		Link:      n.Link,
		CreatedAt: n.CreatedAt,
	}
}

func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = *NotificationToResponse(&notifications[i])
	}
	return responses
}

func ReminderToResponse(r *entity.Reminder) *dto.ReminderResponse {
	if r == nil {
		return nil
	}
	return &dto.ReminderResponse{
		ID:            r.ID,
		AppointmentID: r.AppointmentID,
		Title:         r.Title,
		Description:   r.Description,
		RemindAt:      r.RemindAt,
		IsSent:        r.IsSent,
		CreatedAt:     r.CreatedAt,
	}
}

func RemindersToResponses(reminders []entity.Reminder) []dto.ReminderResponse {
	responses := make([]dto.ReminderResponse, len(reminders))
	for i := range reminders {
		responses[i] = *ReminderToResponse(&reminders[i])
	}
	return responses
}
