package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSupportTicketRequest struct {
	Subject     string `json:"subject" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=technical billing appointment other"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateSupportTicketRequest is the admin triage update. Nil fields are left unchanged.
type UpdateSupportTicketRequest struct {
	Status   *string `json:"status" validate:"omitempty,oneof=open in_progress resolved closed"`
	Priority *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Response *string `json:"response"`
}

type SupportTicketResponse struct {
	ID          uuid.UUID   `json:"id"`
	User        UserSummary `json:"user"`
	Subject     string      `json:"subject"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Priority    string      `json:"priority"`
	Status      string      `json:"status"`
	Response    string      `json:"response,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
