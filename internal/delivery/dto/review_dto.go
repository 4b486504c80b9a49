package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	ProfessionalID string `json:"professional_id" validate:"required,uuid"`
	AppointmentID  string `json:"appointment_id" validate:"omitempty,uuid"`
	Rating         int    `json:"rating" validate:"required,min=1,max=5"`
	Comment        string `json:"comment" validate:"omitempty,max=2000"`
}

type ReviewResponse struct {
	ID             uuid.UUID    `json:"id"`
	ProfessionalID uuid.UUID    `json:"professional_id"`
	AppointmentID  *uuid.UUID   `json:"appointment_id,omitempty"`
	Patient        *UserSummary `json:"patient,omitempty"`
	Rating         int          `json:"rating"`
	Comment        string       `json:"comment,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

type ProfessionalReviewsResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"average_rating"`
	ReviewCount   int64            `json:"review_count"`
}
