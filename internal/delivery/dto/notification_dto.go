package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNotificationRequest struct {
	UserID  string `json:"user_id" validate:"required,uuid"`
	Title   string `json:"title" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
	Link    string `json:"link"`
}

type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type ReminderRequest struct {
	AppointmentID string    `json:"appointment_id" validate:"omitempty,uuid"`
	Title         string    `json:"title" validate:"required,max=255"`
	Description   string    `json:"description"`
	RemindAt      time.Time `json:"remind_at" validate:"required"`
}

type ReminderResponse struct {
	ID            uuid.UUID  `json:"id"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	RemindAt      time.Time  `json:"remind_at"`
	IsSent        bool       `json:"is_sent"`
	CreatedAt     time.Time  `json:"created_at"`
}
