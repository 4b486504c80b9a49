package dto

import (
	"time"

	"medconnect/internal/domain/entity"
)

type AuditLogResponse struct {
	ID        int64        `json:"id"`
	User      *UserSummary `json:"user,omitempty"`
	Role      string       `json:"role,omitempty"`
	Action    string       `json:"action"`
	Metadata  entity.JSON  `json:"metadata"`
	CreatedAt time.Time    `json:"created_at"`
}

// AuditLogListQuery filters the audit trail listing.
type AuditLogListQuery struct {
	UserID *string
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}
