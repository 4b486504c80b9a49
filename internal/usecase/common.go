package usecase

import (
	"context"
	"errors"
	"time"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/delivery/http/middleware"
	"medconnect/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated   = errors.New("user not found in context")
	ErrForbidden         = errors.New("you don't have permission to access this resource")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidID         = errors.New("invalid id")
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// actor is the authenticated caller of a usecase
type actor struct {
	ID     uuid.UUID
	RoleID int
}

func actorFromContext(ctx context.Context) (actor, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return actor{}, ErrUnauthenticated
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	return actor{ID: userID, RoleID: roleID}, nil
}

func (a actor) IsAdmin() bool        { return a.RoleID == entity.RoleIDAdmin }
func (a actor) IsProfessional() bool { return a.RoleID == entity.RoleIDProfessional }
func (a actor) IsPatient() bool      { return a.RoleID == entity.RoleIDPatient }

// NormalizePage applies the default page size and caps it.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseOptionalUUID returns nil for an empty string.
func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrInvalidID
	}
	return &id, nil
}
