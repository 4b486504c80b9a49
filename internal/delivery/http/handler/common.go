package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/usecase"
	"medconnect/pkg/response"
	"medconnect/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// bindJSON decodes and validates the request body. It writes the error
// response itself and reports whether the handler may continue.
func bindJSON(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func queryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryTime accepts either a calendar date or a full RFC3339 timestamp.
// A date means the start of that day.
func queryTime(r *http.Request, key string) (*time.Time, error) {
	t, _, err := parseQueryTime(r.URL.Query().Get(key))
	return t, err
}

// queryEndTime is queryTime for inclusive upper bounds: a date means the
// last instant of that day.
func queryEndTime(r *http.Request, key string) (*time.Time, error) {
	t, dateOnly, err := parseQueryTime(r.URL.Query().Get(key))
	if err != nil || t == nil || !dateOnly {
		return t, err
	}
	end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return &end, nil
}

func parseQueryTime(raw string) (*time.Time, bool, error) {
	if raw == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, false, nil
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return nil, false, err
	}
	return &t, true, nil
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return usecase.NormalizePage(page, limit)
}

// handleAccessError covers the errors every usecase can return. It reports
// whether it wrote a response.
func handleAccessError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "Invalid token")
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidID), errors.Is(err, usecase.ErrInvalidDateFormat):
		response.BadRequest(w, err.Error())
	default:
		return false
	}
	return true
}
