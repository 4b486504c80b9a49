package handler

import (
	"net/http"
	"strconv"

	"medconnect/internal/delivery/dto"
	"medconnect/internal/usecase"
	"medconnect/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.Get(r.Context(), auditLogID)
	if err != nil {
		if err == usecase.ErrAuditLogNotFound {
			response.NotFound(w, "Audit log not found")
			return
		}
		response.InternalServerError(w, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// List returns audit log entries, newest first
// @Summary List audit logs
// @Tags Admin
// @Security BearerAuth
// @Param user_id query string false "Acting user"
// @Param action query string false "Action, e.g. appointment.status"
// @Param entity query string false "Entity name, e.g. appointment"
// @Param from query string false "From (YYYY-MM-DD or RFC3339)"
// @Param to query string false "To (YYYY-MM-DD or RFC3339)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Router /admin/audit-logs [get]
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
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

	query := &dto.AuditLogListQuery{
		Action: r.URL.Query().Get("action"),
		Entity: r.URL.Query().Get("entity"),
		From:   from,
		To:     to,
		Page:   page,
		Limit:  limit,
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		query.UserID = &userID
	}

	auditLogs, total, err := h.auditLogUsecase.List(r.Context(), query)
	if err != nil {
		if handleAccessError(w, err) {
			return
		}
		if err == usecase.ErrInvalidDateRange {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs, response.NewMeta(page, limit, total))
}
