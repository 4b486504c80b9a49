package handler

import (
	"fmt"
	"net/http"

	"medconnect/internal/service"
	"medconnect/internal/usecase"
	"medconnect/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
	exportUsecase    usecase.ExportUsecase
	log              *logrus.Logger
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase, exportUsecase usecase.ExportUsecase, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
		exportUsecase:    exportUsecase,
		log:              log,
	}
}

// Stats returns the caller's role-specific dashboard
// @Summary Dashboard statistics
// @Tags Dashboard
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardUsecase.Stats(r.Context())
	if err != nil {
		if handleAccessError(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to get dashboard stats")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// Export streams a resource as a CSV or XLSX attachment
// @Summary Export data
// @Tags Export
// @Security BearerAuth
// @Param resource path string true "appointments, financial or supplies"
// @Param format query string false "csv or xlsx" default(csv)
// @Produce text/csv
// @Router /export/{resource} [get]
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := service.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.BadRequest(w, "Format must be csv or xlsx")
		return
	}

	file, err := h.exportUsecase.Export(r.Context(), mux.Vars(r)["resource"], format)
	if err != nil {
		if handleAccessError(w, err) {
			return
		}
		if err == usecase.ErrUnknownExportResource {
			response.NotFound(w, "Unknown export resource")
			return
		}
		response.InternalServerError(w, "Failed to export data")
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
	w.WriteHeader(http.StatusOK)
	// Headers are already sent, so a failure here can only be logged.
	if err := service.WriteTable(w, file.Format, file.Table); err != nil {
		h.log.Warnf("Failed to write export %s: %+v", file.Filename, err)
	}
}
