package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/hamkke-hr/hr-backend-go/internal/domain/report"
	"github.com/hamkke-hr/hr-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	ExportAttendanceMatrix(w http.ResponseWriter, r *http.Request)
	ExportWorkHours(w http.ResponseWriter, r *http.Request)
	ExportRoster(w http.ResponseWriter, r *http.Request)
	ExportLeaveLog(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Dashboard handles GET /dashboard
func (h *reportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportService.Dashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func streamXLSX(w http.ResponseWriter, f *excelize.File, filename string) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := f.Write(w); err != nil {
		slog.Error("failed to stream xlsx export", "filename", filename, "error", err)
	}
}

// ExportAttendanceMatrix handles GET /reports/attendance-matrix
func (h *reportHandlerImpl) ExportAttendanceMatrix(w http.ResponseWriter, r *http.Request) {
	f, err := h.reportService.AttendanceMatrixXLSX(r.Context(), windowFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	streamXLSX(w, f, "attendance-matrix.xlsx")
}

// ExportWorkHours handles GET /reports/work-hours
func (h *reportHandlerImpl) ExportWorkHours(w http.ResponseWriter, r *http.Request) {
	f, err := h.reportService.WorkHoursXLSX(r.Context(), windowFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	streamXLSX(w, f, "work-hours.xlsx")
}

// ExportRoster handles GET /reports/roster
func (h *reportHandlerImpl) ExportRoster(w http.ResponseWriter, r *http.Request) {
	f, err := h.reportService.RosterXLSX(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	streamXLSX(w, f, "employees.xlsx")
}

// ExportLeaveLog handles GET /reports/leave-log
func (h *reportHandlerImpl) ExportLeaveLog(w http.ResponseWriter, r *http.Request) {
	f, err := h.reportService.LeaveLogXLSX(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	streamXLSX(w, f, "leave-log.xlsx")
}
