package http

import (
	"net/http"
	"strconv"

	"github.com/hamkke-hr/hr-backend-go/internal/domain/attendance"
	"github.com/hamkke-hr/hr-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Clock(w http.ResponseWriter, r *http.Request)
	MyAttendance(w http.ResponseWriter, r *http.Request)
	Matrix(w http.ResponseWriter, r *http.Request)
	WorkHours(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Clock implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Clock(w http.ResponseWriter, r *http.Request) {
	clockResponse, err := a.attendanceService.Clock(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Clocked in successfully"
	if clockResponse.Action == attendance.ActionClockOut {
		message = "Clocked out successfully"
	}
	response.SuccessWithMessage(w, message, clockResponse)
}

// MyAttendance implements AttendanceHandler.
func (a *AttendanceHandlerImpl) MyAttendance(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := a.attendanceService.MyAttendance(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

func windowFromQuery(r *http.Request) attendance.WindowRequest {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	return attendance.WindowRequest{
		Days:      days,
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
		Search:    r.URL.Query().Get("search"),
	}
}

// Matrix implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Matrix(w http.ResponseWriter, r *http.Request) {
	matrix, err := a.attendanceService.Matrix(r.Context(), windowFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, matrix)
}

// WorkHours implements AttendanceHandler.
func (a *AttendanceHandlerImpl) WorkHours(w http.ResponseWriter, r *http.Request) {
	grid, err := a.attendanceService.WorkHours(r.Context(), windowFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, grid)
}
