package report

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/xuri/excelize/v2"

	"github.com/hamkke-hr/hr-backend-go/internal/domain/attendance"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/employee"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/leave"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/notification"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/report"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/user"
)

type ReportServiceImpl struct {
	attendanceSvc  attendance.AttendanceService
	employeeSvc    employee.EmployeeService
	leaveSvc       leave.LeaveService
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	notifRepo      notification.Repository

	// today supplies the current local day key; injectable for tests.
	today func() string
}

func NewReportService(
	attendanceSvc attendance.AttendanceService,
	employeeSvc employee.EmployeeService,
	leaveSvc leave.LeaveService,
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	notifRepo notification.Repository,
	today func() string,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		attendanceSvc:  attendanceSvc,
		employeeSvc:    employeeSvc,
		leaveSvc:       leaveSvc,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		notifRepo:      notifRepo,
		today:          today,
	}
}

func caller(ctx context.Context) (string, user.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}
	role, _ := claims["role"].(string)
	return userID, user.Role(role), nil
}

// Dashboard implements report.ReportService.
func (r *ReportServiceImpl) Dashboard(ctx context.Context) (report.DashboardStats, error) {
	userID, role, err := caller(ctx)
	if err != nil {
		return report.DashboardStats{}, err
	}

	stats := report.DashboardStats{}

	stats.UnreadNotifications, err = r.notifRepo.UnreadCount(ctx, userID)
	if err != nil {
		return report.DashboardStats{}, err
	}

	if role != user.RoleAdmin {
		stats.PendingLeaves, err = r.leaveRepo.CountPending(ctx, &userID)
		if err != nil {
			return report.DashboardStats{}, err
		}
		return stats, nil
	}

	stats.TotalEmployees, err = r.userRepo.CountActive(ctx)
	if err != nil {
		return report.DashboardStats{}, err
	}
	stats.TodayAttendance, err = r.attendanceRepo.CountByDate(ctx, r.today())
	if err != nil {
		return report.DashboardStats{}, err
	}
	stats.PendingLeaves, err = r.leaveRepo.CountPending(ctx, nil)
	if err != nil {
		return report.DashboardStats{}, err
	}
	return stats, nil
}

const defaultSheet = "Sheet1"

// AttendanceMatrixXLSX implements report.ReportService.
func (r *ReportServiceImpl) AttendanceMatrixXLSX(ctx context.Context, req attendance.WindowRequest) (*excelize.File, error) {
	matrix, err := r.attendanceSvc.Matrix(ctx, req)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	headers := append([]string{"Name", "Department"}, matrix.Dates...)
	if err := writeHeaderRow(f, headers); err != nil {
		return nil, err
	}

	for i, row := range matrix.Rows {
		cells := []interface{}{row.Name, row.Department}
		for _, date := range matrix.Dates {
			cells = append(cells, matrixMark(row.Days[date]))
		}
		if err := writeRow(f, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// matrixMark renders a day status as the export symbol.
func matrixMark(status attendance.DayStatus) string {
	switch status {
	case attendance.StatusComplete:
		return "O"
	case attendance.StatusInProgress:
		return "clock-out missing"
	default:
		return "X"
	}
}

// WorkHoursXLSX implements report.ReportService.
func (r *ReportServiceImpl) WorkHoursXLSX(ctx context.Context, req attendance.WindowRequest) (*excelize.File, error) {
	grid, err := r.attendanceSvc.WorkHours(ctx, req)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	headers := append([]string{"Name", "Department"}, grid.Dates...)
	headers = append(headers, "Total", "Worked Days")
	if err := writeHeaderRow(f, headers); err != nil {
		return nil, err
	}

	for i, row := range grid.Rows {
		cells := []interface{}{row.Name, row.Department}
		for _, date := range grid.Dates {
			cells = append(cells, attendance.FormatMinutes(row.Minutes[date]))
		}
		cells = append(cells, row.TotalHours, row.WorkedDays)
		if err := writeRow(f, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// RosterXLSX implements report.ReportService.
func (r *ReportServiceImpl) RosterXLSX(ctx context.Context, search string) (*excelize.File, error) {
	employees, err := r.employeeSvc.List(ctx, search)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := writeHeaderRow(f, []string{"Name", "Email", "Department", "Position", "Role", "Hire Date"}); err != nil {
		return nil, err
	}
	for i, emp := range employees {
		cells := []interface{}{
			deref(emp.Name), emp.Email, deref(emp.Department),
			deref(emp.Position), emp.Role, deref(emp.HireDate),
		}
		if err := writeRow(f, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// LeaveLogXLSX implements report.ReportService.
func (r *ReportServiceImpl) LeaveLogXLSX(ctx context.Context, search string) (*excelize.File, error) {
	requests, err := r.leaveSvc.ListAll(ctx, search)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := writeHeaderRow(f, []string{"Name", "Start Date", "End Date", "Days", "Status", "Reason", "Requested At"}); err != nil {
		return nil, err
	}
	for i, req := range requests {
		cells := []interface{}{
			deref(req.UserName), req.StartDate, req.EndDate,
			req.Days, req.Status, deref(req.Reason), req.RequestedAt,
		}
		if err := writeRow(f, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeHeaderRow(f *excelize.File, headers []string) error {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return writeRow(f, 1, cells)
}

func writeRow(f *excelize.File, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(defaultSheet, cell, &cells)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
