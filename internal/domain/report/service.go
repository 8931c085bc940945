package report

import (
	"context"

	"github.com/hamkke-hr/hr-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

// ReportService builds dashboard figures and XLSX exports.
type ReportService interface {
	Dashboard(ctx context.Context) (DashboardStats, error)

	// AttendanceMatrixXLSX renders the per-day status grid (O, X,
	// clock-out missing) for the window.
	AttendanceMatrixXLSX(ctx context.Context, req attendance.WindowRequest) (*excelize.File, error)

	// WorkHoursXLSX renders per-day H:MM worked time with totals.
	WorkHoursXLSX(ctx context.Context, req attendance.WindowRequest) (*excelize.File, error)

	// RosterXLSX renders the active employee roster.
	RosterXLSX(ctx context.Context, search string) (*excelize.File, error)

	// LeaveLogXLSX renders the full leave request log.
	LeaveLogXLSX(ctx context.Context, search string) (*excelize.File, error)
}
