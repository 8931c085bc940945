package attendance

import "context"

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Clock toggles today's punch: first call clocks in (grace window
	// applied), second call clocks out, a third is rejected. A missed
	// prior-day clock-out is reconciled first for non-admin users.
	Clock(ctx context.Context) (ClockResponse, error)

	// MyAttendance returns the caller's recent records, newest first.
	MyAttendance(ctx context.Context, limit int) ([]AttendanceResponse, error)

	// Matrix builds the per-employee per-day status grid (admin/manager).
	Matrix(ctx context.Context, req WindowRequest) (MatrixResponse, error)

	// WorkHours builds the per-employee per-day worked-minutes grid with
	// the end-of-day cap applied (admin/manager).
	WorkHours(ctx context.Context, req WindowRequest) (WorkHoursResponse, error)
}
