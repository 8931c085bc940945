package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/attendance"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/notification"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/user"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/dateutil"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	notifier       notification.NotificationService
	policy         attendance.Policy
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	notifier notification.NotificationService,
	policy attendance.Policy,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		policy:         policy,
		now:            time.Now,
	}
}

func callerFromContext(ctx context.Context) (string, user.Role, error) {
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

// Clock implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Clock(ctx context.Context) (attendance.ClockResponse, error) {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	now := a.now()
	nowLocal := now.In(a.policy.Location)
	today := dateutil.DayKey(nowLocal)

	reconciled := false
	if role != user.RoleAdmin {
		reconciled, err = a.reconcileYesterday(ctx, userID, nowLocal)
		if err != nil {
			return attendance.ClockResponse{}, err
		}
	}

	todayRec, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.ClockResponse{}, err
	}

	if todayRec == nil {
		clockIn := a.policy.NormalizeClockIn(now)
		rec, err := a.attendanceRepo.Create(ctx, attendance.Attendance{
			UserID:  userID,
			Date:    today,
			ClockIn: &clockIn,
		})
		if err != nil {
			return attendance.ClockResponse{}, err
		}
		return attendance.ClockResponse{
			Action:     attendance.ActionClockIn,
			Record:     attendance.NewAttendanceResponse(rec),
			Reconciled: reconciled,
		}, nil
	}

	if todayRec.ClockOut != nil {
		return attendance.ClockResponse{}, attendance.ErrAlreadyClockedOut
	}

	// The literal punch is stored; the end-of-day cap is applied when
	// aggregating, not here.
	if err := a.attendanceRepo.SetClockOut(ctx, todayRec.ID, now); err != nil {
		return attendance.ClockResponse{}, err
	}
	todayRec.ClockOut = &now

	return attendance.ClockResponse{
		Action:     attendance.ActionClockOut,
		Record:     attendance.NewAttendanceResponse(*todayRec),
		Reconciled: reconciled,
	}, nil
}

// reconcileYesterday closes an open prior-day record per the morning
// threshold rule and notifies the employee.
func (a *AttendanceServiceImpl) reconcileYesterday(ctx context.Context, userID string, nowLocal time.Time) (bool, error) {
	yesterday := dateutil.DayKey(nowLocal.AddDate(0, 0, -1))
	prior, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, yesterday)
	if err != nil {
		return false, err
	}

	corrected := a.policy.ReconcileMissedClockOut(prior, nowLocal)
	if corrected == nil {
		return false, nil
	}

	if err := a.attendanceRepo.SetClockOut(ctx, prior.ID, *corrected); err != nil {
		return false, fmt.Errorf("failed to write reconciled clock-out: %w", err)
	}

	slog.Info("auto-corrected missed clock-out",
		"user_id", userID,
		"date", prior.Date,
		"clock_out", corrected.Format(time.RFC3339),
	)

	message := fmt.Sprintf("Your missed clock-out on %s was automatically set to %s.",
		prior.Date, corrected.In(a.policy.Location).Format("15:04"))
	if err := a.notifier.Notify(ctx, userID, message); err != nil {
		// The correction stands even if the notification write fails.
		slog.Error("failed to notify about clock-out correction", "user_id", userID, "error", err)
	}

	return true, nil
}

// MyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MyAttendance(ctx context.Context, limit int) ([]attendance.AttendanceResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	records, err := a.attendanceRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.NewAttendanceResponse(rec))
	}
	return responses, nil
}

// resolveWindow turns a WindowRequest into the list of day keys and the
// matching records. Explicit bounds win over Days; with neither set the
// window covers everything stored.
func (a *AttendanceServiceImpl) resolveWindow(ctx context.Context, req attendance.WindowRequest) ([]string, []attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	switch {
	case req.StartDate != "" && req.EndDate != "":
		dates := dateutil.Between(req.StartDate, req.EndDate)
		records, err := a.attendanceRepo.ListRange(ctx, req.StartDate, req.EndDate)
		return dates, records, err

	case req.Days > 0:
		dates := dateutil.LastNDays(req.Days, a.now().In(a.policy.Location))
		records, err := a.attendanceRepo.ListRange(ctx, dates[0], dates[len(dates)-1])
		return dates, records, err

	default:
		min, max, ok, err := a.attendanceRepo.DateBounds(ctx)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return []string{}, nil, nil
		}
		records, err := a.attendanceRepo.ListAll(ctx)
		return dateutil.Between(min, max), records, err
	}
}

func matchesSearch(u user.User, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	for _, field := range []*string{u.Name, u.Department, u.Position} {
		if field != nil && strings.Contains(strings.ToLower(*field), q) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(u.Email), q)
}

// indexByUserAndDate builds the employee x day lookup used by both grids.
func indexByUserAndDate(records []attendance.Attendance) map[string]map[string]*attendance.Attendance {
	index := make(map[string]map[string]*attendance.Attendance)
	for i := range records {
		rec := &records[i]
		if index[rec.UserID] == nil {
			index[rec.UserID] = make(map[string]*attendance.Attendance)
		}
		index[rec.UserID][rec.Date] = rec
	}
	return index
}

// Matrix implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Matrix(ctx context.Context, req attendance.WindowRequest) (attendance.MatrixResponse, error) {
	dates, records, err := a.resolveWindow(ctx, req)
	if err != nil {
		return attendance.MatrixResponse{}, err
	}

	users, err := a.userRepo.ListActive(ctx)
	if err != nil {
		return attendance.MatrixResponse{}, err
	}

	index := indexByUserAndDate(records)
	rows := make([]attendance.MatrixRow, 0, len(users))
	for _, u := range users {
		if !matchesSearch(u, req.Search) {
			continue
		}
		days := make(map[string]attendance.DayStatus, len(dates))
		for _, date := range dates {
			days[date] = attendance.Classify(index[u.ID][date])
		}
		rows = append(rows, attendance.MatrixRow{
			UserID:     u.ID,
			Name:       stringOrEmpty(u.Name),
			Department: stringOrEmpty(u.Department),
			Days:       days,
		})
	}

	return attendance.MatrixResponse{Dates: dates, Rows: rows}, nil
}

// WorkHours implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) WorkHours(ctx context.Context, req attendance.WindowRequest) (attendance.WorkHoursResponse, error) {
	dates, records, err := a.resolveWindow(ctx, req)
	if err != nil {
		return attendance.WorkHoursResponse{}, err
	}

	users, err := a.userRepo.ListActive(ctx)
	if err != nil {
		return attendance.WorkHoursResponse{}, err
	}

	index := indexByUserAndDate(records)
	rows := make([]attendance.WorkHoursRow, 0, len(users))
	for _, u := range users {
		if !matchesSearch(u, req.Search) {
			continue
		}
		minutes := make(map[string]int, len(dates))
		total := 0
		workedDays := 0
		for _, date := range dates {
			var min int
			if rec := index[u.ID][date]; rec != nil {
				min = a.policy.EffectiveWorkMinutes(rec.ClockIn, rec.ClockOut)
			}
			minutes[date] = min
			total += min
			if min > 0 {
				workedDays++
			}
		}
		rows = append(rows, attendance.WorkHoursRow{
			UserID:       u.ID,
			Name:         stringOrEmpty(u.Name),
			Department:   stringOrEmpty(u.Department),
			Minutes:      minutes,
			TotalMinutes: total,
			TotalHours:   attendance.FormatMinutes(total),
			WorkedDays:   workedDays,
		})
	}

	return attendance.WorkHoursResponse{Dates: dates, Rows: rows}, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
