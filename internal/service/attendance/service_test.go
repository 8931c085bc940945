package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamkke-hr/hr-backend-go/internal/domain/attendance"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/notification"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/user"
)

var seoul, _ = time.LoadLocation("Asia/Seoul")

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance // keyed by user_id|date
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func (f *fakeAttendanceRepo) key(userID, date string) string { return userID + "|" + date }

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	rec.ID = uuid.NewString()
	f.records[f.key(rec.UserID, rec.Date)] = &rec
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, userID, date string) (*attendance.Attendance, error) {
	rec, ok := f.records[f.key(userID, date)]
	if !ok {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeAttendanceRepo) SetClockOut(_ context.Context, id string, clockOut time.Time) error {
	for _, rec := range f.records {
		if rec.ID == id {
			if rec.ClockOut != nil {
				return attendance.ErrAlreadyClockedOut
			}
			rec.ClockOut = &clockOut
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, userID string, limit int) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListRange(_ context.Context, start, end string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.Date >= start && rec.Date <= end {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListAll(_ context.Context) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) DateBounds(_ context.Context) (string, string, bool, error) {
	min, max := "", ""
	for _, rec := range f.records {
		if min == "" || rec.Date < min {
			min = rec.Date
		}
		if max == "" || rec.Date > max {
			max = rec.Date
		}
	}
	return min, max, min != "", nil
}

func (f *fakeAttendanceRepo) CountByDate(_ context.Context, date string) (int64, error) {
	var n int64
	for _, rec := range f.records {
		if rec.Date == date {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	user.UserRepository
	users []user.User
}

func (f *fakeUserRepo) ListActive(_ context.Context) ([]user.User, error) {
	return f.users, nil
}

type fakeNotifier struct {
	notification.NotificationService
	sent []string
}

func (f *fakeNotifier) Notify(_ context.Context, userID, message string) error {
	f.sent = append(f.sent, userID+": "+message)
	return nil
}

func claimsContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    string(role),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeAttendanceRepo, users *fakeUserRepo, notifier *fakeNotifier, now time.Time) *AttendanceServiceImpl {
	svc := NewAttendanceService(repo, users, notifier, attendance.DefaultPolicy(seoul))
	svc.now = func() time.Time { return now }
	return svc
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, seoul)
	require.NoError(t, err)
	return ts
}

func TestClockFirstActionClocksInWithGraceWindow(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, &fakeUserRepo{}, &fakeNotifier{}, at(t, "2026-03-02 08:30:00"))
	ctx := claimsContext(t, "emp-1", user.RoleEmployee)

	resp, err := svc.Clock(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionClockIn, resp.Action)
	assert.False(t, resp.Reconciled)

	stored, err := repo.GetByUserAndDate(ctx, "emp-1", "2026-03-02")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, at(t, "2026-03-02 09:00:00"), stored.ClockIn.In(seoul))
	assert.Nil(t, stored.ClockOut)
}

func TestClockSecondActionStoresLiteralClockOut(t *testing.T) {
	repo := newFakeAttendanceRepo()
	clockIn := at(t, "2026-03-02 09:00:00")
	repo.records["emp-1|2026-03-02"] = &attendance.Attendance{
		ID: "rec-1", UserID: "emp-1", Date: "2026-03-02", ClockIn: &clockIn,
	}
	svc := newTestService(repo, &fakeUserRepo{}, &fakeNotifier{}, at(t, "2026-03-02 19:30:00"))

	resp, err := svc.Clock(claimsContext(t, "emp-1", user.RoleEmployee))
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionClockOut, resp.Action)

	// stored punch is the literal time; the 18:00 cap applies only at
	// aggregation
	stored := repo.records["emp-1|2026-03-02"]
	assert.Equal(t, at(t, "2026-03-02 19:30:00"), stored.ClockOut.In(seoul))
}

func TestClockThirdActionRejected(t *testing.T) {
	repo := newFakeAttendanceRepo()
	clockIn := at(t, "2026-03-02 09:00:00")
	clockOut := at(t, "2026-03-02 18:00:00")
	repo.records["emp-1|2026-03-02"] = &attendance.Attendance{
		ID: "rec-1", UserID: "emp-1", Date: "2026-03-02", ClockIn: &clockIn, ClockOut: &clockOut,
	}
	svc := newTestService(repo, &fakeUserRepo{}, &fakeNotifier{}, at(t, "2026-03-02 20:00:00"))

	_, err := svc.Clock(claimsContext(t, "emp-1", user.RoleEmployee))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestClockReconcilesMissedPriorDayClockOut(t *testing.T) {
	repo := newFakeAttendanceRepo()
	priorIn := at(t, "2026-03-01 09:00:00")
	repo.records["emp-1|2026-03-01"] = &attendance.Attendance{
		ID: "rec-old", UserID: "emp-1", Date: "2026-03-01", ClockIn: &priorIn,
	}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, &fakeUserRepo{}, notifier, at(t, "2026-03-02 08:30:00"))

	resp, err := svc.Clock(claimsContext(t, "emp-1", user.RoleEmployee))
	require.NoError(t, err)
	assert.True(t, resp.Reconciled)
	assert.Equal(t, attendance.ActionClockIn, resp.Action)

	prior := repo.records["emp-1|2026-03-01"]
	require.NotNil(t, prior.ClockOut)
	assert.Equal(t, at(t, "2026-03-01 18:00:00"), prior.ClockOut.In(seoul))

	// today got its own fresh record
	today := repo.records["emp-1|2026-03-02"]
	require.NotNil(t, today)
	assert.Nil(t, today.ClockOut)

	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "2026-03-01")
}

func TestClockSkipsReconciliationForAdmin(t *testing.T) {
	repo := newFakeAttendanceRepo()
	priorIn := at(t, "2026-03-01 09:00:00")
	repo.records["admin-1|2026-03-01"] = &attendance.Attendance{
		ID: "rec-old", UserID: "admin-1", Date: "2026-03-01", ClockIn: &priorIn,
	}
	notifier := &fakeNotifier{}
	svc := newTestService(repo, &fakeUserRepo{}, notifier, at(t, "2026-03-02 08:30:00"))

	resp, err := svc.Clock(claimsContext(t, "admin-1", user.RoleAdmin))
	require.NoError(t, err)
	assert.False(t, resp.Reconciled)
	assert.Nil(t, repo.records["admin-1|2026-03-01"].ClockOut)
	assert.Empty(t, notifier.sent)
}

func TestClockSkipsReconciliationAfterMorningThreshold(t *testing.T) {
	repo := newFakeAttendanceRepo()
	priorIn := at(t, "2026-03-01 09:00:00")
	repo.records["emp-1|2026-03-01"] = &attendance.Attendance{
		ID: "rec-old", UserID: "emp-1", Date: "2026-03-01", ClockIn: &priorIn,
	}
	svc := newTestService(repo, &fakeUserRepo{}, &fakeNotifier{}, at(t, "2026-03-02 10:15:00"))

	resp, err := svc.Clock(claimsContext(t, "emp-1", user.RoleEmployee))
	require.NoError(t, err)
	assert.False(t, resp.Reconciled)
	assert.Nil(t, repo.records["emp-1|2026-03-01"].ClockOut)
}

func strPtr(s string) *string { return &s }

func TestWorkHoursAppliesEndOfDayCap(t *testing.T) {
	repo := newFakeAttendanceRepo()
	clockIn := at(t, "2026-03-02 09:00:00")
	clockOut := at(t, "2026-03-02 21:00:00")
	repo.records["emp-1|2026-03-02"] = &attendance.Attendance{
		ID: "rec-1", UserID: "emp-1", Date: "2026-03-02", ClockIn: &clockIn, ClockOut: &clockOut,
	}
	users := &fakeUserRepo{users: []user.User{
		{ID: "emp-1", Email: "kim@example.com", Name: strPtr("Kim")},
	}}
	svc := newTestService(repo, users, &fakeNotifier{}, at(t, "2026-03-03 12:00:00"))

	resp, err := svc.WorkHours(claimsContext(t, "admin-1", user.RoleAdmin), attendance.WindowRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 540, resp.Rows[0].Minutes["2026-03-02"])
	assert.Equal(t, "9:00", resp.Rows[0].TotalHours)
	assert.Equal(t, 1, resp.Rows[0].WorkedDays)
}

func TestMatrixClassifiesDays(t *testing.T) {
	repo := newFakeAttendanceRepo()
	clockIn := at(t, "2026-03-02 09:00:00")
	clockOut := at(t, "2026-03-02 18:00:00")
	openIn := at(t, "2026-03-03 09:00:00")
	repo.records["emp-1|2026-03-02"] = &attendance.Attendance{
		ID: "r1", UserID: "emp-1", Date: "2026-03-02", ClockIn: &clockIn, ClockOut: &clockOut,
	}
	repo.records["emp-1|2026-03-03"] = &attendance.Attendance{
		ID: "r2", UserID: "emp-1", Date: "2026-03-03", ClockIn: &openIn,
	}
	users := &fakeUserRepo{users: []user.User{
		{ID: "emp-1", Email: "kim@example.com", Name: strPtr("Kim")},
	}}
	svc := newTestService(repo, users, &fakeNotifier{}, at(t, "2026-03-04 12:00:00"))

	resp, err := svc.Matrix(claimsContext(t, "admin-1", user.RoleAdmin), attendance.WindowRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-02", "2026-03-03", "2026-03-04"}, resp.Dates)
	require.Len(t, resp.Rows, 1)
	row := resp.Rows[0]
	assert.Equal(t, attendance.StatusComplete, row.Days["2026-03-02"])
	assert.Equal(t, attendance.StatusInProgress, row.Days["2026-03-03"])
	assert.Equal(t, attendance.StatusAbsent, row.Days["2026-03-04"])
}

func TestMatrixSearchFiltersRows(t *testing.T) {
	repo := newFakeAttendanceRepo()
	users := &fakeUserRepo{users: []user.User{
		{ID: "emp-1", Email: "kim@example.com", Name: strPtr("Kim"), Department: strPtr("Engineering")},
		{ID: "emp-2", Email: "lee@example.com", Name: strPtr("Lee"), Department: strPtr("Sales")},
	}}
	svc := newTestService(repo, users, &fakeNotifier{}, at(t, "2026-03-04 12:00:00"))

	resp, err := svc.Matrix(claimsContext(t, "admin-1", user.RoleAdmin), attendance.WindowRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Search:    "engineer",
	})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "Kim", resp.Rows[0].Name)
}
