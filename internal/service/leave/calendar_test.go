package leave

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamkke-hr/hr-backend-go/internal/domain/leave"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/notification"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/validator"
)

func strPtr(s string) *string { return &s }

func TestProjectCalendarEnumeratesFullSpan(t *testing.T) {
	requests := []leave.LeaveRequest{
		{
			UserID:    "emp-kim",
			UserName:  strPtr("Kim"),
			StartDate: "2026-01-30",
			EndDate:   "2026-02-02",
			Status:    leave.StatusApproved,
		},
	}

	january := ProjectCalendar(2026, time.January, requests)
	assert.Equal(t, 2026, january.Year)
	assert.Equal(t, 1, january.Month)
	// a boundary-crossing span is carried whole, not clipped to the month
	require.Len(t, january.Days, 4)
	assert.Equal(t, []leave.CalendarEntrant{{UserID: "emp-kim", Name: "Kim"}}, january.Days["2026-01-30"])
	assert.Equal(t, []leave.CalendarEntrant{{UserID: "emp-kim", Name: "Kim"}}, january.Days["2026-01-31"])
	assert.Contains(t, january.Days, "2026-02-01")

	february := ProjectCalendar(2026, time.February, requests)
	require.Len(t, february.Days, 4)
	assert.Contains(t, february.Days, "2026-01-30")
	assert.Contains(t, february.Days, "2026-02-02")
}

func TestProjectCalendarKeepsSupplyOrderWithinADay(t *testing.T) {
	requests := []leave.LeaveRequest{
		{UserID: "emp-1", UserName: strPtr("Kim"), StartDate: "2026-03-10", EndDate: "2026-03-10"},
		{UserID: "emp-2", UserName: strPtr("Lee"), StartDate: "2026-03-10", EndDate: "2026-03-11"},
	}

	resp := ProjectCalendar(2026, time.March, requests)
	require.Len(t, resp.Days["2026-03-10"], 2)
	assert.Equal(t, "Kim", resp.Days["2026-03-10"][0].Name)
	assert.Equal(t, "Lee", resp.Days["2026-03-10"][1].Name)
	require.Len(t, resp.Days["2026-03-11"], 1)
}

func TestProjectCalendarEmptyRequests(t *testing.T) {
	resp := ProjectCalendar(2026, time.April, nil)
	assert.Empty(t, resp.Days)
}

type fakeRequestRepo struct {
	leave.LeaveRequestRepository
	requests map[string]*leave.LeaveRequest
	statuses map[string]leave.RequestStatus
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return *req, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id string, status leave.RequestStatus) error {
	req, ok := f.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if req.Status != leave.StatusPending {
		return leave.ErrLeaveAlreadyProcessed
	}
	req.Status = status
	f.statuses[id] = status
	return nil
}

type fakeNotifier struct {
	notification.NotificationService
	sent []string
}

func (f *fakeNotifier) Notify(_ context.Context, userID, message string) error {
	f.sent = append(f.sent, userID+": "+message)
	return nil
}

type fakeBalanceRepo struct {
	balances map[string]leave.Balance
}

func (f *fakeBalanceRepo) ListBalances(_ context.Context) ([]leave.Balance, error) {
	var out []leave.Balance
	for _, b := range f.balances {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBalanceRepo) GetBalance(_ context.Context, userID string) (leave.Balance, error) {
	b, ok := f.balances[userID]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

type fakeLedger struct {
	balances *fakeBalanceRepo
}

func (f *fakeLedger) SetEarnedDays(_ context.Context, userID string, earnedDays int) error {
	b := f.balances.balances[userID]
	b.UserID = userID
	b.EarnedDays = earnedDays
	f.balances.balances[userID] = b
	return nil
}

func (f *fakeLedger) SetBonusDays(_ context.Context, userID string, bonusDays int) error {
	b := f.balances.balances[userID]
	b.UserID = userID
	b.BonusDays = bonusDays
	f.balances.balances[userID] = b
	return nil
}

func adminContext(t *testing.T) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{"user_id": "admin-1", "role": "admin"})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestApproveNotifiesRequester(t *testing.T) {
	repo := &fakeRequestRepo{
		requests: map[string]*leave.LeaveRequest{
			"req-1": {ID: "req-1", UserID: "emp-1", StartDate: "2026-03-10", EndDate: "2026-03-12", Status: leave.StatusPending},
		},
		statuses: map[string]leave.RequestStatus{},
	}
	notifier := &fakeNotifier{}
	svc := NewLeaveService(repo, &fakeBalanceRepo{}, &fakeLedger{}, notifier)

	resp, err := svc.Approve(adminContext(t), "req-1")
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), resp.Status)
	assert.Equal(t, 3, resp.Days)
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "emp-1")
	assert.Contains(t, notifier.sent[0], "approved")
}

func TestDecideRejectsAlreadyProcessedRequest(t *testing.T) {
	repo := &fakeRequestRepo{
		requests: map[string]*leave.LeaveRequest{
			"req-1": {ID: "req-1", UserID: "emp-1", StartDate: "2026-03-10", EndDate: "2026-03-10", Status: leave.StatusApproved},
		},
		statuses: map[string]leave.RequestStatus{},
	}
	svc := NewLeaveService(repo, &fakeBalanceRepo{}, &fakeLedger{}, &fakeNotifier{})

	_, err := svc.Deny(adminContext(t), "req-1")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestSetTotalEarnedBackSolvesEarnedDays(t *testing.T) {
	balances := &fakeBalanceRepo{balances: map[string]leave.Balance{
		"emp-1": {UserID: "emp-1", TotalMonths: 5, EarnedDays: 0, BonusDays: 1},
	}}
	svc := NewLeaveService(&fakeRequestRepo{}, balances, &fakeLedger{balances: balances}, &fakeNotifier{})

	resp, err := svc.SetTotalEarned(adminContext(t), "emp-1", leave.SetTotalEarnedRequest{TotalEarnedDays: 10})
	require.NoError(t, err)
	// 10 requested total minus 5 tenure months minus 1 bonus
	assert.Equal(t, 4, resp.EarnedDays)
	assert.Equal(t, 10, resp.TotalEarned)
}

func TestSetTotalEarnedRejectsTotalBelowUsedDays(t *testing.T) {
	balances := &fakeBalanceRepo{balances: map[string]leave.Balance{
		"emp-1": {UserID: "emp-1", TotalMonths: 2, EarnedDays: 5, BonusDays: 1, UsedDays: 6},
	}}
	svc := NewLeaveService(&fakeRequestRepo{}, balances, &fakeLedger{balances: balances}, &fakeNotifier{})

	_, err := svc.SetTotalEarned(adminContext(t), "emp-1", leave.SetTotalEarnedRequest{TotalEarnedDays: 3})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "total_earned_days")
	// the ledger was never touched
	assert.Equal(t, 5, balances.balances["emp-1"].EarnedDays)
}

func TestSetBonusRejectsNegativeDays(t *testing.T) {
	balances := &fakeBalanceRepo{balances: map[string]leave.Balance{
		"emp-1": {UserID: "emp-1", TotalMonths: 3, BonusDays: 2},
	}}
	svc := NewLeaveService(&fakeRequestRepo{}, balances, &fakeLedger{balances: balances}, &fakeNotifier{})

	_, err := svc.SetBonus(adminContext(t), "emp-1", leave.SetBonusRequest{BonusDays: -1})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "bonus_days")
	assert.Equal(t, 2, balances.balances["emp-1"].BonusDays)
}

func TestResetBonusZeroesBonusDays(t *testing.T) {
	balances := &fakeBalanceRepo{balances: map[string]leave.Balance{
		"emp-1": {UserID: "emp-1", TotalMonths: 3, BonusDays: 2},
	}}
	svc := NewLeaveService(&fakeRequestRepo{}, balances, &fakeLedger{balances: balances}, &fakeNotifier{})

	resp, err := svc.ResetBonus(adminContext(t), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.BonusDays)
	assert.Equal(t, 3, resp.TotalEarned)
}
