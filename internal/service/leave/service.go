package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/leave"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/notification"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/dateutil"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	requestRepo leave.LeaveRequestRepository
	balanceRepo leave.BalanceRepository
	ledger      leave.LedgerWriter
	notifier    notification.NotificationService
}

func NewLeaveService(
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.BalanceRepository,
	ledger leave.LedgerWriter,
	notifier notification.NotificationService,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		requestRepo: requestRepo,
		balanceRepo: balanceRepo,
		ledger:      ledger,
		notifier:    notifier,
	}
}

func callerID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.LeaveRequestResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := l.requestRepo.Create(ctx, leave.LeaveRequest{
		UserID:    userID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(created), nil
}

// MyRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) MyRequests(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := l.requestRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

// ListAll implements leave.LeaveService.
func (l *LeaveServiceImpl) ListAll(ctx context.Context, search string) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if search != "" {
		q := strings.ToLower(search)
		filtered := requests[:0]
		for _, req := range requests {
			if req.UserName != nil && strings.Contains(strings.ToLower(*req.UserName), q) {
				filtered = append(filtered, req)
			}
		}
		requests = filtered
	}
	return toResponses(requests), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, id, leave.StatusApproved)
}

// Deny implements leave.LeaveService.
func (l *LeaveServiceImpl) Deny(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	return l.decide(ctx, id, leave.StatusDenied)
}

func (l *LeaveServiceImpl) decide(ctx context.Context, id string, status leave.RequestStatus) (leave.LeaveRequestResponse, error) {
	req, err := l.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if req.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	if err := l.requestRepo.UpdateStatus(ctx, id, status); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	req.Status = status

	verb := "approved"
	if status == leave.StatusDenied {
		verb = "denied"
	}
	message := fmt.Sprintf("Your leave request for %s ~ %s was %s.", req.StartDate, req.EndDate, verb)
	if err := l.notifier.Notify(ctx, req.UserID, message); err != nil {
		// The decision stands even if the notification write fails.
		slog.Error("failed to notify about leave decision", "request_id", id, "error", err)
	}

	return leave.NewLeaveRequestResponse(req), nil
}

// Balances implements leave.LeaveService.
func (l *LeaveServiceImpl) Balances(ctx context.Context) ([]leave.BalanceResponse, error) {
	balances, err := l.balanceRepo.ListBalances(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.NewBalanceResponse(b))
	}
	return responses, nil
}

// MyBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) MyBalance(ctx context.Context) (leave.BalanceResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	balance, err := l.balanceRepo.GetBalance(ctx, userID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.NewBalanceResponse(balance), nil
}

// SetTotalEarned implements leave.LeaveService. The requested figure is
// the desired total entitlement; only the earned_days component is
// back-solved and written, the tenure and bonus parts stay fixed.
func (l *LeaveServiceImpl) SetTotalEarned(ctx context.Context, userID string, req leave.SetTotalEarnedRequest) (leave.BalanceResponse, error) {
	balance, err := l.balanceRepo.GetBalance(ctx, userID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	if req.TotalEarnedDays < balance.UsedDays {
		return leave.BalanceResponse{}, validator.ValidationErrors{{
			Field:   "total_earned_days",
			Message: fmt.Sprintf("total earned days must not be below the %d days already used", balance.UsedDays),
		}}
	}

	earned := leave.BackSolveEarnedDays(req.TotalEarnedDays, balance.TotalMonths, balance.BonusDays)
	if err := l.ledger.SetEarnedDays(ctx, userID, earned); err != nil {
		return leave.BalanceResponse{}, err
	}

	balance, err = l.balanceRepo.GetBalance(ctx, userID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.NewBalanceResponse(balance), nil
}

// SetBonus implements leave.LeaveService.
func (l *LeaveServiceImpl) SetBonus(ctx context.Context, userID string, req leave.SetBonusRequest) (leave.BalanceResponse, error) {
	if req.BonusDays < 0 {
		return leave.BalanceResponse{}, validator.ValidationErrors{{
			Field:   "bonus_days",
			Message: "bonus days must not be negative",
		}}
	}

	if err := l.ledger.SetBonusDays(ctx, userID, req.BonusDays); err != nil {
		return leave.BalanceResponse{}, err
	}
	balance, err := l.balanceRepo.GetBalance(ctx, userID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.NewBalanceResponse(balance), nil
}

// ResetBonus implements leave.LeaveService.
func (l *LeaveServiceImpl) ResetBonus(ctx context.Context, userID string) (leave.BalanceResponse, error) {
	return l.SetBonus(ctx, userID, leave.SetBonusRequest{BonusDays: 0})
}

// Calendar implements leave.LeaveService.
func (l *LeaveServiceImpl) Calendar(ctx context.Context, year int, month int) (leave.CalendarResponse, error) {
	if month < 1 || month > 12 {
		return leave.CalendarResponse{}, fmt.Errorf("month must be between 1 and 12")
	}

	first, last := dateutil.MonthBounds(year, time.Month(month))
	requests, err := l.requestRepo.ListApprovedIntersecting(ctx, first, last)
	if err != nil {
		return leave.CalendarResponse{}, err
	}
	return ProjectCalendar(year, time.Month(month), requests), nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(req))
	}
	return responses
}
