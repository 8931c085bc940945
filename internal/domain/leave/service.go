package leave

import "context"

// LeaveService defines business logic for leave requests and balances.
type LeaveService interface {
	// Submit files a new pending request after date validation.
	Submit(ctx context.Context, req SubmitRequest) (LeaveRequestResponse, error)

	// MyRequests returns the caller's requests, newest first.
	MyRequests(ctx context.Context) ([]LeaveRequestResponse, error)

	// ListAll returns every request with requester names (admin).
	ListAll(ctx context.Context, search string) ([]LeaveRequestResponse, error)

	// Approve and Deny move a pending request to its terminal state and
	// notify the requester (admin).
	Approve(ctx context.Context, id string) (LeaveRequestResponse, error)
	Deny(ctx context.Context, id string) (LeaveRequestResponse, error)

	// Balances returns the derived leave account for every employee.
	Balances(ctx context.Context) ([]BalanceResponse, error)

	// MyBalance returns the caller's leave account.
	MyBalance(ctx context.Context) (BalanceResponse, error)

	// SetTotalEarned back-solves and persists the earned_days component
	// so the total entitlement matches the requested figure (admin).
	SetTotalEarned(ctx context.Context, userID string, req SetTotalEarnedRequest) (BalanceResponse, error)

	// SetBonus writes bonus days directly; ResetBonus zeroes them (admin).
	SetBonus(ctx context.Context, userID string, req SetBonusRequest) (BalanceResponse, error)
	ResetBonus(ctx context.Context, userID string) (BalanceResponse, error)

	// Calendar projects approved leave onto the days of one month.
	Calendar(ctx context.Context, year int, month int) (CalendarResponse, error)
}
