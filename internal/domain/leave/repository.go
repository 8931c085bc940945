package leave

import "context"

// LeaveRequestRepository defines data access for leave requests.
type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// ListByUser returns the caller's requests, newest first.
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)

	// ListAll returns every request with the requester's name joined,
	// newest start date first.
	ListAll(ctx context.Context) ([]LeaveRequest, error)

	// ListApprovedIntersecting returns approved requests whose inclusive
	// span overlaps [from, to], with names joined, in requested order.
	ListApprovedIntersecting(ctx context.Context, from, to string) ([]LeaveRequest, error)

	// UpdateStatus moves a pending request to approved or denied.
	UpdateStatus(ctx context.Context, id string, status RequestStatus) error

	// CountPending counts pending requests, scoped to one user when
	// userID is non-nil.
	CountPending(ctx context.Context, userID *string) (int64, error)
}

// BalanceRepository reads the derived per-employee leave account from the
// remaining_leaves aggregate.
type BalanceRepository interface {
	ListBalances(ctx context.Context) ([]Balance, error)
	GetBalance(ctx context.Context, userID string) (Balance, error)
}

// LedgerWriter is the narrow capability over the leave_days ledger. Only
// these two mutations exist; callers enforce who may use them.
type LedgerWriter interface {
	SetEarnedDays(ctx context.Context, userID string, earnedDays int) error
	SetBonusDays(ctx context.Context, userID string, bonusDays int) error
}
