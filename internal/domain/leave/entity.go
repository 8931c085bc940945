package leave

import (
	"time"

	"github.com/hamkke-hr/hr-backend-go/internal/pkg/dateutil"
)

// RequestStatus is the leave request lifecycle state. The only legal
// transitions are pending->approved and pending->denied, and neither is
// ever reversed.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusDenied   RequestStatus = "denied"
)

type LeaveRequest struct {
	ID          string
	UserID      string
	StartDate   string // YYYY-MM-DD, inclusive
	EndDate     string // YYYY-MM-DD, inclusive
	Status      RequestStatus
	Reason      *string
	RequestedAt time.Time

	// Join fields
	UserName *string
}

// Days returns the inclusive day count of the request span, 0 when the
// dates do not parse or are reversed.
func (r LeaveRequest) Days() int {
	return len(dateutil.Between(r.StartDate, r.EndDate))
}

// Balance is the derived per-employee leave account. Remaining is always
// recomputed from its parts and never stored.
type Balance struct {
	UserID      string
	Name        *string
	HireDate    *time.Time
	TotalMonths int // tenure-based accrual
	EarnedDays  int // manually adjusted base
	BonusDays   int // admin-granted
	UsedDays    int // sum of approved spans
}

// Remaining returns the leave days still available.
func (b Balance) Remaining() int {
	return b.TotalMonths + b.EarnedDays + b.BonusDays - b.UsedDays
}

// TotalEarned is the displayed total entitlement before usage.
func (b Balance) TotalEarned() int {
	return b.TotalMonths + b.EarnedDays + b.BonusDays
}

// BackSolveEarnedDays computes the earned_days component that makes the
// total entitlement equal requestedTotal, given the fixed tenure and
// bonus parts. Only earned_days is ever persisted from this.
func BackSolveEarnedDays(requestedTotal, totalMonths, bonusDays int) int {
	return requestedTotal - totalMonths - bonusDays
}
