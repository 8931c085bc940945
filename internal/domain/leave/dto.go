package leave

import (
	"time"

	"github.com/hamkke-hr/hr-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    *string `json:"reason"`
}

// Validate rejects malformed date ranges before anything reaches the
// store.
func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must not be after end_date"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserName    *string `json:"user_name,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Days        int     `json:"days"`
	Status      string  `json:"status"`
	Reason      *string `json:"reason"`
	RequestedAt string  `json:"requested_at"`
}

func NewLeaveRequestResponse(req LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:          req.ID,
		UserID:      req.UserID,
		UserName:    req.UserName,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        req.Days(),
		Status:      string(req.Status),
		Reason:      req.Reason,
		RequestedAt: req.RequestedAt.Format(time.RFC3339),
	}
}

type BalanceResponse struct {
	UserID      string  `json:"user_id"`
	Name        *string `json:"name"`
	HireDate    *string `json:"hire_date"`
	TotalMonths int     `json:"total_months"`
	EarnedDays  int     `json:"earned_days"`
	BonusDays   int     `json:"bonus_days"`
	UsedDays    int     `json:"used_days"`
	TotalEarned int     `json:"total_earned_days"`
	Remaining   int     `json:"remaining_days"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	var hireDate *string
	if b.HireDate != nil {
		formatted := b.HireDate.Format("2006-01-02")
		hireDate = &formatted
	}
	return BalanceResponse{
		UserID:      b.UserID,
		Name:        b.Name,
		HireDate:    hireDate,
		TotalMonths: b.TotalMonths,
		EarnedDays:  b.EarnedDays,
		BonusDays:   b.BonusDays,
		UsedDays:    b.UsedDays,
		TotalEarned: b.TotalEarned(),
		Remaining:   b.Remaining(),
	}
}

type SetTotalEarnedRequest struct {
	TotalEarnedDays int `json:"total_earned_days"`
}

type SetBonusRequest struct {
	BonusDays int `json:"bonus_days"`
}

// CalendarEntrant is one employee shown on a calendar day.
type CalendarEntrant struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// CalendarResponse maps day keys to employees on approved leave.
type CalendarResponse struct {
	Year  int                          `json:"year"`
	Month int                          `json:"month"`
	Days  map[string][]CalendarEntrant `json:"days"`
}
