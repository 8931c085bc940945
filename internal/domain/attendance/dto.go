package attendance

import (
	"fmt"
	"time"

	"github.com/hamkke-hr/hr-backend-go/internal/pkg/validator"
)

// ClockAction tells the caller which punch the toggle performed.
type ClockAction string

const (
	ActionClockIn  ClockAction = "clock_in"
	ActionClockOut ClockAction = "clock_out"
)

type ClockResponse struct {
	Action     ClockAction        `json:"action"`
	Record     AttendanceResponse `json:"record"`
	Reconciled bool               `json:"reconciled,omitempty"` // prior-day clock-out was auto-corrected
}

type AttendanceResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Date        string  `json:"date"`
	ClockIn     *string `json:"clock_in"`
	ClockOut    *string `json:"clock_out"`
	Status      string  `json:"status"`
	WorkMinutes int     `json:"work_minutes"`
	WorkHours   string  `json:"work_hours"` // H:MM
}

// WindowRequest selects the reporting window. Explicit bounds win over
// Days; with neither set the window spans all stored records.
type WindowRequest struct {
	Days      int    `json:"days"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Search    string `json:"search"`
}

func (r WindowRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.StartDate != "" || r.EndDate != "" {
		start, ok := validator.IsValidDate(r.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
		end, ok := validator.IsValidDate(r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
		if len(errs) == 0 && start.After(end) {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must not be after end_date"})
		}
	} else if r.Days < 0 {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MatrixResponse is the per-employee x per-day status grid.
type MatrixResponse struct {
	Dates []string    `json:"dates"`
	Rows  []MatrixRow `json:"rows"`
}

type MatrixRow struct {
	UserID     string               `json:"user_id"`
	Name       string               `json:"name"`
	Department string               `json:"department"`
	Days       map[string]DayStatus `json:"days"`
}

// WorkHoursResponse is the per-employee x per-day minutes grid with totals.
type WorkHoursResponse struct {
	Dates []string       `json:"dates"`
	Rows  []WorkHoursRow `json:"rows"`
}

type WorkHoursRow struct {
	UserID       string         `json:"user_id"`
	Name         string         `json:"name"`
	Department   string         `json:"department"`
	Minutes      map[string]int `json:"minutes"`
	TotalMinutes int            `json:"total_minutes"`
	TotalHours   string         `json:"total_hours"` // H:MM
	WorkedDays   int            `json:"worked_days"`
}

// FormatMinutes renders minutes as H:MM with floor-divided hours and
// zero-padded minutes.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// NewAttendanceResponse builds the wire shape for one record.
func NewAttendanceResponse(rec Attendance) AttendanceResponse {
	minutes := WorkMinutes(rec.ClockIn, rec.ClockOut)
	return AttendanceResponse{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Date:        rec.Date,
		ClockIn:     timePtrToString(rec.ClockIn),
		ClockOut:    timePtrToString(rec.ClockOut),
		Status:      string(Classify(&rec)),
		WorkMinutes: minutes,
		WorkHours:   FormatMinutes(minutes),
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}
