package attendance

import "time"

// Attendance is one employee-day punch record. At most one row exists per
// (UserID, Date); ClockOut is set at most once and rows are never deleted.
type Attendance struct {
	ID        string
	UserID    string
	Date      string // calendar day, YYYY-MM-DD
	ClockIn   *time.Time
	ClockOut  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join fields
	UserName       *string
	UserDepartment *string
}

// DayStatus is the derived per-day attendance state. It is recomputed on
// every read; there is no stored state machine.
type DayStatus string

const (
	StatusAbsent     DayStatus = "absent"
	StatusInProgress DayStatus = "in_progress" // clocked in, clock-out missing
	StatusComplete   DayStatus = "complete"
)

// Classify derives the day status from record presence and field
// population. A row with neither punch set counts as absent.
func Classify(rec *Attendance) DayStatus {
	switch {
	case rec == nil || rec.ClockIn == nil:
		return StatusAbsent
	case rec.ClockOut == nil:
		return StatusInProgress
	default:
		return StatusComplete
	}
}

// WorkMinutes returns whole minutes between the punches, rounded, clamped
// at zero. A missing punch is a valid state and yields 0, not an error.
func WorkMinutes(clockIn, clockOut *time.Time) int {
	if clockIn == nil || clockOut == nil {
		return 0
	}
	minutes := int(clockOut.Sub(*clockIn).Round(time.Minute) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}
