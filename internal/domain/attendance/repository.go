package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for punch records.
type AttendanceRepository interface {
	// Create inserts the first punch of the day. The unique
	// (user_id, date) constraint guards against double clock-ins.
	Create(ctx context.Context, rec Attendance) (Attendance, error)

	// GetByUserAndDate returns nil without error when no row exists.
	GetByUserAndDate(ctx context.Context, userID string, date string) (*Attendance, error)

	// SetClockOut closes a record; it is written at most once.
	SetClockOut(ctx context.Context, id string, clockOut time.Time) error

	// ListByUser returns the newest records first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Attendance, error)

	// ListRange returns all records with date in [start, end] for every user.
	ListRange(ctx context.Context, start, end string) ([]Attendance, error)

	// ListAll returns every stored record, for the all-time window.
	ListAll(ctx context.Context) ([]Attendance, error)

	// DateBounds returns the min and max stored dates; ok is false when
	// the table is empty.
	DateBounds(ctx context.Context) (min string, max string, ok bool, err error)

	CountByDate(ctx context.Context, date string) (int64, error)
}
