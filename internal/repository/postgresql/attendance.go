package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/attendance"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/database"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/dateutil"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var rec attendance.Attendance
	var date time.Time
	err := row.Scan(&rec.ID, &rec.UserID, &date, &rec.ClockIn, &rec.ClockOut, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, err
	}
	rec.Date = dateutil.DayKey(date)
	return rec, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance (id, user_id, date, clock_in, clock_out)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, rec.ID, rec.UserID, rec.Date, rec.ClockIn, rec.ClockOut).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return rec, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, clock_in, clock_out, created_at, updated_at
		FROM attendance
		WHERE user_id = $1 AND date = $2
		LIMIT 1
	`
	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for the day is a valid state
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}
	return &rec, nil
}

// SetClockOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetClockOut(ctx context.Context, id string, clockOut time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE attendance SET clock_out = $2, updated_at = now() WHERE id = $1 AND clock_out IS NULL`
	tag, err := q.Exec(ctx, query, id, clockOut)
	if err != nil {
		return fmt.Errorf("failed to set clock out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyClockedOut
	}
	return nil
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, clock_in, clock_out, created_at, updated_at
		FROM attendance
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`
	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by user: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListRange(ctx context.Context, start, end string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, clock_in, clock_out, created_at, updated_at
		FROM attendance
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`
	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance range: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// ListAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListAll(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, clock_in, clock_out, created_at, updated_at
		FROM attendance
		ORDER BY date ASC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

// DateBounds implements attendance.AttendanceRepository.
func (r *attendanceRepository) DateBounds(ctx context.Context) (string, string, bool, error) {
	q := GetQuerier(ctx, r.db)

	var min, max *time.Time
	err := q.QueryRow(ctx, `SELECT min(date), max(date) FROM attendance`).Scan(&min, &max)
	if err != nil {
		return "", "", false, fmt.Errorf("failed to get attendance date bounds: %w", err)
	}
	if min == nil || max == nil {
		return "", "", false, nil
	}
	return dateutil.DayKey(*min), dateutil.DayKey(*max), true, nil
}

// CountByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) CountByDate(ctx context.Context, date string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT count(*) FROM attendance WHERE date = $1`, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance by date: %w", err)
	}
	return count, nil
}

func collectAttendance(rows pgx.Rows) ([]attendance.Attendance, error) {
	var records []attendance.Attendance
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
