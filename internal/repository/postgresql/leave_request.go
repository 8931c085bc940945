package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/leave"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/database"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/dateutil"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

func scanLeaveRequest(row pgx.Row, withName bool) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	var start, end time.Time
	var status string
	dest := []interface{}{&req.ID, &req.UserID, &start, &end, &status, &req.Reason, &req.RequestedAt}
	if withName {
		dest = append(dest, &req.UserName)
	}
	if err := row.Scan(dest...); err != nil {
		return leave.LeaveRequest{}, err
	}
	req.StartDate = dateutil.DayKey(start)
	req.EndDate = dateutil.DayKey(end)
	req.Status = leave.RequestStatus(status)
	return req, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Status == "" {
		req.Status = leave.StatusPending
	}

	query := `
		INSERT INTO leave_requests (id, user_id, start_date, end_date, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING requested_at
	`
	err := q.QueryRow(ctx, query, req.ID, req.UserID, req.StartDate, req.EndDate, string(req.Status), req.Reason).
		Scan(&req.RequestedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.user_id, lr.start_date, lr.end_date, lr.status, lr.reason, lr.requested_at, u.name
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		WHERE lr.id = $1
	`
	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, start_date, end_date, status, reason, requested_at
		FROM leave_requests
		WHERE user_id = $1
		ORDER BY requested_at DESC
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by user: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows, false)
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.user_id, lr.start_date, lr.end_date, lr.status, lr.reason, lr.requested_at, u.name
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		ORDER BY lr.start_date DESC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows, true)
}

// ListApprovedIntersecting implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListApprovedIntersecting(ctx context.Context, from, to string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.user_id, lr.start_date, lr.end_date, lr.status, lr.reason, lr.requested_at, u.name
		FROM leave_requests lr
		JOIN users u ON u.id = lr.user_id
		WHERE lr.status = 'approved'
		  AND lr.start_date <= $2
		  AND lr.end_date >= $1
		ORDER BY lr.requested_at ASC
	`
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows, true)
}

// UpdateStatus implements leave.LeaveRequestRepository. The pending guard
// in the WHERE clause makes processed requests immutable.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE leave_requests SET status = $2 WHERE id = $1 AND status = 'pending'`
	tag, err := q.Exec(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveAlreadyProcessed
	}
	return nil
}

// CountPending implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) CountPending(ctx context.Context, userID *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	var err error
	if userID != nil {
		err = q.QueryRow(ctx, `SELECT count(*) FROM leave_requests WHERE status = 'pending' AND user_id = $1`, *userID).Scan(&count)
	} else {
		err = q.QueryRow(ctx, `SELECT count(*) FROM leave_requests WHERE status = 'pending'`).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}
	return count, nil
}

func collectLeaveRequests(rows pgx.Rows, withName bool) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows, withName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
