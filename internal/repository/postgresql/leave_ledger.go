package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamkke-hr/hr-backend-go/internal/domain/leave"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// leaveBalanceRepository reads the remaining_leaves aggregate view. The
// view derives total_months from each user's hire date and used_days from
// approved request spans, so no running total is ever stored.
type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

const balanceColumns = `user_id, name, hire_date, total_months, earned_days, bonus_days, used_days`

func scanBalance(row pgx.Row) (leave.Balance, error) {
	var b leave.Balance
	err := row.Scan(&b.UserID, &b.Name, &b.HireDate, &b.TotalMonths, &b.EarnedDays, &b.BonusDays, &b.UsedDays)
	return b, err
}

// ListBalances implements leave.BalanceRepository.
func (r *leaveBalanceRepository) ListBalances(ctx context.Context) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + balanceColumns + ` FROM remaining_leaves ORDER BY lower(coalesce(name, '')) ASC`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// GetBalance implements leave.BalanceRepository.
func (r *leaveBalanceRepository) GetBalance(ctx context.Context, userID string) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + balanceColumns + ` FROM remaining_leaves WHERE user_id = $1`
	b, err := scanBalance(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

// leaveLedgerWriter is the narrow mutable surface over the leave_days
// ledger table.
type leaveLedgerWriter struct {
	db *database.DB
}

func NewLeaveLedgerWriter(db *database.DB) leave.LedgerWriter {
	return &leaveLedgerWriter{db: db}
}

// SetEarnedDays implements leave.LedgerWriter.
func (w *leaveLedgerWriter) SetEarnedDays(ctx context.Context, userID string, earnedDays int) error {
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO leave_days (user_id, earned_days)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET earned_days = EXCLUDED.earned_days
	`
	if _, err := q.Exec(ctx, query, userID, earnedDays); err != nil {
		return fmt.Errorf("failed to set earned days: %w", err)
	}
	return nil
}

// SetBonusDays implements leave.LedgerWriter.
func (w *leaveLedgerWriter) SetBonusDays(ctx context.Context, userID string, bonusDays int) error {
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO leave_days (user_id, bonus_days)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET bonus_days = EXCLUDED.bonus_days
	`
	if _, err := q.Exec(ctx, query, userID, bonusDays); err != nil {
		return fmt.Errorf("failed to set bonus days: %w", err)
	}
	return nil
}
