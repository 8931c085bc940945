package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalanceRemaining(t *testing.T) {
	b := Balance{TotalMonths: 1, EarnedDays: 2, BonusDays: 1, UsedDays: 1}
	assert.Equal(t, 3, b.Remaining())
	assert.Equal(t, 4, b.TotalEarned())

	t.Run("zero balance", func(t *testing.T) {
		assert.Equal(t, 0, Balance{}.Remaining())
	})

	t.Run("overdrawn goes negative", func(t *testing.T) {
		overdrawn := Balance{TotalMonths: 1, UsedDays: 3}
		assert.Equal(t, -2, overdrawn.Remaining())
	})
}

func TestBackSolveEarnedDays(t *testing.T) {
	// Requesting a total of 5 with 1 tenure month and 1 bonus day leaves
	// 3 for the earned component.
	assert.Equal(t, 3, BackSolveEarnedDays(5, 1, 1))
	assert.Equal(t, 0, BackSolveEarnedDays(2, 1, 1))
	assert.Equal(t, -1, BackSolveEarnedDays(1, 1, 1))
}

func TestLeaveRequestDays(t *testing.T) {
	assert.Equal(t, 1, LeaveRequest{StartDate: "2025-06-02", EndDate: "2025-06-02"}.Days())
	assert.Equal(t, 4, LeaveRequest{StartDate: "2025-01-30", EndDate: "2025-02-02"}.Days())
	assert.Equal(t, 0, LeaveRequest{StartDate: "2025-02-02", EndDate: "2025-01-30"}.Days())
}
