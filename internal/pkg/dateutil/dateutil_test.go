package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastNDays(t *testing.T) {
	today := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("length and ordering", func(t *testing.T) {
		for _, n := range []int{1, 7, 14, 30} {
			days := LastNDays(n, today)
			require.Len(t, days, n)
			assert.Equal(t, "2025-03-15", days[n-1], "last element must be today")
			seen := map[string]bool{}
			for i := 1; i < len(days); i++ {
				assert.Less(t, days[i-1], days[i], "must be strictly ascending")
			}
			for _, d := range days {
				assert.False(t, seen[d], "duplicate day %s", d)
				seen[d] = true
			}
		}
	})

	t.Run("zero and negative", func(t *testing.T) {
		assert.Empty(t, LastNDays(0, today))
		assert.Empty(t, LastNDays(-3, today))
	})

	t.Run("crosses month boundary", func(t *testing.T) {
		days := LastNDays(3, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, []string{"2025-02-27", "2025-02-28", "2025-03-01"}, days)
	})
}

func TestBetween(t *testing.T) {
	t.Run("inclusive span", func(t *testing.T) {
		days := Between("2025-01-30", "2025-02-02")
		assert.Equal(t, []string{"2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02"}, days)
	})

	t.Run("single day", func(t *testing.T) {
		assert.Equal(t, []string{"2025-06-01"}, Between("2025-06-01", "2025-06-01"))
	})

	t.Run("reversed bounds", func(t *testing.T) {
		assert.Empty(t, Between("2025-02-02", "2025-01-30"))
	})

	t.Run("garbage input", func(t *testing.T) {
		assert.Empty(t, Between("not-a-date", "2025-01-30"))
		assert.Empty(t, Between("2025-01-30", ""))
	})
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(2025, time.February)
	assert.Equal(t, "2025-02-01", first)
	assert.Equal(t, "2025-02-28", last)

	first, last = MonthBounds(2024, time.February)
	assert.Equal(t, "2024-02-01", first)
	assert.Equal(t, "2024-02-29", last)

	first, last = MonthBounds(2025, time.December)
	assert.Equal(t, "2025-12-01", first)
	assert.Equal(t, "2025-12-31", last)
}
