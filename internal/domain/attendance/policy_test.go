package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seoul = mustLoadLocation("Asia/Seoul")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func at(t *testing.T, day string, hour, minute, sec int) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", day, seoul)
	require.NoError(t, err)
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(sec)*time.Second)
}

func TestWorkMinutes(t *testing.T) {
	in := at(t, "2025-03-10", 9, 0, 0)
	out := at(t, "2025-03-10", 18, 0, 0)

	t.Run("full day", func(t *testing.T) {
		assert.Equal(t, 540, WorkMinutes(&in, &out))
	})

	t.Run("missing punches yield zero", func(t *testing.T) {
		assert.Equal(t, 0, WorkMinutes(nil, &out))
		assert.Equal(t, 0, WorkMinutes(&in, nil))
		assert.Equal(t, 0, WorkMinutes(nil, nil))
	})

	t.Run("clock-out before clock-in clamps to zero", func(t *testing.T) {
		assert.Equal(t, 0, WorkMinutes(&out, &in))
	})

	t.Run("rounds to nearest minute", func(t *testing.T) {
		outPlus := out.Add(29 * time.Second)
		assert.Equal(t, 540, WorkMinutes(&in, &outPlus))
		outPlus = out.Add(31 * time.Second)
		assert.Equal(t, 541, WorkMinutes(&in, &outPlus))
	})
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "9:00", FormatMinutes(540))
	assert.Equal(t, "8:05", FormatMinutes(485))
	assert.Equal(t, "0:00", FormatMinutes(0))
	assert.Equal(t, "0:00", FormatMinutes(-10))
	assert.Equal(t, "25:01", FormatMinutes(1501))
}

func TestClassify(t *testing.T) {
	in := at(t, "2025-03-10", 9, 0, 0)
	out := at(t, "2025-03-10", 18, 0, 0)

	assert.Equal(t, StatusAbsent, Classify(nil))
	assert.Equal(t, StatusAbsent, Classify(&Attendance{Date: "2025-03-10"}))
	assert.Equal(t, StatusInProgress, Classify(&Attendance{Date: "2025-03-10", ClockIn: &in}))
	assert.Equal(t, StatusComplete, Classify(&Attendance{Date: "2025-03-10", ClockIn: &in, ClockOut: &out}))
}

func TestNormalizeClockIn(t *testing.T) {
	p := DefaultPolicy(seoul)

	tests := []struct {
		name   string
		action time.Time
		want   time.Time
	}{
		{"inside grace window", at(t, "2025-03-10", 8, 45, 0), at(t, "2025-03-10", 9, 0, 0)},
		{"window start boundary", at(t, "2025-03-10", 8, 0, 0), at(t, "2025-03-10", 9, 0, 0)},
		{"window end boundary", at(t, "2025-03-10", 9, 0, 0), at(t, "2025-03-10", 9, 0, 0)},
		{"just before window", at(t, "2025-03-10", 7, 59, 0), at(t, "2025-03-10", 7, 59, 0)},
		{"just after window", at(t, "2025-03-10", 9, 0, 1), at(t, "2025-03-10", 9, 0, 1)},
		{"late morning", at(t, "2025-03-10", 10, 30, 0), at(t, "2025-03-10", 10, 30, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, p.NormalizeClockIn(tc.action).Equal(tc.want))
		})
	}
}

func TestCapClockOut(t *testing.T) {
	p := DefaultPolicy(seoul)

	t.Run("after cutoff is capped", func(t *testing.T) {
		got := p.CapClockOut(at(t, "2025-03-10", 20, 15, 0))
		assert.True(t, got.Equal(at(t, "2025-03-10", 18, 0, 0)))
	})

	t.Run("at cutoff unchanged", func(t *testing.T) {
		exact := at(t, "2025-03-10", 18, 0, 0)
		assert.True(t, p.CapClockOut(exact).Equal(exact))
	})

	t.Run("before cutoff unchanged", func(t *testing.T) {
		early := at(t, "2025-03-10", 17, 30, 0)
		assert.True(t, p.CapClockOut(early).Equal(early))
	})
}

func TestEffectiveWorkMinutes(t *testing.T) {
	p := DefaultPolicy(seoul)
	in := at(t, "2025-03-10", 9, 0, 0)
	lateOut := at(t, "2025-03-10", 21, 0, 0)

	// 9:00 to 21:00 counts as 9:00 to 18:00
	assert.Equal(t, 540, p.EffectiveWorkMinutes(&in, &lateOut))
	assert.Equal(t, 0, p.EffectiveWorkMinutes(&in, nil))
}

func TestReconcileMissedClockOut(t *testing.T) {
	p := DefaultPolicy(seoul)
	yIn := at(t, "2025-03-09", 9, 0, 0)
	yOut := at(t, "2025-03-09", 18, 0, 0)

	t.Run("open prior day before threshold", func(t *testing.T) {
		prior := &Attendance{Date: "2025-03-09", ClockIn: &yIn}
		got := p.ReconcileMissedClockOut(prior, at(t, "2025-03-10", 8, 30, 0))
		require.NotNil(t, got)
		assert.True(t, got.Equal(at(t, "2025-03-09", 18, 0, 0)))
	})

	t.Run("no correction at or after threshold", func(t *testing.T) {
		prior := &Attendance{Date: "2025-03-09", ClockIn: &yIn}
		assert.Nil(t, p.ReconcileMissedClockOut(prior, at(t, "2025-03-10", 9, 0, 0)))
		assert.Nil(t, p.ReconcileMissedClockOut(prior, at(t, "2025-03-10", 14, 0, 0)))
	})

	t.Run("closed or absent prior day", func(t *testing.T) {
		now := at(t, "2025-03-10", 8, 30, 0)
		assert.Nil(t, p.ReconcileMissedClockOut(nil, now))
		assert.Nil(t, p.ReconcileMissedClockOut(&Attendance{Date: "2025-03-09"}, now))
		assert.Nil(t, p.ReconcileMissedClockOut(&Attendance{Date: "2025-03-09", ClockIn: &yIn, ClockOut: &yOut}, now))
	})
}
