package attendance

import (
	"time"

	"github.com/hamkke-hr/hr-backend-go/internal/pkg/dateutil"
)

// Policy carries the company clock rules. All offsets are measured from
// local midnight in Location.
type Policy struct {
	Location         *time.Location
	GraceWindowStart time.Duration // clock-ins from here...
	GraceWindowEnd   time.Duration // ...through here (inclusive) snap to the window end
	EndOfDayCutoff   time.Duration // effective clock-out cap for aggregation
	MorningThreshold time.Duration // clock actions earlier than this trigger reconciliation
}

// DefaultPolicy returns the standing rules: 08:00-09:00 grace window,
// 18:00 cutoff, 09:00 morning threshold.
func DefaultPolicy(loc *time.Location) Policy {
	return Policy{
		Location:         loc,
		GraceWindowStart: 8 * time.Hour,
		GraceWindowEnd:   9 * time.Hour,
		EndOfDayCutoff:   18 * time.Hour,
		MorningThreshold: 9 * time.Hour,
	}
}

// sinceMidnight returns t's offset from local midnight.
func (p Policy) sinceMidnight(t time.Time) time.Duration {
	local := t.In(p.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.Location)
	return local.Sub(midnight)
}

// atOffset returns the instant at the given offset from local midnight of
// t's day.
func (p Policy) atOffset(t time.Time, offset time.Duration) time.Time {
	local := t.In(p.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.Location)
	return midnight.Add(offset)
}

// NormalizeClockIn applies the grace window: an action between the window
// bounds (inclusive) is stored as the window end of that day, otherwise
// the literal action time is kept.
func (p Policy) NormalizeClockIn(now time.Time) time.Time {
	offset := p.sinceMidnight(now)
	if offset >= p.GraceWindowStart && offset <= p.GraceWindowEnd {
		return p.atOffset(now, p.GraceWindowEnd)
	}
	return now
}

// CapClockOut clamps a clock-out past the end-of-day cutoff to the cutoff
// of the same local day. Used at aggregation time; stored rows keep the
// literal punch.
func (p Policy) CapClockOut(clockOut time.Time) time.Time {
	if p.sinceMidnight(clockOut) > p.EndOfDayCutoff {
		return p.atOffset(clockOut, p.EndOfDayCutoff)
	}
	return clockOut
}

// EffectiveWorkMinutes computes worked minutes with the end-of-day cap
// applied to the clock-out.
func (p Policy) EffectiveWorkMinutes(clockIn, clockOut *time.Time) int {
	if clockOut == nil {
		return WorkMinutes(clockIn, nil)
	}
	capped := p.CapClockOut(*clockOut)
	return WorkMinutes(clockIn, &capped)
}

// ReconcileMissedClockOut decides whether a prior-day record with a
// missing clock-out should be closed. When the prior record has a
// clock-in but no clock-out and the current action happens before the
// morning threshold, the returned time is the prior day's cutoff
// (e.g. 18:00). Nil means no correction. Only the immediately preceding
// day is ever considered; multi-day backfill is unsupported.
func (p Policy) ReconcileMissedClockOut(prior *Attendance, now time.Time) *time.Time {
	if prior == nil || prior.ClockIn == nil || prior.ClockOut != nil {
		return nil
	}
	if p.sinceMidnight(now) >= p.MorningThreshold {
		return nil
	}
	day, err := time.ParseInLocation(dateutil.DayLayout, prior.Date, p.Location)
	if err != nil {
		return nil
	}
	corrected := day.Add(p.EndOfDayCutoff)
	return &corrected
}
