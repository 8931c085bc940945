package dateutil

import "time"

// DayLayout is the calendar-day key format used across the application.
const DayLayout = "2006-01-02"

// DayKey formats t as a calendar-day identifier (YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD day key.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(DayLayout, day)
}

// LastNDays returns n ascending day keys ending at today.
// n <= 0 yields an empty slice.
func LastNDays(n int, today time.Time) []string {
	if n <= 0 {
		return []string{}
	}
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, DayKey(today.AddDate(0, 0, -i)))
	}
	return days
}

// Between returns every day key in [start, end] inclusive, ascending.
// An unparseable bound or start > end yields an empty slice.
func Between(start, end string) []string {
	from, err := ParseDay(start)
	if err != nil {
		return []string{}
	}
	to, err := ParseDay(end)
	if err != nil {
		return []string{}
	}
	if from.After(to) {
		return []string{}
	}
	days := []string{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, DayKey(d))
	}
	return days
}

// MonthBounds returns the first and last day keys of the given month.
func MonthBounds(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return DayKey(first), DayKey(last)
}
