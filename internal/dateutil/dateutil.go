package dateutil

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

const dayFormat = "2006-01-02"

// TruncateToDay drops the time-of-day component, keeping the location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate accepts ISO dates (2006-01-02), RFC3339 timestamps, and the
// legacy dd-MM-yyyy form that older member records carry.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	if t, err := time.Parse(dayFormat, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return TruncateToDay(t), nil
	}
	if t, err := time.Parse("02-01-2006", value); err == nil {
		return t, nil
	}

	return time.Time{}, ErrInvalidDate
}

func FormatDate(t time.Time) string {
	return t.Format(dayFormat)
}

// AddMonths adds n calendar months to t, clamping the day of month to the
// last day of the target month. Jan 31 + 1 month is Feb 28 (29 in leap
// years), never Mar 2/3 as time.AddDate would normalize. Clamping keeps
// repeated month extensions from drifting the anchor day forward.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()

	totalMonths := int(month) - 1 + n
	targetYear := year + totalMonths/12
	targetMonth := time.Month(totalMonths%12 + 1)
	if totalMonths < 0 {
		// Go's integer division truncates toward zero; re-normalize so the
		// month index stays in [1, 12] for negative offsets.
		targetYear = year + (totalMonths-11)/12
		targetMonth = time.Month((totalMonths%12+12)%12 + 1)
	}

	if last := DaysInMonth(targetYear, targetMonth); day > last {
		day = last
	}

	h, m, s := t.Clock()
	return time.Date(targetYear, targetMonth, day, h, m, s, t.Nanosecond(), t.Location())
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns the number of whole days from a to b at day
// granularity. Negative when b is before a. DST transitions do not skew
// the count because both dates are rebuilt in UTC.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// MonthKey buckets a time by calendar month, e.g. "Jan 2025".
func MonthKey(t time.Time) string {
	return t.Format("Jan 2006")
}

// WindowStart returns the start of a rolling trailing window of the given
// number of days, at day granularity.
func WindowStart(now time.Time, days int) time.Time {
	return TruncateToDay(now).AddDate(0, 0, -days)
}

// SameMonth reports whether two times fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
