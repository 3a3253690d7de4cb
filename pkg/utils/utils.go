package utils

import (
	"time"
)

// MonthBounds returns the first and last day of the given calendar month.
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// DueDateForMonth calculates the invoice due date for a month.
// The due day is clamped to the last day of short months.
func DueDateForMonth(year, month, dueDay int) time.Time {
	_, end := MonthBounds(year, month)
	day := dueDay
	if day > end.Day() {
		day = end.Day()
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// NextMonth advances a (year, month) pair by one calendar month.
func NextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// MonthsBack walks a (year, month) pair backwards by n months.
func MonthsBack(year, month, n int) (int, int) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -n, 0)
	return t.Year(), int(t.Month())
}

// ValidMonth reports whether month is a calendar month number.
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}
