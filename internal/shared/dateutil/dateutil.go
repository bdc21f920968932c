package dateutil

import (
	"time"

	"go-logistics/internal/shared/apperror"
)

// IsBusinessDay reports whether d falls on Monday through Friday.
func IsBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextBusinessDay returns the first business day strictly after d.
func NextBusinessDay(d time.Time) time.Time {
	next := d.AddDate(0, 0, 1)
	for !IsBusinessDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// SkipWeekend returns d unchanged when it is a business day, otherwise
// the next business day after it.
func SkipWeekend(d time.Time) time.Time {
	for !IsBusinessDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// BusinessDaysBetween counts business days in [start, end] inclusive.
func BusinessDaysBetween(start, end time.Time) (int, error) {
	start = Truncate(start)
	end = Truncate(end)
	if start.After(end) {
		return 0, apperror.New(apperror.CodeInvalidInput, "start date must not be after end date", 400)
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			count++
		}
	}
	return count, nil
}

// Truncate drops the time-of-day component, keeping the location.
func Truncate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
