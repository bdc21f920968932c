package hr

import (
	"time"

	"go-logistics/internal/shared/dateutil"
)

// biweeklyEpoch anchors the biweekly cycle: payments fall on the target
// weekday of every second week counted from Monday 2001-01-01. Two
// profiles with the same configuration therefore always pay on the same
// weeks, regardless of when work was registered.
var biweeklyEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// NextPaymentDate computes the next payment date for a profile. It
// returns nil when the payment business day is unset. The result is
// always strictly after today: if the date computed from the last
// registered work is not, the calculation is re-anchored on today, and
// as a final guard one full interval is added without re-running the
// weekday/weekend logic. The retry count is bounded; this never loops.
func NextPaymentDate(p *PayrollProfile, today time.Time) *time.Time {
	if p.PaymentBusinessDay < 1 || p.PaymentBusinessDay > 5 {
		return nil
	}
	today = dateutil.Truncate(today)

	candidate := candidateFrom(p, referenceDate(p, today))
	if candidate.After(today) {
		return &candidate
	}

	// Re-anchor on today
	candidate = candidateFrom(p, today)
	if candidate.After(today) {
		return &candidate
	}

	// Final guard: one raw interval, no weekday/weekend adjustment
	switch p.PaymentInterval {
	case IntervalDaily:
		candidate = candidate.AddDate(0, 0, 1)
	case IntervalWeekly:
		candidate = candidate.AddDate(0, 0, 7)
	case IntervalBiweekly:
		candidate = candidate.AddDate(0, 0, 14)
	default:
		candidate = candidate.AddDate(0, 1, 0)
	}
	return &candidate
}

// referenceDate picks the date the schedule is anchored on: the last
// registered work date matching the payment type, else today.
func referenceDate(p *PayrollProfile, today time.Time) time.Time {
	switch {
	case p.PayByHour && p.LastHoursRegistered != nil:
		return dateutil.Truncate(*p.LastHoursRegistered)
	case p.PayByDay && p.LastDayRegistered != nil:
		return dateutil.Truncate(*p.LastDayRegistered)
	default:
		return today
	}
}

func candidateFrom(p *PayrollProfile, ref time.Time) time.Time {
	switch p.PaymentInterval {
	case IntervalDaily:
		return dateutil.SkipWeekend(ref.AddDate(0, 0, 1))
	case IntervalWeekly:
		return dateutil.SkipWeekend(nextWeekday(ref, p.PaymentBusinessDay-1))
	case IntervalBiweekly:
		candidate := nextWeekday(ref, p.PaymentBusinessDay-1)
		if weeksSinceEpoch(candidate)%2 != 0 {
			candidate = candidate.AddDate(0, 0, 7)
		}
		return dateutil.SkipWeekend(candidate)
	default: // monthly
		return dateutil.SkipWeekend(monthlyCandidate(ref, p.PaymentBusinessDay))
	}
}

// nextWeekday returns the first occurrence of the 0-based weekday
// (0 = Monday) strictly after ref.
func nextWeekday(ref time.Time, weekday int) time.Time {
	delta := (weekday - isoWeekday(ref) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return ref.AddDate(0, 0, delta)
}

// monthlyCandidate picks day targetDay of the current month, or of the
// next month when ref has already passed it.
func monthlyCandidate(ref time.Time, targetDay int) time.Time {
	year, month := ref.Year(), ref.Month()
	if ref.Day() >= targetDay {
		month++
	}
	candidate := time.Date(year, month, targetDay, 0, 0, 0, 0, ref.Location())
	// Day-of-month overflow rolls into the following month; clamp to the
	// last day of the intended month.
	if candidate.Day() != targetDay {
		candidate = time.Date(year, month+1, 1, 0, 0, 0, 0, ref.Location()).AddDate(0, 0, -1)
	}
	return candidate
}

// isoWeekday maps time.Weekday to 0-based Monday-first numbering.
func isoWeekday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

func weeksSinceEpoch(d time.Time) int {
	days := int(dateutil.Truncate(d).Sub(biweeklyEpoch).Hours() / 24)
	return days / 7
}
