package hr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// Calendar notes for June 2025: the 2nd is a Monday and falls in an even
// week counted from the biweekly epoch; the 9th starts an odd week.

func TestNextPaymentDate_UnsetBusinessDay(t *testing.T) {
	p := &PayrollProfile{PayByDay: true, PaymentInterval: IntervalDaily, PaymentBusinessDay: 0}
	assert.Nil(t, NextPaymentDate(p, date(2025, time.June, 2)))

	p.PaymentBusinessDay = 6
	assert.Nil(t, NextPaymentDate(p, date(2025, time.June, 2)))
}

func TestNextPaymentDate_Daily(t *testing.T) {
	tests := []struct {
		name    string
		lastDay *time.Time
		today   time.Time
		want    time.Time
	}{
		{
			name:    "day after last registered work",
			lastDay: datePtr(2025, time.June, 2),
			today:   date(2025, time.June, 2),
			want:    date(2025, time.June, 3),
		},
		{
			name:    "friday work skips the weekend",
			lastDay: datePtr(2025, time.June, 6),
			today:   date(2025, time.June, 6),
			want:    date(2025, time.June, 9),
		},
		{
			name:    "stale reference re-anchors on today",
			lastDay: datePtr(2025, time.May, 20),
			today:   date(2025, time.June, 2),
			want:    date(2025, time.June, 3),
		},
		{
			name:    "no work registered yet anchors on today",
			lastDay: nil,
			today:   date(2025, time.June, 4),
			want:    date(2025, time.June, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PayrollProfile{
				PayByDay:           true,
				PaymentInterval:    IntervalDaily,
				PaymentBusinessDay: 1,
				LastDayRegistered:  tt.lastDay,
			}
			got := NextPaymentDate(p, tt.today)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestNextPaymentDate_Weekly(t *testing.T) {
	tests := []struct {
		name        string
		businessDay int
		lastHours   *time.Time
		today       time.Time
		want        time.Time
	}{
		{
			name:        "next friday after tuesday work",
			businessDay: 5,
			lastHours:   datePtr(2025, time.June, 3),
			today:       date(2025, time.June, 3),
			want:        date(2025, time.June, 6),
		},
		{
			name:        "work on the target weekday pays the following week",
			businessDay: 5,
			lastHours:   datePtr(2025, time.June, 6),
			today:       date(2025, time.June, 6),
			want:        date(2025, time.June, 13),
		},
		{
			name:        "monday target after wednesday work",
			businessDay: 1,
			lastHours:   datePtr(2025, time.June, 4),
			today:       date(2025, time.June, 4),
			want:        date(2025, time.June, 9),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PayrollProfile{
				PayByHour:           true,
				PaymentInterval:     IntervalWeekly,
				PaymentBusinessDay:  tt.businessDay,
				LastHoursRegistered: tt.lastHours,
			}
			got := NextPaymentDate(p, tt.today)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
			assert.Equal(t, time.Weekday(tt.businessDay%7), got.Weekday())
		})
	}
}

func TestNextPaymentDate_Biweekly(t *testing.T) {
	t.Run("odd week shifts to the next even week", func(t *testing.T) {
		p := &PayrollProfile{
			PayByDay:           true,
			PaymentInterval:    IntervalBiweekly,
			PaymentBusinessDay: 1,
			LastDayRegistered:  datePtr(2025, time.June, 3),
		}
		got := NextPaymentDate(p, date(2025, time.June, 3))
		require.NotNil(t, got)
		// Monday June 9 lands in an odd week, so payment moves to June 16.
		assert.Equal(t, date(2025, time.June, 16), *got)
	})

	t.Run("even week is kept", func(t *testing.T) {
		p := &PayrollProfile{
			PayByDay:           true,
			PaymentInterval:    IntervalBiweekly,
			PaymentBusinessDay: 1,
			LastDayRegistered:  datePtr(2025, time.May, 28),
		}
		got := NextPaymentDate(p, date(2025, time.May, 28))
		require.NotNil(t, got)
		assert.Equal(t, date(2025, time.June, 2), *got)
	})

	t.Run("consecutive settlements are fourteen days apart", func(t *testing.T) {
		p := &PayrollProfile{
			PayByDay:           true,
			PaymentInterval:    IntervalBiweekly,
			PaymentBusinessDay: 1,
			LastDayRegistered:  datePtr(2025, time.May, 28),
		}
		first := NextPaymentDate(p, date(2025, time.May, 28))
		require.NotNil(t, first)

		p.LastDayRegistered = first
		second := NextPaymentDate(p, *first)
		require.NotNil(t, second)

		assert.Equal(t, 14*24*time.Hour, second.Sub(*first))
	})
}

func TestNextPaymentDate_Monthly(t *testing.T) {
	tests := []struct {
		name      string
		targetDay int
		lastDay   *time.Time
		today     time.Time
		want      time.Time
	}{
		{
			name:      "mid month rolls to the first of next month",
			targetDay: 1,
			lastDay:   datePtr(2025, time.June, 15),
			today:     date(2025, time.June, 15),
			want:      date(2025, time.July, 1),
		},
		{
			name:      "target on a sunday skips to monday",
			targetDay: 1,
			lastDay:   datePtr(2025, time.May, 20),
			today:     date(2025, time.May, 20),
			want:      date(2025, time.June, 2),
		},
		{
			name:      "before target day stays in the current month",
			targetDay: 5,
			lastDay:   datePtr(2025, time.June, 2),
			today:     date(2025, time.June, 2),
			want:      date(2025, time.June, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PayrollProfile{
				PayByMonth:         true,
				PaymentInterval:    IntervalMonthly,
				PaymentBusinessDay: tt.targetDay,
				LastDayRegistered:  tt.lastDay,
			}
			got := NextPaymentDate(p, tt.today)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestNextPaymentDate_NeverInThePast(t *testing.T) {
	intervals := []string{IntervalDaily, IntervalWeekly, IntervalBiweekly, IntervalMonthly}
	references := []*time.Time{
		nil,
		datePtr(2024, time.January, 2),
		datePtr(2025, time.May, 30),
		datePtr(2025, time.June, 2),
		datePtr(2025, time.June, 7), // saturday
	}

	for _, interval := range intervals {
		for _, ref := range references {
			p := &PayrollProfile{
				PayByDay:           true,
				PaymentInterval:    interval,
				PaymentBusinessDay: 3,
				LastDayRegistered:  ref,
			}
			today := date(2025, time.June, 2)
			got := NextPaymentDate(p, today)
			require.NotNil(t, got)
			assert.True(t, got.After(today),
				"interval %s ref %v produced %v, not after %v", interval, ref, got, today)
		}
	}
}

func TestNextPaymentDate_NotOnWeekend(t *testing.T) {
	for _, interval := range []string{IntervalDaily, IntervalWeekly, IntervalBiweekly, IntervalMonthly} {
		for day := 1; day <= 5; day++ {
			p := &PayrollProfile{
				PayByDay:           true,
				PaymentInterval:    interval,
				PaymentBusinessDay: day,
				LastDayRegistered:  datePtr(2025, time.June, 5),
			}
			got := NextPaymentDate(p, date(2025, time.June, 5))
			require.NotNil(t, got)
			assert.NotEqual(t, time.Saturday, got.Weekday())
			assert.NotEqual(t, time.Sunday, got.Weekday())
		}
	}
}
