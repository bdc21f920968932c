package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsBusinessDay(t *testing.T) {
	assert.True(t, IsBusinessDay(date(2025, time.June, 2)))   // Monday
	assert.True(t, IsBusinessDay(date(2025, time.June, 6)))   // Friday
	assert.False(t, IsBusinessDay(date(2025, time.June, 7)))  // Saturday
	assert.False(t, IsBusinessDay(date(2025, time.June, 8)))  // Sunday
}

func TestNextBusinessDay(t *testing.T) {
	// Friday advances past the weekend to Monday
	assert.Equal(t, date(2025, time.June, 9), NextBusinessDay(date(2025, time.June, 6)))
	// Saturday also lands on Monday
	assert.Equal(t, date(2025, time.June, 9), NextBusinessDay(date(2025, time.June, 7)))
	// Mid-week is just the next day
	assert.Equal(t, date(2025, time.June, 4), NextBusinessDay(date(2025, time.June, 3)))
}

func TestSkipWeekend(t *testing.T) {
	assert.Equal(t, date(2025, time.June, 4), SkipWeekend(date(2025, time.June, 4)))
	assert.Equal(t, date(2025, time.June, 9), SkipWeekend(date(2025, time.June, 7)))
	assert.Equal(t, date(2025, time.June, 9), SkipWeekend(date(2025, time.June, 8)))
}

func TestBusinessDaysBetween(t *testing.T) {
	// Full week Mon-Sun contains 5 business days
	n, err := BusinessDaysBetween(date(2025, time.June, 2), date(2025, time.June, 8))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	// Single business day, inclusive
	n, err = BusinessDaysBetween(date(2025, time.June, 3), date(2025, time.June, 3))
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	// Weekend only
	n, err = BusinessDaysBetween(date(2025, time.June, 7), date(2025, time.June, 8))
	assert.NoError(t, err)
	assert.Equal(t, 0, n)

	// start after end is a caller error
	_, err = BusinessDaysBetween(date(2025, time.June, 9), date(2025, time.June, 2))
	assert.Error(t, err)
}
