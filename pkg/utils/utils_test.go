package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "january",
			year:      2026,
			month:     1,
			wantStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "february non leap",
			year:      2026,
			month:     2,
			wantStart: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "february leap",
			year:      2028,
			month:     2,
			wantStart: time.Date(2028, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthBounds(tt.year, tt.month)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestDueDateForMonth(t *testing.T) {
	// Normal case: due day 5
	due := DueDateForMonth(2026, 1, 5)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), due)

	// Due day past end of month is clamped
	due = DueDateForMonth(2026, 2, 31)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), due)
}

func TestNextMonth(t *testing.T) {
	year, month := NextMonth(2026, 11)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 12, month)

	// December rolls into January of the next year
	year, month = NextMonth(2026, 12)
	assert.Equal(t, 2027, year)
	assert.Equal(t, 1, month)
}

func TestMonthsBack(t *testing.T) {
	year, month := MonthsBack(2026, 3, 5)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 10, month)

	year, month = MonthsBack(2026, 3, 0)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 3, month)
}

func TestValidMonth(t *testing.T) {
	assert.True(t, ValidMonth(1))
	assert.True(t, ValidMonth(12))
	assert.False(t, ValidMonth(0))
	assert.False(t, ValidMonth(13))
}
