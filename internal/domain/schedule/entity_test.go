package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestShiftHours(t *testing.T) {
	tests := []struct {
		name     string
		start    *string
		end      *string
		expected float64
	}{
		{"regular shift", strPtr("09:00"), strPtr("17:00"), 8},
		{"half hour", strPtr("09:00"), strPtr("17:30"), 8.5},
		{"crosses midnight", strPtr("22:00"), strPtr("06:00"), 8},
		{"end equals start", strPtr("09:00"), strPtr("09:00"), 24},
		{"missing start", nil, strPtr("17:00"), DefaultShiftHours},
		{"missing end", strPtr("09:00"), nil, DefaultShiftHours},
		{"unparseable", strPtr("9am"), strPtr("5pm"), DefaultShiftHours},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := WorkCalendar{ShiftStart: tc.start, ShiftEnd: tc.end}
			assert.InDelta(t, tc.expected, c.ShiftHours(), 0.001)
		})
	}
}

func TestIsWeeklyOff(t *testing.T) {
	sunday := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	c := WorkCalendar{WeeklyOffDays: []string{"0", "saturday"}}

	assert.True(t, c.IsWeeklyOff(sunday), "numeric index 0 is Sunday")
	assert.True(t, c.IsWeeklyOff(saturday), "day names match case-insensitively")
	assert.False(t, c.IsWeeklyOff(monday))
}

func TestIsWeeklyOffDualEncoding(t *testing.T) {
	sunday := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)

	// The same day listed under both encodings still reads as one
	// weekly-off day.
	c := WorkCalendar{WeeklyOffDays: []string{"0", "Sunday", " sunday "}}
	assert.True(t, c.IsWeeklyOff(sunday))

	empty := WorkCalendar{WeeklyOffDays: []string{"", "  "}}
	assert.False(t, empty.IsWeeklyOff(sunday))
}
