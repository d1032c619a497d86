package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysWithin(t *testing.T) {
	from := day(2024, 3, 1)
	to := day(2024, 3, 31)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"fully inside", day(2024, 3, 10), day(2024, 3, 12), 3},
		{"single day", day(2024, 3, 10), day(2024, 3, 10), 1},
		{"starts before period", day(2024, 2, 25), day(2024, 3, 2), 2},
		{"ends after period", day(2024, 3, 30), day(2024, 4, 5), 2},
		{"spans whole period", day(2024, 2, 1), day(2024, 4, 30), 31},
		{"entirely before", day(2024, 2, 1), day(2024, 2, 10), 0},
		{"entirely after", day(2024, 4, 1), day(2024, 4, 10), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := LeaveRecord{StartDate: tc.start, EndDate: tc.end}
			assert.Equal(t, tc.expected, r.DaysWithin(from, to))
		})
	}
}

func TestIsUnpaidByName(t *testing.T) {
	assert.True(t, IsUnpaidByName("unpaid"))
	assert.True(t, IsUnpaidByName("Unpaid"))
	assert.True(t, IsUnpaidByName("  UNPAID  "))

	assert.False(t, IsUnpaidByName("annual"))
	assert.False(t, IsUnpaidByName("unpaid leave"))
	assert.False(t, IsUnpaidByName(""))
}
