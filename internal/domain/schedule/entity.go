package schedule

import (
	"strconv"
	"strings"
	"time"
)

// DefaultShiftHours is used when a calendar has no resolvable shift times.
const DefaultShiftHours = 8.0

// WorkCalendar - Working-time definition assigned to employees.
// WeeklyOffDays entries may be numeric weekday indices ("0"=Sunday ..
// "6"=Saturday) or day names in any case; both encodings can appear in
// the same calendar.
type WorkCalendar struct {
	ID            string
	Name          string
	ShiftStart    *string // "15:04"
	ShiftEnd      *string
	WeeklyOffDays []string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Holiday - A dated holiday attached to one calendar.
type Holiday struct {
	ID         string
	CalendarID string
	Name       string
	Date       time.Time
	IsActive   bool
}

// ShiftHours resolves the shift duration in hours. A shift ending before
// it starts crosses midnight and gains 24 hours. Unresolvable times fall
// back to DefaultShiftHours.
func (c WorkCalendar) ShiftHours() float64 {
	if c.ShiftStart == nil || c.ShiftEnd == nil {
		return DefaultShiftHours
	}
	start, err := time.Parse("15:04", *c.ShiftStart)
	if err != nil {
		return DefaultShiftHours
	}
	end, err := time.Parse("15:04", *c.ShiftEnd)
	if err != nil {
		return DefaultShiftHours
	}
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		hours += 24
	}
	return hours
}

// IsWeeklyOff reports whether the given date falls on one of the
// calendar's weekly-off days. A day marked under both encodings still
// counts once.
func (c WorkCalendar) IsWeeklyOff(date time.Time) bool {
	weekday := date.Weekday()
	for _, entry := range c.WeeklyOffDays {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if idx, err := strconv.Atoi(entry); err == nil {
			if idx == int(weekday) {
				return true
			}
			continue
		}
		if strings.EqualFold(entry, weekday.String()) {
			return true
		}
	}
	return false
}
