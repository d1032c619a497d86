package schedule

import (
	"context"
	"time"
)

type CalendarRepository interface {
	GetByID(ctx context.Context, id string) (WorkCalendar, error)
	GetHolidays(ctx context.Context, calendarID string, from, to time.Time) ([]Holiday, error)
}
