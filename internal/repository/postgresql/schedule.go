package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paycore/payroll-engine-go/internal/domain/schedule"
	"github.com/paycore/payroll-engine-go/internal/pkg/database"
)

type calendarRepository struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) schedule.CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) GetByID(ctx context.Context, id string) (schedule.WorkCalendar, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, shift_start, shift_end, weekly_off_days, is_active,
			   created_at, updated_at
		FROM work_calendars
		WHERE id = $1
	`

	var c schedule.WorkCalendar
	if err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.ShiftStart, &c.ShiftEnd, &c.WeeklyOffDays, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return schedule.WorkCalendar{}, schedule.ErrCalendarNotFound
		}
		return schedule.WorkCalendar{}, fmt.Errorf("failed to get work calendar: %w", err)
	}

	return c, nil
}

func (r *calendarRepository) GetHolidays(ctx context.Context, calendarID string, from, to time.Time) ([]schedule.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, calendar_id, name, holiday_date, is_active
		FROM holidays
		WHERE calendar_id = $1
		  AND is_active = true
		  AND holiday_date BETWEEN $2 AND $3
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query, calendarID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []schedule.Holiday
	for rows.Next() {
		var h schedule.Holiday
		if err := rows.Scan(&h.ID, &h.CalendarID, &h.Name, &h.Date, &h.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, nil
}
