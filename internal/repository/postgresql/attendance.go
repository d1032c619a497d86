package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/paycore/payroll-engine-go/internal/domain/attendance"
	"github.com/paycore/payroll-engine-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) SumForPeriod(ctx context.Context, employeeID string, from, to time.Time) (attendance.Totals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE present),
			COALESCE(SUM(work_hours), 0),
			COALESCE(SUM(overtime_hours), 0),
			COALESCE(SUM(late_minutes), 0)
		FROM attendance_records
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
	`

	var t attendance.Totals
	err := q.QueryRow(ctx, query, employeeID, from, to).Scan(
		&t.PresentDays, &t.WorkHours, &t.OvertimeHours, &t.LateMinutes,
	)
	if err != nil {
		return attendance.Totals{}, fmt.Errorf("failed to sum attendance records: %w", err)
	}

	return t, nil
}
