package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/paycore/payroll-engine-go/internal/domain/attendance"
	"github.com/paycore/payroll-engine-go/internal/pkg/database"
)

type attendanceSummaryRepository struct {
	db *database.DB
}

func NewAttendanceSummaryRepository(db *database.DB) attendance.SummaryRepository {
	return &attendanceSummaryRepository{db: db}
}

// metricCols lists the per-family metric columns, in the argument order
// used by metricArgs and scanMetrics.
var metricCols = []string{
	"shift_hours", "present_days", "paid_leave_days", "unpaid_leave_days",
	"weekly_off_days", "holiday_days", "work_hours", "overtime_hours",
	"total_hours", "weekly_off_hours", "holiday_hours", "paid_leave_hours",
	"required_hours", "late_minutes", "payable_days",
}

func prefixed(prefix string) []string {
	cols := make([]string, len(metricCols))
	for i, c := range metricCols {
		cols[i] = prefix + c
	}
	return cols
}

func metricArgs(m attendance.Metrics) []interface{} {
	return []interface{}{
		m.ShiftHours, m.PresentDays, m.PaidLeaveDays, m.UnpaidLeaveDays,
		m.WeeklyOffDays, m.HolidayDays, m.WorkHours, m.OvertimeHours,
		m.TotalHours, m.WeeklyOffHours, m.HolidayHours, m.PaidLeaveHours,
		m.RequiredHours, m.LateMinutes, m.PayableDays,
	}
}

func metricFields(m *attendance.Metrics) []interface{} {
	return []interface{}{
		&m.ShiftHours, &m.PresentDays, &m.PaidLeaveDays, &m.UnpaidLeaveDays,
		&m.WeeklyOffDays, &m.HolidayDays, &m.WorkHours, &m.OvertimeHours,
		&m.TotalHours, &m.WeeklyOffHours, &m.HolidayHours, &m.PaidLeaveHours,
		&m.RequiredHours, &m.LateMinutes, &m.PayableDays,
	}
}

func placeholders(start, count int) []string {
	ps := make([]string, count)
	for i := 0; i < count; i++ {
		ps[i] = fmt.Sprintf("$%d", start+i)
	}
	return ps
}

// UpsertBase inserts a new summary with final columns seeded from base,
// or refreshes the base columns of an existing row. Final columns are
// never written on the conflict path.
func (r *attendanceSummaryRepository) UpsertBase(ctx context.Context, year, month int, employeeID string, base attendance.Metrics) (bool, error) {
	q := GetQuerier(ctx, r.db)

	baseCols := prefixed("base_")
	finalCols := prefixed("final_")
	valuePH := placeholders(4, len(metricCols))

	var sets []string
	for _, c := range baseCols {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		INSERT INTO attendance_summaries (period_year, period_month, employee_id, %s, %s)
		VALUES ($1, $2, $3, %s, %s)
		ON CONFLICT (period_year, period_month, employee_id) DO UPDATE SET %s
		RETURNING (xmax = 0)
	`,
		strings.Join(baseCols, ", "), strings.Join(finalCols, ", "),
		strings.Join(valuePH, ", "), strings.Join(valuePH, ", "),
		strings.Join(sets, ", "),
	)

	args := append([]interface{}{year, month, employeeID}, metricArgs(base)...)

	var inserted bool
	if err := q.QueryRow(ctx, query, args...).Scan(&inserted); err != nil {
		return false, fmt.Errorf("failed to upsert attendance summary base: %w", err)
	}

	return inserted, nil
}

// UpsertFinal writes the final columns, plus the base columns when the
// caller supplies them.
func (r *attendanceSummaryRepository) UpsertFinal(ctx context.Context, year, month int, employeeID string, final attendance.Metrics, base *attendance.Metrics) error {
	q := GetQuerier(ctx, r.db)

	finalCols := prefixed("final_")
	baseCols := prefixed("base_")

	cols := append([]string{}, finalCols...)
	args := append([]interface{}{year, month, employeeID}, metricArgs(final)...)
	if base != nil {
		cols = append(cols, baseCols...)
		args = append(args, metricArgs(*base)...)
	}

	var sets []string
	for _, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		INSERT INTO attendance_summaries (period_year, period_month, employee_id, %s)
		VALUES ($1, $2, $3, %s)
		ON CONFLICT (period_year, period_month, employee_id) DO UPDATE SET %s
	`,
		strings.Join(cols, ", "),
		strings.Join(placeholders(4, len(cols)), ", "),
		strings.Join(sets, ", "),
	)

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert attendance summary final: %w", err)
	}

	return nil
}

func (r *attendanceSummaryRepository) GetByEmployeePeriod(ctx context.Context, year, month int, employeeID string) (attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT s.id, s.employee_id, s.period_year, s.period_month,
			   %s, %s,
			   s.created_at, s.updated_at, e.full_name, e.employee_code
		FROM attendance_summaries s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.period_year = $1 AND s.period_month = $2 AND s.employee_id = $3
	`, "s."+strings.Join(prefixed("base_"), ", s."), "s."+strings.Join(prefixed("final_"), ", s."))

	var s attendance.Summary
	fields := []interface{}{&s.ID, &s.EmployeeID, &s.PeriodYear, &s.PeriodMonth}
	fields = append(fields, metricFields(&s.Base)...)
	fields = append(fields, metricFields(&s.Final)...)
	fields = append(fields, &s.CreatedAt, &s.UpdatedAt, &s.EmployeeName, &s.EmployeeCode)

	if err := q.QueryRow(ctx, query, year, month, employeeID).Scan(fields...); err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Summary{}, attendance.ErrSummaryNotFound
		}
		return attendance.Summary{}, fmt.Errorf("failed to get attendance summary: %w", err)
	}

	return s, nil
}

func (r *attendanceSummaryRepository) ListByPeriod(ctx context.Context, year, month int) ([]attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT s.id, s.employee_id, s.period_year, s.period_month,
			   %s, %s,
			   s.created_at, s.updated_at, e.full_name, e.employee_code
		FROM attendance_summaries s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.period_year = $1 AND s.period_month = $2
		ORDER BY e.employee_code
	`, "s."+strings.Join(prefixed("base_"), ", s."), "s."+strings.Join(prefixed("final_"), ", s."))

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance summaries: %w", err)
	}
	defer rows.Close()

	var summaries []attendance.Summary
	for rows.Next() {
		var s attendance.Summary
		fields := []interface{}{&s.ID, &s.EmployeeID, &s.PeriodYear, &s.PeriodMonth}
		fields = append(fields, metricFields(&s.Base)...)
		fields = append(fields, metricFields(&s.Final)...)
		fields = append(fields, &s.CreatedAt, &s.UpdatedAt, &s.EmployeeName, &s.EmployeeCode)
		if err := rows.Scan(fields...); err != nil {
			return nil, fmt.Errorf("failed to scan attendance summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}
