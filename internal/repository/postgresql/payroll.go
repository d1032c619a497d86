package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/paycore/payroll-engine-go/internal/domain/payroll"
	"github.com/paycore/payroll-engine-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== PERIODS ==========

const periodColumns = `
	p.id, p.name, p.type, p.start_date, p.end_date, p.pay_date, p.status,
	p.total_gross, p.total_deductions, p.total_net, p.employee_count,
	p.approved_by, p.approved_at, p.created_at, p.updated_at
`

func scanPeriod(row pgx.Row) (payroll.PayrollPeriod, error) {
	var p payroll.PayrollPeriod
	err := row.Scan(
		&p.ID, &p.Name, &p.Type, &p.StartDate, &p.EndDate, &p.PayDate, &p.Status,
		&p.TotalGross, &p.TotalDeductions, &p.TotalNet, &p.EmployeeCount,
		&p.ApprovedBy, &p.ApprovedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepository) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_periods (id, name, type, start_date, end_date, pay_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, type, start_date, end_date, pay_date, status,
				  total_gross, total_deductions, total_net, employee_count,
				  approved_by, approved_at, created_at, updated_at
	`

	created, err := scanPeriod(q.QueryRow(ctx, query,
		period.ID, period.Name, period.Type,
		period.StartDate, period.EndDate, period.PayDate, period.Status,
	))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodAlreadyExists
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, id string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM payroll_periods p WHERE p.id = $1`, periodColumns)

	p, err := scanPeriod(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ListPeriods(ctx context.Context, filter payroll.PeriodFilter) ([]payroll.PayrollPeriod, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Year != nil {
		baseWhere += fmt.Sprintf(" AND EXTRACT(YEAR FROM p.start_date) = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM payroll_periods p %s`, baseWhere)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll periods: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM payroll_periods p
		%s
		ORDER BY p.start_date DESC
		LIMIT $%d OFFSET $%d
	`, periodColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.PayrollPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, total, nil
}

func (r *payrollRepository) UpdatePeriodStatus(ctx context.Context, id string, status payroll.PeriodStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payroll_periods SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payroll period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}

	return nil
}

func (r *payrollRepository) UpdatePeriodTotals(ctx context.Context, id string, stats payroll.Statistics) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET total_gross = $2, total_deductions = $3, total_net = $4,
			employee_count = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, stats.TotalGross, stats.TotalDeductions, stats.TotalNet, stats.DetailCount)
	if err != nil {
		return fmt.Errorf("failed to update payroll period totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}

	return nil
}

func (r *payrollRepository) ApprovePeriod(ctx context.Context, id string, approverID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_periods
		SET status = $2, approved_by = $3, approved_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, payroll.PeriodStatusApproved, approverID)
	if err != nil {
		return fmt.Errorf("failed to approve payroll period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}

	return nil
}

// ========== RUNS ==========

func (r *payrollRepository) CreateRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (id, period_id, type, status, started_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, period_id, type, status, processed_count, failed_count, started_at, finished_at
	`

	var created payroll.PayrollRun
	if err := q.QueryRow(ctx, query, run.ID, run.PeriodID, run.Type, run.Status, run.StartedAt).Scan(
		&created.ID, &created.PeriodID, &created.Type, &created.Status,
		&created.ProcessedCount, &created.FailedCount, &created.StartedAt, &created.FinishedAt,
	); err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetRunByID(ctx context.Context, id string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, period_id, type, status, processed_count, failed_count,
			   error_report, started_at, finished_at
		FROM payroll_runs
		WHERE id = $1
	`

	var run payroll.PayrollRun
	var report []byte
	if err := q.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.PeriodID, &run.Type, &run.Status,
		&run.ProcessedCount, &run.FailedCount, &report,
		&run.StartedAt, &run.FinishedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	if len(report) > 0 {
		var parsed payroll.BatchErrorReport
		if err := json.Unmarshal(report, &parsed); err != nil {
			return payroll.PayrollRun{}, fmt.Errorf("failed to decode run error report: %w", err)
		}
		run.ErrorReport = &parsed
	}

	return run, nil
}

func (r *payrollRepository) FinishRun(ctx context.Context, run payroll.PayrollRun) error {
	q := GetQuerier(ctx, r.db)

	var report []byte
	if run.ErrorReport != nil {
		encoded, err := json.Marshal(run.ErrorReport)
		if err != nil {
			return fmt.Errorf("failed to encode run error report: %w", err)
		}
		report = encoded
	}

	query := `
		UPDATE payroll_runs
		SET status = $2, processed_count = $3, failed_count = $4,
			error_report = $5, finished_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, run.ID, run.Status, run.ProcessedCount, run.FailedCount, report)
	if err != nil {
		return fmt.Errorf("failed to finish payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

// ========== DETAILS ==========

const detailColumns = `
	d.id, d.period_id, d.run_id, d.employee_id,
	d.basic_salary, d.gross_salary, d.total_earnings, d.total_deductions,
	d.total_tax, d.net_salary, d.statutory,
	d.present_days, d.paid_leave_days, d.unpaid_leave_days, d.weekly_off_days,
	d.holiday_days, d.payable_days, d.work_hours, d.overtime_hours, d.required_hours,
	d.status, d.approved_by, d.approved_at, d.approval_comments, d.paid_at,
	d.created_at, d.updated_at,
	e.full_name, e.employee_code, dep.name
`

func scanDetail(row pgx.Row) (payroll.PayrollDetail, error) {
	var d payroll.PayrollDetail
	var statutoryJSON []byte
	err := row.Scan(
		&d.ID, &d.PeriodID, &d.RunID, &d.EmployeeID,
		&d.BasicSalary, &d.GrossSalary, &d.TotalEarnings, &d.TotalDeductions,
		&d.TotalTax, &d.NetSalary, &statutoryJSON,
		&d.PresentDays, &d.PaidLeaveDays, &d.UnpaidLeaveDays, &d.WeeklyOffDays,
		&d.HolidayDays, &d.PayableDays, &d.WorkHours, &d.OvertimeHours, &d.RequiredHours,
		&d.Status, &d.ApprovedBy, &d.ApprovedAt, &d.ApprovalComments, &d.PaidAt,
		&d.CreatedAt, &d.UpdatedAt,
		&d.EmployeeName, &d.EmployeeCode, &d.DepartmentName,
	)
	if err != nil {
		return payroll.PayrollDetail{}, err
	}
	if len(statutoryJSON) > 0 {
		if err := json.Unmarshal(statutoryJSON, &d.Statutory); err != nil {
			return payroll.PayrollDetail{}, fmt.Errorf("failed to decode statutory contributions: %w", err)
		}
	}
	return d, nil
}

func (r *payrollRepository) CreateDetailWithLines(ctx context.Context, detail payroll.PayrollDetail, earnings []payroll.EarningLine, deductions []payroll.DeductionLine) (payroll.PayrollDetail, error) {
	var created payroll.PayrollDetail

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		statutoryJSON, err := json.Marshal(detail.Statutory)
		if err != nil {
			return fmt.Errorf("failed to encode statutory contributions: %w", err)
		}

		query := `
			INSERT INTO payroll_details (
				id, period_id, run_id, employee_id,
				basic_salary, gross_salary, total_earnings, total_deductions,
				total_tax, net_salary, statutory,
				present_days, paid_leave_days, unpaid_leave_days, weekly_off_days,
				holiday_days, payable_days, work_hours, overtime_hours, required_hours,
				status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
					$12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
			RETURNING id, created_at, updated_at
		`

		created = detail
		if err := q.QueryRow(txCtx, query,
			detail.ID, detail.PeriodID, detail.RunID, detail.EmployeeID,
			detail.BasicSalary, detail.GrossSalary, detail.TotalEarnings, detail.TotalDeductions,
			detail.TotalTax, detail.NetSalary, statutoryJSON,
			detail.PresentDays, detail.PaidLeaveDays, detail.UnpaidLeaveDays, detail.WeeklyOffDays,
			detail.HolidayDays, detail.PayableDays, detail.WorkHours, detail.OvertimeHours, detail.RequiredHours,
			detail.Status,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				return payroll.ErrDetailAlreadyExists
			}
			return fmt.Errorf("failed to create payroll detail: %w", err)
		}

		for _, line := range earnings {
			if _, err := q.Exec(txCtx, `
				INSERT INTO payroll_earning_lines (id, detail_id, code, name, amount)
				VALUES ($1, $2, $3, $4, $5)
			`, line.ID, created.ID, line.Code, line.Name, line.Amount); err != nil {
				return fmt.Errorf("failed to create earning line: %w", err)
			}
		}

		for _, line := range deductions {
			if _, err := q.Exec(txCtx, `
				INSERT INTO payroll_deduction_lines (id, detail_id, code, name, amount)
				VALUES ($1, $2, $3, $4, $5)
			`, line.ID, created.ID, line.Code, line.Name, line.Amount); err != nil {
				return fmt.Errorf("failed to create deduction line: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return payroll.PayrollDetail{}, err
	}

	return created, nil
}

func (r *payrollRepository) GetDetailByID(ctx context.Context, id string) (payroll.PayrollDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_details d
		JOIN employees e ON e.id = d.employee_id
		LEFT JOIN departments dep ON dep.id = e.department_id
		WHERE d.id = $1
	`, detailColumns)

	d, err := scanDetail(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollDetail{}, payroll.ErrDetailNotFound
		}
		return payroll.PayrollDetail{}, fmt.Errorf("failed to get payroll detail: %w", err)
	}

	return d, nil
}

func (r *payrollRepository) GetDetailsByPeriod(ctx context.Context, periodID string) ([]payroll.PayrollDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_details d
		JOIN employees e ON e.id = d.employee_id
		LEFT JOIN departments dep ON dep.id = e.department_id
		WHERE d.period_id = $1
		ORDER BY e.employee_code
	`, detailColumns)

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll details: %w", err)
	}
	defer rows.Close()

	var details []payroll.PayrollDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll detail: %w", err)
		}
		details = append(details, d)
	}

	return details, nil
}

func (r *payrollRepository) ApproveDetail(ctx context.Context, id string, approverID string, comments *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_details
		SET status = $2, approved_by = $3, approved_at = NOW(),
			approval_comments = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, payroll.DetailStatusApproved, approverID, comments)
	if err != nil {
		return fmt.Errorf("failed to approve payroll detail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrDetailNotFound
	}

	return nil
}

func (r *payrollRepository) BulkApproveCalculated(ctx context.Context, periodID string, approverID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_details
		SET status = $3, approved_by = $4, approved_at = NOW(), updated_at = NOW()
		WHERE period_id = $1 AND status = $2
	`

	tag, err := q.Exec(ctx, query, periodID, payroll.DetailStatusCalculated, payroll.DetailStatusApproved, approverID)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk approve payroll details: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) GetStatistics(ctx context.Context, periodID string) (payroll.Statistics, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE status = $2),
			   COUNT(*) FILTER (WHERE status = $3),
			   COALESCE(SUM(gross_salary), 0),
			   COALESCE(SUM(total_deductions), 0),
			   COALESCE(SUM(net_salary), 0),
			   COALESCE(SUM((statutory -> 'employee' ->> 'pf')::numeric), 0),
			   COALESCE(SUM((statutory -> 'employer' ->> 'pf')::numeric), 0)
		FROM payroll_details
		WHERE period_id = $1
	`

	stats := payroll.Statistics{PeriodID: periodID}
	if err := q.QueryRow(ctx, query, periodID, payroll.DetailStatusCalculated, payroll.DetailStatusApproved).Scan(
		&stats.DetailCount, &stats.CalculatedCount, &stats.ApprovedCount,
		&stats.TotalGross, &stats.TotalDeductions, &stats.TotalNet,
		&stats.TotalEmployeePF, &stats.TotalEmployerPF,
	); err != nil {
		return payroll.Statistics{}, fmt.Errorf("failed to get payroll statistics: %w", err)
	}

	return stats, nil
}
