package postgresql

import (
	"context"
	"fmt"

	"github.com/paycore/payroll-engine-go/internal/domain/report"
	"github.com/paycore/payroll-engine-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetSummaryRows(ctx context.Context, periodID string) ([]report.SummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.employee_id, e.employee_code, e.full_name,
			   d.gross_salary, d.total_deductions, d.net_salary
		FROM payroll_details d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.period_id = $1
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary report: %w", err)
	}
	defer rows.Close()

	var result []report.SummaryRow
	for rows.Next() {
		var row report.SummaryRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName,
			&row.GrossSalary, &row.TotalDeductions, &row.NetSalary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan summary report row: %w", err)
		}
		result = append(result, row)
	}

	return result, nil
}

func (r *reportRepository) GetDepartmentRows(ctx context.Context, periodID string) ([]report.DepartmentRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(dep.name, 'Unassigned'),
			   COUNT(*),
			   COALESCE(SUM(d.gross_salary), 0),
			   COALESCE(SUM(d.total_deductions), 0),
			   COALESCE(SUM(d.net_salary), 0)
		FROM payroll_details d
		JOIN employees e ON e.id = d.employee_id
		LEFT JOIN departments dep ON dep.id = e.department_id
		WHERE d.period_id = $1
		GROUP BY dep.name
		ORDER BY dep.name NULLS LAST
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query department report: %w", err)
	}
	defer rows.Close()

	var result []report.DepartmentRow
	for rows.Next() {
		var row report.DepartmentRow
		if err := rows.Scan(
			&row.DepartmentName, &row.EmployeeCount,
			&row.TotalGross, &row.TotalDeductions, &row.TotalNet,
		); err != nil {
			return nil, fmt.Errorf("failed to scan department report row: %w", err)
		}
		result = append(result, row)
	}

	return result, nil
}

func (r *reportRepository) GetTaxRows(ctx context.Context, periodID string) ([]report.TaxRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.employee_id, e.employee_code, e.full_name, e.tax_reference,
			   d.gross_salary, d.total_tax
		FROM payroll_details d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.period_id = $1 AND d.total_tax > 0
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax report: %w", err)
	}
	defer rows.Close()

	var result []report.TaxRow
	for rows.Next() {
		var row report.TaxRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName, &row.TaxReference,
			&row.GrossSalary, &row.TotalTax,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tax report row: %w", err)
		}
		result = append(result, row)
	}

	return result, nil
}

// statutoryRows serves both the PF and the insurance report; only the
// JSON paths into the stored contributions differ.
func (r *reportRepository) statutoryRows(ctx context.Context, periodID, employeeKey, employerKey string) ([]report.StatutoryRow, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT d.employee_id, e.employee_code, e.full_name,
			   COALESCE((d.statutory -> 'employee' ->> '%s')::numeric, 0),
			   COALESCE((d.statutory -> 'employer' ->> '%s')::numeric, 0),
			   d.gross_salary, dep.name
		FROM payroll_details d
		JOIN employees e ON e.id = d.employee_id
		LEFT JOIN departments dep ON dep.id = e.department_id
		WHERE d.period_id = $1
		ORDER BY e.employee_code
	`, employeeKey, employerKey)

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statutory report: %w", err)
	}
	defer rows.Close()

	var result []report.StatutoryRow
	for rows.Next() {
		var row report.StatutoryRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName,
			&row.EmployeeShare, &row.EmployerShare,
			&row.WageBase, &row.DepartmentName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan statutory report row: %w", err)
		}
		result = append(result, row)
	}

	return result, nil
}

func (r *reportRepository) GetPFRows(ctx context.Context, periodID string) ([]report.StatutoryRow, error) {
	return r.statutoryRows(ctx, periodID, "pf", "pf")
}

func (r *reportRepository) GetInsuranceRows(ctx context.Context, periodID string) ([]report.StatutoryRow, error) {
	return r.statutoryRows(ctx, periodID, "insurance", "insurance")
}

func (r *reportRepository) GetBankRows(ctx context.Context, periodID string) ([]report.BankRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.employee_id, e.full_name, e.bank_name, e.bank_account_number, d.net_salary
		FROM payroll_details d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.period_id = $1
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank report: %w", err)
	}
	defer rows.Close()

	var result []report.BankRow
	for rows.Next() {
		var row report.BankRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName,
			&row.BankName, &row.BankAccountNumber, &row.NetSalary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bank report row: %w", err)
		}
		result = append(result, row)
	}

	return result, nil
}
