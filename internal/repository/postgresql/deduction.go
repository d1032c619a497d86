package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/paycore/payroll-engine-go/internal/domain/deduction"
	"github.com/paycore/payroll-engine-go/internal/pkg/database"
)

type deductionRepository struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) deduction.DeductionRepository {
	return &deductionRepository{db: db}
}

func (r *deductionRepository) GetActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]deduction.StandingDeduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, kind, name, monthly_installment, is_percentage,
			   start_date, end_date, is_active, created_at, updated_at
		FROM standing_deductions
		WHERE employee_id = $1
		  AND is_active = true
		  AND start_date <= $2
		  AND (end_date IS NULL OR end_date >= $2)
		ORDER BY kind, name
	`

	rows, err := q.Query(ctx, query, employeeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list standing deductions: %w", err)
	}
	defer rows.Close()

	var deductions []deduction.StandingDeduction
	for rows.Next() {
		var d deduction.StandingDeduction
		if err := rows.Scan(
			&d.ID, &d.EmployeeID, &d.Kind, &d.Name, &d.MonthlyInstallment, &d.IsPercentage,
			&d.StartDate, &d.EndDate, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan standing deduction: %w", err)
		}
		deductions = append(deductions, d)
	}

	return deductions, nil
}
