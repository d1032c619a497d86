package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/paycore/payroll-engine-go/internal/domain/compensation"
	"github.com/paycore/payroll-engine-go/internal/pkg/database"
)

type compensationRepository struct {
	db *database.DB
}

func NewCompensationRepository(db *database.DB) compensation.CompensationRepository {
	return &compensationRepository{db: db}
}

func (r *compensationRepository) GetActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]compensation.EmployeeComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ec.id, ec.employee_id, ec.component_id, ec.amount,
			   ec.effective_date, ec.end_date, ec.created_at, ec.updated_at,
			   c.code, c.name, c.type, c.is_percentage
		FROM employee_compensation_components ec
		JOIN compensation_components c ON c.id = ec.component_id
		WHERE ec.employee_id = $1
		  AND c.is_active = true
		  AND ec.effective_date <= $2
		  AND (ec.end_date IS NULL OR ec.end_date >= $2)
		ORDER BY c.type, c.code
	`

	rows, err := q.Query(ctx, query, employeeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list compensation components: %w", err)
	}
	defer rows.Close()

	var components []compensation.EmployeeComponent
	for rows.Next() {
		var c compensation.EmployeeComponent
		if err := rows.Scan(
			&c.ID, &c.EmployeeID, &c.ComponentID, &c.Amount,
			&c.EffectiveDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
			&c.ComponentCode, &c.ComponentName, &c.ComponentType, &c.IsPercentage,
		); err != nil {
			return nil, fmt.Errorf("failed to scan compensation component: %w", err)
		}
		components = append(components, c)
	}

	return components, nil
}
