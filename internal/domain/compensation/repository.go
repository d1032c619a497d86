package compensation

import (
	"context"
	"time"
)

type CompensationRepository interface {
	GetActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]EmployeeComponent, error)
}
