package deduction

import (
	"context"
	"time"
)

type DeductionRepository interface {
	GetActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]StandingDeduction, error)
}
