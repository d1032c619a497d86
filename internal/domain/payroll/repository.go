package payroll

import "context"

// PayrollRepository defines data access for periods, runs and details.
// CreateDetailWithLines writes one employee's detail plus breakdown rows
// in a single transaction, so per-employee persistence stays independent
// of the rest of the run.
type PayrollRepository interface {
	// Periods
	CreatePeriod(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	GetPeriodByID(ctx context.Context, id string) (PayrollPeriod, error)
	ListPeriods(ctx context.Context, filter PeriodFilter) ([]PayrollPeriod, int64, error)
	UpdatePeriodStatus(ctx context.Context, id string, status PeriodStatus) error
	UpdatePeriodTotals(ctx context.Context, id string, stats Statistics) error
	ApprovePeriod(ctx context.Context, id string, approverID string) error

	// Runs
	CreateRun(ctx context.Context, run PayrollRun) (PayrollRun, error)
	GetRunByID(ctx context.Context, id string) (PayrollRun, error)
	FinishRun(ctx context.Context, run PayrollRun) error

	// Details
	CreateDetailWithLines(ctx context.Context, detail PayrollDetail, earnings []EarningLine, deductions []DeductionLine) (PayrollDetail, error)
	GetDetailByID(ctx context.Context, id string) (PayrollDetail, error)
	GetDetailsByPeriod(ctx context.Context, periodID string) ([]PayrollDetail, error)
	ApproveDetail(ctx context.Context, id string, approverID string, comments *string) error
	BulkApproveCalculated(ctx context.Context, periodID string, approverID string) (int, error)

	// Aggregations
	GetStatistics(ctx context.Context, periodID string) (Statistics, error)
}
