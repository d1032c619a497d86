package payroll

import "context"

type PayrollService interface {
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	GetPeriod(ctx context.Context, id string) (PeriodResponse, error)
	ListPeriods(ctx context.Context, filter PeriodFilter) (ListPeriodResponse, error)

	ProcessPeriod(ctx context.Context, periodID string, employeeIDs []string) (RunResult, error)

	GetDetail(ctx context.Context, id string) (DetailResponse, error)
	GetDetailsByPeriod(ctx context.Context, periodID string) ([]DetailResponse, error)
	ApproveDetail(ctx context.Context, detailID, approverID string, comments *string) error
	ApprovePeriod(ctx context.Context, periodID, approverID string, comments *string) error

	GetStatistics(ctx context.Context, periodID string) (Statistics, error)
}
