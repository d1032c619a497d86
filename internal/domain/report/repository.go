package report

import "context"

type ReportRepository interface {
	GetSummaryRows(ctx context.Context, periodID string) ([]SummaryRow, error)
	GetDepartmentRows(ctx context.Context, periodID string) ([]DepartmentRow, error)
	GetTaxRows(ctx context.Context, periodID string) ([]TaxRow, error)
	GetPFRows(ctx context.Context, periodID string) ([]StatutoryRow, error)
	GetInsuranceRows(ctx context.Context, periodID string) ([]StatutoryRow, error)
	GetBankRows(ctx context.Context, periodID string) ([]BankRow, error)
}
