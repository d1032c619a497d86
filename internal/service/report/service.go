package report

import (
	"context"
	"fmt"

	"github.com/paycore/payroll-engine-go/internal/domain/payroll"
	"github.com/paycore/payroll-engine-go/internal/domain/report"
)

type ReportServiceImpl struct {
	reportRepo  report.ReportRepository
	payrollRepo payroll.PayrollRepository
}

func NewReportService(reportRepo report.ReportRepository, payrollRepo payroll.PayrollRepository) *ReportServiceImpl {
	return &ReportServiceImpl{
		reportRepo:  reportRepo,
		payrollRepo: payrollRepo,
	}
}

// GeneratedReport wraps the typed rows of one report.
type GeneratedReport struct {
	PeriodID string      `json:"period_id"`
	Type     string      `json:"type"`
	Rows     interface{} `json:"rows"`
}

// Generate builds the requested report for a period.
func (s *ReportServiceImpl) Generate(ctx context.Context, periodID string, reportType report.ReportType) (GeneratedReport, error) {
	if !reportType.Valid() {
		return GeneratedReport{}, fmt.Errorf("%w: %q", report.ErrUnknownReportType, reportType)
	}
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return GeneratedReport{}, err
	}
	// Bank transfer files only go out for approved periods.
	if reportType == report.ReportTypeBank && period.Status != payroll.PeriodStatusApproved {
		return GeneratedReport{}, payroll.ErrPeriodNotCompleted
	}

	var rows interface{}
	switch reportType {
	case report.ReportTypeSummary:
		rows, err = s.reportRepo.GetSummaryRows(ctx, periodID)
	case report.ReportTypeDetailed:
		var details []payroll.PayrollDetail
		details, err = s.payrollRepo.GetDetailsByPeriod(ctx, periodID)
		if err == nil {
			responses := make([]payroll.DetailResponse, 0, len(details))
			for _, d := range details {
				responses = append(responses, payroll.ToDetailResponse(d))
			}
			rows = responses
		}
	case report.ReportTypeDepartment:
		rows, err = s.reportRepo.GetDepartmentRows(ctx, periodID)
	case report.ReportTypeTax:
		rows, err = s.reportRepo.GetTaxRows(ctx, periodID)
	case report.ReportTypePF:
		rows, err = s.reportRepo.GetPFRows(ctx, periodID)
	case report.ReportTypeInsurance:
		rows, err = s.reportRepo.GetInsuranceRows(ctx, periodID)
	case report.ReportTypeBank:
		rows, err = s.reportRepo.GetBankRows(ctx, periodID)
	}
	if err != nil {
		return GeneratedReport{}, fmt.Errorf("failed to build %s report: %w", reportType, err)
	}

	return GeneratedReport{
		PeriodID: periodID,
		Type:     string(reportType),
		Rows:     rows,
	}, nil
}
