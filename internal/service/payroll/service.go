package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paycore/payroll-engine-go/internal/domain/attendance"
	"github.com/paycore/payroll-engine-go/internal/domain/compensation"
	"github.com/paycore/payroll-engine-go/internal/domain/deduction"
	"github.com/paycore/payroll-engine-go/internal/domain/employee"
	"github.com/paycore/payroll-engine-go/internal/domain/payroll"
	"github.com/paycore/payroll-engine-go/internal/domain/statutory"
	compensationService "github.com/paycore/payroll-engine-go/internal/service/compensation"
	statutoryService "github.com/paycore/payroll-engine-go/internal/service/statutory"
)

type PayrollServiceImpl struct {
	payrollRepo   payroll.PayrollRepository
	employeeRepo  employee.EmployeeRepository
	summaryRepo   attendance.SummaryRepository
	deductionRepo deduction.DeductionRepository
	settingsRepo  statutory.SettingsRepository
	attendanceSvc attendance.AttendanceService
	resolver      *compensationService.Resolver
	calculator    *statutoryService.Calculator
	translator    *ErrorTranslator
	logger        *slog.Logger
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	summaryRepo attendance.SummaryRepository,
	deductionRepo deduction.DeductionRepository,
	settingsRepo statutory.SettingsRepository,
	attendanceSvc attendance.AttendanceService,
	resolver *compensationService.Resolver,
	calculator *statutoryService.Calculator,
	translator *ErrorTranslator,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		summaryRepo:   summaryRepo,
		deductionRepo: deductionRepo,
		settingsRepo:  settingsRepo,
		attendanceSvc: attendanceSvc,
		resolver:      resolver,
		calculator:    calculator,
		translator:    translator,
		logger:        logger,
	}
}

// ========== PERIODS ==========

func (s *PayrollServiceImpl) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	payDate, _ := time.Parse("2006-01-02", req.PayDate)

	period := payroll.PayrollPeriod{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Type:            payroll.PeriodType(req.Type),
		StartDate:       start,
		EndDate:         end,
		PayDate:         payDate,
		Status:          payroll.PeriodStatusDraft,
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
	}

	created, err := s.payrollRepo.CreatePeriod(ctx, period)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return payroll.ToPeriodResponse(created), nil
}

func (s *PayrollServiceImpl) GetPeriod(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, id)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return payroll.ToPeriodResponse(period), nil
}

func (s *PayrollServiceImpl) ListPeriods(ctx context.Context, filter payroll.PeriodFilter) (payroll.ListPeriodResponse, error) {
	periods, totalCount, err := s.payrollRepo.ListPeriods(ctx, filter)
	if err != nil {
		return payroll.ListPeriodResponse{}, err
	}

	data := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		data = append(data, payroll.ToPeriodResponse(p))
	}

	return payroll.ListPeriodResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ========== PROCESSING ==========

// ProcessPeriod implements payroll.PayrollService. Precondition failures
// abort before any employee work; per-employee failures are caught,
// translated and recorded while the loop continues. The run status is
// decided only after every employee has been attempted.
func (s *PayrollServiceImpl) ProcessPeriod(ctx context.Context, periodID string, employeeIDs []string) (payroll.RunResult, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.RunResult{}, err
	}
	if !period.Status.IsProcessable() {
		return payroll.RunResult{}, fmt.Errorf("%w: period %s is %s", payroll.ErrPeriodNotProcessable, period.ID, period.Status)
	}

	runType := payroll.RunTypeFull
	if len(employeeIDs) > 0 {
		runType = payroll.RunTypePartial
	}
	run, err := s.payrollRepo.CreateRun(ctx, payroll.PayrollRun{
		ID:        uuid.NewString(),
		PeriodID:  period.ID,
		Type:      runType,
		Status:    payroll.RunStatusInProgress,
		StartedAt: time.Now().UTC(),
	})
	if err != nil {
		return payroll.RunResult{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	if period.Status != payroll.PeriodStatusProcessing {
		if err := s.payrollRepo.UpdatePeriodStatus(ctx, period.ID, payroll.PeriodStatusProcessing); err != nil {
			s.failRun(ctx, run)
			return payroll.RunResult{}, fmt.Errorf("failed to mark period processing: %w", err)
		}
	}

	employees := s.resolveTargetEmployees(ctx, employeeIDs)
	summaries := s.loadSummaries(ctx, period)
	cfg := s.loadStatutoryConfig(ctx)

	var processed int
	var failures []payroll.ErrorRecord
	for _, emp := range employees {
		if err := s.processEmployee(ctx, emp, period, run.ID, summaries[emp.ID], cfg); err != nil {
			s.logger.Warn("employee payroll failed",
				"run_id", run.ID, "employee_id", emp.ID, "error", err)
			failures = append(failures, s.translator.Translate(err.Error(), emp.ID, emp.FullName))
			continue
		}
		processed++
	}

	run.ProcessedCount = processed
	run.FailedCount = len(failures)
	run.Status = payroll.RunStatusCompleted
	periodStatus := payroll.PeriodStatusCompleted
	if len(failures) > 0 {
		run.Status = payroll.RunStatusCompletedWithErrors
		periodStatus = payroll.PeriodStatusCompletedWithErrors
		report := s.translator.Summarize(failures)
		run.ErrorReport = &report
	}
	now := time.Now().UTC()
	run.FinishedAt = &now

	if err := s.payrollRepo.FinishRun(ctx, run); err != nil {
		return payroll.RunResult{}, fmt.Errorf("failed to finish payroll run: %w", err)
	}
	if err := s.payrollRepo.UpdatePeriodStatus(ctx, period.ID, periodStatus); err != nil {
		return payroll.RunResult{}, fmt.Errorf("failed to update period status: %w", err)
	}
	s.refreshPeriodTotals(ctx, period.ID)

	return payroll.RunResult{
		RunID:     run.ID,
		Status:    string(run.Status),
		Processed: processed,
		Failed:    len(failures),
		Errors:    run.ErrorReport,
	}, nil
}

func (s *PayrollServiceImpl) failRun(ctx context.Context, run payroll.PayrollRun) {
	run.Status = payroll.RunStatusFailed
	now := time.Now().UTC()
	run.FinishedAt = &now
	if err := s.payrollRepo.FinishRun(ctx, run); err != nil {
		s.logger.Error("failed to mark run failed", "run_id", run.ID, "error", err)
	}
}

// resolveTargetEmployees returns the employees to process. A lookup
// failure degrades to an empty set rather than aborting the run.
func (s *PayrollServiceImpl) resolveTargetEmployees(ctx context.Context, employeeIDs []string) []employee.Employee {
	var employees []employee.Employee
	var err error
	if len(employeeIDs) > 0 {
		employees, err = s.employeeRepo.GetByIDs(ctx, employeeIDs)
	} else {
		employees, err = s.employeeRepo.GetActive(ctx)
	}
	if err != nil {
		s.logger.Error("employee lookup failed, processing empty set", "error", err)
		return nil
	}
	return employees
}

// loadSummaries fetches the period's attendance summaries once. When the
// month has never been aggregated it triggers one recompute first.
func (s *PayrollServiceImpl) loadSummaries(ctx context.Context, period payroll.PayrollPeriod) map[string]attendance.Metrics {
	year, month := period.StartDate.Year(), int(period.StartDate.Month())

	list, err := s.summaryRepo.ListByPeriod(ctx, year, month)
	if err != nil {
		s.logger.Warn("attendance summary lookup failed, defaulting to zero metrics",
			"period_id", period.ID, "error", err)
		return nil
	}
	if len(list) == 0 {
		if err := s.attendanceSvc.Recompute(ctx, month, year); err != nil {
			s.logger.Warn("attendance recompute failed, defaulting to zero metrics",
				"period_id", period.ID, "error", err)
			return nil
		}
		list, err = s.summaryRepo.ListByPeriod(ctx, year, month)
		if err != nil {
			s.logger.Warn("attendance summary lookup failed after recompute",
				"period_id", period.ID, "error", err)
			return nil
		}
	}

	// Final values feed pay; base values only track the latest raw data.
	result := make(map[string]attendance.Metrics, len(list))
	for _, summary := range list {
		result[summary.EmployeeID] = summary.Final
	}
	return result
}

func (s *PayrollServiceImpl) loadStatutoryConfig(ctx context.Context) statutory.Config {
	cfg, err := s.settingsRepo.GetConfig(ctx)
	if err != nil {
		if !errors.Is(err, statutory.ErrSettingsNotFound) {
			s.logger.Warn("statutory settings lookup failed, using defaults", "error", err)
		}
		return statutory.DefaultConfig()
	}
	return cfg
}

// dearnessOf pulls the dearness-allowance amount out of the resolved
// components; it feeds the PF wage base alongside basic.
func dearnessOf(b compensation.Breakdown) decimal.Decimal {
	for _, c := range b.Components {
		if strings.EqualFold(c.ComponentCode, "DA") || strings.EqualFold(c.ComponentCode, "DEARNESS") {
			return c.Amount
		}
	}
	return decimal.Zero
}

// taxCode reports whether a deduction component withholds tax.
func taxCode(code string) bool {
	switch strings.ToUpper(code) {
	case "TDS", "PT", "TAX", "INCOME_TAX":
		return true
	}
	return false
}

// processEmployee computes and persists one employee's payroll. The
// detail plus its breakdown lines go in as one transaction; a duplicate
// (employee, period) insert surfaces as this employee's error.
func (s *PayrollServiceImpl) processEmployee(
	ctx context.Context,
	emp employee.Employee,
	period payroll.PayrollPeriod,
	runID string,
	metrics attendance.Metrics,
	cfg statutory.Config,
) error {
	breakdown, err := s.resolver.Resolve(ctx, emp.ID, period.EndDate)
	if err != nil {
		return err
	}

	gross := breakdown.Basic.Add(breakdown.Earnings)
	contributions := s.calculator.Compute(breakdown.Basic, dearnessOf(breakdown), gross, cfg)

	detailID := uuid.NewString()
	var earnings []payroll.EarningLine
	var deductions []payroll.DeductionLine
	totalTax := decimal.Zero

	for _, c := range breakdown.Components {
		switch c.Type {
		case compensation.ComponentTypeDeduction:
			deductions = append(deductions, payroll.DeductionLine{
				ID:       uuid.NewString(),
				DetailID: detailID,
				Code:     c.ComponentCode,
				Name:     c.ComponentName,
				Amount:   c.Amount,
			})
			if taxCode(c.ComponentCode) {
				totalTax = totalTax.Add(c.Amount)
			}
		default:
			earnings = append(earnings, payroll.EarningLine{
				ID:       uuid.NewString(),
				DetailID: detailID,
				Code:     c.ComponentCode,
				Name:     c.ComponentName,
				Amount:   c.Amount,
			})
		}
	}

	deductions = append(deductions,
		payroll.DeductionLine{
			ID:       uuid.NewString(),
			DetailID: detailID,
			Code:     "PF_EMPLOYEE",
			Name:     "Provident fund (employee)",
			Amount:   contributions.Employee.PF,
		},
		payroll.DeductionLine{
			ID:       uuid.NewString(),
			DetailID: detailID,
			Code:     "INS_EMPLOYEE",
			Name:     "Insurance (employee)",
			Amount:   contributions.Employee.Insurance,
		},
	)

	manualTotal := decimal.Zero
	standing, err := s.deductionRepo.GetActiveByEmployee(ctx, emp.ID, period.EndDate)
	if err != nil {
		return fmt.Errorf("failed to resolve standing deductions: %w", err)
	}
	for _, d := range standing {
		amount := d.AmountFor(gross)
		manualTotal = manualTotal.Add(amount)
		deductions = append(deductions, payroll.DeductionLine{
			ID:       uuid.NewString(),
			DetailID: detailID,
			Code:     strings.ToUpper(string(d.Kind)),
			Name:     d.Name,
			Amount:   amount,
		})
	}

	totalDeductions := breakdown.Deductions.
		Add(contributions.TotalEmployee()).
		Add(manualTotal)
	net := gross.Sub(totalDeductions)

	detail := payroll.PayrollDetail{
		ID:              detailID,
		PeriodID:        period.ID,
		RunID:           runID,
		EmployeeID:      emp.ID,
		BasicSalary:     breakdown.Basic,
		GrossSalary:     gross,
		TotalEarnings:   breakdown.Earnings,
		TotalDeductions: totalDeductions,
		TotalTax:        totalTax,
		NetSalary:       net,
		Statutory:       contributions,
		PresentDays:     metrics.PresentDays,
		PaidLeaveDays:   metrics.PaidLeaveDays,
		UnpaidLeaveDays: metrics.UnpaidLeaveDays,
		WeeklyOffDays:   metrics.WeeklyOffDays,
		HolidayDays:     metrics.HolidayDays,
		PayableDays:     metrics.PayableDays,
		WorkHours:       metrics.WorkHours,
		OvertimeHours:   metrics.OvertimeHours,
		RequiredHours:   metrics.RequiredHours,
		Status:          payroll.DetailStatusCalculated,
	}

	if _, err := s.payrollRepo.CreateDetailWithLines(ctx, detail, earnings, deductions); err != nil {
		return err
	}
	return nil
}

func (s *PayrollServiceImpl) refreshPeriodTotals(ctx context.Context, periodID string) {
	stats, err := s.payrollRepo.GetStatistics(ctx, periodID)
	if err != nil {
		s.logger.Warn("failed to compute period totals", "period_id", periodID, "error", err)
		return
	}
	if err := s.payrollRepo.UpdatePeriodTotals(ctx, periodID, stats); err != nil {
		s.logger.Warn("failed to persist period totals", "period_id", periodID, "error", err)
	}
}

// ========== DETAILS & APPROVAL ==========

func (s *PayrollServiceImpl) GetDetail(ctx context.Context, id string) (payroll.DetailResponse, error) {
	detail, err := s.payrollRepo.GetDetailByID(ctx, id)
	if err != nil {
		return payroll.DetailResponse{}, err
	}
	return payroll.ToDetailResponse(detail), nil
}

func (s *PayrollServiceImpl) GetDetailsByPeriod(ctx context.Context, periodID string) ([]payroll.DetailResponse, error) {
	details, err := s.payrollRepo.GetDetailsByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.DetailResponse, 0, len(details))
	for _, d := range details {
		result = append(result, payroll.ToDetailResponse(d))
	}
	return result, nil
}

func (s *PayrollServiceImpl) ApproveDetail(ctx context.Context, detailID, approverID string, comments *string) error {
	detail, err := s.payrollRepo.GetDetailByID(ctx, detailID)
	if err != nil {
		return err
	}
	if !detail.Status.CanTransitionTo(payroll.DetailStatusApproved) {
		return fmt.Errorf("%w: detail %s is %s", payroll.ErrInvalidStateTransition, detail.ID, detail.Status)
	}

	return s.payrollRepo.ApproveDetail(ctx, detailID, approverID, comments)
}

func (s *PayrollServiceImpl) ApprovePeriod(ctx context.Context, periodID, approverID string, comments *string) error {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return err
	}
	if !period.Status.IsCompleted() {
		return fmt.Errorf("%w: period %s is %s", payroll.ErrPeriodNotCompleted, period.ID, period.Status)
	}
	if !period.Status.CanTransitionTo(payroll.PeriodStatusApproved) {
		return fmt.Errorf("%w: period %s is %s", payroll.ErrInvalidStateTransition, period.ID, period.Status)
	}

	approved, err := s.payrollRepo.BulkApproveCalculated(ctx, periodID, approverID)
	if err != nil {
		return err
	}
	s.logger.Info("period details approved", "period_id", periodID, "count", approved)

	return s.payrollRepo.ApprovePeriod(ctx, periodID, approverID)
}

// ========== STATISTICS ==========

func (s *PayrollServiceImpl) GetStatistics(ctx context.Context, periodID string) (payroll.Statistics, error) {
	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID); err != nil {
		return payroll.Statistics{}, err
	}
	return s.payrollRepo.GetStatistics(ctx, periodID)
}
