package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycore/payroll-engine-go/internal/domain/attendance"
	"github.com/paycore/payroll-engine-go/internal/domain/compensation"
	"github.com/paycore/payroll-engine-go/internal/domain/deduction"
	"github.com/paycore/payroll-engine-go/internal/domain/employee"
	"github.com/paycore/payroll-engine-go/internal/domain/payroll"
	"github.com/paycore/payroll-engine-go/internal/domain/statutory"
	compensationService "github.com/paycore/payroll-engine-go/internal/service/compensation"
	statutoryService "github.com/paycore/payroll-engine-go/internal/service/statutory"
)

// ========== FAKES ==========

type fakePayrollRepo struct {
	periods map[string]payroll.PayrollPeriod
	runs    map[string]payroll.PayrollRun
	details []payroll.PayrollDetail

	statusUpdates   []payroll.PeriodStatus
	bulkApproved    int
	periodsApproved []string
}

func newFakePayrollRepo(periods ...payroll.PayrollPeriod) *fakePayrollRepo {
	r := &fakePayrollRepo{
		periods: make(map[string]payroll.PayrollPeriod),
		runs:    make(map[string]payroll.PayrollRun),
	}
	for _, p := range periods {
		r.periods[p.ID] = p
	}
	return r
}

func (f *fakePayrollRepo) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	f.periods[period.ID] = period
	return period, nil
}

func (f *fakePayrollRepo) GetPeriodByID(ctx context.Context, id string) (payroll.PayrollPeriod, error) {
	p, ok := f.periods[id]
	if !ok {
		return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
	}
	return p, nil
}

func (f *fakePayrollRepo) ListPeriods(ctx context.Context, filter payroll.PeriodFilter) ([]payroll.PayrollPeriod, int64, error) {
	var out []payroll.PayrollPeriod
	for _, p := range f.periods {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePayrollRepo) UpdatePeriodStatus(ctx context.Context, id string, status payroll.PeriodStatus) error {
	p := f.periods[id]
	p.Status = status
	f.periods[id] = p
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakePayrollRepo) UpdatePeriodTotals(ctx context.Context, id string, stats payroll.Statistics) error {
	return nil
}

func (f *fakePayrollRepo) ApprovePeriod(ctx context.Context, id string, approverID string) error {
	p := f.periods[id]
	p.Status = payroll.PeriodStatusApproved
	f.periods[id] = p
	f.periodsApproved = append(f.periodsApproved, id)
	return nil
}

func (f *fakePayrollRepo) CreateRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	f.runs[run.ID] = run
	return run, nil
}

func (f *fakePayrollRepo) GetRunByID(ctx context.Context, id string) (payroll.PayrollRun, error) {
	r, ok := f.runs[id]
	if !ok {
		return payroll.PayrollRun{}, payroll.ErrRunNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) FinishRun(ctx context.Context, run payroll.PayrollRun) error {
	f.runs[run.ID] = run
	return nil
}

func (f *fakePayrollRepo) CreateDetailWithLines(ctx context.Context, detail payroll.PayrollDetail, earnings []payroll.EarningLine, deductions []payroll.DeductionLine) (payroll.PayrollDetail, error) {
	for _, d := range f.details {
		if d.EmployeeID == detail.EmployeeID && d.PeriodID == detail.PeriodID {
			return payroll.PayrollDetail{}, payroll.ErrDetailAlreadyExists
		}
	}
	f.details = append(f.details, detail)
	return detail, nil
}

func (f *fakePayrollRepo) GetDetailByID(ctx context.Context, id string) (payroll.PayrollDetail, error) {
	for _, d := range f.details {
		if d.ID == id {
			return d, nil
		}
	}
	return payroll.PayrollDetail{}, payroll.ErrDetailNotFound
}

func (f *fakePayrollRepo) GetDetailsByPeriod(ctx context.Context, periodID string) ([]payroll.PayrollDetail, error) {
	var out []payroll.PayrollDetail
	for _, d := range f.details {
		if d.PeriodID == periodID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) ApproveDetail(ctx context.Context, id string, approverID string, comments *string) error {
	for i, d := range f.details {
		if d.ID == id {
			f.details[i].Status = payroll.DetailStatusApproved
			f.details[i].ApprovedBy = &approverID
			return nil
		}
	}
	return payroll.ErrDetailNotFound
}

func (f *fakePayrollRepo) BulkApproveCalculated(ctx context.Context, periodID string, approverID string) (int, error) {
	count := 0
	for i, d := range f.details {
		if d.PeriodID == periodID && d.Status == payroll.DetailStatusCalculated {
			f.details[i].Status = payroll.DetailStatusApproved
			count++
		}
	}
	f.bulkApproved = count
	return count, nil
}

func (f *fakePayrollRepo) GetStatistics(ctx context.Context, periodID string) (payroll.Statistics, error) {
	stats := payroll.Statistics{PeriodID: periodID}
	for _, d := range f.details {
		if d.PeriodID != periodID {
			continue
		}
		stats.DetailCount++
		stats.TotalGross = stats.TotalGross.Add(d.GrossSalary)
		stats.TotalDeductions = stats.TotalDeductions.Add(d.TotalDeductions)
		stats.TotalNet = stats.TotalNet.Add(d.NetSalary)
	}
	return stats, nil
}

type fakeEmployeeRepo struct {
	active []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.active {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.active {
		for _, id := range ids {
			if e.ID == id {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, nil
}

type fakeSummaryRepo struct {
	summaries []attendance.Summary
}

func (f *fakeSummaryRepo) UpsertBase(ctx context.Context, year, month int, employeeID string, base attendance.Metrics) (bool, error) {
	return true, nil
}

func (f *fakeSummaryRepo) UpsertFinal(ctx context.Context, year, month int, employeeID string, final attendance.Metrics, base *attendance.Metrics) error {
	return nil
}

func (f *fakeSummaryRepo) GetByEmployeePeriod(ctx context.Context, year, month int, employeeID string) (attendance.Summary, error) {
	return attendance.Summary{}, attendance.ErrSummaryNotFound
}

func (f *fakeSummaryRepo) ListByPeriod(ctx context.Context, year, month int) ([]attendance.Summary, error) {
	return f.summaries, nil
}

type fakeDeductionRepo struct {
	byEmployee map[string][]deduction.StandingDeduction
}

func (f *fakeDeductionRepo) GetActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]deduction.StandingDeduction, error) {
	return f.byEmployee[employeeID], nil
}

type fakeSettingsRepo struct{}

func (f *fakeSettingsRepo) GetConfig(ctx context.Context) (statutory.Config, error) {
	return statutory.Config{}, statutory.ErrSettingsNotFound
}

type fakeAttendanceSvc struct {
	recomputed int
}

func (f *fakeAttendanceSvc) Aggregate(ctx context.Context, month, year int) (map[string]attendance.Metrics, error) {
	return nil, nil
}

func (f *fakeAttendanceSvc) Recompute(ctx context.Context, month, year int) error {
	f.recomputed++
	return nil
}

func (f *fakeAttendanceSvc) UpsertFinal(ctx context.Context, req attendance.UpsertFinalRequest) error {
	return nil
}

func (f *fakeAttendanceSvc) ListSummaries(ctx context.Context, month, year int) ([]attendance.SummaryResponse, error) {
	return nil, nil
}

type fakeCompensationRepo struct {
	byEmployee map[string][]compensation.EmployeeComponent
}

func (f *fakeCompensationRepo) GetActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]compensation.EmployeeComponent, error) {
	return f.byEmployee[employeeID], nil
}

// ========== HELPERS ==========

func testPeriod(status payroll.PeriodStatus) payroll.PayrollPeriod {
	return payroll.PayrollPeriod{
		ID:        "period-1",
		Name:      "March 2024",
		Type:      payroll.PeriodTypeMonthly,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		PayDate:   time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		Status:    status,
	}
}

func basicComponent(amount int64) compensation.EmployeeComponent {
	return compensation.EmployeeComponent{
		ComponentID:   "c-basic",
		ComponentCode: "BASIC",
		ComponentName: "Basic salary",
		ComponentType: compensation.ComponentTypeBasic,
		Amount:        decimal.NewFromInt(amount),
	}
}

func newTestService(repo *fakePayrollRepo, employees []employee.Employee, comps map[string][]compensation.EmployeeComponent, summaries []attendance.Summary, ded map[string][]deduction.StandingDeduction) payroll.PayrollService {
	return NewPayrollService(
		repo,
		&fakeEmployeeRepo{active: employees},
		&fakeSummaryRepo{summaries: summaries},
		&fakeDeductionRepo{byEmployee: ded},
		&fakeSettingsRepo{},
		&fakeAttendanceSvc{},
		compensationService.NewResolver(&fakeCompensationRepo{byEmployee: comps}, nil),
		statutoryService.NewCalculator(),
		NewErrorTranslator(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

// ========== PROCESS PERIOD ==========

func TestProcessPeriodAllSucceed(t *testing.T) {
	repo := newFakePayrollRepo(testPeriod(payroll.PeriodStatusDraft))
	employees := []employee.Employee{
		{ID: "emp-1", FullName: "Alice"},
		{ID: "emp-2", FullName: "Bob"},
	}
	comps := map[string][]compensation.EmployeeComponent{
		"emp-1": {basicComponent(10000)},
		"emp-2": {basicComponent(12000)},
	}
	summaries := []attendance.Summary{
		{EmployeeID: "emp-1", PeriodYear: 2024, PeriodMonth: 3, Final: attendance.Metrics{PresentDays: 20, PayableDays: 21}},
	}

	svc := newTestService(repo, employees, comps, summaries, nil)

	result, err := svc.ProcessPeriod(context.Background(), "period-1", nil)
	require.NoError(t, err)

	assert.Equal(t, string(payroll.RunStatusCompleted), result.Status)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 0, result.Failed)
	assert.Nil(t, result.Errors)

	assert.Equal(t, payroll.PeriodStatusCompleted, repo.periods["period-1"].Status)
	require.Len(t, repo.details, 2)
	for _, d := range repo.details {
		assert.Equal(t, payroll.DetailStatusCalculated, d.Status)
		assert.Equal(t, "period-1", d.PeriodID)
		assert.Equal(t, result.RunID, d.RunID)
	}

	// Attendance figures flow from the final metrics into the detail.
	assert.Equal(t, 20, repo.details[0].PresentDays)
	assert.Equal(t, 21, repo.details[0].PayableDays)
}

func TestProcessPeriodBulkheadIsolation(t *testing.T) {
	repo := newFakePayrollRepo(testPeriod(payroll.PeriodStatusDraft))
	employees := []employee.Employee{
		{ID: "emp-1", FullName: "Alice"},
		{ID: "emp-2", FullName: "Bob"}, // no compensation: must fail alone
		{ID: "emp-3", FullName: "Carol"},
	}
	comps := map[string][]compensation.EmployeeComponent{
		"emp-1": {basicComponent(10000)},
		"emp-3": {basicComponent(11000)},
	}

	svc := newTestService(repo, employees, comps, nil, nil)

	result, err := svc.ProcessPeriod(context.Background(), "period-1", nil)
	require.NoError(t, err, "one bad employee must not fail the run")

	assert.Equal(t, string(payroll.RunStatusCompletedWithErrors), result.Status)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)

	require.NotNil(t, result.Errors)
	assert.Equal(t, 1, result.Errors.Total)
	require.Len(t, result.Errors.Errors, 1)
	record := result.Errors.Errors[0]
	assert.Equal(t, "emp-2", record.EmployeeID)
	assert.Equal(t, payroll.CategoryMissingCompensation, record.Category)
	assert.NotEmpty(t, record.RawMessage)

	assert.Equal(t, payroll.PeriodStatusCompletedWithErrors, repo.periods["period-1"].Status)
	assert.Len(t, repo.details, 2, "failed employee gets no detail row")
}

func TestProcessPeriodNotProcessable(t *testing.T) {
	repo := newFakePayrollRepo(testPeriod(payroll.PeriodStatusApproved))
	svc := newTestService(repo, nil, nil, nil, nil)

	_, err := svc.ProcessPeriod(context.Background(), "period-1", nil)
	assert.ErrorIs(t, err, payroll.ErrPeriodNotProcessable)
	assert.Empty(t, repo.runs, "no run is created for a non-processable period")
}

func TestProcessPeriodUnknownPeriod(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo, nil, nil, nil, nil)

	_, err := svc.ProcessPeriod(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, payroll.ErrPeriodNotFound)
}

func TestProcessPeriodPartialRun(t *testing.T) {
	repo := newFakePayrollRepo(testPeriod(payroll.PeriodStatusDraft))
	employees := []employee.Employee{
		{ID: "emp-1", FullName: "Alice"},
		{ID: "emp-2", FullName: "Bob"},
	}
	comps := map[string][]compensation.EmployeeComponent{
		"emp-1": {basicComponent(10000)},
		"emp-2": {basicComponent(12000)},
	}

	svc := newTestService(repo, employees, comps, nil, nil)

	result, err := svc.ProcessPeriod(context.Background(), "period-1", []string{"emp-2"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	require.Len(t, repo.details, 1)
	assert.Equal(t, "emp-2", repo.details[0].EmployeeID)
	assert.Equal(t, payroll.RunTypePartial, repo.runs[result.RunID].Type)
}

func TestProcessPeriodRerunSkipsExistingDetails(t *testing.T) {
	// Resuming a completed_with_errors period with only the previously
	// failed employee targeted: the earlier detail stays untouched and
	// the retry goes through.
	period := testPeriod(payroll.PeriodStatusCompletedWithErrors)
	repo := newFakePayrollRepo(period)
	repo.details = append(repo.details, payroll.PayrollDetail{
		ID: "detail-1", PeriodID: "period-1", EmployeeID: "emp-1", Status: payroll.DetailStatusCalculated,
	})
	employees := []employee.Employee{{ID: "emp-2", FullName: "Bob"}}
	comps := map[string][]compensation.EmployeeComponent{
		"emp-2": {basicComponent(9000)},
	}

	svc := newTestService(repo, employees, comps, nil, nil)

	result, err := svc.ProcessPeriod(context.Background(), "period-1", []string{"emp-2"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Failed)
	assert.Len(t, repo.details, 2)
}

// ========== PAY MATH ==========

func TestProcessEmployeePayFigures(t *testing.T) {
	repo := newFakePayrollRepo(testPeriod(payroll.PeriodStatusDraft))
	employees := []employee.Employee{{ID: "emp-1", FullName: "Alice"}}
	comps := map[string][]compensation.EmployeeComponent{
		"emp-1": {
			basicComponent(10000),
			{
				ComponentID: "c-hra", ComponentCode: "HRA", ComponentName: "House rent",
				ComponentType: compensation.ComponentTypeEarning, Amount: decimal.NewFromInt(4000),
			},
			{
				ComponentID: "c-pt", ComponentCode: "PT", ComponentName: "Professional tax",
				ComponentType: compensation.ComponentTypeDeduction, Amount: decimal.NewFromInt(200),
			},
		},
	}
	ded := map[string][]deduction.StandingDeduction{
		"emp-1": {{
			ID: "sd-1", EmployeeID: "emp-1", Kind: deduction.DeductionKindLoan,
			Name: "Car loan", MonthlyInstallment: decimal.NewFromInt(500),
		}},
	}

	svc := newTestService(repo, employees, comps, nil, ded)

	_, err := svc.ProcessPeriod(context.Background(), "period-1", nil)
	require.NoError(t, err)
	require.Len(t, repo.details, 1)

	d := repo.details[0]
	assert.True(t, decimal.NewFromInt(10000).Equal(d.BasicSalary))
	assert.True(t, decimal.NewFromInt(14000).Equal(d.GrossSalary))
	assert.True(t, decimal.NewFromInt(4000).Equal(d.TotalEarnings))
	// Employee statutory shares with default rates: PF 1200, insurance
	// round(14000 * 0.0075) = 105.
	assert.True(t, decimal.NewFromInt(1200).Equal(d.Statutory.Employee.PF))
	assert.True(t, decimal.NewFromInt(105).Equal(d.Statutory.Employee.Insurance))
	// 200 component + 1305 statutory + 500 loan installment.
	assert.True(t, decimal.NewFromInt(2005).Equal(d.TotalDeductions), "total deductions: %s", d.TotalDeductions)
	assert.True(t, decimal.NewFromInt(11995).Equal(d.NetSalary), "net: %s", d.NetSalary)
	assert.True(t, decimal.NewFromInt(200).Equal(d.TotalTax), "PT counts as tax withholding")
}

// ========== APPROVAL ==========

func TestApproveDetailRequiresCalculated(t *testing.T) {
	repo := newFakePayrollRepo()
	repo.details = append(repo.details,
		payroll.PayrollDetail{ID: "d-1", PeriodID: "period-1", EmployeeID: "emp-1", Status: payroll.DetailStatusCalculated},
		payroll.PayrollDetail{ID: "d-2", PeriodID: "period-1", EmployeeID: "emp-2", Status: payroll.DetailStatusDraft},
	)
	svc := newTestService(repo, nil, nil, nil, nil)

	require.NoError(t, svc.ApproveDetail(context.Background(), "d-1", "admin-1", nil))
	assert.Equal(t, payroll.DetailStatusApproved, repo.details[0].Status)

	err := svc.ApproveDetail(context.Background(), "d-2", "admin-1", nil)
	assert.ErrorIs(t, err, payroll.ErrInvalidStateTransition)
}

func TestApprovePeriodRequiresCompletion(t *testing.T) {
	repo := newFakePayrollRepo(testPeriod(payroll.PeriodStatusDraft))
	svc := newTestService(repo, nil, nil, nil, nil)

	err := svc.ApprovePeriod(context.Background(), "period-1", "admin-1", nil)
	assert.ErrorIs(t, err, payroll.ErrPeriodNotCompleted)
}

func TestApprovePeriodApprovesCalculatedDetails(t *testing.T) {
	repo := newFakePayrollRepo(testPeriod(payroll.PeriodStatusCompleted))
	repo.details = append(repo.details,
		payroll.PayrollDetail{ID: "d-1", PeriodID: "period-1", Status: payroll.DetailStatusCalculated},
		payroll.PayrollDetail{ID: "d-2", PeriodID: "period-1", Status: payroll.DetailStatusCalculated},
		payroll.PayrollDetail{ID: "d-3", PeriodID: "period-1", Status: payroll.DetailStatusCancelled},
	)
	svc := newTestService(repo, nil, nil, nil, nil)

	require.NoError(t, svc.ApprovePeriod(context.Background(), "period-1", "admin-1", nil))

	assert.Equal(t, 2, repo.bulkApproved, "only calculated details are approved")
	assert.Equal(t, []string{"period-1"}, repo.periodsApproved)
	assert.Equal(t, payroll.PeriodStatusApproved, repo.periods["period-1"].Status)
}

func TestApprovePeriodWithErrorsIsApprovable(t *testing.T) {
	repo := newFakePayrollRepo(testPeriod(payroll.PeriodStatusCompletedWithErrors))
	svc := newTestService(repo, nil, nil, nil, nil)

	require.NoError(t, svc.ApprovePeriod(context.Background(), "period-1", "admin-1", nil))
	assert.Equal(t, payroll.PeriodStatusApproved, repo.periods["period-1"].Status)
}
