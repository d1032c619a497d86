package attendance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycore/payroll-engine-go/internal/domain/attendance"
	"github.com/paycore/payroll-engine-go/internal/domain/employee"
	"github.com/paycore/payroll-engine-go/internal/domain/leave"
	"github.com/paycore/payroll-engine-go/internal/domain/schedule"
)

// ========== FAKES ==========

type fakeEmployeeRepo struct {
	active []employee.Employee
	err    error
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
	return f.active, f.err
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, f.err
}

type fakeAttendanceRepo struct {
	totals map[string]attendance.Totals
	err    error
}

func (f *fakeAttendanceRepo) SumForPeriod(ctx context.Context, employeeID string, from, to time.Time) (attendance.Totals, error) {
	if f.err != nil {
		return attendance.Totals{}, f.err
	}
	return f.totals[employeeID], nil
}

type fakeLeaveRepo struct {
	records  map[string][]leave.LeaveRecord
	types    []leave.LeaveType
	typesErr error
	err      error
}

func (f *fakeLeaveRepo) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[employeeID], nil
}

func (f *fakeLeaveRepo) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return f.types, f.typesErr
}

type fakeCalendarRepo struct {
	calendars map[string]schedule.WorkCalendar
	holidays  []schedule.Holiday
	holErr    error
}

func (f *fakeCalendarRepo) GetByID(ctx context.Context, id string) (schedule.WorkCalendar, error) {
	c, ok := f.calendars[id]
	if !ok {
		return schedule.WorkCalendar{}, schedule.ErrCalendarNotFound
	}
	return c, nil
}

func (f *fakeCalendarRepo) GetHolidays(ctx context.Context, calendarID string, from, to time.Time) ([]schedule.Holiday, error) {
	return f.holidays, f.holErr
}

type upsertBaseCall struct {
	year, month int
	employeeID  string
	base        attendance.Metrics
}

type upsertFinalCall struct {
	year, month int
	employeeID  string
	final       attendance.Metrics
	base        *attendance.Metrics
}

type fakeSummaryRepo struct {
	existing    map[string]bool // employeeID -> row already present
	baseCalls   []upsertBaseCall
	finalCalls  []upsertFinalCall
	summaries   []attendance.Summary
	upsertErr   error
}

func (f *fakeSummaryRepo) UpsertBase(ctx context.Context, year, month int, employeeID string, base attendance.Metrics) (bool, error) {
	if f.upsertErr != nil {
		return false, f.upsertErr
	}
	f.baseCalls = append(f.baseCalls, upsertBaseCall{year, month, employeeID, base})
	return !f.existing[employeeID], nil
}

func (f *fakeSummaryRepo) UpsertFinal(ctx context.Context, year, month int, employeeID string, final attendance.Metrics, base *attendance.Metrics) error {
	f.finalCalls = append(f.finalCalls, upsertFinalCall{year, month, employeeID, final, base})
	return nil
}

func (f *fakeSummaryRepo) GetByEmployeePeriod(ctx context.Context, year, month int, employeeID string) (attendance.Summary, error) {
	for _, s := range f.summaries {
		if s.EmployeeID == employeeID && s.PeriodYear == year && s.PeriodMonth == month {
			return s, nil
		}
	}
	return attendance.Summary{}, attendance.ErrSummaryNotFound
}

func (f *fakeSummaryRepo) ListByPeriod(ctx context.Context, year, month int) ([]attendance.Summary, error) {
	return f.summaries, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func calID(s string) *string { return &s }

// ========== AGGREGATE ==========

func TestAggregateFullMonth(t *testing.T) {
	// March 2024: five Sundays (3, 10, 17, 24, 31).
	shiftStart, shiftEnd := "09:00", "17:00"
	svc := NewAttendanceService(
		&fakeAttendanceRepo{totals: map[string]attendance.Totals{
			"emp-1": {PresentDays: 20, WorkHours: 160, OvertimeHours: 5, LateMinutes: 30},
		}},
		&fakeSummaryRepo{},
		&fakeEmployeeRepo{active: []employee.Employee{
			{ID: "emp-1", WorkCalendarID: calID("cal-1")},
		}},
		&fakeLeaveRepo{
			types: []leave.LeaveType{
				{ID: "lt-paid", Name: "Annual", IsPaid: true},
				{ID: "lt-unpaid", Name: "Unpaid", IsPaid: false},
			},
			records: map[string][]leave.LeaveRecord{
				"emp-1": {
					{LeaveTypeID: "lt-paid", StartDate: day(2024, 3, 5), EndDate: day(2024, 3, 5)},
					{LeaveTypeID: "lt-unpaid", StartDate: day(2024, 3, 11), EndDate: day(2024, 3, 12)},
				},
			},
		},
		&fakeCalendarRepo{
			calendars: map[string]schedule.WorkCalendar{
				"cal-1": {ID: "cal-1", ShiftStart: &shiftStart, ShiftEnd: &shiftEnd, WeeklyOffDays: []string{"0"}},
			},
			holidays: []schedule.Holiday{
				{ID: "h1", IsActive: true, Date: day(2024, 3, 25)},
				{ID: "h2", IsActive: false, Date: day(2024, 3, 26)},
			},
		},
		testLogger(),
	)

	result, err := svc.Aggregate(context.Background(), 3, 2024)
	require.NoError(t, err)
	require.Contains(t, result, "emp-1")

	m := result["emp-1"]
	assert.Equal(t, 8.0, m.ShiftHours)
	assert.Equal(t, 20, m.PresentDays)
	assert.Equal(t, 1, m.PaidLeaveDays)
	assert.Equal(t, 2, m.UnpaidLeaveDays)
	assert.Equal(t, 5, m.WeeklyOffDays)
	assert.Equal(t, 1, m.HolidayDays, "inactive holidays are skipped")
	assert.Equal(t, 160.0, m.WorkHours)
	assert.Equal(t, 5.0, m.OvertimeHours)
	assert.Equal(t, 165.0, m.TotalHours)
	assert.Equal(t, 30, m.LateMinutes)
	assert.Equal(t, 40.0, m.WeeklyOffHours)
	assert.Equal(t, 8.0, m.HolidayHours)
	assert.Equal(t, 8.0, m.PaidLeaveHours)
	assert.Equal(t, 21, m.PayableDays)
	// (20 present + 1 paid leave + 5 weekly off + 1 holiday) * 8
	assert.Equal(t, 216.0, m.RequiredHours)
}

func TestAggregateNoData(t *testing.T) {
	svc := NewAttendanceService(
		&fakeAttendanceRepo{},
		&fakeSummaryRepo{},
		&fakeEmployeeRepo{active: []employee.Employee{{ID: "emp-1"}}},
		&fakeLeaveRepo{},
		&fakeCalendarRepo{},
		testLogger(),
	)

	result, err := svc.Aggregate(context.Background(), 2, 2024)
	require.NoError(t, err)

	m := result["emp-1"]
	assert.Equal(t, schedule.DefaultShiftHours, m.ShiftHours)
	assert.Zero(t, m.PresentDays)
	assert.Zero(t, m.WeeklyOffDays)
	assert.Zero(t, m.PayableDays)
	assert.Zero(t, m.RequiredHours)
}

func TestAggregateDegradesOnRepoErrors(t *testing.T) {
	// Every sub-lookup fails; the employee still gets a zeroed metrics
	// row instead of aborting the month.
	svc := NewAttendanceService(
		&fakeAttendanceRepo{err: errors.New("attendance table gone")},
		&fakeSummaryRepo{},
		&fakeEmployeeRepo{active: []employee.Employee{
			{ID: "emp-1", WorkCalendarID: calID("missing-cal")},
		}},
		&fakeLeaveRepo{err: errors.New("leave lookup failed"), typesErr: errors.New("types failed")},
		&fakeCalendarRepo{},
		testLogger(),
	)

	result, err := svc.Aggregate(context.Background(), 3, 2024)
	require.NoError(t, err)

	m := result["emp-1"]
	assert.Equal(t, schedule.DefaultShiftHours, m.ShiftHours, "missing calendar falls back to default shift")
	assert.Zero(t, m.PresentDays)
	assert.Zero(t, m.PaidLeaveDays)
	assert.Zero(t, m.WeeklyOffDays, "no calendar means no weekly-off count")
}

func TestAggregateLeaveNameFallback(t *testing.T) {
	// No leave-type policy available: the split falls back to the type
	// name, where only a type literally named "unpaid" is unpaid.
	svc := NewAttendanceService(
		&fakeAttendanceRepo{},
		&fakeSummaryRepo{},
		&fakeEmployeeRepo{active: []employee.Employee{{ID: "emp-1"}}},
		&fakeLeaveRepo{
			typesErr: errors.New("policy unavailable"),
			records: map[string][]leave.LeaveRecord{
				"emp-1": {
					{LeaveTypeID: "x", LeaveTypeName: "Sick", StartDate: day(2024, 3, 5), EndDate: day(2024, 3, 6)},
					{LeaveTypeID: "y", LeaveTypeName: "Unpaid", StartDate: day(2024, 3, 7), EndDate: day(2024, 3, 7)},
				},
			},
		},
		&fakeCalendarRepo{},
		testLogger(),
	)

	result, err := svc.Aggregate(context.Background(), 3, 2024)
	require.NoError(t, err)

	m := result["emp-1"]
	assert.Equal(t, 2, m.PaidLeaveDays)
	assert.Equal(t, 1, m.UnpaidLeaveDays)
}

func TestAggregateInvalidMonth(t *testing.T) {
	svc := NewAttendanceService(
		&fakeAttendanceRepo{},
		&fakeSummaryRepo{},
		&fakeEmployeeRepo{},
		&fakeLeaveRepo{},
		&fakeCalendarRepo{},
		testLogger(),
	)

	_, err := svc.Aggregate(context.Background(), 13, 2024)
	assert.Error(t, err)
}

// ========== RECOMPUTE ==========

func TestRecomputeUpsertsBaseOnly(t *testing.T) {
	summaryRepo := &fakeSummaryRepo{existing: map[string]bool{"emp-2": true}}
	svc := NewAttendanceService(
		&fakeAttendanceRepo{totals: map[string]attendance.Totals{
			"emp-1": {PresentDays: 10, WorkHours: 80},
			"emp-2": {PresentDays: 12, WorkHours: 96},
		}},
		summaryRepo,
		&fakeEmployeeRepo{active: []employee.Employee{{ID: "emp-1"}, {ID: "emp-2"}}},
		&fakeLeaveRepo{},
		&fakeCalendarRepo{},
		testLogger(),
	)

	err := svc.Recompute(context.Background(), 3, 2024)
	require.NoError(t, err)

	require.Len(t, summaryRepo.baseCalls, 2)
	for _, call := range summaryRepo.baseCalls {
		assert.Equal(t, 2024, call.year)
		assert.Equal(t, 3, call.month)
	}
	assert.Empty(t, summaryRepo.finalCalls, "recompute never touches final columns")
}

func TestRecomputeValidatesPeriod(t *testing.T) {
	svc := NewAttendanceService(
		&fakeAttendanceRepo{},
		&fakeSummaryRepo{},
		&fakeEmployeeRepo{},
		&fakeLeaveRepo{},
		&fakeCalendarRepo{},
		testLogger(),
	)

	assert.Error(t, svc.Recompute(context.Background(), 0, 2024))
	assert.Error(t, svc.Recompute(context.Background(), 3, 1999))
}

// ========== UPSERT FINAL ==========

func TestUpsertFinalWritesVerbatim(t *testing.T) {
	summaryRepo := &fakeSummaryRepo{}
	svc := NewAttendanceService(
		&fakeAttendanceRepo{},
		summaryRepo,
		&fakeEmployeeRepo{},
		&fakeLeaveRepo{},
		&fakeCalendarRepo{},
		testLogger(),
	)

	// Deliberately inconsistent derived fields: the service must not
	// recompute or correct them.
	final := attendance.Metrics{PresentDays: 22, RequiredHours: 1, PayableDays: 99}
	err := svc.UpsertFinal(context.Background(), attendance.UpsertFinalRequest{
		Month: 3, Year: 2024, EmployeeID: "emp-1", Final: final,
	})
	require.NoError(t, err)

	require.Len(t, summaryRepo.finalCalls, 1)
	call := summaryRepo.finalCalls[0]
	assert.Equal(t, final, call.final)
	assert.Nil(t, call.base)
	assert.Empty(t, summaryRepo.baseCalls)
}

func TestUpsertFinalValidates(t *testing.T) {
	svc := NewAttendanceService(
		&fakeAttendanceRepo{},
		&fakeSummaryRepo{},
		&fakeEmployeeRepo{},
		&fakeLeaveRepo{},
		&fakeCalendarRepo{},
		testLogger(),
	)

	err := svc.UpsertFinal(context.Background(), attendance.UpsertFinalRequest{Month: 3, Year: 2024})
	assert.Error(t, err, "employee_id is required")
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
