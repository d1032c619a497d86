package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/paycore/payroll-engine-go/internal/domain/attendance"
	"github.com/paycore/payroll-engine-go/internal/domain/employee"
	"github.com/paycore/payroll-engine-go/internal/domain/leave"
	"github.com/paycore/payroll-engine-go/internal/domain/schedule"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	summaryRepo    attendance.SummaryRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRepository
	calendarRepo   schedule.CalendarRepository
	logger         *slog.Logger
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	summaryRepo attendance.SummaryRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	calendarRepo schedule.CalendarRepository,
	logger *slog.Logger,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		summaryRepo:    summaryRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		calendarRepo:   calendarRepo,
		logger:         logger,
	}
}

// periodBounds returns the first and last calendar day of the month.
func periodBounds(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}

// Aggregate implements attendance.AttendanceService. One employee's bad
// data degrades that employee's affected sub-totals to zero; it never
// aborts the aggregation.
func (s *AttendanceServiceImpl) Aggregate(ctx context.Context, month, year int) (map[string]attendance.Metrics, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	from, to := periodBounds(month, year)

	// Leave-type policy is loaded once. When the lookup fails we fall
	// back to the literal type-name split.
	paidByType := s.loadLeavePolicy(ctx)

	result := make(map[string]attendance.Metrics, len(employees))
	for _, emp := range employees {
		result[emp.ID] = s.aggregateEmployee(ctx, emp, from, to, paidByType)
	}

	return result, nil
}

func (s *AttendanceServiceImpl) loadLeavePolicy(ctx context.Context) map[string]bool {
	types, err := s.leaveRepo.ListTypes(ctx)
	if err != nil {
		s.logger.Warn("leave policy lookup failed, falling back to type-name split", "error", err)
		return nil
	}
	paidByType := make(map[string]bool, len(types))
	for _, t := range types {
		paidByType[t.ID] = t.IsPaid
	}
	return paidByType
}

func (s *AttendanceServiceImpl) aggregateEmployee(
	ctx context.Context,
	emp employee.Employee,
	from, to time.Time,
	paidByType map[string]bool,
) attendance.Metrics {
	var m attendance.Metrics

	// Step 1: shift duration from the employee's calendar.
	var cal *schedule.WorkCalendar
	if emp.WorkCalendarID != nil {
		c, err := s.calendarRepo.GetByID(ctx, *emp.WorkCalendarID)
		if err != nil {
			s.logger.Warn("calendar lookup failed, using default shift",
				"employee_id", emp.ID, "calendar_id", *emp.WorkCalendarID, "error", err)
		} else {
			cal = &c
		}
	}
	m.ShiftHours = schedule.DefaultShiftHours
	if cal != nil {
		m.ShiftHours = cal.ShiftHours()
	}

	// Step 2: raw attendance sums. Failure defaults every aggregate to
	// zero, non-fatal.
	totals, err := s.attendanceRepo.SumForPeriod(ctx, emp.ID, from, to)
	if err != nil {
		s.logger.Warn("attendance sum failed, defaulting to zero",
			"employee_id", emp.ID, "error", err)
		totals = attendance.Totals{}
	}
	m.PresentDays = totals.PresentDays
	m.WorkHours = totals.WorkHours
	m.OvertimeHours = totals.OvertimeHours
	m.LateMinutes = totals.LateMinutes

	// Step 3: approved leave overlapping the period, split paid/unpaid.
	leaves, err := s.leaveRepo.ListApprovedOverlapping(ctx, emp.ID, from, to)
	if err != nil {
		s.logger.Warn("leave lookup failed, defaulting to zero",
			"employee_id", emp.ID, "error", err)
		leaves = nil
	}
	for _, rec := range leaves {
		days := rec.DaysWithin(from, to)
		if days <= 0 {
			continue
		}
		if s.isPaidLeave(rec, paidByType) {
			m.PaidLeaveDays += days
		} else {
			m.UnpaidLeaveDays += days
		}
	}

	// Steps 4 and 5: weekly-off and holiday days need a calendar.
	if cal != nil {
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if cal.IsWeeklyOff(d) {
				m.WeeklyOffDays++
			}
		}

		holidays, err := s.calendarRepo.GetHolidays(ctx, cal.ID, from, to)
		if err != nil {
			s.logger.Warn("holiday lookup failed, defaulting to zero",
				"employee_id", emp.ID, "calendar_id", cal.ID, "error", err)
			holidays = nil
		}
		for _, h := range holidays {
			if h.IsActive {
				m.HolidayDays++
			}
		}
	}

	// Step 6: derived fields, in one place.
	return materialize(m)
}

func (s *AttendanceServiceImpl) isPaidLeave(rec leave.LeaveRecord, paidByType map[string]bool) bool {
	if paidByType != nil {
		if paid, ok := paidByType[rec.LeaveTypeID]; ok {
			return paid
		}
	}
	return !leave.IsUnpaidByName(rec.LeaveTypeName)
}

// materialize fills every derived field from the primitive counts.
// Applied exactly once per employee so defaulting rules live in one
// place instead of scattered nil-coalescing.
func materialize(m attendance.Metrics) attendance.Metrics {
	if m.ShiftHours <= 0 {
		m.ShiftHours = schedule.DefaultShiftHours
	}
	m.WeeklyOffHours = float64(m.WeeklyOffDays) * m.ShiftHours
	m.HolidayHours = float64(m.HolidayDays) * m.ShiftHours
	m.PaidLeaveHours = float64(m.PaidLeaveDays) * m.ShiftHours
	m.TotalHours = m.WorkHours + m.OvertimeHours
	m.PayableDays = m.PresentDays + m.PaidLeaveDays
	m.RequiredHours = float64(m.PresentDays+m.PaidLeaveDays+m.WeeklyOffDays+m.HolidayDays) * m.ShiftHours
	return m
}

// Recompute implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Recompute(ctx context.Context, month, year int) error {
	req := attendance.RecomputeRequest{Month: month, Year: year}
	if err := req.Validate(); err != nil {
		return err
	}

	metrics, err := s.Aggregate(ctx, month, year)
	if err != nil {
		return err
	}

	var inserted, updated int
	for employeeID, m := range metrics {
		wasInserted, err := s.summaryRepo.UpsertBase(ctx, year, month, employeeID, m)
		if err != nil {
			return fmt.Errorf("failed to upsert attendance summary for employee %s: %w", employeeID, err)
		}
		if wasInserted {
			inserted++
		} else {
			updated++
		}
	}

	s.logger.Info("attendance recompute finished",
		"month", month, "year", year, "inserted", inserted, "updated", updated)
	return nil
}

// UpsertFinal implements attendance.AttendanceService. Base values are
// written only when the caller supplies them; they are never recomputed
// here.
func (s *AttendanceServiceImpl) UpsertFinal(ctx context.Context, req attendance.UpsertFinalRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	// Values are written exactly as supplied; this path is the caller's
	// override, not a recomputation.
	return s.summaryRepo.UpsertFinal(ctx, req.Year, req.Month, req.EmployeeID, req.Final, req.Base)
}

// ListSummaries implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListSummaries(ctx context.Context, month, year int) ([]attendance.SummaryResponse, error) {
	req := attendance.RecomputeRequest{Month: month, Year: year}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	summaries, err := s.summaryRepo.ListByPeriod(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance summaries: %w", err)
	}

	result := make([]attendance.SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, attendance.ToSummaryResponse(s))
	}
	return result, nil
}
