package attendance

import "time"

// AttendanceRecord - One raw daily attendance row.
type AttendanceRecord struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	Present       bool
	WorkHours     float64
	OvertimeHours float64
	LateMinutes   int
	CreatedAt     time.Time
}

// Totals - Sums over the raw attendance rows of one employee in a period.
type Totals struct {
	PresentDays   int
	WorkHours     float64
	OvertimeHours float64
	LateMinutes   int
}

// Metrics - The summary figures kept per (year, month, employee). The
// same shape backs both field families on Summary: the recomputed base
// values and the manually approved final values.
type Metrics struct {
	ShiftHours      float64 `json:"shift_hours"`
	PresentDays     int     `json:"present_days"`
	PaidLeaveDays   int     `json:"paid_leave_days"`
	UnpaidLeaveDays int     `json:"unpaid_leave_days"`
	WeeklyOffDays   int     `json:"weekly_off_days"`
	HolidayDays     int     `json:"holiday_days"`
	WorkHours       float64 `json:"work_hours"`
	OvertimeHours   float64 `json:"overtime_hours"`
	TotalHours      float64 `json:"total_hours"`
	WeeklyOffHours  float64 `json:"weekly_off_hours"`
	HolidayHours    float64 `json:"holiday_hours"`
	PaidLeaveHours  float64 `json:"paid_leave_hours"`
	RequiredHours   float64 `json:"required_hours"`
	LateMinutes     int     `json:"late_minutes"`
	PayableDays     int     `json:"payable_days"`
}

// Summary - Monthly attendance summary for one employee. Base reflects
// the latest aggregation run; Final reflects the latest human approval
// of those numbers. The two families may legitimately diverge.
type Summary struct {
	ID          string
	EmployeeID  string
	PeriodYear  int
	PeriodMonth int
	Base        Metrics
	Final       Metrics
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName string
	EmployeeCode string
}
