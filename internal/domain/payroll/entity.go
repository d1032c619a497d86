package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paycore/payroll-engine-go/internal/domain/statutory"
)

// PeriodType enum
type PeriodType string

const (
	PeriodTypeWeekly    PeriodType = "weekly"
	PeriodTypeBiweekly  PeriodType = "biweekly"
	PeriodTypeMonthly   PeriodType = "monthly"
	PeriodTypeQuarterly PeriodType = "quarterly"
)

// PayrollPeriod - One payroll cycle. Unique per (start_date, end_date).
type PayrollPeriod struct {
	ID              string
	Name            string
	Type            PeriodType
	StartDate       time.Time
	EndDate         time.Time
	PayDate         time.Time
	Status          PeriodStatus
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
	EmployeeCount   int
	ApprovedBy      *string
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RunType enum
type RunType string

const (
	RunTypeFull       RunType = "full"
	RunTypePartial    RunType = "partial"
	RunTypeCorrection RunType = "correction"
)

// PayrollRun - One execution attempt of processing a period. Immutable
// once it reaches a terminal status.
type PayrollRun struct {
	ID             string
	PeriodID       string
	Type           RunType
	Status         RunStatus
	ProcessedCount int
	FailedCount    int
	ErrorReport    *BatchErrorReport // serialized to JSON at the persistence boundary
	StartedAt      time.Time
	FinishedAt     *time.Time
}

// PayrollDetail - Computed payroll for one employee in one period.
// Unique per (employee_id, period_id), enforced by the store.
type PayrollDetail struct {
	ID       string
	PeriodID string
	RunID    string

	EmployeeID string

	BasicSalary     decimal.Decimal
	GrossSalary     decimal.Decimal
	TotalEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalTax        decimal.Decimal
	NetSalary       decimal.Decimal

	Statutory statutory.Contributions

	PresentDays     int
	PaidLeaveDays   int
	UnpaidLeaveDays int
	WeeklyOffDays   int
	HolidayDays     int
	PayableDays     int
	WorkHours       float64
	OvertimeHours   float64
	RequiredHours   float64

	Status           DetailStatus
	ApprovedBy       *string
	ApprovedAt       *time.Time
	ApprovalComments *string
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName   *string
	EmployeeCode   *string
	DepartmentName *string
}

// EarningLine - One earning breakdown row, append-only per calculation.
type EarningLine struct {
	ID       string
	DetailID string
	Code     string
	Name     string
	Amount   decimal.Decimal
}

// DeductionLine - One deduction breakdown row, append-only per calculation.
type DeductionLine struct {
	ID       string
	DetailID string
	Code     string
	Name     string
	Amount   decimal.Decimal
}

// Statistics - Aggregate figures for one period.
type Statistics struct {
	PeriodID        string          `json:"period_id"`
	DetailCount     int             `json:"detail_count"`
	CalculatedCount int             `json:"calculated_count"`
	ApprovedCount   int             `json:"approved_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
	TotalEmployeePF decimal.Decimal `json:"total_employee_pf"`
	TotalEmployerPF decimal.Decimal `json:"total_employer_pf"`
}
