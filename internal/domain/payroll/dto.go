package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paycore/payroll-engine-go/internal/domain/statutory"
	"github.com/paycore/payroll-engine-go/internal/pkg/validator"
)

// ========== PERIOD DTOs ==========

type CreatePeriodRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	PayDate   string `json:"pay_date"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	switch PeriodType(r.Type) {
	case PeriodTypeWeekly, PeriodTypeBiweekly, PeriodTypeMonthly, PeriodTypeQuarterly:
	default:
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be weekly, biweekly, monthly or quarterly"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.PayDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodFilter struct {
	Status *PeriodStatus
	Year   *int
	Page   int
	Limit  int
}

type PeriodResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	PayDate         string          `json:"pay_date"`
	Status          string          `json:"status"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
	EmployeeCount   int             `json:"employee_count"`
}

func ToPeriodResponse(p PayrollPeriod) PeriodResponse {
	return PeriodResponse{
		ID:              p.ID,
		Name:            p.Name,
		Type:            string(p.Type),
		StartDate:       p.StartDate.Format("2006-01-02"),
		EndDate:         p.EndDate.Format("2006-01-02"),
		PayDate:         p.PayDate.Format("2006-01-02"),
		Status:          string(p.Status),
		TotalGross:      p.TotalGross,
		TotalDeductions: p.TotalDeductions,
		TotalNet:        p.TotalNet,
		EmployeeCount:   p.EmployeeCount,
	}
}

type ListPeriodResponse struct {
	Data       []PeriodResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// ========== PROCESSING DTOs ==========

type ProcessPeriodRequest struct {
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all active employees
}

// RunResult - What ProcessPeriod returns to the caller.
type RunResult struct {
	RunID     string            `json:"run_id"`
	Status    string            `json:"status"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Errors    *BatchErrorReport `json:"errors,omitempty"`
}

// ========== APPROVAL DTOs ==========

type ApproveRequest struct {
	Comments *string `json:"comments,omitempty"`
}

// ========== DETAIL DTOs ==========

type DetailResponse struct {
	ID              string                  `json:"id"`
	PeriodID        string                  `json:"period_id"`
	RunID           string                  `json:"run_id"`
	EmployeeID      string                  `json:"employee_id"`
	EmployeeName    string                  `json:"employee_name,omitempty"`
	EmployeeCode    string                  `json:"employee_code,omitempty"`
	DepartmentName  *string                 `json:"department_name,omitempty"`
	BasicSalary     decimal.Decimal         `json:"basic_salary"`
	GrossSalary     decimal.Decimal         `json:"gross_salary"`
	TotalEarnings   decimal.Decimal         `json:"total_earnings"`
	TotalDeductions decimal.Decimal         `json:"total_deductions"`
	TotalTax        decimal.Decimal         `json:"total_tax"`
	NetSalary       decimal.Decimal         `json:"net_salary"`
	Statutory       statutory.Contributions `json:"statutory"`
	PresentDays     int                     `json:"present_days"`
	PaidLeaveDays   int                     `json:"paid_leave_days"`
	UnpaidLeaveDays int                     `json:"unpaid_leave_days"`
	WeeklyOffDays   int                     `json:"weekly_off_days"`
	HolidayDays     int                     `json:"holiday_days"`
	PayableDays     int                     `json:"payable_days"`
	WorkHours       float64                 `json:"work_hours"`
	OvertimeHours   float64                 `json:"overtime_hours"`
	RequiredHours   float64                 `json:"required_hours"`
	Status          string                  `json:"status"`
	ApprovedBy      *string                 `json:"approved_by,omitempty"`
	ApprovedAt      *string                 `json:"approved_at,omitempty"`
}

func ToDetailResponse(d PayrollDetail) DetailResponse {
	var approvedAt *string
	if d.ApprovedAt != nil {
		str := d.ApprovedAt.Format(time.RFC3339)
		approvedAt = &str
	}

	employeeName := ""
	employeeCode := ""
	if d.EmployeeName != nil {
		employeeName = *d.EmployeeName
	}
	if d.EmployeeCode != nil {
		employeeCode = *d.EmployeeCode
	}

	return DetailResponse{
		ID:              d.ID,
		PeriodID:        d.PeriodID,
		RunID:           d.RunID,
		EmployeeID:      d.EmployeeID,
		EmployeeName:    employeeName,
		EmployeeCode:    employeeCode,
		DepartmentName:  d.DepartmentName,
		BasicSalary:     d.BasicSalary,
		GrossSalary:     d.GrossSalary,
		TotalEarnings:   d.TotalEarnings,
		TotalDeductions: d.TotalDeductions,
		TotalTax:        d.TotalTax,
		NetSalary:       d.NetSalary,
		Statutory:       d.Statutory,
		PresentDays:     d.PresentDays,
		PaidLeaveDays:   d.PaidLeaveDays,
		UnpaidLeaveDays: d.UnpaidLeaveDays,
		WeeklyOffDays:   d.WeeklyOffDays,
		HolidayDays:     d.HolidayDays,
		PayableDays:     d.PayableDays,
		WorkHours:       d.WorkHours,
		OvertimeHours:   d.OvertimeHours,
		RequiredHours:   d.RequiredHours,
		Status:          string(d.Status),
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      approvedAt,
	}
}
