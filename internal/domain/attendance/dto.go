package attendance

import (
	"github.com/paycore/payroll-engine-go/internal/pkg/validator"
)

type RecomputeRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *RecomputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertFinalRequest struct {
	Month      int      `json:"month"`
	Year       int      `json:"year"`
	EmployeeID string   `json:"employee_id"`
	Final      Metrics  `json:"final"`
	Base       *Metrics `json:"base,omitempty"`
}

func (r *UpsertFinalRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SummaryResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	EmployeeCode string  `json:"employee_code,omitempty"`
	PeriodYear   int     `json:"period_year"`
	PeriodMonth  int     `json:"period_month"`
	Base         Metrics `json:"base"`
	Final        Metrics `json:"final"`
}

func ToSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		EmployeeCode: s.EmployeeCode,
		PeriodYear:   s.PeriodYear,
		PeriodMonth:  s.PeriodMonth,
		Base:         s.Base,
		Final:        s.Final,
	}
}
