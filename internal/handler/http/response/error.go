package response

import (
	"errors"
	"net/http"

	"github.com/paycore/payroll-engine-go/internal/domain/attendance"
	"github.com/paycore/payroll-engine-go/internal/domain/compensation"
	"github.com/paycore/payroll-engine-go/internal/domain/employee"
	"github.com/paycore/payroll-engine-go/internal/domain/payroll"
	"github.com/paycore/payroll-engine-go/internal/domain/report"
	"github.com/paycore/payroll-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrPeriodAlreadyExists):
		Conflict(w, "Payroll period already exists for these dates")
	case errors.Is(err, payroll.ErrPeriodNotProcessable):
		Conflict(w, "Payroll period is not in a processable status")
	case errors.Is(err, payroll.ErrPeriodNotCompleted):
		Conflict(w, "Payroll period has not completed processing")
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrDetailNotFound):
		NotFound(w, "Payroll detail not found")
	case errors.Is(err, payroll.ErrDetailAlreadyExists):
		Conflict(w, "Payroll detail already exists for this employee and period")
	case errors.Is(err, payroll.ErrInvalidStateTransition):
		Conflict(w, "Invalid status transition")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSummaryNotFound):
		NotFound(w, "Attendance summary not found")

	// Compensation domain errors
	case errors.Is(err, compensation.ErrNoActiveCompensation):
		BadRequest(w, "Employee has no active compensation", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Report domain errors
	case errors.Is(err, report.ErrUnknownReportType):
		BadRequest(w, "Unknown report type", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
