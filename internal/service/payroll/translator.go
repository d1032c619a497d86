package payroll

import (
	"fmt"
	"strings"

	"github.com/paycore/payroll-engine-go/internal/domain/payroll"
)

// ErrorTranslator classifies raw per-employee failure messages into the
// fixed remediation taxonomy. Matching is substring based; whatever does
// not match falls back to the general category.
type ErrorTranslator struct {
}

func NewErrorTranslator() *ErrorTranslator {
	return &ErrorTranslator{}
}

type categoryRule struct {
	category          payroll.ErrorCategory
	patterns          []string
	title             string
	message           string
	remediationFields []string
	example           string
}

// Rules are checked in order; the first whose pattern appears in the raw
// message wins.
var categoryRules = []categoryRule{
	{
		category:          payroll.CategoryMissingCompensation,
		patterns:          []string{"no active compensation", "no base salary", "compensation components"},
		title:             "Missing compensation setup",
		message:           "%s has no active salary components for this period.",
		remediationFields: []string{"basic salary component", "effective date", "end date"},
		example:           "Assign a BASIC component effective before the period start, e.g. effective 2024-01-01.",
	},
	{
		category:          payroll.CategoryDateFormat,
		patterns:          []string{"parsing time", "cannot parse", "invalid date", "date format"},
		title:             "Invalid date value",
		message:           "A date for %s could not be read.",
		remediationFields: []string{"effective date", "start date", "end date"},
		example:           "Dates must look like 2024-01-31.",
	},
	{
		category:          payroll.CategoryAttendanceDataIssue,
		patterns:          []string{"attendance summary", "attendance data", "no attendance"},
		title:             "Attendance data issue",
		message:           "Attendance figures for %s are missing or inconsistent.",
		remediationFields: []string{"attendance summary", "present days", "work hours"},
		example:           "Recompute the month's attendance, then re-run the period.",
	},
	{
		category:          payroll.CategoryMissingReferenceData,
		patterns:          []string{"not found", "no rows", "missing reference"},
		title:             "Missing reference data",
		message:           "A referenced record for %s does not exist.",
		remediationFields: []string{"work calendar", "leave type", "department"},
		example:           "Check that the employee's calendar and leave types are configured.",
	},
	{
		category:          payroll.CategoryNullRequiredField,
		patterns:          []string{"null value", "nil pointer", "required field", "is required", "violates not-null"},
		title:             "Required field is empty",
		message:           "A required field for %s has no value.",
		remediationFields: []string{"employee code", "bank account", "hire date"},
		example:           "Fill in the flagged field on the employee record.",
	},
	{
		category:          payroll.CategoryCalculationError,
		patterns:          []string{"division by zero", "divide by zero", "overflow", "calculation"},
		title:             "Calculation error",
		message:           "The pay calculation for %s produced an invalid result.",
		remediationFields: []string{"component amounts", "percentage values", "statutory rates"},
		example:           "Check for zero or negative amounts on percentage components.",
	},
}

// Translate classifies one raw failure message.
func (t *ErrorTranslator) Translate(rawMessage, employeeID, employeeName string) payroll.ErrorRecord {
	lower := strings.ToLower(rawMessage)

	for _, rule := range categoryRules {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return payroll.ErrorRecord{
					EmployeeID:        employeeID,
					EmployeeName:      employeeName,
					RawMessage:        rawMessage,
					Category:          rule.category,
					Title:             rule.title,
					Message:           fmt.Sprintf(rule.message, displayName(employeeID, employeeName)),
					RemediationFields: rule.remediationFields,
					Example:           rule.example,
				}
			}
		}
	}

	return payroll.ErrorRecord{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		RawMessage:   rawMessage,
		Category:     payroll.CategoryGeneral,
		Title:        "Processing failed",
		Message:      fmt.Sprintf("Processing failed for %s.", displayName(employeeID, employeeName)),
		Example:      "Review the technical detail and correct the underlying data.",
	}
}

func displayName(employeeID, employeeName string) string {
	if employeeName != "" {
		return employeeName
	}
	return "employee " + employeeID
}

// Summarize groups classified errors by category and renders one
// combined human-readable report. The per-error technical detail stays
// untouched alongside.
func (t *ErrorTranslator) Summarize(errors []payroll.ErrorRecord) payroll.BatchErrorReport {
	groupIndex := make(map[payroll.ErrorCategory]int)
	var groups []payroll.CategoryGroup

	for _, e := range errors {
		idx, ok := groupIndex[e.Category]
		if !ok {
			idx = len(groups)
			groupIndex[e.Category] = idx
			groups = append(groups, payroll.CategoryGroup{
				Category: e.Category,
				Title:    e.Title,
			})
		}
		groups[idx].Count++
		groups[idx].Employees = append(groups[idx].Employees, displayName(e.EmployeeID, e.EmployeeName))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d employee(s) failed processing.\n", len(errors))
	for _, g := range groups {
		fmt.Fprintf(&b, "- %s (%d): %s\n", g.Title, g.Count, strings.Join(g.Employees, ", "))
	}

	return payroll.BatchErrorReport{
		Total:   len(errors),
		Groups:  groups,
		Summary: strings.TrimRight(b.String(), "\n"),
		Errors:  errors,
	}
}
