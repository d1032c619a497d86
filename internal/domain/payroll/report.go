package payroll

// ErrorCategory - Fixed taxonomy for per-employee processing failures.
type ErrorCategory string

const (
	CategoryDateFormat           ErrorCategory = "date-format"
	CategoryMissingCompensation  ErrorCategory = "missing-compensation"
	CategoryMissingReferenceData ErrorCategory = "missing-reference-data"
	CategoryNullRequiredField    ErrorCategory = "null-required-field"
	CategoryCalculationError     ErrorCategory = "calculation-error"
	CategoryAttendanceDataIssue  ErrorCategory = "attendance-data-issue"
	CategoryGeneral              ErrorCategory = "general"
)

// ErrorRecord - One classified per-employee failure. Lives only inside a
// run's error report, never as its own persisted entity. RawMessage is
// kept untouched next to the translated fields.
type ErrorRecord struct {
	EmployeeID        string        `json:"employee_id"`
	EmployeeName      string        `json:"employee_name"`
	RawMessage        string        `json:"raw_message"`
	Category          ErrorCategory `json:"category"`
	Title             string        `json:"title"`
	Message           string        `json:"message"`
	RemediationFields []string      `json:"remediation_fields,omitempty"`
	Example           string        `json:"example,omitempty"`
}

// CategoryGroup - Errors of one category, aggregated.
type CategoryGroup struct {
	Category  ErrorCategory `json:"category"`
	Title     string        `json:"title"`
	Count     int           `json:"count"`
	Employees []string      `json:"employees"`
}

// BatchErrorReport - The structured error payload stored on a run.
type BatchErrorReport struct {
	Total   int             `json:"total"`
	Groups  []CategoryGroup `json:"groups"`
	Summary string          `json:"summary"`
	Errors  []ErrorRecord   `json:"errors"`
}
