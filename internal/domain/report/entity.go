package report

import "github.com/shopspring/decimal"

// ReportType enum
type ReportType string

const (
	ReportTypeSummary    ReportType = "summary"
	ReportTypeDetailed   ReportType = "detailed"
	ReportTypeDepartment ReportType = "department"
	ReportTypeTax        ReportType = "tax"
	ReportTypePF         ReportType = "pf"
	ReportTypeInsurance  ReportType = "insurance"
	ReportTypeBank       ReportType = "bank"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeSummary, ReportTypeDetailed, ReportTypeDepartment,
		ReportTypeTax, ReportTypePF, ReportTypeInsurance, ReportTypeBank:
		return true
	}
	return false
}

// SummaryRow - One employee line of the summary report.
type SummaryRow struct {
	EmployeeID      string          `json:"employee_id"`
	EmployeeCode    string          `json:"employee_code"`
	EmployeeName    string          `json:"employee_name"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}

// DepartmentRow - Totals grouped by department.
type DepartmentRow struct {
	DepartmentName  string          `json:"department_name"`
	EmployeeCount   int             `json:"employee_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
}

// TaxRow - Per-employee tax withholding line.
type TaxRow struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeCode string          `json:"employee_code"`
	EmployeeName string          `json:"employee_name"`
	TaxReference *string         `json:"tax_reference,omitempty"`
	GrossSalary  decimal.Decimal `json:"gross_salary"`
	TotalTax     decimal.Decimal `json:"total_tax"`
}

// StatutoryRow - Per-employee PF or insurance contribution line.
type StatutoryRow struct {
	EmployeeID     string          `json:"employee_id"`
	EmployeeCode   string          `json:"employee_code"`
	EmployeeName   string          `json:"employee_name"`
	EmployeeShare  decimal.Decimal `json:"employee_share"`
	EmployerShare  decimal.Decimal `json:"employer_share"`
	WageBase       decimal.Decimal `json:"wage_base"`
	DepartmentName *string         `json:"department_name,omitempty"`
}

// BankRow - Net-pay disbursement line.
type BankRow struct {
	EmployeeID        string          `json:"employee_id"`
	EmployeeName      string          `json:"employee_name"`
	BankName          *string         `json:"bank_name,omitempty"`
	BankAccountNumber *string         `json:"bank_account_number,omitempty"`
	NetSalary         decimal.Decimal `json:"net_salary"`
}
