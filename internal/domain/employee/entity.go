package employee

import "time"

type Employee struct {
	ID                string
	EmployeeCode      string
	FullName          string
	DepartmentID      *string
	DepartmentName    *string
	WorkCalendarID    *string
	BankName          *string
	BankAccountNumber *string
	TaxReference      *string
	HireDate          time.Time
	EmploymentStatus  EmploymentStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

func (e Employee) IsActive() bool {
	return e.EmploymentStatus == EmploymentStatusActive && e.DeletedAt == nil
}
