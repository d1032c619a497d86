package compensation

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentType enum
type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "earning"
	ComponentTypeDeduction ComponentType = "deduction"
	ComponentTypeBasic     ComponentType = "basic"
)

// Component - Master pay component definition
type Component struct {
	ID           string
	Code         string
	Name         string
	Type         ComponentType
	IsPercentage bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeComponent - Component assignment to one employee.
// Amount is a fixed value, or a percentage of basic when the
// component is percentage-flagged.
type EmployeeComponent struct {
	ID            string
	EmployeeID    string
	ComponentID   string
	Amount        decimal.Decimal
	EffectiveDate time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	ComponentCode string
	ComponentName string
	ComponentType ComponentType
	IsPercentage  bool
}

// ResolvedComponent - One pay component evaluated as of a date.
type ResolvedComponent struct {
	ComponentID   string
	ComponentCode string
	ComponentName string
	Type          ComponentType
	Amount        decimal.Decimal
}

// Breakdown - The result of resolving an employee's active components.
type Breakdown struct {
	Basic      decimal.Decimal
	Earnings   decimal.Decimal
	Deductions decimal.Decimal
	Components []ResolvedComponent
}
