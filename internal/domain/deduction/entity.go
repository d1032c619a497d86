package deduction

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionKind enum
type DeductionKind string

const (
	DeductionKindAdvance DeductionKind = "advance"
	DeductionKindLoan    DeductionKind = "loan"
	DeductionKindOther   DeductionKind = "other"
)

// StandingDeduction - A recurring manual deduction against an employee's
// pay: a fixed monthly installment, or a percentage of gross when
// IsPercentage is set.
type StandingDeduction struct {
	ID                 string
	EmployeeID         string
	Kind               DeductionKind
	Name               string
	MonthlyInstallment decimal.Decimal
	IsPercentage       bool
	StartDate          time.Time
	EndDate            *time.Time
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AmountFor evaluates the deduction against the given gross pay.
func (d StandingDeduction) AmountFor(gross decimal.Decimal) decimal.Decimal {
	if d.IsPercentage {
		return gross.Mul(d.MonthlyInstallment).Div(decimal.NewFromInt(100))
	}
	return d.MonthlyInstallment
}
