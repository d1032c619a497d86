package compensation

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paycore/payroll-engine-go/internal/domain/compensation"
	"github.com/paycore/payroll-engine-go/internal/pkg/validator"
)

// Resolver turns an employee's active pay components as of a date into
// basic, earnings and deductions.
type Resolver struct {
	compensationRepo compensation.CompensationRepository
	basicCodes       []string
}

// NewResolver builds a resolver. basicCodes identify which component
// codes count as base pay; empty falls back to {BASIC}.
func NewResolver(compensationRepo compensation.CompensationRepository, basicCodes []string) *Resolver {
	if len(basicCodes) == 0 {
		basicCodes = []string{"BASIC"}
	}
	return &Resolver{
		compensationRepo: compensationRepo,
		basicCodes:       basicCodes,
	}
}

func (r *Resolver) isBasic(c compensation.EmployeeComponent) bool {
	if c.ComponentType == compensation.ComponentTypeBasic {
		return true
	}
	return validator.IsInSlice(c.ComponentCode, r.basicCodes)
}

// Resolve evaluates the employee's components effective at asOf.
// Percentage-flagged components evaluate against the resolved basic.
// A percentage-flagged basic component keeps its stored amount as-is;
// see the resolver notes in DESIGN.md before changing that.
func (r *Resolver) Resolve(ctx context.Context, employeeID string, asOf time.Time) (compensation.Breakdown, error) {
	components, err := r.compensationRepo.GetActiveByEmployee(ctx, employeeID, asOf)
	if err != nil {
		return compensation.Breakdown{}, fmt.Errorf("failed to get compensation components: %w", err)
	}
	if len(components) == 0 {
		return compensation.Breakdown{}, compensation.ErrNoActiveCompensation
	}

	// Basic first: the first basic-marked component wins, everything
	// percentage-flagged depends on it.
	basic := decimal.Zero
	for _, c := range components {
		if r.isBasic(c) {
			basic = c.Amount
			break
		}
	}

	earnings := decimal.Zero
	deductions := decimal.Zero
	resolved := make([]compensation.ResolvedComponent, 0, len(components))

	for _, c := range components {
		amount := c.Amount
		isBasic := r.isBasic(c)
		if c.IsPercentage && !isBasic {
			amount = basic.Mul(c.Amount).Div(decimal.NewFromInt(100))
		}

		componentType := c.ComponentType
		if isBasic {
			componentType = compensation.ComponentTypeBasic
		}

		resolved = append(resolved, compensation.ResolvedComponent{
			ComponentID:   c.ComponentID,
			ComponentCode: c.ComponentCode,
			ComponentName: c.ComponentName,
			Type:          componentType,
			Amount:        amount,
		})

		switch componentType {
		case compensation.ComponentTypeBasic:
			// Counted via basic, not earnings.
		case compensation.ComponentTypeDeduction:
			deductions = deductions.Add(amount)
		default:
			earnings = earnings.Add(amount)
		}
	}

	return compensation.Breakdown{
		Basic:      basic,
		Earnings:   earnings,
		Deductions: deductions,
		Components: resolved,
	}, nil
}
