package statutory

import (
	"github.com/shopspring/decimal"

	"github.com/paycore/payroll-engine-go/internal/domain/statutory"
)

// Calculator computes employee- and employer-side statutory
// contributions. It holds no state and performs no I/O: identical inputs
// always produce identical outputs.
type Calculator struct {
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// round applies half-up rounding to the currency's smallest unit.
// decimal.Round rounds half away from zero, which is half-up for the
// non-negative amounts statutory math produces.
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Compute applies the configured rates and wage caps to one employee's
// pay figures.
func (c *Calculator) Compute(basic, dearnessAllowance, gross decimal.Decimal, cfg statutory.Config) statutory.Contributions {
	pfBase := basic.Add(dearnessAllowance)
	if pfBase.GreaterThan(cfg.PFWageCap) {
		pfBase = cfg.PFWageCap
	}

	// Insurance eligibility is inclusive at the wage limit.
	insuranceEligible := gross.LessThanOrEqual(cfg.InsuranceWageLimit)

	employeePF := round(pfBase.Mul(cfg.EmployeePFRate))

	employeeInsurance := decimal.Zero
	employerInsurance := decimal.Zero
	if insuranceEligible {
		employeeInsurance = round(gross.Mul(cfg.EmployeeInsuranceRate))
		employerInsurance = round(gross.Mul(cfg.EmployerInsuranceRate))
	}

	pension := pfBase.Mul(cfg.PensionRate)
	if pension.GreaterThan(cfg.PensionCap) {
		pension = cfg.PensionCap
	}
	pension = round(pension)

	// Employer PF is the residual after the pension diversion, floored
	// at zero.
	employerPF := pfBase.Mul(cfg.EmployerPFRate).Sub(pension)
	if employerPF.IsNegative() {
		employerPF = decimal.Zero
	}
	employerPF = round(employerPF)

	gratuity := round(basic.Mul(cfg.GratuityRate))

	levy := pfBase.Mul(cfg.LevyRate)
	if levy.GreaterThan(cfg.LevyCap) {
		levy = cfg.LevyCap
	}
	levy = round(levy)

	adminCharge := pfBase.Mul(cfg.AdminChargeRate)
	if adminCharge.GreaterThan(cfg.AdminChargeCap) {
		adminCharge = cfg.AdminChargeCap
	}
	adminCharge = round(adminCharge)

	return statutory.Contributions{
		Employee: statutory.EmployeeContributions{
			PF:        employeePF,
			Insurance: employeeInsurance,
		},
		Employer: statutory.EmployerContributions{
			PF:               employerPF,
			PensionScheme:    pension,
			Insurance:        employerInsurance,
			Gratuity:         gratuity,
			DeathBenefitLevy: levy,
			AdminCharge:      adminCharge,
		},
	}
}
