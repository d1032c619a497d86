package statutory

import "github.com/shopspring/decimal"

// Config holds the statutory contribution rates and wage caps. Rates are
// fractions (0.12 = 12%), caps are currency amounts.
type Config struct {
	PFWageCap             decimal.Decimal
	EmployeePFRate        decimal.Decimal
	EmployerPFRate        decimal.Decimal
	PensionRate           decimal.Decimal
	PensionCap            decimal.Decimal
	InsuranceWageLimit    decimal.Decimal
	EmployeeInsuranceRate decimal.Decimal
	EmployerInsuranceRate decimal.Decimal
	GratuityRate          decimal.Decimal
	LevyRate              decimal.Decimal
	LevyCap               decimal.Decimal
	AdminChargeRate       decimal.Decimal
	AdminChargeCap        decimal.Decimal
}

// DefaultConfig returns the reference rates used when no statutory
// settings row is configured.
func DefaultConfig() Config {
	return Config{
		PFWageCap:             decimal.NewFromInt(15000),
		EmployeePFRate:        decimal.NewFromFloat(0.12),
		EmployerPFRate:        decimal.NewFromFloat(0.12),
		PensionRate:           decimal.NewFromFloat(0.0833),
		PensionCap:            decimal.NewFromInt(1250),
		InsuranceWageLimit:    decimal.NewFromInt(21000),
		EmployeeInsuranceRate: decimal.NewFromFloat(0.0075),
		EmployerInsuranceRate: decimal.NewFromFloat(0.0325),
		GratuityRate:          decimal.NewFromFloat(0.0481),
		LevyRate:              decimal.NewFromFloat(0.005),
		LevyCap:               decimal.NewFromInt(75),
		AdminChargeRate:       decimal.NewFromFloat(0.005),
		AdminChargeCap:        decimal.NewFromInt(75),
	}
}

// EmployeeContributions - Amounts withheld from the employee.
type EmployeeContributions struct {
	PF        decimal.Decimal `json:"pf"`
	Insurance decimal.Decimal `json:"insurance"`
}

// EmployerContributions - Amounts paid on top by the employer.
type EmployerContributions struct {
	PF               decimal.Decimal `json:"pf"`
	PensionScheme    decimal.Decimal `json:"pension_scheme"`
	Insurance        decimal.Decimal `json:"insurance"`
	Gratuity         decimal.Decimal `json:"gratuity"`
	DeathBenefitLevy decimal.Decimal `json:"death_benefit_levy"`
	AdminCharge      decimal.Decimal `json:"admin_charge"`
}

// Contributions - Full statutory result for one employee.
type Contributions struct {
	Employee EmployeeContributions `json:"employee"`
	Employer EmployerContributions `json:"employer"`
}

// TotalEmployee sums the employee-side deductions.
func (c Contributions) TotalEmployee() decimal.Decimal {
	return c.Employee.PF.Add(c.Employee.Insurance)
}

// TotalEmployer sums the employer-side contributions.
func (c Contributions) TotalEmployer() decimal.Decimal {
	return c.Employer.PF.
		Add(c.Employer.PensionScheme).
		Add(c.Employer.Insurance).
		Add(c.Employer.Gratuity).
		Add(c.Employer.DeathBenefitLevy).
		Add(c.Employer.AdminCharge)
}
