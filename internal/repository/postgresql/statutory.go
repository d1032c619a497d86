package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paycore/payroll-engine-go/internal/domain/statutory"
	"github.com/paycore/payroll-engine-go/internal/pkg/database"
)

type statutorySettingsRepository struct {
	db *database.DB
}

func NewStatutorySettingsRepository(db *database.DB) statutory.SettingsRepository {
	return &statutorySettingsRepository{db: db}
}

// GetConfig reads the single active statutory settings row.
func (r *statutorySettingsRepository) GetConfig(ctx context.Context) (statutory.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pf_wage_cap, employee_pf_rate, employer_pf_rate,
			   pension_rate, pension_cap,
			   insurance_wage_limit, employee_insurance_rate, employer_insurance_rate,
			   gratuity_rate, levy_rate, levy_cap,
			   admin_charge_rate, admin_charge_cap
		FROM statutory_settings
		WHERE is_active = true
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var cfg statutory.Config
	if err := q.QueryRow(ctx, query).Scan(
		&cfg.PFWageCap, &cfg.EmployeePFRate, &cfg.EmployerPFRate,
		&cfg.PensionRate, &cfg.PensionCap,
		&cfg.InsuranceWageLimit, &cfg.EmployeeInsuranceRate, &cfg.EmployerInsuranceRate,
		&cfg.GratuityRate, &cfg.LevyRate, &cfg.LevyCap,
		&cfg.AdminChargeRate, &cfg.AdminChargeCap,
	); err != nil {
		if err == pgx.ErrNoRows {
			return statutory.Config{}, statutory.ErrSettingsNotFound
		}
		return statutory.Config{}, fmt.Errorf("failed to get statutory settings: %w", err)
	}

	return cfg, nil
}
