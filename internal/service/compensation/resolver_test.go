package compensation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycore/payroll-engine-go/internal/domain/compensation"
)

type fakeCompensationRepo struct {
	components []compensation.EmployeeComponent
	err        error
}

func (f *fakeCompensationRepo) GetActiveByEmployee(ctx context.Context, employeeID string, asOf time.Time) ([]compensation.EmployeeComponent, error) {
	return f.components, f.err
}

func component(code string, ctype compensation.ComponentType, amount int64, percentage bool) compensation.EmployeeComponent {
	return compensation.EmployeeComponent{
		ComponentID:   "comp-" + code,
		ComponentCode: code,
		ComponentName: code,
		ComponentType: ctype,
		Amount:        decimal.NewFromInt(amount),
		IsPercentage:  percentage,
	}
}

func TestResolveBasicAndFixedComponents(t *testing.T) {
	repo := &fakeCompensationRepo{components: []compensation.EmployeeComponent{
		component("BASIC", compensation.ComponentTypeBasic, 10000, false),
		component("HRA", compensation.ComponentTypeEarning, 4000, false),
		component("PT", compensation.ComponentTypeDeduction, 200, false),
	}}
	resolver := NewResolver(repo, nil)

	breakdown, err := resolver.Resolve(context.Background(), "emp-1", time.Now())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(10000).Equal(breakdown.Basic))
	assert.True(t, decimal.NewFromInt(4000).Equal(breakdown.Earnings), "basic is excluded from earnings")
	assert.True(t, decimal.NewFromInt(200).Equal(breakdown.Deductions))
	assert.Len(t, breakdown.Components, 3)
}

func TestResolvePercentageAgainstBasic(t *testing.T) {
	repo := &fakeCompensationRepo{components: []compensation.EmployeeComponent{
		component("BASIC", compensation.ComponentTypeBasic, 10000, false),
		component("HRA", compensation.ComponentTypeEarning, 40, true),  // 40% of basic
		component("TDS", compensation.ComponentTypeDeduction, 5, true), // 5% of basic
	}}
	resolver := NewResolver(repo, nil)

	breakdown, err := resolver.Resolve(context.Background(), "emp-1", time.Now())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(4000).Equal(breakdown.Earnings), "earnings: %s", breakdown.Earnings)
	assert.True(t, decimal.NewFromInt(500).Equal(breakdown.Deductions), "deductions: %s", breakdown.Deductions)
}

func TestResolveBasicByConfiguredCode(t *testing.T) {
	// A component typed as earning still counts as basic when its code is
	// in the configured set.
	repo := &fakeCompensationRepo{components: []compensation.EmployeeComponent{
		component("BASE_PAY", compensation.ComponentTypeEarning, 12000, false),
		component("HRA", compensation.ComponentTypeEarning, 50, true),
	}}
	resolver := NewResolver(repo, []string{"BASE_PAY"})

	breakdown, err := resolver.Resolve(context.Background(), "emp-1", time.Now())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(12000).Equal(breakdown.Basic))
	assert.True(t, decimal.NewFromInt(6000).Equal(breakdown.Earnings))
}

func TestResolveFirstBasicWins(t *testing.T) {
	repo := &fakeCompensationRepo{components: []compensation.EmployeeComponent{
		component("BASIC", compensation.ComponentTypeBasic, 10000, false),
		component("BASIC2", compensation.ComponentTypeBasic, 99999, false),
	}}
	resolver := NewResolver(repo, nil)

	breakdown, err := resolver.Resolve(context.Background(), "emp-1", time.Now())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(10000).Equal(breakdown.Basic))
}

func TestResolveNoComponents(t *testing.T) {
	resolver := NewResolver(&fakeCompensationRepo{}, nil)

	_, err := resolver.Resolve(context.Background(), "emp-1", time.Now())
	assert.ErrorIs(t, err, compensation.ErrNoActiveCompensation)
}

func TestResolveRepositoryError(t *testing.T) {
	repo := &fakeCompensationRepo{err: errors.New("connection refused")}
	resolver := NewResolver(repo, nil)

	_, err := resolver.Resolve(context.Background(), "emp-1", time.Now())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, compensation.ErrNoActiveCompensation)
}
