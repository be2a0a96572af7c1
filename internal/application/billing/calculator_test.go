package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/bills-api/internal/application/billing"
	"github.com/avolkov/bills-api/internal/domain"
	"github.com/avolkov/bills-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testCatalog() map[string]entity.ServiceCatalogEntry {
	return map[string]entity.ServiceCatalogEntry{
		"10": {ID: "10", Name: "Холодное водоснабжение"},
		"11": {ID: "11", Name: "Содержание жилья"},
	}
}

// TestCompute_KnownVector is the reference vector for the charge math:
// {100.00, recalc 5.50} + {50.25, recalc null} must total exactly 155.75.
func TestCompute_KnownVector(t *testing.T) {
	calc := billing.NewCalculator()
	acc := &entity.Account{
		Key: "acc-1",
		Collections: []entity.ServiceCollection{{
			Services: []entity.ServiceCharge{
				{ServiceID: "10", ChargeSum: dec("100.00"), RecalculationSum: decPtr("5.50")},
				{ServiceID: "11", ChargeSum: dec("50.25"), RecalculationSum: nil},
			},
		}},
	}

	result, err := calc.Compute(acc, testCatalog())
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)
	assert.True(t, result.Total.Equal(dec("155.75")), "total = %s", result.Total)
	assert.True(t, result.Lines[0].Total.Equal(dec("105.50")))
	assert.True(t, result.Lines[1].Total.Equal(dec("50.25")))
}

// Absent recalculation must leave the charge sum untouched: no drift at all.
func TestCompute_NilRecalculationIsExact(t *testing.T) {
	calc := billing.NewCalculator()
	acc := &entity.Account{
		Key: "acc-1",
		Collections: []entity.ServiceCollection{{
			Services: []entity.ServiceCharge{
				{ServiceID: "10", ChargeSum: dec("33.33")},
			},
		}},
	}

	result, err := calc.Compute(acc, testCatalog())
	require.NoError(t, err)
	assert.True(t, result.Lines[0].Total.Equal(dec("33.33")))
	assert.True(t, result.Total.Equal(dec("33.33")))
	assert.True(t, result.Lines[0].RecalculationSum.Equal(decimal.Zero))
}

func TestCompute_TraversesCollectionsInOrder(t *testing.T) {
	calc := billing.NewCalculator()
	acc := &entity.Account{
		Key: "acc-1",
		Collections: []entity.ServiceCollection{
			{Services: []entity.ServiceCharge{{ServiceID: "11", ChargeSum: dec("10.00")}}},
			{Services: []entity.ServiceCharge{{ServiceID: "10", ChargeSum: dec("20.00")}}},
		},
	}

	result, err := calc.Compute(acc, testCatalog())
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, "Содержание жилья", result.Lines[0].ServiceName)
	assert.Equal(t, "Холодное водоснабжение", result.Lines[1].ServiceName)
	assert.True(t, result.Total.Equal(dec("30.00")))
}

// An unknown service id is recoverable: zero result plus an error the
// caller records; other accounts are unaffected.
func TestCompute_UnknownServiceFallsBackToZero(t *testing.T) {
	calc := billing.NewCalculator()
	acc := &entity.Account{
		Key: "acc-2",
		Collections: []entity.ServiceCollection{{
			Services: []entity.ServiceCharge{
				{ServiceID: "99", ChargeSum: dec("100.00")},
			},
		}},
	}

	result, err := calc.Compute(acc, testCatalog())
	require.ErrorIs(t, err, domain.ErrUnknownService)
	assert.True(t, result.Total.IsZero())
	assert.Empty(t, result.Lines)
}

func TestCompute_NilAccountYieldsPlaceholder(t *testing.T) {
	calc := billing.NewCalculator()

	result, err := calc.Compute(nil, testCatalog())
	require.NoError(t, err)
	assert.Equal(t, billing.NoDataPlaceholder, result.Placeholder)
	assert.Equal(t, "0.00", result.Total.StringFixed(2))
}

func TestCompute_EmptyCollectionsYieldsPlaceholder(t *testing.T) {
	calc := billing.NewCalculator()

	result, err := calc.Compute(&entity.Account{Key: "acc-3"}, testCatalog())
	require.NoError(t, err)
	assert.Equal(t, billing.NoDataPlaceholder, result.Placeholder)
	assert.True(t, result.Total.IsZero())
}
