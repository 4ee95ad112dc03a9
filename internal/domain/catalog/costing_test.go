package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertDec(t *testing.T, expected string, actual decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "%s: expected %s, got %s", field, expected, actual.String())
}

func sampleParams() settings.BusinessParams {
	return settings.BusinessParams{
		WeightedAverageRate:          dec("3"),
		ImpostosRate:                 dec("8"),
		DespesasIndiretasDepreciacao: dec("35"),
	}
}

func TestComputeServiceCosts_Scenario(t *testing.T) {
	svc := Service{
		SalePrice:      valueobject.NewMoneyFromInt(100),
		CommissionRate: dec("25"),
		MaterialCosts:  []MaterialCostLine{{MaterialID: uuid.New(), Quantity: dec("1"), Cost: dec("10")}},
	}

	c := ComputeServiceCosts(svc, sampleParams())

	assertDec(t, "3", c.CardTaxCost, "cardTaxCost")
	assertDec(t, "8", c.ServiceTaxCost, "serviceTaxCost")
	assertDec(t, "25", c.CommissionCost, "commissionCost")
	assertDec(t, "10", c.MaterialTotal, "materialTotal")
	assertDec(t, "46", c.TotalCost, "totalCost")
	assertDec(t, "54", c.GrossProfit, "grossProfit")
	assertDec(t, "54", c.ProfitMargin, "profitMargin")
	assertDec(t, "35", c.OperationalCost, "operationalCost")
	assertDec(t, "19", c.OperationalProfit, "operationalProfit")
	assertDec(t, "19", c.OperationalMargin, "operationalMargin")
}

func TestComputeServiceCosts_ZeroSalePrice(t *testing.T) {
	svc := Service{
		SalePrice:      valueobject.Zero(),
		CommissionRate: dec("25"),
		MaterialCosts:  []MaterialCostLine{{Cost: dec("10")}},
	}

	c := ComputeServiceCosts(svc, sampleParams())

	assert.True(t, c.ProfitMargin.IsZero())
	assert.True(t, c.OperationalMargin.IsZero())
	assertDec(t, "-10", c.GrossProfit, "grossProfit")
}

func TestPriceAndAnalyze(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := Service{
		SalePrice:      valueobject.NewMoneyFromInt(100),
		CommissionRate: dec("25"),
		MaterialCosts:  []MaterialCostLine{{Cost: dec("10")}},
	}
	params := sampleParams()
	svc.Reprice(params, at)

	assertDec(t, "46", svc.Pricing.TotalCost, "snapshot totalCost")
	assertDec(t, "3", svc.Pricing.CardTaxRate, "snapshot cardTaxRate")
	assert.Equal(t, at, svc.Pricing.At)

	t.Run("unchanged params are not stale", func(t *testing.T) {
		a := Analyze(svc, params)
		assert.False(t, a.Stale)
		assert.True(t, a.Drift.IsZero())
	})

	t.Run("rate change leaves snapshot frozen", func(t *testing.T) {
		changed := params
		changed.ImpostosRate = dec("10")

		a := Analyze(svc, changed)

		assert.True(t, a.Stale)
		assertDec(t, "46", a.Snapshot.TotalCost, "snapshot totalCost")
		assertDec(t, "48", a.Current.TotalCost, "current totalCost")
		assertDec(t, "2", a.Drift, "drift")
	})

	t.Run("never priced is stale", func(t *testing.T) {
		assert.True(t, Analyze(Service{}, params).Stale)
	})
}

func TestUpdateMaterialLine(t *testing.T) {
	userID := uuid.New()
	m, err := NewMaterial(userID, "Tinta", "ml", dec("10"), valueobject.NewMoneyFromInt(30))
	require.NoError(t, err)
	idx := NewMaterialIndex([]Material{*m})

	line := UpdateMaterialLine(MaterialCostLine{}, m.ID, dec("2"), idx)
	assertDec(t, "6", line.Cost, "initial cost")

	t.Run("quantity change re-derives cost", func(t *testing.T) {
		updated := UpdateMaterialLine(line, line.MaterialID, dec("5"), idx)
		assertDec(t, "15", updated.Cost, "cost")
	})

	t.Run("unknown material keeps previous cost", func(t *testing.T) {
		unknown := uuid.New()
		updated := UpdateMaterialLine(line, unknown, dec("5"), idx)
		assertDec(t, "6", updated.Cost, "cost")
		assert.Equal(t, unknown, updated.MaterialID)
	})

	t.Run("non-positive quantity keeps previous cost", func(t *testing.T) {
		updated := UpdateMaterialLine(line, m.ID, decimal.Zero, idx)
		assertDec(t, "6", updated.Cost, "cost")
	})

	t.Run("nil index is a no-op", func(t *testing.T) {
		updated := UpdateMaterialLine(line, m.ID, dec("5"), nil)
		assertDec(t, "6", updated.Cost, "cost")
	})
}
