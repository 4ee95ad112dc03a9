package settings

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestBusinessParams_DespesasDiretas(t *testing.T) {
	p := BusinessParams{LucroDesejado: d("20"), DespesasIndiretasDepreciacao: d("35")}

	assert.True(t, p.DespesasDiretas().Equal(d("45")))
	assert.True(t, p.LucroDesejado.Add(p.DespesasIndiretasDepreciacao).Add(p.DespesasDiretas()).Equal(d("100")))
}

func TestBusinessParams_DepreciacaoMensal(t *testing.T) {
	p := BusinessParams{DepreciacaoTotal: d("12000")}
	assert.True(t, p.DepreciacaoMensal().Equal(d("200")))
}

func TestBusinessParams_WeightedRate(t *testing.T) {
	t.Run("weights fees by share", func(t *testing.T) {
		p := BusinessParams{PaymentMethods: []PaymentMethodFee{
			{Name: "Crédito", FeeRate: d("4"), Share: d("50")},
			{Name: "Débito", FeeRate: d("2"), Share: d("30")},
			{Name: "PIX", FeeRate: d("0"), Share: d("20")},
		}}
		assert.True(t, p.WeightedRate().Equal(d("2.6")))

		p.RefreshWeightedRate()
		assert.True(t, p.WeightedAverageRate.Equal(d("2.6")))
	})

	t.Run("zero shares yield zero", func(t *testing.T) {
		p := BusinessParams{PaymentMethods: []PaymentMethodFee{{Name: "PIX", FeeRate: d("1")}}}
		assert.True(t, p.WeightedRate().IsZero())
	})

	t.Run("no methods keeps manual rate", func(t *testing.T) {
		p := BusinessParams{WeightedAverageRate: d("3")}
		p.RefreshWeightedRate()
		assert.True(t, p.WeightedAverageRate.Equal(d("3")))
	})
}

func TestBusinessParams_WorkingDaysIn(t *testing.T) {
	p := BusinessParams{
		WorkingDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	}
	// March 2024 has 21 weekdays
	assert.Equal(t, 21, p.WorkingDaysIn(2024, time.March))

	p.Holidays = []time.Time{time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 20, p.WorkingDaysIn(2024, time.March))

	assert.Equal(t, 0, BusinessParams{}.WorkingDaysIn(2024, time.March))
}

func TestBusinessParams_Validate(t *testing.T) {
	valid := DefaultBusinessParams(uuid.New())
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *BusinessParams)
	}{
		{"negative tax", func(p *BusinessParams) { p.ImpostosRate = d("-1") }},
		{"rate above 100", func(p *BusinessParams) { p.CommissionRate = d("101") }},
		{"split exceeds 100", func(p *BusinessParams) { p.LucroDesejado = d("70"); p.DespesasIndiretasDepreciacao = d("40") }},
		{"negative fee", func(p *BusinessParams) {
			p.PaymentMethods = []PaymentMethodFee{{Name: "x", FeeRate: d("-1"), Share: d("1")}}
		}},
		{"negative team", func(p *BusinessParams) { p.TeamSize = -1 }},
		{"negative goal", func(p *BusinessParams) { p.MetaFaturamentoMensal = d("-10") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultBusinessParams(uuid.New())
			tt.mutate(p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestBusinessParams_DailyRevenueGoal(t *testing.T) {
	p := BusinessParams{
		WorkingDays:           []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		MetaFaturamentoMensal: d("21000"),
	}
	assert.True(t, p.DailyRevenueGoal(2024, time.March).Equal(d("1000")))

	p.WorkingDays = nil
	assert.True(t, p.DailyRevenueGoal(2024, time.March).IsZero())
}
