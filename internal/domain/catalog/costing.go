package catalog

import (
	"time"

	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// ServiceCosts is the full cost breakdown of one service at a given set of rates
type ServiceCosts struct {
	MaterialTotal     decimal.Decimal `json:"material_total"`
	CardTaxCost       decimal.Decimal `json:"card_tax_cost"`
	ServiceTaxCost    decimal.Decimal `json:"service_tax_cost"`
	CommissionCost    decimal.Decimal `json:"commission_cost"`
	OperationalCost   decimal.Decimal `json:"operational_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	ProfitMargin      decimal.Decimal `json:"profit_margin"`
	OperationalProfit decimal.Decimal `json:"operational_profit"`
	OperationalMargin decimal.Decimal `json:"operational_margin"`
}

// ComputeServiceCosts prices svc with the rates currently configured in params.
// Commission is part of the total cost; operational overhead is not.
func ComputeServiceCosts(svc Service, params settings.BusinessParams) ServiceCosts {
	price := svc.SalePrice.Amount()
	ofPrice := func(rate decimal.Decimal) decimal.Decimal {
		return price.Mul(rate).Div(hundred)
	}

	c := ServiceCosts{
		MaterialTotal:   svc.MaterialTotal(),
		CardTaxCost:     ofPrice(params.WeightedAverageRate),
		ServiceTaxCost:  ofPrice(params.ImpostosRate),
		CommissionCost:  ofPrice(svc.CommissionRate),
		OperationalCost: ofPrice(params.DespesasIndiretasDepreciacao),
	}
	c.TotalCost = c.MaterialTotal.Add(c.CardTaxCost).Add(c.ServiceTaxCost).Add(c.CommissionCost)
	c.GrossProfit = price.Sub(c.TotalCost)
	c.OperationalProfit = c.GrossProfit.Sub(c.OperationalCost)
	c.ProfitMargin = percentOf(c.GrossProfit, price)
	c.OperationalMargin = percentOf(c.OperationalProfit, price)
	return c
}

// Price freezes the priced-in part of the cost breakdown together with the
// rates used to compute it.
func Price(svc Service, params settings.BusinessParams, at time.Time) PricedAt {
	c := ComputeServiceCosts(svc, params)
	return PricedAt{
		CardTaxRate:    params.WeightedAverageRate,
		ServiceTaxRate: params.ImpostosRate,
		TotalCost:      c.TotalCost,
		GrossProfit:    c.GrossProfit,
		ProfitMargin:   c.ProfitMargin,
		At:             at,
	}
}

// Reprice stores a fresh pricing snapshot on the service
func (s *Service) Reprice(params settings.BusinessParams, at time.Time) {
	s.Pricing = Price(*s, params, at)
}

// ServiceAnalysis shows the frozen snapshot next to a recomputation with current rates
type ServiceAnalysis struct {
	Snapshot PricedAt     `json:"snapshot"`
	Current  ServiceCosts `json:"current"`
	// Drift is the current total cost minus the snapshot's total cost
	Drift decimal.Decimal `json:"drift"`
	Stale bool            `json:"stale"`
}

// Analyze compares the stored pricing of svc against the current parameters
func Analyze(svc Service, params settings.BusinessParams) ServiceAnalysis {
	current := ComputeServiceCosts(svc, params)
	drift := current.TotalCost.Sub(svc.Pricing.TotalCost)
	return ServiceAnalysis{
		Snapshot: svc.Pricing,
		Current:  current,
		Drift:    drift,
		Stale: svc.Pricing.IsZero() ||
			!svc.Pricing.CardTaxRate.Equal(params.WeightedAverageRate) ||
			!svc.Pricing.ServiceTaxRate.Equal(params.ImpostosRate) ||
			!drift.IsZero(),
	}
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
