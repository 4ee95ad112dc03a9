package report

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rates are the flat percentages applied to revenue when deriving the cost block
type Rates struct {
	Direct      decimal.Decimal `json:"direct"`
	Operational decimal.Decimal `json:"operational"`
	Commission  decimal.Decimal `json:"commission"`
	Tax         decimal.Decimal `json:"tax"`
}

// DefaultRates returns 25% direct, 15% operational, 10% commission and 8% tax
func DefaultRates() Rates {
	return Rates{
		Direct:      decimal.NewFromInt(25),
		Operational: decimal.NewFromInt(15),
		Commission:  decimal.NewFromInt(10),
		Tax:         decimal.NewFromInt(8),
	}
}

// CostBlock is the set of figures derived from revenue and the flat rates.
// Single-month reports and the historical trend both build it through
// DeriveCostBlock so the two can never disagree.
type CostBlock struct {
	CustosDirectos             decimal.Decimal `json:"custos_diretos"`   // materials + revenue × direct rate
	CustoOperacional           decimal.Decimal `json:"custo_operacional"` // indirect expenses + revenue × operational rate
	Comissoes                  decimal.Decimal `json:"comissoes"`
	Impostos                   decimal.Decimal `json:"impostos"`
	LucroOperacional           decimal.Decimal `json:"lucro_operacional"`
	LucroLiquido               decimal.Decimal `json:"lucro_liquido"`
	MargemLucro                decimal.Decimal `json:"margem_lucro"`
	MargemOperacional          decimal.Decimal `json:"margem_operacional"`
	EBITDA                     decimal.Decimal `json:"ebitda"`
	PercentualCustosDirectos   decimal.Decimal `json:"percentual_custos_diretos"`
	PercentualCustoOperacional decimal.Decimal `json:"percentual_custo_operacional"`
}

// DeriveCostBlock applies rates to faturamento. Every ratio over
// faturamento is zero when faturamento is zero.
func DeriveCostBlock(faturamento, despesasIndiretas, custoMateriasPrimas decimal.Decimal, rates Rates) CostBlock {
	ofRevenue := func(rate decimal.Decimal) decimal.Decimal {
		return faturamento.Mul(rate).Div(hundred)
	}

	b := CostBlock{
		CustosDirectos:   custoMateriasPrimas.Add(ofRevenue(rates.Direct)),
		CustoOperacional: despesasIndiretas.Add(ofRevenue(rates.Operational)),
		Comissoes:        ofRevenue(rates.Commission),
		Impostos:         ofRevenue(rates.Tax),
	}
	b.LucroOperacional = faturamento.Sub(b.CustosDirectos).Sub(b.CustoOperacional)
	b.LucroLiquido = b.LucroOperacional.Sub(b.Comissoes).Sub(b.Impostos)
	b.EBITDA = b.LucroOperacional.Add(b.Impostos)
	b.MargemLucro = percentOf(b.LucroLiquido, faturamento)
	b.MargemOperacional = percentOf(b.LucroOperacional, faturamento)
	b.PercentualCustosDirectos = percentOf(b.CustosDirectos, faturamento)
	b.PercentualCustoOperacional = percentOf(b.CustoOperacional, faturamento)
	return b
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
