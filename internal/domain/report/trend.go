package report

import (
	"time"

	"github.com/salonfin/backend/internal/domain/expense"
	"github.com/salonfin/backend/internal/domain/ledger"
	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// HistoricalDataItem is one month of the historical trend
type HistoricalDataItem struct {
	Label             string          `json:"label"` // e.g. "Mar/24"
	MonthKey          string          `json:"month_key"`
	Faturamento       decimal.Decimal `json:"faturamento"`
	LucroLiquido      decimal.Decimal `json:"lucro_liquido"`
	CustosDirectos    decimal.Decimal `json:"custos_diretos"`
	CustoOperacional  decimal.Decimal `json:"custo_operacional"`
	DespesasIndiretas decimal.Decimal `json:"despesas_indiretas"`
}

// ComputeHistoricalTrend runs the monthly cost block over the trailing
// window ending at (month, year), oldest month first. The tax rate is the
// configured ImpostosRate when params is given. Material cost is not part
// of the trend.
func ComputeHistoricalTrend(
	txs []ledger.Transaction,
	month time.Month,
	year int,
	expenseTotal expense.TotalFunc,
	params *settings.BusinessParams,
	opts ...Option,
) []HistoricalDataItem {
	if params != nil {
		opts = append(opts[:len(opts):len(opts)], WithTaxRate(params.ImpostosRate))
	}
	o := newOptions(opts)
	target := valueobject.NewMonthPeriod(year, month, o.location)

	items := make([]HistoricalDataItem, 0, o.window)
	for i := o.window - 1; i >= 0; i-- {
		period := target.AddMonths(-i)

		faturamento := decimal.Zero
		for _, tx := range ledger.InPeriod(txs, period) {
			if tx.IsEntrada() {
				faturamento = faturamento.Add(tx.Amount.Amount())
			}
		}
		despesasIndiretas := lookupTotal(expenseTotal, period.Key())
		block := DeriveCostBlock(faturamento, despesasIndiretas, decimal.Zero, o.rates)

		items = append(items, HistoricalDataItem{
			Label:             MonthLabel(period.Year, period.Month),
			MonthKey:          period.Key(),
			Faturamento:       faturamento,
			LucroLiquido:      block.LucroLiquido,
			CustosDirectos:    block.CustosDirectos,
			CustoOperacional:  block.CustoOperacional,
			DespesasIndiretas: despesasIndiretas,
		})
	}
	return items
}
