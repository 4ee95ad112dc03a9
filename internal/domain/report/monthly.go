package report

import (
	"time"

	"github.com/salonfin/backend/internal/domain/catalog"
	"github.com/salonfin/backend/internal/domain/expense"
	"github.com/salonfin/backend/internal/domain/ledger"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// MonthlyReportData is the full financial picture of one calendar month.
// It is recomputed on every read and never persisted.
type MonthlyReportData struct {
	CostBlock
	Month               time.Month      `json:"month"`
	Year                int             `json:"year"`
	Faturamento         decimal.Decimal `json:"faturamento"` // Σ ENTRADA amounts
	DespesasIndiretas   decimal.Decimal `json:"despesas_indiretas"`
	CustoMateriasPrimas decimal.Decimal `json:"custo_materias_primas"` // catalog-wide material cost
	TotalSaidas         decimal.Decimal `json:"total_saidas"`          // Σ SAIDA amounts, informational
	TicketMedio         decimal.Decimal `json:"ticket_medio"`
	ServicosRealizados  int             `json:"servicos_realizados"` // one service per income transaction
	TransacoesEntrada   int             `json:"transacoes_entrada"`
	TransacoesSaida     int             `json:"transacoes_saida"`
	TotalTransacoes     int             `json:"total_transacoes"`
}

// ComputeMonthlyReport aggregates the transactions of (month, year) into a
// MonthlyReportData. Indirect expenses come from expenseTotal; material
// cost is summed over the whole service catalog, regardless of which
// services were sold in the month.
func ComputeMonthlyReport(
	txs []ledger.Transaction,
	month time.Month,
	year int,
	expenseTotal expense.TotalFunc,
	services []catalog.Service,
	opts ...Option,
) MonthlyReportData {
	o := newOptions(opts)
	period := valueobject.NewMonthPeriod(year, month, o.location)
	inMonth := ledger.InPeriod(txs, period)

	faturamento, totalSaidas := decimal.Zero, decimal.Zero
	entradas, saidas := 0, 0
	for _, tx := range inMonth {
		switch tx.Kind {
		case ledger.KindEntrada:
			faturamento = faturamento.Add(tx.Amount.Amount())
			entradas++
		case ledger.KindSaida:
			totalSaidas = totalSaidas.Add(tx.Amount.Amount())
			saidas++
		}
	}

	despesasIndiretas := lookupTotal(expenseTotal, period.Key())
	custoMateriasPrimas := catalog.CatalogMaterialTotal(services)

	ticketMedio := decimal.Zero
	if entradas > 0 {
		ticketMedio = faturamento.Div(decimal.NewFromInt(int64(entradas)))
	}

	return MonthlyReportData{
		CostBlock:           DeriveCostBlock(faturamento, despesasIndiretas, custoMateriasPrimas, o.rates),
		Month:               period.Month,
		Year:                period.Year,
		Faturamento:         faturamento,
		DespesasIndiretas:   despesasIndiretas,
		CustoMateriasPrimas: custoMateriasPrimas,
		TotalSaidas:         totalSaidas,
		TicketMedio:         ticketMedio,
		ServicosRealizados:  entradas,
		TransacoesEntrada:   entradas,
		TransacoesSaida:     saidas,
		TotalTransacoes:     len(inMonth),
	}
}

// MonthKey returns the report's "YYYY-MM" key
func (r MonthlyReportData) MonthKey() string {
	return valueobject.MonthKey(r.Year, r.Month)
}

func lookupTotal(fn expense.TotalFunc, key string) decimal.Decimal {
	if fn == nil {
		return decimal.Zero
	}
	return fn(key)
}
