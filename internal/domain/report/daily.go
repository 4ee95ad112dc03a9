package report

import (
	"time"

	"github.com/salonfin/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// DailyCashFlow summarizes the cash movement of one calendar day
type DailyCashFlow struct {
	Date         string               `json:"date"` // YYYY-MM-DD
	Entradas     decimal.Decimal      `json:"entradas"`
	Saidas       decimal.Decimal      `json:"saidas"`
	Saldo        decimal.Decimal      `json:"saldo"`
	Transactions []ledger.Transaction `json:"transactions"`
}

// ComputeDailyCashFlow sums the entries and exits dated on day. The day is
// compared in its own location; callers pass it in rather than reading a clock.
func ComputeDailyCashFlow(txs []ledger.Transaction, day time.Time) DailyCashFlow {
	onDay := ledger.OnDay(txs, day)

	entradas, saidas := decimal.Zero, decimal.Zero
	for _, tx := range onDay {
		if tx.IsEntrada() {
			entradas = entradas.Add(tx.Amount.Amount())
		} else if tx.IsSaida() {
			saidas = saidas.Add(tx.Amount.Amount())
		}
	}

	return DailyCashFlow{
		Date:         day.Format("2006-01-02"),
		Entradas:     entradas,
		Saidas:       saidas,
		Saldo:        entradas.Sub(saidas),
		Transactions: onDay,
	}
}
