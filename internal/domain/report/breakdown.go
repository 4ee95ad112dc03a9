package report

import (
	"sort"
	"time"

	"github.com/salonfin/backend/internal/domain/ledger"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CategoryBreakdownItem is the actual spending of one expense category in a month
type CategoryBreakdownItem struct {
	Category   string          `json:"category"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"` // of the month's faturamento
}

// ComputeCategoryBreakdown groups the month's SAIDA transactions by
// category. Uncategorized exits are reported under ledger.DefaultCategory.
// Items are sorted by value descending, then by category name.
func ComputeCategoryBreakdown(txs []ledger.Transaction, month time.Month, year int, opts ...Option) []CategoryBreakdownItem {
	o := newOptions(opts)
	period := valueobject.NewMonthPeriod(year, month, o.location)

	faturamento := decimal.Zero
	totals := make(map[string]decimal.Decimal)
	for _, tx := range ledger.InPeriod(txs, period) {
		switch tx.Kind {
		case ledger.KindEntrada:
			faturamento = faturamento.Add(tx.Amount.Amount())
		case ledger.KindSaida:
			cat := tx.CategoryOrDefault()
			totals[cat] = totals[cat].Add(tx.Amount.Amount())
		}
	}

	items := make([]CategoryBreakdownItem, 0, len(totals))
	for cat, value := range totals {
		items = append(items, CategoryBreakdownItem{
			Category:   cat,
			Value:      value,
			Percentage: percentOf(value, faturamento),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if c := items[i].Value.Cmp(items[j].Value); c != 0 {
			return c > 0
		}
		return items[i].Category < items[j].Category
	})
	return items
}

// OperationalComparison sets the flat-rate operational estimate of a
// monthly report next to the spending actually recorded per category.
// The two are expected to differ and are never reconciled.
type OperationalComparison struct {
	Month      time.Month              `json:"month"`
	Year       int                     `json:"year"`
	Estimated  decimal.Decimal         `json:"estimated"` // MonthlyReportData.CustoOperacional
	Actual     decimal.Decimal         `json:"actual"`    // Σ categorized SAIDA
	Difference decimal.Decimal         `json:"difference"`
	Categories []CategoryBreakdownItem `json:"categories"`
}

// CompareOperationalCost builds the estimate-vs-actual view for one month
func CompareOperationalCost(r MonthlyReportData, breakdown []CategoryBreakdownItem) OperationalComparison {
	actual := decimal.Zero
	for _, item := range breakdown {
		actual = actual.Add(item.Value)
	}
	if breakdown == nil {
		breakdown = []CategoryBreakdownItem{}
	}
	return OperationalComparison{
		Month:      r.Month,
		Year:       r.Year,
		Estimated:  r.CustoOperacional,
		Actual:     actual,
		Difference: r.CustoOperacional.Sub(actual),
		Categories: breakdown,
	}
}
