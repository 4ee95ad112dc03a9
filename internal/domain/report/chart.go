package report

import (
	"github.com/shopspring/decimal"
)

// PieSlice is one wedge of the monthly cost pie
type PieSlice struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Color      string          `json:"color"`
	Percentage decimal.Decimal `json:"percentage"`
	Label      string          `json:"label"`
}

// BarRow is the single-row bar chart projection of a monthly report
type BarRow struct {
	Month            string          `json:"month"`
	Faturamento      decimal.Decimal `json:"faturamento"`
	CustosDirectos   decimal.Decimal `json:"custos_diretos"`
	CustoOperacional decimal.Decimal `json:"custo_operacional"`
	Comissoes        decimal.Decimal `json:"comissoes"`
	Impostos         decimal.Decimal `json:"impostos"`
	LucroLiquido     decimal.Decimal `json:"lucro_liquido"`
	TotalCosts       decimal.Decimal `json:"total_costs"`
}

// ChartData is everything the dashboard charts need for one month
type ChartData struct {
	PieSlices []PieSlice `json:"pie_slices"`
	BarRow    BarRow     `json:"bar_row"`
}

// Slice names and colors, in display order
const (
	SliceCustosDirectos   = "Custos Diretos"
	SliceCustoOperacional = "Custo Operacional"
	SliceComissoes        = "Comissões"
	SliceImpostos         = "Impostos"
	SliceLucroLiquido     = "Lucro Líquido"
)

var sliceColors = map[string]string{
	SliceCustosDirectos:   "#ef4444",
	SliceCustoOperacional: "#f97316",
	SliceComissoes:        "#eab308",
	SliceImpostos:         "#8b5cf6",
	SliceLucroLiquido:     "#22c55e",
}

// ShapeChartData projects a monthly report into pie slices and a bar row.
// Slices whose value is not positive are left out, so a loss month has no
// profit wedge and an empty month has no slices at all.
func ShapeChartData(r MonthlyReportData) ChartData {
	candidates := []struct {
		name  string
		value decimal.Decimal
	}{
		{SliceCustosDirectos, r.CustosDirectos},
		{SliceCustoOperacional, r.CustoOperacional},
		{SliceComissoes, r.Comissoes},
		{SliceImpostos, r.Impostos},
		{SliceLucroLiquido, r.LucroLiquido},
	}

	slices := make([]PieSlice, 0, len(candidates))
	for _, c := range candidates {
		if !c.value.IsPositive() {
			continue
		}
		pct := percentOf(c.value, r.Faturamento)
		slices = append(slices, PieSlice{
			Name:       c.name,
			Value:      c.value,
			Color:      sliceColors[c.name],
			Percentage: pct,
			Label:      PercentLabel(pct),
		})
	}

	return ChartData{
		PieSlices: slices,
		BarRow: BarRow{
			Month:            MonthLabel(r.Year, r.Month),
			Faturamento:      r.Faturamento,
			CustosDirectos:   r.CustosDirectos,
			CustoOperacional: r.CustoOperacional,
			Comissoes:        r.Comissoes,
			Impostos:         r.Impostos,
			LucroLiquido:     r.LucroLiquido,
			TotalCosts:       r.CustosDirectos.Add(r.CustoOperacional).Add(r.Comissoes).Add(r.Impostos),
		},
	}
}
