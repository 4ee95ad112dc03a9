// Package export renders computed reports as spreadsheet downloads.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/salonfin/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the media type of the workbooks written here
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names, in workbook order
const (
	SheetSummary    = "Resumo"
	SheetTrend      = "Tendência"
	SheetCategories = "Categorias"
)

// MonthlyWorkbook is everything exported for one month
type MonthlyWorkbook struct {
	Report    report.MonthlyReportData
	Trend     []report.HistoricalDataItem
	Breakdown []report.CategoryBreakdownItem
}

// Filename returns the download name for a month, e.g. "relatorio-2024-03.xlsx"
func Filename(year int, month time.Month) string {
	return fmt.Sprintf("relatorio-%04d-%02d.xlsx", year, int(month))
}

// WriteMonthlyXLSX writes the month as a three-sheet workbook to w
func WriteMonthlyXLSX(w io.Writer, data MonthlyWorkbook) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	b, err := newBuilder(f)
	if err != nil {
		return err
	}
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := b.summary(data.Report); err != nil {
		return err
	}
	if err := b.trend(data.Trend); err != nil {
		return err
	}
	if err := b.categories(data.Breakdown); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type builder struct {
	f      *excelize.File
	header int
	money  int
}

func newBuilder(f *excelize.File) (*builder, error) {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	// built-in format 4 is "#,##0.00"
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}
	return &builder{f: f, header: header, money: money}, nil
}

func (b *builder) summary(r report.MonthlyReportData) error {
	rows := []struct {
		label string
		value any
	}{
		{"Mês", report.MonthLabel(r.Year, r.Month)},
		{"Faturamento", num(r.Faturamento)},
		{"Custo matérias-primas", num(r.CustoMateriasPrimas)},
		{"Custos diretos", num(r.CustosDirectos)},
		{"Despesas indiretas", num(r.DespesasIndiretas)},
		{"Custo operacional", num(r.CustoOperacional)},
		{"Comissões", num(r.Comissoes)},
		{"Impostos", num(r.Impostos)},
		{"Lucro operacional", num(r.LucroOperacional)},
		{"Lucro líquido", num(r.LucroLiquido)},
		{"EBITDA", num(r.EBITDA)},
		{"Margem de lucro (%)", num(r.MargemLucro)},
		{"Margem operacional (%)", num(r.MargemOperacional)},
		{"Ticket médio", num(r.TicketMedio)},
		{"Total de saídas", num(r.TotalSaidas)},
		{"Serviços realizados", r.ServicosRealizados},
		{"Transações de entrada", r.TransacoesEntrada},
		{"Transações de saída", r.TransacoesSaida},
	}
	for i, row := range rows {
		if err := b.row(SheetSummary, i+1, row.label, row.value); err != nil {
			return err
		}
	}
	if err := b.f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(rows)), b.header); err != nil {
		return err
	}
	// rows 2..15 are amounts and percentages, the rest are counts
	if err := b.f.SetCellStyle(SheetSummary, "B2", "B15", b.money); err != nil {
		return err
	}
	return b.f.SetColWidth(SheetSummary, "A", "A", 26)
}

func (b *builder) trend(items []report.HistoricalDataItem) error {
	if _, err := b.f.NewSheet(SheetTrend); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetTrend, err)
	}
	if err := b.headerRow(SheetTrend, "Mês", "Faturamento", "Custos diretos", "Custo operacional", "Despesas indiretas", "Lucro líquido"); err != nil {
		return err
	}
	for i, it := range items {
		if err := b.row(SheetTrend, i+2, it.Label, num(it.Faturamento), num(it.CustosDirectos),
			num(it.CustoOperacional), num(it.DespesasIndiretas), num(it.LucroLiquido)); err != nil {
			return err
		}
	}
	if len(items) > 0 {
		if err := b.f.SetCellStyle(SheetTrend, "B2", fmt.Sprintf("F%d", len(items)+1), b.money); err != nil {
			return err
		}
	}
	return b.f.SetColWidth(SheetTrend, "A", "F", 18)
}

func (b *builder) categories(items []report.CategoryBreakdownItem) error {
	if _, err := b.f.NewSheet(SheetCategories); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetCategories, err)
	}
	if err := b.headerRow(SheetCategories, "Categoria", "Valor", "% do faturamento"); err != nil {
		return err
	}
	for i, it := range items {
		if err := b.row(SheetCategories, i+2, it.Category, num(it.Value), num(it.Percentage)); err != nil {
			return err
		}
	}
	if len(items) > 0 {
		if err := b.f.SetCellStyle(SheetCategories, "B2", fmt.Sprintf("C%d", len(items)+1), b.money); err != nil {
			return err
		}
	}
	return b.f.SetColWidth(SheetCategories, "A", "C", 20)
}

func (b *builder) headerRow(sheet string, titles ...string) error {
	values := make([]any, len(titles))
	for i, t := range titles {
		values[i] = t
	}
	if err := b.row(sheet, 1, values...); err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(titles), 1)
	if err != nil {
		return err
	}
	return b.f.SetCellStyle(sheet, "A1", end, b.header)
}

func (b *builder) row(sheet string, rowNo int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	if err := b.f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNo, err)
	}
	return nil
}

// num rounds to cents and converts for a numeric cell
func num(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
