package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is the language labels are rendered in
var Locale = language.BrazilianPortuguese

var shortMonths = [...]string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// MonthLabel renders a month as its short pt-BR name and two-digit year, e.g. "Mar/24"
func MonthLabel(year int, month time.Month) string {
	if month < time.January || month > time.December {
		return fmt.Sprintf("%02d/%02d", int(month), year%100)
	}
	return fmt.Sprintf("%s/%02d", shortMonths[month-1], year%100)
}

// PercentLabel renders a percentage with one decimal place and the locale's
// decimal separator, e.g. "25,0%"
func PercentLabel(pct decimal.Decimal) string {
	f, _ := pct.Round(1).Float64()
	return message.NewPrinter(Locale).Sprintf("%.1f%%", f)
}
