package report

import (
	"time"

	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// GoalProgress compares a month's results against the configured goals
type GoalProgress struct {
	Month               time.Month      `json:"month"`
	Year                int             `json:"year"`
	MetaFaturamento     decimal.Decimal `json:"meta_faturamento"`
	Faturamento         decimal.Decimal `json:"faturamento"`
	FaturamentoPercent  decimal.Decimal `json:"faturamento_percent"`
	FaltaFaturar        decimal.Decimal `json:"falta_faturar"` // never negative
	MetaAtendimentos    int             `json:"meta_atendimentos"`
	Atendimentos        int             `json:"atendimentos"`
	AtendimentosPercent decimal.Decimal `json:"atendimentos_percent"`
	DiasUteis           int             `json:"dias_uteis"`
	MetaDiaria          decimal.Decimal `json:"meta_diaria"`
}

// ComputeGoalProgress measures r against the revenue and attendance goals in params
func ComputeGoalProgress(r MonthlyReportData, params settings.BusinessParams, year int, month time.Month) GoalProgress {
	remaining := params.MetaFaturamentoMensal.Sub(r.Faturamento)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return GoalProgress{
		Month:               month,
		Year:                year,
		MetaFaturamento:     params.MetaFaturamentoMensal,
		Faturamento:         r.Faturamento,
		FaturamentoPercent:  percentOf(r.Faturamento, params.MetaFaturamentoMensal),
		FaltaFaturar:        remaining,
		MetaAtendimentos:    params.MetaAtendimentosMensal,
		Atendimentos:        r.ServicosRealizados,
		AtendimentosPercent: percentOf(decimal.NewFromInt(int64(r.ServicosRealizados)), decimal.NewFromInt(int64(params.MetaAtendimentosMensal))),
		DiasUteis:           params.WorkingDaysIn(year, month),
		MetaDiaria:          params.DailyRevenueGoal(year, month),
	}
}
