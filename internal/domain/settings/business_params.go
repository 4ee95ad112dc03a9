package settings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DepreciationMonths is the straight-line horizon for equipment depreciation
const DepreciationMonths = 60

var hundred = decimal.NewFromInt(100)

// PaymentMethodFee is the fee charged by one payment method together with
// the share of revenue received through it. Both are percentages.
type PaymentMethodFee struct {
	Name    string          `json:"name"`
	FeeRate decimal.Decimal `json:"fee_rate"`
	Share   decimal.Decimal `json:"share"`
}

// BusinessParams is the per-user singleton holding every configured
// rate and percentage the computation engine reads.
type BusinessParams struct {
	shared.OwnedEntity
	LucroDesejado                decimal.Decimal    `json:"lucro_desejado"`
	DespesasIndiretasDepreciacao decimal.Decimal    `json:"despesas_indiretas_depreciacao"`
	ImpostosRate                 decimal.Decimal    `json:"impostos_rate"`
	WeightedAverageRate          decimal.Decimal    `json:"weighted_average_rate"`
	CommissionRate               decimal.Decimal    `json:"commission_rate"`
	PaymentMethods               []PaymentMethodFee `json:"payment_methods"`
	WorkingDays                  []time.Weekday     `json:"working_days"`
	Holidays                     []time.Time        `json:"holidays"`
	TeamSize                     int                `json:"team_size"`
	DepreciacaoValorMobilizado   decimal.Decimal    `json:"depreciacao_valor_mobilizado"`
	DepreciacaoTotal             decimal.Decimal    `json:"depreciacao_total"`
	MetaFaturamentoMensal        decimal.Decimal    `json:"meta_faturamento_mensal"`
	MetaAtendimentosMensal       int                `json:"meta_atendimentos_mensal"`
}

// DefaultBusinessParams returns the parameters used before a user saves their own
func DefaultBusinessParams(userID uuid.UUID) *BusinessParams {
	return &BusinessParams{
		OwnedEntity:                  shared.NewOwnedEntity(userID),
		LucroDesejado:                decimal.NewFromInt(20),
		DespesasIndiretasDepreciacao: decimal.NewFromInt(35),
		ImpostosRate:                 decimal.NewFromInt(8),
		WeightedAverageRate:          decimal.NewFromInt(3),
		CommissionRate:               decimal.NewFromInt(10),
		WorkingDays: []time.Weekday{
			time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
		},
		TeamSize: 1,
	}
}

// DespesasDiretas is always derived as the remainder of the 100% split
func (p BusinessParams) DespesasDiretas() decimal.Decimal {
	return hundred.Sub(p.LucroDesejado).Sub(p.DespesasIndiretasDepreciacao)
}

// DepreciacaoMensal spreads the total to depreciate over DepreciationMonths
func (p BusinessParams) DepreciacaoMensal() decimal.Decimal {
	return p.DepreciacaoTotal.Div(decimal.NewFromInt(DepreciationMonths))
}

// WeightedRate computes the share-weighted average fee of the configured
// payment methods. Returns zero when no shares are configured.
func (p BusinessParams) WeightedRate() decimal.Decimal {
	weighted := decimal.Zero
	shares := decimal.Zero
	for _, m := range p.PaymentMethods {
		weighted = weighted.Add(m.FeeRate.Mul(m.Share))
		shares = shares.Add(m.Share)
	}
	if shares.IsZero() {
		return decimal.Zero
	}
	return weighted.Div(shares)
}

// RefreshWeightedRate recomputes WeightedAverageRate from the payment mix.
// A params record without payment methods keeps its manually entered rate.
func (p *BusinessParams) RefreshWeightedRate() {
	if len(p.PaymentMethods) == 0 {
		return
	}
	p.WeightedAverageRate = p.WeightedRate().Round(4)
}

// IsWorkingDay reports whether day is a configured weekday and not a holiday
func (p BusinessParams) IsWorkingDay(day time.Time) bool {
	worked := false
	for _, wd := range p.WorkingDays {
		if day.Weekday() == wd {
			worked = true
			break
		}
	}
	if !worked {
		return false
	}
	y, m, d := day.Date()
	for _, h := range p.Holidays {
		hy, hm, hd := h.Date()
		if hy == y && hm == m && hd == d {
			return false
		}
	}
	return true
}

// WorkingDaysIn counts the working days of a calendar month
func (p BusinessParams) WorkingDaysIn(year int, month time.Month) int {
	count := 0
	for day := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); day.Month() == month; day = day.AddDate(0, 0, 1) {
		if p.IsWorkingDay(day) {
			count++
		}
	}
	return count
}

// DailyRevenueGoal divides the monthly revenue goal by the month's working days
func (p BusinessParams) DailyRevenueGoal(year int, month time.Month) decimal.Decimal {
	days := p.WorkingDaysIn(year, month)
	if days == 0 {
		return decimal.Zero
	}
	return p.MetaFaturamentoMensal.Div(decimal.NewFromInt(int64(days)))
}

// Validate checks the percentage split and every rate bound
func (p BusinessParams) Validate() error {
	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"lucro_desejado", p.LucroDesejado},
		{"despesas_indiretas_depreciacao", p.DespesasIndiretasDepreciacao},
		{"impostos_rate", p.ImpostosRate},
		{"weighted_average_rate", p.WeightedAverageRate},
		{"commission_rate", p.CommissionRate},
	}
	for _, r := range rates {
		if r.value.IsNegative() || r.value.GreaterThan(hundred) {
			return shared.NewDomainError("INVALID_RATE", r.name+" must be between 0 and 100")
		}
	}
	if p.DespesasDiretas().IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "lucro_desejado + despesas_indiretas_depreciacao cannot exceed 100")
	}
	for _, m := range p.PaymentMethods {
		if m.FeeRate.IsNegative() || m.Share.IsNegative() {
			return shared.NewDomainError("INVALID_RATE", "payment method rates cannot be negative")
		}
	}
	if p.TeamSize < 0 || p.MetaAtendimentosMensal < 0 {
		return shared.NewDomainError("INVALID_INPUT", "team size and goals cannot be negative")
	}
	if p.DepreciacaoTotal.IsNegative() || p.DepreciacaoValorMobilizado.IsNegative() || p.MetaFaturamentoMensal.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "monetary parameters cannot be negative")
	}
	return nil
}

// Repository persists the per-user business parameters
type Repository interface {
	// FindForUser returns the user's params or shared.ErrNotFound
	FindForUser(ctx context.Context, userID uuid.UUID) (*BusinessParams, error)
	// Save creates or replaces the user's params
	Save(ctx context.Context, params *BusinessParams) error
}
