package settings

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// PaymentMethodDTO is one payment method in a settings request or response
type PaymentMethodDTO struct {
	Name    string          `json:"name" validate:"required,max=50"`
	FeeRate decimal.Decimal `json:"fee_rate" validate:"gte=0,lte=100"`
	Share   decimal.Decimal `json:"share" validate:"gte=0,lte=100"`
}

// UpdateSettingsRequest replaces every business parameter of a user
type UpdateSettingsRequest struct {
	LucroDesejado                decimal.Decimal    `json:"lucro_desejado" validate:"gte=0,lte=100"`
	DespesasIndiretasDepreciacao decimal.Decimal    `json:"despesas_indiretas_depreciacao" validate:"gte=0,lte=100"`
	ImpostosRate                 decimal.Decimal    `json:"impostos_rate" validate:"gte=0,lte=100"`
	WeightedAverageRate          decimal.Decimal    `json:"weighted_average_rate" validate:"gte=0,lte=100"`
	CommissionRate               decimal.Decimal    `json:"commission_rate" validate:"gte=0,lte=100"`
	PaymentMethods               []PaymentMethodDTO `json:"payment_methods" validate:"max=20,dive"`
	WorkingDays                  []int              `json:"working_days" validate:"max=7,unique,dive,gte=0,lte=6"`
	Holidays                     []string           `json:"holidays" validate:"dive,datetime=2006-01-02"`
	TeamSize                     int                `json:"team_size" validate:"gte=0,lte=1000"`
	DepreciacaoValorMobilizado   decimal.Decimal    `json:"depreciacao_valor_mobilizado" validate:"gte=0"`
	DepreciacaoTotal             decimal.Decimal    `json:"depreciacao_total" validate:"gte=0"`
	MetaFaturamentoMensal        decimal.Decimal    `json:"meta_faturamento_mensal" validate:"gte=0"`
	MetaAtendimentosMensal       int                `json:"meta_atendimentos_mensal" validate:"gte=0"`
}

// SettingsResponse is the business parameters with their derived values
type SettingsResponse struct {
	UserID                       uuid.UUID          `json:"user_id"`
	LucroDesejado                decimal.Decimal    `json:"lucro_desejado"`
	DespesasIndiretasDepreciacao decimal.Decimal    `json:"despesas_indiretas_depreciacao"`
	DespesasDiretas              decimal.Decimal    `json:"despesas_diretas"`
	ImpostosRate                 decimal.Decimal    `json:"impostos_rate"`
	WeightedAverageRate          decimal.Decimal    `json:"weighted_average_rate"`
	CommissionRate               decimal.Decimal    `json:"commission_rate"`
	PaymentMethods               []PaymentMethodDTO `json:"payment_methods"`
	WorkingDays                  []int              `json:"working_days"`
	Holidays                     []string           `json:"holidays"`
	TeamSize                     int                `json:"team_size"`
	DepreciacaoValorMobilizado   decimal.Decimal    `json:"depreciacao_valor_mobilizado"`
	DepreciacaoTotal             decimal.Decimal    `json:"depreciacao_total"`
	DepreciacaoMensal            decimal.Decimal    `json:"depreciacao_mensal"`
	MetaFaturamentoMensal        decimal.Decimal    `json:"meta_faturamento_mensal"`
	MetaAtendimentosMensal       int                `json:"meta_atendimentos_mensal"`
	UpdatedAt                    time.Time          `json:"updated_at"`
}

// ToSettingsResponse converts domain params to a response
func ToSettingsResponse(p *settings.BusinessParams) SettingsResponse {
	methods := make([]PaymentMethodDTO, 0, len(p.PaymentMethods))
	for _, m := range p.PaymentMethods {
		methods = append(methods, PaymentMethodDTO{Name: m.Name, FeeRate: m.FeeRate, Share: m.Share})
	}
	days := make([]int, 0, len(p.WorkingDays))
	for _, d := range p.WorkingDays {
		days = append(days, int(d))
	}
	holidays := make([]string, 0, len(p.Holidays))
	for _, h := range p.Holidays {
		holidays = append(holidays, h.Format("2006-01-02"))
	}
	return SettingsResponse{
		UserID:                       p.UserID,
		LucroDesejado:                p.LucroDesejado,
		DespesasIndiretasDepreciacao: p.DespesasIndiretasDepreciacao,
		DespesasDiretas:              p.DespesasDiretas(),
		ImpostosRate:                 p.ImpostosRate,
		WeightedAverageRate:          p.WeightedAverageRate,
		CommissionRate:               p.CommissionRate,
		PaymentMethods:               methods,
		WorkingDays:                  days,
		Holidays:                     holidays,
		TeamSize:                     p.TeamSize,
		DepreciacaoValorMobilizado:   p.DepreciacaoValorMobilizado,
		DepreciacaoTotal:             p.DepreciacaoTotal,
		DepreciacaoMensal:            p.DepreciacaoMensal(),
		MetaFaturamentoMensal:        p.MetaFaturamentoMensal,
		MetaAtendimentosMensal:       p.MetaAtendimentosMensal,
		UpdatedAt:                    p.UpdatedAt,
	}
}
