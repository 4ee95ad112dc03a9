package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// BusinessParamsModel is the persistence model for the per-user business parameters.
// Each user has at most one row.
type BusinessParamsModel struct {
	ID                           uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	UserID                       uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_business_params_user"`
	LucroDesejado                decimal.Decimal             `gorm:"type:decimal(7,4);not null;default:0"`
	DespesasIndiretasDepreciacao decimal.Decimal             `gorm:"type:decimal(7,4);not null;default:0"`
	ImpostosRate                 decimal.Decimal             `gorm:"type:decimal(7,4);not null;default:0"`
	WeightedAverageRate          decimal.Decimal             `gorm:"type:decimal(7,4);not null;default:0"`
	CommissionRate               decimal.Decimal             `gorm:"type:decimal(7,4);not null;default:0"`
	PaymentMethods               []settings.PaymentMethodFee `gorm:"serializer:json;type:jsonb"`
	WorkingDays                  []time.Weekday              `gorm:"serializer:json;type:jsonb"`
	Holidays                     []time.Time                 `gorm:"serializer:json;type:jsonb"`
	TeamSize                     int                         `gorm:"not null;default:1"`
	DepreciacaoValorMobilizado   decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0"`
	DepreciacaoTotal             decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0"`
	MetaFaturamentoMensal        decimal.Decimal             `gorm:"type:decimal(18,2);not null;default:0"`
	MetaAtendimentosMensal       int                         `gorm:"not null;default:0"`
	CreatedAt                    time.Time                   `gorm:"not null"`
	UpdatedAt                    time.Time                   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BusinessParamsModel) TableName() string {
	return "business_params"
}

// ToDomain converts the model to domain BusinessParams
func (m *BusinessParamsModel) ToDomain() *settings.BusinessParams {
	p := &settings.BusinessParams{
		LucroDesejado:                m.LucroDesejado,
		DespesasIndiretasDepreciacao: m.DespesasIndiretasDepreciacao,
		ImpostosRate:                 m.ImpostosRate,
		WeightedAverageRate:          m.WeightedAverageRate,
		CommissionRate:               m.CommissionRate,
		PaymentMethods:               m.PaymentMethods,
		WorkingDays:                  m.WorkingDays,
		Holidays:                     m.Holidays,
		TeamSize:                     m.TeamSize,
		DepreciacaoValorMobilizado:   m.DepreciacaoValorMobilizado,
		DepreciacaoTotal:             m.DepreciacaoTotal,
		MetaFaturamentoMensal:        m.MetaFaturamentoMensal,
		MetaAtendimentosMensal:       m.MetaAtendimentosMensal,
	}
	p.ID = m.ID
	p.UserID = m.UserID
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return p
}

// FromDomain populates the model from domain BusinessParams
func (m *BusinessParamsModel) FromDomain(p *settings.BusinessParams) {
	m.ID = p.ID
	m.UserID = p.UserID
	m.LucroDesejado = p.LucroDesejado
	m.DespesasIndiretasDepreciacao = p.DespesasIndiretasDepreciacao
	m.ImpostosRate = p.ImpostosRate
	m.WeightedAverageRate = p.WeightedAverageRate
	m.CommissionRate = p.CommissionRate
	m.PaymentMethods = p.PaymentMethods
	m.WorkingDays = p.WorkingDays
	m.Holidays = p.Holidays
	m.TeamSize = p.TeamSize
	m.DepreciacaoValorMobilizado = p.DepreciacaoValorMobilizado
	m.DepreciacaoTotal = p.DepreciacaoTotal
	m.MetaFaturamentoMensal = p.MetaFaturamentoMensal
	m.MetaAtendimentosMensal = p.MetaAtendimentosMensal
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
