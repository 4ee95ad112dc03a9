package models

import (
	"github.com/salonfin/backend/internal/domain/catalog"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// MaterialModel is the persistence model for a material
type MaterialModel struct {
	OwnedModel
	Name          string          `gorm:"type:varchar(200);not null"`
	Unit          string          `gorm:"type:varchar(20);not null"`
	BatchQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BatchPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (MaterialModel) TableName() string {
	return "materials"
}

// ToDomain converts the model to a domain Material
func (m *MaterialModel) ToDomain() catalog.Material {
	return catalog.Material{
		OwnedEntity:   m.ToOwnedEntity(),
		Name:          m.Name,
		Unit:          m.Unit,
		BatchQuantity: m.BatchQuantity,
		BatchPrice:    valueobject.NewMoney(m.BatchPrice),
	}
}

// FromDomain populates the model from a domain Material
func (m *MaterialModel) FromDomain(mat *catalog.Material) {
	m.FromOwnedEntity(mat.OwnedEntity)
	m.Name = mat.Name
	m.Unit = mat.Unit
	m.BatchQuantity = mat.BatchQuantity
	m.BatchPrice = mat.BatchPrice.Amount()
}

// ServiceModel is the persistence model for a service.
// Material lines and the pricing snapshot live in JSON columns.
type ServiceModel struct {
	OwnedModel
	Name           string                     `gorm:"type:varchar(200);not null"`
	SalePrice      decimal.Decimal            `gorm:"type:decimal(18,2);not null;default:0"`
	CommissionRate decimal.Decimal            `gorm:"type:decimal(7,4);not null;default:0"`
	MaterialCosts  []catalog.MaterialCostLine `gorm:"serializer:json;type:jsonb"`
	Pricing        catalog.PricedAt           `gorm:"serializer:json;type:jsonb"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the model to a domain Service
func (m *ServiceModel) ToDomain() catalog.Service {
	lines := m.MaterialCosts
	if lines == nil {
		lines = []catalog.MaterialCostLine{}
	}
	return catalog.Service{
		OwnedEntity:    m.ToOwnedEntity(),
		Name:           m.Name,
		SalePrice:      valueobject.NewMoney(m.SalePrice),
		CommissionRate: m.CommissionRate,
		MaterialCosts:  lines,
		Pricing:        m.Pricing,
	}
}

// FromDomain populates the model from a domain Service
func (m *ServiceModel) FromDomain(s *catalog.Service) {
	m.FromOwnedEntity(s.OwnedEntity)
	m.Name = s.Name
	m.SalePrice = s.SalePrice.Amount()
	m.CommissionRate = s.CommissionRate
	m.MaterialCosts = s.MaterialCosts
	m.Pricing = s.Pricing
}
