package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/catalog"
	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/shopspring/decimal"
)

// SaveMaterialRequest creates or updates a material
type SaveMaterialRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Unit          string          `json:"unit" binding:"required,min=1,max=20"`
	BatchQuantity decimal.Decimal `json:"batch_quantity"`
	BatchPrice    decimal.Decimal `json:"batch_price"`
}

// MaterialResponse represents a material in API responses
type MaterialResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	BatchQuantity decimal.Decimal `json:"batch_quantity"`
	BatchPrice    decimal.Decimal `json:"batch_price"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MaterialLineRequest is one material usage line of a service request
type MaterialLineRequest struct {
	MaterialID uuid.UUID       `json:"material_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// SaveServiceRequest creates or updates a service.
// A nil CommissionRate falls back to the configured default.
type SaveServiceRequest struct {
	Name           string                `json:"name" binding:"required,min=1,max=200"`
	SalePrice      decimal.Decimal       `json:"sale_price"`
	CommissionRate *decimal.Decimal      `json:"commission_rate"`
	MaterialCosts  []MaterialLineRequest `json:"material_costs" binding:"dive"`
}

// UpdateLineRequest asks for a material line's cost to be re-derived
type UpdateLineRequest struct {
	MaterialID uuid.UUID       `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"` // previous cost, kept when the material is unknown
}

// ServiceResponse represents a service in API responses
type ServiceResponse struct {
	ID             uuid.UUID                  `json:"id"`
	Name           string                     `json:"name"`
	SalePrice      decimal.Decimal            `json:"sale_price"`
	CommissionRate decimal.Decimal            `json:"commission_rate"`
	MaterialCosts  []catalog.MaterialCostLine `json:"material_costs"`
	MaterialTotal  decimal.Decimal            `json:"material_total"`
	Pricing        catalog.PricedAt           `json:"pricing"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

// ServiceAnalysisResponse shows the frozen pricing next to current-rate costs
type ServiceAnalysisResponse struct {
	Service  ServiceResponse         `json:"service"`
	Analysis catalog.ServiceAnalysis `json:"analysis"`
}

// ToMaterialResponse converts a domain material to a response
func ToMaterialResponse(m *catalog.Material) MaterialResponse {
	return MaterialResponse{
		ID:            m.ID,
		Name:          m.Name,
		Unit:          m.Unit,
		BatchQuantity: m.BatchQuantity,
		BatchPrice:    m.BatchPrice.Amount(),
		UnitCost:      m.UnitCost(),
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToServiceResponse converts a domain service to a response
func ToServiceResponse(s *catalog.Service) ServiceResponse {
	lines := s.MaterialCosts
	if lines == nil {
		lines = []catalog.MaterialCostLine{}
	}
	return ServiceResponse{
		ID:             s.ID,
		Name:           s.Name,
		SalePrice:      s.SalePrice.Amount(),
		CommissionRate: s.CommissionRate,
		MaterialCosts:  lines,
		MaterialTotal:  s.MaterialTotal(),
		Pricing:        s.Pricing,
		UpdatedAt:      s.UpdatedAt,
	}
}

func commissionOrDefault(req SaveServiceRequest, params *settings.BusinessParams) decimal.Decimal {
	if req.CommissionRate != nil {
		return *req.CommissionRate
	}
	return params.CommissionRate
}
