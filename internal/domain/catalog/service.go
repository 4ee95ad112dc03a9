package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MaterialCostLine is one material consumed by a service.
// Cost is stored, not derived: it only changes through UpdateMaterialLine.
type MaterialCostLine struct {
	MaterialID uuid.UUID       `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"`
}

// UpdateMaterialLine sets the line's material and quantity and re-derives
// its cost from the material's unit cost. When the material cannot be
// resolved or the quantity is not positive the previous cost is kept.
func UpdateMaterialLine(line MaterialCostLine, materialID uuid.UUID, quantity decimal.Decimal, idx MaterialIndex) MaterialCostLine {
	line.MaterialID = materialID
	line.Quantity = quantity
	m, ok := idx.Find(materialID)
	if !ok || !quantity.IsPositive() {
		return line
	}
	line.Cost = m.UnitCost().Mul(quantity)
	return line
}

// PricedAt is the cost snapshot frozen on a service when it is saved.
// It keeps the rates that were in effect so later reads can tell it apart
// from a recomputation with current parameters.
type PricedAt struct {
	CardTaxRate    decimal.Decimal `json:"card_tax_rate"`
	ServiceTaxRate decimal.Decimal `json:"service_tax_rate"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	GrossProfit    decimal.Decimal `json:"gross_profit"`
	ProfitMargin   decimal.Decimal `json:"profit_margin"`
	At             time.Time       `json:"priced_at"`
}

// IsZero reports whether the service was never priced
func (p PricedAt) IsZero() bool {
	return p.At.IsZero()
}

// Service is a salon service with its sale price and material usage
type Service struct {
	shared.OwnedEntity
	Name           string             `json:"name"`
	SalePrice      valueobject.Money  `json:"sale_price"`
	CommissionRate decimal.Decimal    `json:"commission_rate"`
	MaterialCosts  []MaterialCostLine `json:"material_costs"`
	Pricing        PricedAt           `json:"pricing"`
}

// NewService creates a new, unpriced service
func NewService(userID uuid.UUID, name string, salePrice valueobject.Money, commissionRate decimal.Decimal, lines []MaterialCostLine) (*Service, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	s := &Service{OwnedEntity: shared.NewOwnedEntity(userID)}
	if err := s.apply(name, salePrice, commissionRate, lines); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the editable fields. The pricing snapshot is left as is
// until the caller reprices the service.
func (s *Service) Update(name string, salePrice valueobject.Money, commissionRate decimal.Decimal, lines []MaterialCostLine) error {
	if err := s.apply(name, salePrice, commissionRate, lines); err != nil {
		return err
	}
	s.Touch(time.Now())
	return nil
}

func (s *Service) apply(name string, salePrice valueobject.Money, commissionRate decimal.Decimal, lines []MaterialCostLine) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot exceed 200 characters")
	}
	if salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Sale price cannot be negative")
	}
	if commissionRate.IsNegative() || commissionRate.GreaterThan(hundred) {
		return shared.NewDomainError("INVALID_RATE", "Commission rate must be between 0 and 100")
	}
	for _, l := range lines {
		if l.MaterialID == uuid.Nil {
			return shared.NewDomainError("INVALID_MATERIAL", "Material line requires a material")
		}
		if !l.Quantity.IsPositive() {
			return shared.NewDomainError("INVALID_QUANTITY", "Material quantity must be positive")
		}
	}
	s.Name = name
	s.SalePrice = salePrice
	s.CommissionRate = commissionRate
	s.MaterialCosts = append([]MaterialCostLine(nil), lines...)
	return nil
}

// RefreshLineCosts re-derives every line cost from the material index
func (s *Service) RefreshLineCosts(idx MaterialIndex) {
	for i, l := range s.MaterialCosts {
		s.MaterialCosts[i] = UpdateMaterialLine(l, l.MaterialID, l.Quantity, idx)
	}
}

// MaterialTotal sums the stored line costs
func (s Service) MaterialTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.MaterialCosts {
		total = total.Add(l.Cost)
	}
	return total
}

// CatalogMaterialTotal sums the material cost of every service in the catalog
func CatalogMaterialTotal(services []Service) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.MaterialTotal())
	}
	return total
}
