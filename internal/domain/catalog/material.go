package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Material is a consumable bought in batches and spent per service
type Material struct {
	shared.OwnedEntity
	Name          string            `json:"name"`
	Unit          string            `json:"unit"`
	BatchQuantity decimal.Decimal   `json:"batch_quantity"`
	BatchPrice    valueobject.Money `json:"batch_price"`
}

// NewMaterial creates a new material
func NewMaterial(userID uuid.UUID, name, unit string, batchQuantity decimal.Decimal, batchPrice valueobject.Money) (*Material, error) {
	m := &Material{OwnedEntity: shared.NewOwnedEntity(userID)}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if err := m.apply(name, unit, batchQuantity, batchPrice); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the editable fields of the material
func (m *Material) Update(name, unit string, batchQuantity decimal.Decimal, batchPrice valueobject.Money) error {
	if err := m.apply(name, unit, batchQuantity, batchPrice); err != nil {
		return err
	}
	m.Touch(time.Now())
	return nil
}

func (m *Material) apply(name, unit string, batchQuantity decimal.Decimal, batchPrice valueobject.Money) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Material name cannot exceed 200 characters")
	}
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Material unit cannot be empty")
	}
	if batchQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Batch quantity cannot be negative")
	}
	if batchPrice.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Batch price cannot be negative")
	}
	m.Name = name
	m.Unit = unit
	m.BatchQuantity = batchQuantity
	m.BatchPrice = batchPrice
	return nil
}

// UnitCost is the batch price divided by the batch quantity, zero for an empty batch
func (m Material) UnitCost() decimal.Decimal {
	if m.BatchQuantity.IsZero() {
		return decimal.Zero
	}
	return m.BatchPrice.Amount().Div(m.BatchQuantity)
}

// MaterialIndex resolves materials by ID
type MaterialIndex map[uuid.UUID]Material

// NewMaterialIndex indexes a material list by ID
func NewMaterialIndex(materials []Material) MaterialIndex {
	idx := make(MaterialIndex, len(materials))
	for _, m := range materials {
		idx[m.ID] = m
	}
	return idx
}

// Find returns the material with the given ID
func (idx MaterialIndex) Find(id uuid.UUID) (Material, bool) {
	m, ok := idx[id]
	return m, ok
}
