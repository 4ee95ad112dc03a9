package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/shared"
)

// OwnedModel holds the persistence fields shared by every user-owned table.
// It maps to the domain's OwnedEntity.
type OwnedModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToOwnedEntity converts the model block to a domain OwnedEntity
func (m OwnedModel) ToOwnedEntity() shared.OwnedEntity {
	return shared.OwnedEntity{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		UserID: m.UserID,
	}
}

// FromOwnedEntity populates the model block from a domain OwnedEntity
func (m *OwnedModel) FromOwnedEntity(e shared.OwnedEntity) {
	m.ID = e.ID
	m.UserID = e.UserID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}
