package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and audit timestamps
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a base entity with a fresh ID stamped now
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the update timestamp
func (e *BaseEntity) Touch(now time.Time) {
	e.UpdatedAt = now
}

// OwnedEntity is an entity that belongs to exactly one user account.
// Every ledger, catalog and settings record is owned this way and
// repositories only ever read or write it together with its owner.
type OwnedEntity struct {
	BaseEntity
	UserID uuid.UUID
}

// NewOwnedEntity creates a new entity owned by the given user
func NewOwnedEntity(userID uuid.UUID) OwnedEntity {
	return OwnedEntity{
		BaseEntity: NewBaseEntity(),
		UserID:     userID,
	}
}

