package catalog

import (
	"context"

	"github.com/google/uuid"
)

// MaterialRepository defines persistence for materials
type MaterialRepository interface {
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Material, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]Material, error)
	Save(ctx context.Context, material *Material) error
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

// ServiceRepository defines persistence for services.
// Material lines and the pricing snapshot are stored with the service.
type ServiceRepository interface {
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Service, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]Service, error)
	Save(ctx context.Context, service *Service) error
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
