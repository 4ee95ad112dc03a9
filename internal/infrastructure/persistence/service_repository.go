package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/catalog"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormServiceRepository implements catalog.ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByIDForUser finds a service by ID for a specific user
func (r *GormServiceRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Service, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	s := model.ToDomain()
	return &s, nil
}

// FindAllForUser lists the user's services by name
func (r *GormServiceRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]catalog.Service, error) {
	var rows []models.ServiceModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Service, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// Save creates or updates a service with its lines and pricing snapshot
func (r *GormServiceRepository) Save(ctx context.Context, service *catalog.Service) error {
	var model models.ServiceModel
	model.FromDomain(service)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForUser deletes a service owned by the user
func (r *GormServiceRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.ServiceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ServiceRepository = (*GormServiceRepository)(nil)
