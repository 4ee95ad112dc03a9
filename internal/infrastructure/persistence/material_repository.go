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

// GormMaterialRepository implements catalog.MaterialRepository using GORM
type GormMaterialRepository struct {
	db *gorm.DB
}

// NewGormMaterialRepository creates a new GormMaterialRepository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

// FindByIDForUser finds a material by ID for a specific user
func (r *GormMaterialRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*catalog.Material, error) {
	var model models.MaterialModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	m := model.ToDomain()
	return &m, nil
}

// FindAllForUser lists the user's materials by name
func (r *GormMaterialRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]catalog.Material, error) {
	var rows []models.MaterialModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Material, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// Save creates or updates a material
func (r *GormMaterialRepository) Save(ctx context.Context, material *catalog.Material) error {
	var model models.MaterialModel
	model.FromDomain(material)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForUser deletes a material owned by the user.
// Service lines referencing it keep their last cost.
func (r *GormMaterialRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.MaterialModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.MaterialRepository = (*GormMaterialRepository)(nil)
