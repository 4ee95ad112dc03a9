package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/settings"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBusinessParamsRepository implements settings.Repository using GORM
type GormBusinessParamsRepository struct {
	db *gorm.DB
}

// NewGormBusinessParamsRepository creates a new GormBusinessParamsRepository
func NewGormBusinessParamsRepository(db *gorm.DB) *GormBusinessParamsRepository {
	return &GormBusinessParamsRepository{db: db}
}

// FindForUser returns the user's params or shared.ErrNotFound
func (r *GormBusinessParamsRepository) FindForUser(ctx context.Context, userID uuid.UUID) (*settings.BusinessParams, error) {
	var model models.BusinessParamsModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save inserts the user's params or replaces the existing row.
// The row keeps its original id and created_at.
func (r *GormBusinessParamsRepository) Save(ctx context.Context, params *settings.BusinessParams) error {
	var model models.BusinessParamsModel
	model.FromDomain(params)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"lucro_desejado",
				"despesas_indiretas_depreciacao",
				"impostos_rate",
				"weighted_average_rate",
				"commission_rate",
				"payment_methods",
				"working_days",
				"holidays",
				"team_size",
				"depreciacao_valor_mobilizado",
				"depreciacao_total",
				"meta_faturamento_mensal",
				"meta_atendimentos_mensal",
				"updated_at",
			}),
		}).
		Create(&model).Error
}

var _ settings.Repository = (*GormBusinessParamsRepository)(nil)
