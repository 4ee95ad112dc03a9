package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/expense"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseCategoryRepository implements expense.CategoryRepository using GORM
type GormExpenseCategoryRepository struct {
	db *gorm.DB
}

// NewGormExpenseCategoryRepository creates a new GormExpenseCategoryRepository
func NewGormExpenseCategoryRepository(db *gorm.DB) *GormExpenseCategoryRepository {
	return &GormExpenseCategoryRepository{db: db}
}

// FindByIDForUser finds a category by ID for a specific user
func (r *GormExpenseCategoryRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*expense.Category, error) {
	var model models.ExpenseCategoryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	c := model.ToDomain()
	return &c, nil
}

// FindAllForUser lists the user's categories, predefined first, then by name
func (r *GormExpenseCategoryRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]expense.Category, error) {
	var rows []models.ExpenseCategoryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_custom ASC, created_at ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]expense.Category, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// Save creates or updates a category
func (r *GormExpenseCategoryRepository) Save(ctx context.Context, category *expense.Category) error {
	var model models.ExpenseCategoryModel
	model.FromDomain(category)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveBatch inserts several categories in one statement
func (r *GormExpenseCategoryRepository) SaveBatch(ctx context.Context, categories []expense.Category) error {
	if len(categories) == 0 {
		return nil
	}
	rows := make([]models.ExpenseCategoryModel, len(categories))
	for i := range categories {
		rows[i].FromDomain(&categories[i])
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// DeleteForUser removes the category and its monthly records in one transaction
func (r *GormExpenseCategoryRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND category_id = ?", userID, id).
			Delete(&models.IndirectExpenseModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("user_id = ? AND id = ?", userID, id).Delete(&models.ExpenseCategoryModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ expense.CategoryRepository = (*GormExpenseCategoryRepository)(nil)
