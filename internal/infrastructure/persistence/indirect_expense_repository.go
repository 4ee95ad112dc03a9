package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/expense"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormIndirectExpenseRepository implements expense.IndirectExpenseRepository using GORM.
// Month arguments are normalized to the first day of their month.
type GormIndirectExpenseRepository struct {
	db *gorm.DB
}

// NewGormIndirectExpenseRepository creates a new GormIndirectExpenseRepository
func NewGormIndirectExpenseRepository(db *gorm.DB) *GormIndirectExpenseRepository {
	return &GormIndirectExpenseRepository{db: db}
}

// FindForMonth returns every record of the user for the month
func (r *GormIndirectExpenseRepository) FindForMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]expense.IndirectExpense, error) {
	return r.FindBetween(ctx, userID, month, month)
}

// FindBetween returns the records whose month reference is in [from, to]
func (r *GormIndirectExpenseRepository) FindBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]expense.IndirectExpense, error) {
	var rows []models.IndirectExpenseModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND month_reference >= ? AND month_reference <= ?",
			userID, expense.FirstOfMonth(from), expense.FirstOfMonth(to)).
		Order("month_reference ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]expense.IndirectExpense, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// FindOne returns the record for (category, month) or shared.ErrNotFound
func (r *GormIndirectExpenseRepository) FindOne(ctx context.Context, userID, categoryID uuid.UUID, month time.Time) (*expense.IndirectExpense, error) {
	var model models.IndirectExpenseModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ? AND month_reference = ?",
			userID, categoryID, expense.FirstOfMonth(month)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	e := model.ToDomain()
	return &e, nil
}

// Upsert creates the record or, when (user, category, month) exists,
// replaces its monthly value
func (r *GormIndirectExpenseRepository) Upsert(ctx context.Context, record *expense.IndirectExpense) error {
	var model models.IndirectExpenseModel
	model.FromDomain(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "category_id"},
				{Name: "month_reference"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"monthly_value", "updated_at"}),
		}).
		Create(&model).Error
}

// TotalForMonth sums the monthly values of the user's records for the month
func (r *GormIndirectExpenseRepository) TotalForMonth(ctx context.Context, userID uuid.UUID, month time.Time) (decimal.Decimal, error) {
	records, err := r.FindForMonth(ctx, userID, month)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(rec.MonthlyValue)
	}
	return total, nil
}

var _ expense.IndirectExpenseRepository = (*GormIndirectExpenseRepository)(nil)
