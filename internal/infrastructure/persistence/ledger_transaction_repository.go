package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/ledger"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByIDForUser finds a transaction by ID for a specific user
func (r *GormTransactionRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	tx := model.ToDomain()
	return &tx, nil
}

// FindAllForUser returns every transaction of the user ordered by date
func (r *GormTransactionRepository) FindAllForUser(ctx context.Context, userID uuid.UUID) ([]ledger.Transaction, error) {
	var rows []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTransactions(rows), nil
}

// ListForUser returns one page of the user's transactions and the total match count
func (r *GormTransactionRepository) ListForUser(ctx context.Context, userID uuid.UUID, filter ledger.TransactionFilter) ([]ledger.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).Where("user_id = ?", userID)
	if filter.Kind != nil {
		query = query.Where("kind = ?", string(*filter.Kind))
	}
	if filter.From != nil {
		query = query.Where("date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("date <= ?", filter.To.UTC())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(description) LIKE ? OR LOWER(category) LIKE ?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Filter.Normalized()
	orderBy := ValidateSortField(filter.OrderBy, TransactionSortFields, "date")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var rows []models.TransactionModel
	if err := query.
		Order(orderBy + " " + orderDir).
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toTransactions(rows), total, nil
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, tx *ledger.Transaction) error {
	var model models.TransactionModel
	model.FromDomain(tx)
	return r.db.WithContext(ctx).Save(&model).Error
}

// DeleteForUser deletes a transaction owned by the user
func (r *GormTransactionRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toTransactions(rows []models.TransactionModel) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out
}

var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
