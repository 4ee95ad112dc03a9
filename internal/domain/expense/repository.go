package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryRepository defines persistence for expense categories
type CategoryRepository interface {
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Category, error)
	FindAllForUser(ctx context.Context, userID uuid.UUID) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	SaveBatch(ctx context.Context, categories []Category) error
	// DeleteForUser removes the category and every monthly record attached to it
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

// IndirectExpenseRepository defines persistence for monthly indirect expenses
type IndirectExpenseRepository interface {
	// FindForMonth returns every record of the user for the month
	FindForMonth(ctx context.Context, userID uuid.UUID, month time.Time) ([]IndirectExpense, error)

	// FindBetween returns the records whose month reference is in [from, to]
	FindBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]IndirectExpense, error)

	// FindOne returns the record for (category, month) or shared.ErrNotFound
	FindOne(ctx context.Context, userID, categoryID uuid.UUID, month time.Time) (*IndirectExpense, error)

	// Upsert creates or updates the record keyed on (category, month)
	Upsert(ctx context.Context, record *IndirectExpense) error

	// TotalForMonth sums the monthly values of the user's records for the month
	TotalForMonth(ctx context.Context, userID uuid.UUID, month time.Time) (decimal.Decimal, error)
}
