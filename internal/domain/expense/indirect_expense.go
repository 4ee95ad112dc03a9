package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// IndirectExpense is the monthly value of one category.
// There is at most one row per (CategoryID, MonthReference).
type IndirectExpense struct {
	shared.OwnedEntity
	CategoryID     uuid.UUID       `json:"category_id"`
	MonthReference time.Time       `json:"month_reference"` // first day of month, UTC
	MonthlyValue   decimal.Decimal `json:"monthly_value"`
}

// NewIndirectExpense creates a record for the month containing month
func NewIndirectExpense(userID, categoryID uuid.UUID, month time.Time, value decimal.Decimal) (*IndirectExpense, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Monthly value cannot be negative")
	}
	return &IndirectExpense{
		OwnedEntity:    shared.NewOwnedEntity(userID),
		CategoryID:     categoryID,
		MonthReference: FirstOfMonth(month),
		MonthlyValue:   value,
	}, nil
}

// SetValue replaces the monthly value
func (e *IndirectExpense) SetValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Monthly value cannot be negative")
	}
	e.MonthlyValue = value
	e.Touch(time.Now())
	return nil
}

// MonthKey returns the "YYYY-MM" key of the record's month
func (e IndirectExpense) MonthKey() string {
	return valueobject.MonthKey(e.MonthReference.Year(), e.MonthReference.Month())
}

// FirstOfMonth normalizes t to the first day of its month at UTC midnight
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// TotalByMonth sums monthly values grouped by "YYYY-MM" key
func TotalByMonth(records []IndirectExpense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		key := r.MonthKey()
		totals[key] = totals[key].Add(r.MonthlyValue)
	}
	return totals
}

// TotalFunc resolves the indirect-expense total of a "YYYY-MM" month.
// Unknown months resolve to zero.
type TotalFunc func(monthKey string) decimal.Decimal

// TotalFuncFrom builds a TotalFunc over an in-memory record list
func TotalFuncFrom(records []IndirectExpense) TotalFunc {
	totals := TotalByMonth(records)
	return func(monthKey string) decimal.Decimal {
		return totals[monthKey]
	}
}

// FixedPropagation returns, for a fixed category, the month references
// (February to December of year) that should receive January's value.
func FixedPropagation(year int) []time.Time {
	months := make([]time.Time, 0, 11)
	for m := time.February; m <= time.December; m++ {
		months = append(months, time.Date(year, m, 1, 0, 0, 0, 0, time.UTC))
	}
	return months
}
