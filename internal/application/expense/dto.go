package expense

import (
	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/expense"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to add a custom category
type CreateCategoryRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	IsFixed bool   `json:"is_fixed"`
}

// UpsertExpenseRequest sets the value of one category for one month
type UpsertExpenseRequest struct {
	CategoryID uuid.UUID       `json:"category_id" binding:"required"`
	Month      string          `json:"month" binding:"required"` // YYYY-MM
	Value      decimal.Decimal `json:"value"`
}

// CategoryResponse represents an expense category in API responses
type CategoryResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsCustom bool      `json:"is_custom"`
	IsFixed  bool      `json:"is_fixed"`
}

// ExpenseLine is one category's value in a month listing
type ExpenseLine struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	IsFixed      bool            `json:"is_fixed"`
	MonthlyValue decimal.Decimal `json:"monthly_value"`
}

// MonthExpensesResponse lists every category with its value for a month
type MonthExpensesResponse struct {
	Month string          `json:"month"`
	Lines []ExpenseLine   `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// ApplyFixedResponse reports the months that received January's value
type ApplyFixedResponse struct {
	CategoryID uuid.UUID       `json:"category_id"`
	Year       int             `json:"year"`
	Value      decimal.Decimal `json:"value"`
	Months     []string        `json:"months"`
}

// ToCategoryResponse converts a domain category to a response
func ToCategoryResponse(c *expense.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		IsCustom: c.IsCustom,
		IsFixed:  c.IsFixed,
	}
}
